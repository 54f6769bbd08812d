package fspiopdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-wallet/internal/correlator"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/pkg/validatorpkg"
)

const condition = "HOr22-H3AfTDHrSkPjJtVPRdKouuMkDXTR4ejlQa8Ks"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validatorpkg.Register(v); err != nil {
			fmt.Fprintf(os.Stderr, "validatorpkg.Register returned error: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(m.Run())
}

func party(id, fsp string) domain.Party {
	return domain.Party{PartyIDInfo: domain.PartyIDInfo{
		PartyIDType: domain.PartyIDTypeMSISDN, PartyIdentifier: id, FspID: fsp,
	}}
}

var transactionType = domain.TransactionType{Scenario: "PAYMENT", Initiator: "PAYEE", InitiatorType: "BUSINESS"}

func TestHandler(t *testing.T) {
	id := uuid.NewString()

	trParams := domain.TransactionRequestParams{
		TransactionRequestID: id,
		Payee:                party("25644444444", "payeefsp"),
		Payer:                party("25633333333", "petwallet"),
		Amount:               domain.Money{Currency: "USD", Amount: "200"},
		TransactionType:      transactionType,
	}

	quote := domain.QuoteRequest{
		QuoteID:         id,
		TransactionID:   uuid.NewString(),
		Payee:           party("25633333333", "petwallet"),
		Payer:           party("25644444444", "payerfsp"),
		AmountType:      domain.AmountTypeReceive,
		Amount:          domain.Money{Currency: "USD", Amount: "200"},
		TransactionType: transactionType,
	}

	prepare := domain.TransferPrepare{
		TransferID: id,
		PayerFsp:   "payerfsp",
		PayeeFsp:   "petwallet",
		Amount:     domain.Money{Currency: "USD", Amount: "200"},
		IlpPacket:  "eyJ0cmFuc2FjdGlvbklkIjoiMSJ9",
		Condition:  condition,
		Expiration: "2026-10-19T10:00:30.000Z",
	}

	quoteResp := domain.QuoteResponse{
		TransferAmount: domain.Money{Currency: "USD", Amount: "200"},
		Expiration:     "2026-10-19T10:01:00.000Z",
		IlpPacket:      "eyJ0cmFuc2FjdGlvbklkIjoiMSJ9",
		Condition:      condition,
	}

	fulfil := domain.TransferFulfil{
		Fulfilment:    condition,
		TransferState: domain.TransferStateCommitted,
	}

	errorBody := domain.ErrorBody{ErrorInformation: domain.ErrorInformation{
		ErrorCode: domain.ErrCodePayeeLimitExceeded, ErrorDescription: "Payee limit error",
	}}

	testCases := []struct {
		name           string
		method         string
		path           string
		body           any
		buildStubs     func(s *MockService, c *MockCorrelator)
		wantStatusCode int
	}{
		{
			name:   "TransactionRequestAccepted",
			method: http.MethodPost,
			path:   "/transactionRequests",
			body:   trParams,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				s.EXPECT().ReceiveTransactionRequest(gomock.Any(), trParams).Return(domain.TransactionRequest{ID: id}, nil)
			},
			wantStatusCode: http.StatusAccepted,
		},
		{
			name:   "TransactionRequestUnknownPayer",
			method: http.MethodPost,
			path:   "/transactionRequests",
			body:   trParams,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				s.EXPECT().ReceiveTransactionRequest(gomock.Any(), trParams).
					Return(domain.TransactionRequest{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:   "TransactionRequestInvalid",
			method: http.MethodPost,
			path:   "/transactionRequests",
			body:   domain.TransactionRequestParams{TransactionRequestID: "not-a-uuid"},
			buildStubs: func(s *MockService, c *MockCorrelator) {
				s.EXPECT().ReceiveTransactionRequest(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "QuoteAccepted",
			method: http.MethodPost,
			path:   "/quotes",
			body:   quote,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				s.EXPECT().HandleInboundQuote(gomock.Any(), "payerfsp", quote).Return(nil)
			},
			wantStatusCode: http.StatusAccepted,
		},
		{
			name:   "TransferAccepted",
			method: http.MethodPost,
			path:   "/transfers",
			body:   prepare,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				s.EXPECT().HandleInboundTransfer(gomock.Any(), "payerfsp", prepare).Return(nil)
			},
			wantStatusCode: http.StatusAccepted,
		},
		{
			name:   "TransferInvalidCondition",
			method: http.MethodPost,
			path:   "/transfers",
			body: func() domain.TransferPrepare {
				p := prepare
				p.Condition = "short"

				return p
			}(),
			buildStubs: func(s *MockService, c *MockCorrelator) {
				s.EXPECT().HandleInboundTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "QuoteResponseFired",
			method: http.MethodPut,
			path:   "/quotes/" + id,
			body:   quoteResp,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(correlator.QuoteKey(id), domain.QuoteOutcome{Response: &quoteResp}).Return(true)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "QuoteResponseWithoutWaiter",
			method: http.MethodPut,
			path:   "/quotes/" + id,
			body:   quoteResp,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(correlator.QuoteKey(id), gomock.Any()).Return(false)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "QuoteErrorFired",
			method: http.MethodPut,
			path:   "/quotes/" + id + "/error",
			body:   errorBody,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(correlator.QuoteKey(id), domain.QuoteOutcome{Error: &errorBody.ErrorInformation}).Return(true)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "TransferFulfilFired",
			method: http.MethodPut,
			path:   "/transfers/" + id,
			body:   fulfil,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(correlator.TransferKey(id), domain.TransferResult{Fulfil: &fulfil}).Return(true)
				s.EXPECT().HandleTransferResult(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "TransferFulfilLate",
			method: http.MethodPut,
			path:   "/transfers/" + id,
			body:   fulfil,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(correlator.TransferKey(id), gomock.Any()).Return(false)
				s.EXPECT().HandleTransferResult(gomock.Any(), id, domain.TransferResult{Fulfil: &fulfil}).Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "TransferErrorLate",
			method: http.MethodPut,
			path:   "/transfers/" + id + "/error",
			body:   errorBody,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(correlator.TransferKey(id), gomock.Any()).Return(false)
				s.EXPECT().HandleTransferResult(gomock.Any(), id, domain.TransferResult{Error: &errorBody.ErrorInformation}).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "TransferReservedIgnored",
			method: http.MethodPut,
			path:   "/transfers/" + id,
			body:   domain.TransferFulfil{TransferState: domain.TransferStateReserved},
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(gomock.Any(), gomock.Any()).Times(0)
				s.EXPECT().HandleTransferResult(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "TransferFulfilNotUUID",
			method: http.MethodPut,
			path:   "/transfers/not-a-uuid",
			body:   fulfil,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(gomock.Any(), gomock.Any()).Times(0)
				s.EXPECT().HandleTransferResult(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "QuoteResponseNotUUID",
			method: http.MethodPut,
			path:   "/quotes/42",
			body:   quoteResp,
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "TransferErrorInvalidCode",
			method: http.MethodPut,
			path:   "/transfers/" + id + "/error",
			body: domain.ErrorBody{ErrorInformation: domain.ErrorInformation{
				ErrorCode: "abc", ErrorDescription: "broken",
			}},
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "AuthorizationFired",
			method: http.MethodPut,
			path:   "/authorizations/" + id,
			body: domain.AuthorizationResponse{
				AuthenticationInfo: &domain.AuthenticationInfo{Authentication: "OTP", AuthenticationValue: "0042"},
				ResponseType:       domain.ResponseTypeEntered,
			},
			buildStubs: func(s *MockService, c *MockCorrelator) {
				c.EXPECT().Fire(correlator.AuthorizationKey(id), domain.AuthorizationResponse{
					AuthenticationInfo: &domain.AuthenticationInfo{Authentication: "OTP", AuthenticationValue: "0042"},
					ResponseType:       domain.ResponseTypeEntered,
				}).Return(true)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			corr := NewMockCorrelator(ctrl)
			tc.buildStubs(service, corr)

			h := NewHandler(service, corr)
			server := gin.New()
			h.Register(server.Group("/", middleware.AllowedSources([]string{"payerfsp", "payeefsp"})))

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			req, err := http.NewRequest(tc.method, tc.path, bytes.NewReader(body))
			require.NoError(t, err)
			req.Header.Set(middleware.FSPIOPSourceHeader, "payerfsp")
			req.Header.Set(middleware.FSPIOPDestinationHeader, "petwallet")

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			h.Wait()

			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

func TestTransferResultReachesWaiter(t *testing.T) {
	id := uuid.NewString()
	corr := correlator.New()

	resolver, err := corr.AwaitOnce(correlator.TransferKey(id))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	service.EXPECT().HandleTransferResult(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	h := NewHandler(service, corr)
	server := gin.New()
	h.Register(server)

	body := `{"errorInformation":{"errorCode":"4200","errorDescription":"Payee limit error"}}`
	req, err := http.NewRequest(http.MethodPut, "/transfers/"+id+"/error", bytes.NewBufferString(body))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	payload, err := resolver.Wait(req.Context(), time.Second)
	require.NoError(t, err)
	require.Equal(t, domain.TransferResult{Error: &domain.ErrorInformation{
		ErrorCode: "4200", ErrorDescription: "Payee limit error",
	}}, payload)
}
