package transferservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-wallet/internal/correlator"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/ilp"
	"github.com/go-petr/pet-wallet/pkg/validatorpkg"
)

const (
	trID       = "a8323bc6-c228-4df2-ae82-e5a997baf898"
	quoteID    = "7c23e80c-d078-4077-8263-2c047876fcf6"
	txID       = "85feac2f-39b2-491b-817e-4a03203d4f14"
	transferID = "2f1b0f8e-8c1a-4b51-9d7c-4b2f6b6a2c11"
)

var testNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

type mocks struct {
	txRequests *MockTxRequestRepo
	quotes     *MockQuoteRepo
	transfers  *MockTransferRepo
	accounts   *MockAccountRepo
	otp        *MockOTPService
	gateway    *MockGateway
	corr       *correlator.Correlator
	builder    *ilp.Builder
}

func newTestService(t *testing.T) (*Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	builder, err := ilp.NewBuilder("test-secret")
	require.NoError(t, err)

	m := mocks{
		txRequests: NewMockTxRequestRepo(ctrl),
		quotes:     NewMockQuoteRepo(ctrl),
		transfers:  NewMockTransferRepo(ctrl),
		accounts:   NewMockAccountRepo(ctrl),
		otp:        NewMockOTPService(ctrl),
		gateway:    NewMockGateway(ctrl),
		corr:       correlator.New(),
		builder:    builder,
	}

	notifier := NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	s := New(Deps{
		TxRequests: m.txRequests,
		Quotes:     m.quotes,
		Transfers:  m.transfers,
		Accounts:   m.accounts,
		OTP:        m.otp,
		Gateway:    m.gateway,
		Notifier:   notifier,
		Correlator: m.corr,
		ILP:        builder,
	}, Config{
		FSPID:           "petwallet",
		CallbackTimeout: 50 * time.Millisecond,
		QuoteExpiration: time.Minute,
		InboundQuoteTTL: 2 * time.Minute,
	})

	ids := []string{quoteID, txID, transferID}
	s.now = func() time.Time { return testNow }
	s.newID = func() string {
		id := ids[0]
		ids = ids[1:]

		return id
	}

	return s, m
}

func txRequest(state domain.State) domain.TransactionRequest {
	return domain.TransactionRequest{
		ID:        trID,
		UserID:    "alice",
		AccountID: 7,
		Payer: domain.Party{PartyIDInfo: domain.PartyIDInfo{
			PartyIDType: domain.PartyIDTypeMSISDN, PartyIdentifier: "alice", FspID: "petwallet",
		}},
		Payee: domain.Party{PartyIDInfo: domain.PartyIDInfo{
			PartyIDType: domain.PartyIDTypeMSISDN, PartyIdentifier: "25644444444", FspID: "payeefsp",
		}},
		Amount:          domain.Money{Currency: "USD", Amount: "200"},
		TransactionType: domain.TransactionType{Scenario: "PAYMENT", Initiator: "PAYEE", InitiatorType: "BUSINESS"},
		Status:          domain.StatusAccepted,
		State:           state,
	}
}

func quoteResponse(t *testing.T, b *ilp.Builder) (domain.QuoteResponse, string) {
	t.Helper()

	packet, condition, err := b.Build(ilp.Transaction{TransactionID: txID, QuoteID: quoteID})
	require.NoError(t, err)

	return domain.QuoteResponse{
		TransferAmount: domain.Money{Currency: "USD", Amount: "200"},
		Expiration:     validatorpkg.FormatDateTime(testNow.Add(time.Minute)),
		IlpPacket:      packet,
		Condition:      condition,
	}, b.Fulfilment(packet)
}

func TestReceiveTransactionRequest(t *testing.T) {
	tr := txRequest(domain.StateReceived)
	params := domain.TransactionRequestParams{
		TransactionRequestID: trID,
		Payee:                tr.Payee,
		Payer:                tr.Payer,
		Amount:               tr.Amount,
		TransactionType:      tr.TransactionType,
	}

	testCases := []struct {
		name       string
		params     domain.TransactionRequestParams
		buildStubs func(m mocks)
		wantErr    error
	}{
		{
			name:   "OK",
			params: params,
			buildStubs: func(m mocks) {
				m.accounts.EXPECT().GetByUserCurrency(gomock.Any(), "alice", "USD").
					Return(domain.Account{ID: 7, UserID: "alice", Currency: "USD", Scale: 2}, nil)
				m.txRequests.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, arg domain.CreateTransactionRequestParams) (domain.TransactionRequest, error) {
						require.Equal(t, trID, arg.ID)
						require.Equal(t, int64(7), arg.AccountID)
						require.NotEmpty(t, arg.Snapshot)

						return tr, nil
					})
			},
		},
		{
			name:   "AccountNotFound",
			params: params,
			buildStubs: func(m mocks) {
				m.accounts.EXPECT().GetByUserCurrency(gomock.Any(), "alice", "USD").
					Return(domain.Account{}, domain.ErrAccountNotFound)
				m.txRequests.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "TooManyDecimals",
			params: func() domain.TransactionRequestParams {
				p := params
				p.Amount.Amount = "1.001"

				return p
			}(),
			buildStubs: func(m mocks) {
				m.accounts.EXPECT().GetByUserCurrency(gomock.Any(), "alice", "USD").
					Return(domain.Account{ID: 7, UserID: "alice", Currency: "USD", Scale: 2}, nil)
				m.txRequests.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newTestService(t)
			tc.buildStubs(m)

			got, err := s.ReceiveTransactionRequest(context.Background(), tc.params)
			require.ErrorIs(t, err, tc.wantErr)

			if tc.wantErr == nil {
				require.Equal(t, tr, got)
			}
		})
	}
}

func TestReject(t *testing.T) {
	testCases := []struct {
		name       string
		userID     string
		buildStubs func(m mocks)
		wantErr    error
	}{
		{
			name:   "OK",
			userID: "alice",
			buildStubs: func(m mocks) {
				m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateReceived), nil)
				m.txRequests.EXPECT().Transition(gomock.Any(), trID,
					[]domain.State{domain.StateReceived}, domain.StateRejected, domain.StatusRejected).Return(nil)
			},
		},
		{
			name:   "AlreadyQuoted",
			userID: "alice",
			buildStubs: func(m mocks) {
				m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateQuoted), nil)
				m.txRequests.EXPECT().Transition(gomock.Any(), trID,
					[]domain.State{domain.StateReceived}, domain.StateRejected, domain.StatusRejected).
					Return(domain.ErrInvalidState)
			},
			wantErr: domain.ErrInvalidState,
		},
		{
			name:   "InvalidOwner",
			userID: "mallory",
			buildStubs: func(m mocks) {
				m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateReceived), nil)
				m.txRequests.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidOwner,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newTestService(t)
			tc.buildStubs(m)

			err := s.Reject(context.Background(), tc.userID, trID)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestQuote(t *testing.T) {
	b, err := ilp.NewBuilder("test-secret")
	require.NoError(t, err)

	valid, _ := quoteResponse(t, b)
	invalid := valid
	invalid.Condition = "short"
	oversized := valid
	oversized.TransferAmount = domain.Money{Currency: "USD", Amount: "184467440737095516.17"}
	rejected := domain.ErrorInformation{ErrorCode: domain.ErrCodePartyNotFound, ErrorDescription: "Party not found"}

	// fire answers the quote callback as soon as the request leaves.
	fire := func(m mocks, payload any) func(context.Context, string, domain.QuoteRequest) error {
		return func(_ context.Context, _ string, q domain.QuoteRequest) error {
			require.True(t, m.corr.Fire(correlator.QuoteKey(q.QuoteID), payload))
			return nil
		}
	}

	expectSent := func(m mocks) *gomock.Call {
		m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateReceived), nil)
		m.quotes.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, arg domain.CreateQuoteParams) (domain.Quote, error) {
				require.Equal(t, quoteID, arg.Request.QuoteID)
				require.Equal(t, txID, arg.Request.TransactionID)
				require.Equal(t, domain.AmountTypeReceive, arg.Request.AmountType)
				require.Equal(t, testNow.Add(time.Minute), arg.Expiration)

				return domain.Quote{ID: arg.Request.QuoteID}, nil
			})
		m.txRequests.EXPECT().Transition(gomock.Any(), trID,
			[]domain.State{domain.StateReceived, domain.StateQuoted}, domain.StateQuoted, domain.StatusAccepted).Return(nil)

		return m.gateway.EXPECT().SendQuote(gomock.Any(), "payeefsp", gomock.Any())
	}

	testCases := []struct {
		name       string
		buildStubs func(m mocks)
		want       domain.QuoteResponse
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(m mocks) {
				outcome := domain.QuoteOutcome{Response: &valid}
				expectSent(m).DoAndReturn(fire(m, outcome))
				m.quotes.EXPECT().SetOutcome(gomock.Any(), quoteID, outcome).Return(nil)
				m.txRequests.EXPECT().Transition(gomock.Any(), trID,
					[]domain.State{domain.StateQuoted}, domain.StateQuoteReceived, domain.Status("")).Return(nil)
			},
			want: valid,
		},
		{
			name: "InvalidResponse",
			buildStubs: func(m mocks) {
				expectSent(m).DoAndReturn(fire(m, domain.QuoteOutcome{Response: &invalid}))
				m.quotes.EXPECT().SetOutcome(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidQuoteResponse,
		},
		{
			name: "AmountBeyondMinorUnits",
			buildStubs: func(m mocks) {
				expectSent(m).DoAndReturn(fire(m, domain.QuoteOutcome{Response: &oversized}))
				m.quotes.EXPECT().SetOutcome(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidQuoteResponse,
		},
		{
			name: "Rejected",
			buildStubs: func(m mocks) {
				outcome := domain.QuoteOutcome{Error: &rejected}
				expectSent(m).DoAndReturn(fire(m, outcome))
				m.quotes.EXPECT().SetOutcome(gomock.Any(), quoteID, outcome).Return(nil)
			},
			wantErr: domain.ErrQuoteRejected,
		},
		{
			name: "Timeout",
			buildStubs: func(m mocks) {
				expectSent(m).Return(nil)
				m.quotes.EXPECT().SetOutcome(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrTimeout,
		},
		{
			name: "GatewayError",
			buildStubs: func(m mocks) {
				expectSent(m).Return(domain.ErrGateway)
			},
			wantErr: domain.ErrGateway,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newTestService(t)
			tc.buildStubs(m)

			got, err := s.Quote(context.Background(), "alice", trID)
			require.ErrorIs(t, err, tc.wantErr)
			require.Zero(t, m.corr.Pending())

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("s.Quote returned unexpected difference (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRequestAuthorization(t *testing.T) {
	b, err := ilp.NewBuilder("test-secret")
	require.NoError(t, err)

	valid, _ := quoteResponse(t, b)
	expired := valid
	expired.Expiration = validatorpkg.FormatDateTime(testNow.Add(-time.Second))

	otp := domain.OTP{ID: 1, UserID: "alice", AccountID: 7, Code: "0042", ExpiresAt: testNow.Add(5 * time.Minute)}

	testCases := []struct {
		name       string
		buildStubs func(m mocks)
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(m mocks) {
				m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateQuoteReceived), nil)
				m.quotes.EXPECT().GetLatestByTransactionRequest(gomock.Any(), trID).
					Return(domain.Quote{ID: quoteID, Outcome: &domain.QuoteOutcome{Response: &valid}}, nil)
				m.otp.EXPECT().Issue(gomock.Any(), "alice", int64(7)).Return(otp, nil)
				m.txRequests.EXPECT().Transition(gomock.Any(), trID,
					[]domain.State{domain.StateQuoteReceived, domain.StateAuthorizationRequested},
					domain.StateAuthorizationRequested, domain.Status("")).Return(nil)
			},
		},
		{
			name: "QuoteExpired",
			buildStubs: func(m mocks) {
				m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateQuoteReceived), nil)
				m.quotes.EXPECT().GetLatestByTransactionRequest(gomock.Any(), trID).
					Return(domain.Quote{ID: quoteID, Outcome: &domain.QuoteOutcome{Response: &expired}}, nil)
				m.otp.EXPECT().Issue(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrQuoteExpired,
		},
		{
			name: "NotQuoted",
			buildStubs: func(m mocks) {
				m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateReceived), nil)
				m.otp.EXPECT().Issue(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidState,
		},
		{
			name: "ActiveOTPExists",
			buildStubs: func(m mocks) {
				m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateAuthorizationRequested), nil)
				m.quotes.EXPECT().GetLatestByTransactionRequest(gomock.Any(), trID).
					Return(domain.Quote{ID: quoteID, Outcome: &domain.QuoteOutcome{Response: &valid}}, nil)
				m.otp.EXPECT().Issue(gomock.Any(), "alice", int64(7)).Return(domain.OTP{}, domain.ErrActiveOTPExists)
			},
			wantErr: domain.ErrActiveOTPExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newTestService(t)
			tc.buildStubs(m)

			got, err := s.RequestAuthorization(context.Background(), "alice", trID)
			require.ErrorIs(t, err, tc.wantErr)

			if tc.wantErr == nil {
				require.Equal(t, otp, got)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	b, err := ilp.NewBuilder("test-secret")
	require.NoError(t, err)

	resp, fulfilment := quoteResponse(t, b)
	quote := domain.Quote{ID: quoteID, TransactionID: txID, Outcome: &domain.QuoteOutcome{Response: &resp}}

	transfer := domain.Transfer{
		ID:                   transferID,
		TransactionID:        txID,
		TransactionRequestID: trID,
		QuoteID:              quoteID,
		AccountID:            7,
		Amount:               20000,
		Direction:            domain.DirectionOutbound,
		IlpPacket:            resp.IlpPacket,
		Condition:            resp.Condition,
		Expiration:           testNow.Add(50 * time.Millisecond),
		State:                domain.TransferStateReserved,
	}

	fire := func(m mocks, result domain.TransferResult) func(context.Context, string, domain.TransferPrepare) error {
		return func(_ context.Context, _ string, p domain.TransferPrepare) error {
			require.True(t, m.corr.Fire(correlator.TransferKey(p.TransferID), result))
			return nil
		}
	}

	// expectSent stubs the flow up to the transfer leaving for the switch.
	expectSent := func(m mocks) *gomock.Call {
		m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateAuthorizationRequested), nil)
		m.otp.EXPECT().Verify(gomock.Any(), "alice", "0042").Return(nil)
		m.otp.EXPECT().Consume(gomock.Any(), "alice").Return(nil)
		m.txRequests.EXPECT().Transition(gomock.Any(), trID,
			[]domain.State{domain.StateAuthorizationRequested}, domain.StateAuthorized, domain.Status("")).Return(nil)
		m.quotes.EXPECT().GetLatestByTransactionRequest(gomock.Any(), trID).Return(quote, nil)
		m.transfers.EXPECT().Initiate(gomock.Any(), domain.CreateTransferParams{
			ID:                   transferID,
			TransactionID:        txID,
			TransactionRequestID: trID,
			QuoteID:              quoteID,
			AccountID:            7,
			Amount:               20000,
			Direction:            domain.DirectionOutbound,
			IlpPacket:            resp.IlpPacket,
			Condition:            resp.Condition,
			Expiration:           testNow.Add(50 * time.Millisecond),
			State:                domain.TransferStateReserved,
			Description:          "transfer to 25644444444",
		}).Return(transfer, domain.PostResult{}, nil)
		m.txRequests.EXPECT().Transition(gomock.Any(), trID,
			[]domain.State{domain.StateAuthorized}, domain.StateTransferInitiated, domain.Status("")).Return(nil)

		return m.gateway.EXPECT().SendTransfer(gomock.Any(), "payeefsp", gomock.Any())
	}

	expectRevert := func(m mocks) {
		m.transfers.EXPECT().Get(gomock.Any(), transferID).Return(transfer, nil)
		m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateTransferInitiated), nil)
		m.transfers.EXPECT().Revert(gomock.Any(), transferID, gomock.Any()).Return(domain.PostResult{}, nil)
		m.txRequests.EXPECT().Transition(gomock.Any(), trID,
			[]domain.State{domain.StateAuthorized, domain.StateTransferInitiated}, domain.StateReverted, domain.Status("")).
			Return(nil)
	}

	testCases := []struct {
		name       string
		code       string
		buildStubs func(m mocks)
		wantErr    error
	}{
		{
			name: "Settled",
			code: "0042",
			buildStubs: func(m mocks) {
				expectSent(m).DoAndReturn(fire(m, domain.TransferResult{Fulfil: &domain.TransferFulfil{
					Fulfilment:    fulfilment,
					TransferState: domain.TransferStateCommitted,
				}}))
				m.transfers.EXPECT().Commit(gomock.Any(), transferID, fulfilment).Return(true, nil)
				m.txRequests.EXPECT().Transition(gomock.Any(), trID,
					[]domain.State{domain.StateTransferInitiated}, domain.StateSettled, domain.Status("")).Return(nil)
				m.transfers.EXPECT().Revert(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name: "ErrorCallbackReverts",
			code: "0042",
			buildStubs: func(m mocks) {
				expectSent(m).DoAndReturn(fire(m, domain.TransferResult{Error: &domain.ErrorInformation{
					ErrorCode: domain.ErrCodePayeeLimitExceeded, ErrorDescription: "Payee limit error",
				}}))
				expectRevert(m)
				m.transfers.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrTransferFailed,
		},
		{
			name: "TimeoutReverts",
			code: "0042",
			buildStubs: func(m mocks) {
				expectSent(m).Return(nil)
				expectRevert(m)
			},
			wantErr: domain.ErrTimeout,
		},
		{
			name: "GatewayErrorReverts",
			code: "0042",
			buildStubs: func(m mocks) {
				expectSent(m).Return(domain.ErrGateway)
				expectRevert(m)
			},
			wantErr: domain.ErrGateway,
		},
		{
			name: "InvalidFulfilmentReverts",
			code: "0042",
			buildStubs: func(m mocks) {
				expectSent(m).DoAndReturn(fire(m, domain.TransferResult{Fulfil: &domain.TransferFulfil{
					Fulfilment:    b.Fulfilment("another packet"),
					TransferState: domain.TransferStateCommitted,
				}}))
				expectRevert(m)
				m.transfers.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidFulfilment,
		},
		{
			name: "OTPMismatch",
			code: "9999",
			buildStubs: func(m mocks) {
				m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateAuthorizationRequested), nil)
				m.otp.EXPECT().Verify(gomock.Any(), "alice", "9999").Return(domain.ErrOTPMismatch)
				m.otp.EXPECT().Consume(gomock.Any(), gomock.Any()).Times(0)
				m.transfers.EXPECT().Initiate(gomock.Any(), gomock.Any()).Times(0)
				m.gateway.EXPECT().SendTransfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrOTPMismatch,
		},
		{
			name: "NotAuthorizationRequested",
			code: "0042",
			buildStubs: func(m mocks) {
				m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateQuoteReceived), nil)
				m.otp.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidState,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newTestService(t)
			// Quote already consumed the first two ids.
			s.newID = func() string { return transferID }
			tc.buildStubs(m)

			got, err := s.Authorize(context.Background(), "alice", trID, tc.code)
			require.ErrorIs(t, err, tc.wantErr)
			require.Zero(t, m.corr.Pending())

			if tc.wantErr == nil {
				require.Equal(t, domain.State(domain.TransferStateCommitted), got.State)
				require.Equal(t, fulfilment, got.Fulfilment)
			}
		})
	}
}

func TestAuthorizeViaCounterparty(t *testing.T) {
	b, err := ilp.NewBuilder("test-secret")
	require.NoError(t, err)

	resp, _ := quoteResponse(t, b)
	quote := domain.Quote{ID: quoteID, TransactionID: txID, Outcome: &domain.QuoteOutcome{Response: &resp}}

	testCases := []struct {
		name     string
		response any
		wantErr  error
	}{
		{
			name:     "Rejected",
			response: domain.AuthorizationResponse{ResponseType: domain.ResponseTypeRejected},
			wantErr:  domain.ErrAuthorizationRejected,
		},
		{
			name:    "Timeout",
			wantErr: domain.ErrTimeout,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, m := newTestService(t)

			m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateAuthorizationRequested), nil)
			m.quotes.EXPECT().GetLatestByTransactionRequest(gomock.Any(), trID).Return(quote, nil)
			m.gateway.EXPECT().SendAuthorizationRequest(gomock.Any(), "payeefsp", trID, domain.AuthorizationParams{
				AuthenticationType: domain.AuthenticationOTP,
				RetriesLeft:        1,
				Amount:             resp.TransferAmount,
			}).DoAndReturn(func(_ context.Context, _, id string, _ domain.AuthorizationParams) error {
				if tc.response != nil {
					m.corr.Fire(correlator.AuthorizationKey(id), tc.response)
				}

				return nil
			})
			m.otp.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err := s.AuthorizeViaCounterparty(context.Background(), "alice", trID)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestHandleTransferResultDuplicateError(t *testing.T) {
	s, m := newTestService(t)

	transfer := domain.Transfer{
		ID:                   transferID,
		TransactionRequestID: trID,
		AccountID:            7,
		Amount:               20000,
		Direction:            domain.DirectionOutbound,
		State:                domain.TransferStateReserved,
	}
	reverted := transfer
	reverted.Reverted = true

	gomock.InOrder(
		m.transfers.EXPECT().Get(gomock.Any(), transferID).Return(transfer, nil).Times(2),
		m.transfers.EXPECT().Get(gomock.Any(), transferID).Return(reverted, nil).Times(2),
	)
	m.txRequests.EXPECT().Get(gomock.Any(), trID).Return(txRequest(domain.StateTransferInitiated), nil)
	m.transfers.EXPECT().Revert(gomock.Any(), transferID, gomock.Any()).Return(domain.PostResult{}, nil).Times(1)
	m.txRequests.EXPECT().Transition(gomock.Any(), trID,
		[]domain.State{domain.StateAuthorized, domain.StateTransferInitiated}, domain.StateReverted, domain.Status("")).
		Return(nil)

	result := domain.TransferResult{Error: &domain.ErrorInformation{ErrorCode: "5105", ErrorDescription: "Payee transaction limit reached"}}

	for i := 0; i < 2; i++ {
		require.NoError(t, s.HandleTransferResult(context.Background(), transferID, result))
	}
}

func TestHandleTransferResultLateCommit(t *testing.T) {
	b, err := ilp.NewBuilder("test-secret")
	require.NoError(t, err)

	resp, fulfilment := quoteResponse(t, b)
	transfer := domain.Transfer{
		ID:                   transferID,
		TransactionRequestID: trID,
		AccountID:            7,
		Condition:            resp.Condition,
		State:                domain.TransferStateReserved,
	}
	result := domain.TransferResult{Fulfil: &domain.TransferFulfil{
		Fulfilment:    fulfilment,
		TransferState: domain.TransferStateCommitted,
	}}

	t.Run("Settles", func(t *testing.T) {
		t.Parallel()

		s, m := newTestService(t)
		m.transfers.EXPECT().Get(gomock.Any(), transferID).Return(transfer, nil)
		m.transfers.EXPECT().Commit(gomock.Any(), transferID, fulfilment).Return(true, nil)
		m.txRequests.EXPECT().Transition(gomock.Any(), trID,
			[]domain.State{domain.StateTransferInitiated}, domain.StateSettled, domain.Status("")).Return(nil)

		require.NoError(t, s.HandleTransferResult(context.Background(), transferID, result))
	})

	t.Run("IgnoredAfterRevert", func(t *testing.T) {
		t.Parallel()

		reverted := transfer
		reverted.Reverted = true

		s, m := newTestService(t)
		m.transfers.EXPECT().Get(gomock.Any(), transferID).Return(reverted, nil)
		m.transfers.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		require.NoError(t, s.HandleTransferResult(context.Background(), transferID, result))
	})

	t.Run("ReservedIgnored", func(t *testing.T) {
		t.Parallel()

		s, m := newTestService(t)
		m.transfers.EXPECT().Get(gomock.Any(), transferID).Return(transfer, nil)
		m.transfers.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		m.transfers.EXPECT().Revert(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		reserved := domain.TransferResult{Fulfil: &domain.TransferFulfil{TransferState: domain.TransferStateReserved}}
		require.NoError(t, s.HandleTransferResult(context.Background(), transferID, reserved))
	})

	t.Run("UnknownTransfer", func(t *testing.T) {
		t.Parallel()

		s, m := newTestService(t)
		m.transfers.EXPECT().Get(gomock.Any(), transferID).Return(domain.Transfer{}, domain.ErrTransferNotFound)

		require.NoError(t, s.HandleTransferResult(context.Background(), transferID, result))
	})
}
