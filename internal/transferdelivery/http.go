// Package transferdelivery manages delivery layer of the wallet user's payment flows.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	GetTransactionRequest(ctx context.Context, userID, id string) (domain.TransactionRequest, error)
	ListPending(ctx context.Context, userID string) ([]domain.TransactionRequest, error)
	Reject(ctx context.Context, userID, id string) error
	Quote(ctx context.Context, userID, id string) (domain.QuoteResponse, error)
	RequestAuthorization(ctx context.Context, userID, id string) (domain.OTP, error)
	Authorize(ctx context.Context, userID, id, code string) (domain.Transfer, error)
	AuthorizeViaCounterparty(ctx context.Context, userID, id string) (domain.Transfer, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

// Register mounts the transaction request routes on an authenticated group.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/transactionRequests", h.List)
	r.GET("/transactionRequests/:id", h.Get)
	r.POST("/transactionRequests/:id/reject", h.Reject)
	r.POST("/transactionRequests/:id/quote", h.Quote)
	r.POST("/transactionRequests/:id/authorization", h.RequestAuthorization)
	r.POST("/transactionRequests/:id/authorization/counterparty", h.AuthorizeViaCounterparty)
	r.POST("/transactionRequests/:id/authorize", h.Authorize)
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// bindID reads the transaction request id or answers 400.
func bindID(gctx *gin.Context) (string, bool) {
	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindErrorMsg(err)})

		return "", false
	}

	return req.ID, true
}

type dataRequest struct {
	TransactionRequest domain.TransactionRequest `json:"transaction_request"`
}

type dataRequests struct {
	TransactionRequests []domain.TransactionRequest `json:"transaction_requests"`
}

type dataQuote struct {
	Quote domain.QuoteResponse `json:"quote"`
}

type dataOTP struct {
	ExpiresAt time.Time `json:"expires_at"`
}

type dataTransfer struct {
	Transfer domain.Transfer `json:"transfer"`
}

// List handles http request to list transaction requests in flight.
func (h *Handler) List(gctx *gin.Context) {
	trs, err := h.service.ListPending(gctx.Request.Context(), middleware.UserID(gctx))
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataRequests{trs}})
}

// Get handles http request to get a transaction request.
func (h *Handler) Get(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	tr, err := h.service.GetTransactionRequest(gctx.Request.Context(), middleware.UserID(gctx), id)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataRequest{tr}})
}

// Reject handles http request to decline a transaction request.
func (h *Handler) Reject(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	if err := h.service.Reject(gctx.Request.Context(), middleware.UserID(gctx), id); err != nil {
		writeError(gctx, err)
		return
	}

	gctx.Status(http.StatusNoContent)
}

// Quote handles http request to quote a transaction request.
func (h *Handler) Quote(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	q, err := h.service.Quote(gctx.Request.Context(), middleware.UserID(gctx), id)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataQuote{q}})
}

// RequestAuthorization handles http request to issue the passcode of a quoted request.
func (h *Handler) RequestAuthorization(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	otp, err := h.service.RequestAuthorization(gctx.Request.Context(), middleware.UserID(gctx), id)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: dataOTP{ExpiresAt: otp.ExpiresAt}})
}

type authorizeRequest struct {
	OTP string `json:"otp" binding:"required,otp"`
}

// Authorize handles http request to pay a quoted request with its passcode.
func (h *Handler) Authorize(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	id, ok := bindID(gctx)
	if !ok {
		return
	}

	var req authorizeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindErrorMsg(err)})

		return
	}

	t, err := h.service.Authorize(ctx, middleware.UserID(gctx), id, req.OTP)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataTransfer{t}})
}

// AuthorizeViaCounterparty handles http request to pay with a passcode entered on the payee's device.
func (h *Handler) AuthorizeViaCounterparty(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	t, err := h.service.AuthorizeViaCounterparty(gctx.Request.Context(), middleware.UserID(gctx), id)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataTransfer{t}})
}

func writeError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	var status int

	switch {
	case errors.Is(err, domain.ErrTransactionRequestNotFound),
		errors.Is(err, domain.ErrQuoteNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidOwner):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrTransferExists),
		errors.Is(err, domain.ErrActiveOTPExists),
		errors.Is(err, domain.ErrQuoteExpired):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrTimeout),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrOTPMismatch),
		errors.Is(err, domain.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientLimit),
		errors.Is(err, domain.ErrQuoteRejected),
		errors.Is(err, domain.ErrTransferFailed),
		errors.Is(err, domain.ErrAuthorizationRejected),
		errors.Is(err, domain.ErrInvalidFulfilment):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGateway):
		status = http.StatusBadGateway
	default:
		l.Error().Err(err).Msg("unmapped error")
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(status, web.Error(err))
}
