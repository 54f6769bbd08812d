// Package fspiopdelivery receives the requests and callbacks of the payment switch.
//
// Result callbacks are handed to the correlator so the flow waiting for them
// resumes. Requests that start work on the payee side are acknowledged with
// 202 and processed in the background, the way the scheme expects.
package fspiopdelivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/correlator"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/web"
)

// Service provides service layer interface needed by the scheme delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package fspiopdelivery
type Service interface {
	ReceiveTransactionRequest(ctx context.Context, p domain.TransactionRequestParams) (domain.TransactionRequest, error)
	HandleInboundQuote(ctx context.Context, source string, q domain.QuoteRequest) error
	HandleInboundTransfer(ctx context.Context, source string, p domain.TransferPrepare) error
	HandleTransferResult(ctx context.Context, transferID string, result domain.TransferResult) error
}

// Correlator delivers callbacks to waiting flows.
type Correlator interface {
	Fire(key string, payload any) bool
}

// Handler facilitates scheme delivery layer logic.
type Handler struct {
	service Service
	corr    Correlator
	wg      sync.WaitGroup
}

// NewHandler returns scheme handler.
func NewHandler(s Service, c Correlator) *Handler {
	return &Handler{service: s, corr: c}
}

// Register mounts the scheme routes.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/transactionRequests", h.TransactionRequest)
	r.POST("/quotes", h.Quote)
	r.PUT("/quotes/:id", h.QuoteResponse)
	r.PUT("/quotes/:id/error", h.QuoteError)
	r.POST("/transfers", h.Transfer)
	r.PUT("/transfers/:id", h.TransferFulfil)
	r.PUT("/transfers/:id/error", h.TransferError)
	r.PUT("/authorizations/:id", h.Authorization)
}

// Wait blocks until background processing of accepted requests is done.
func (h *Handler) Wait() {
	h.wg.Wait()
}

func badRequest(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindErrorMsg(err)})
}

// background runs fn detached from the request, keeping its logger.
func (h *Handler) background(gctx *gin.Context, fn func(ctx context.Context)) {
	ctx := context.WithoutCancel(gctx.Request.Context())

	h.wg.Add(1)

	go func() {
		defer h.wg.Done()
		fn(ctx)
	}()
}

// fire hands a callback to its waiter and reports whether one was found.
func (h *Handler) fire(gctx *gin.Context, key string, payload any) bool {
	if h.corr.Fire(key, payload) {
		return true
	}

	zerolog.Ctx(gctx.Request.Context()).Warn().Str("key", key).Msg("callback without waiter dropped")

	return false
}

// TransactionRequest handles a payee asking one of our users to pay.
func (h *Handler) TransactionRequest(gctx *gin.Context) {
	var req domain.TransactionRequestParams
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	if _, err := h.service.ReceiveTransactionRequest(gctx.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrTransactionRequestExists):
			gctx.JSON(http.StatusConflict, web.Error(err))
		case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrValidation):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.Status(http.StatusAccepted)
}

// Quote handles a quote request for one of our users as payee.
func (h *Handler) Quote(gctx *gin.Context) {
	var req domain.QuoteRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	source := gctx.GetHeader(middleware.FSPIOPSourceHeader)

	h.background(gctx, func(ctx context.Context) {
		// failures are answered to the switch by the service
		_ = h.service.HandleInboundQuote(ctx, source, req)
	})

	gctx.Status(http.StatusAccepted)
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// QuoteResponse handles the answer to a quote we sent.
//
// The body is not validated here: the waiting flow judges it and fails fast
// instead of timing out.
func (h *Handler) QuoteResponse(gctx *gin.Context) {
	var (
		uri  uriRequest
		resp domain.QuoteResponse
	)

	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	if err := json.NewDecoder(gctx.Request.Body).Decode(&resp); err != nil {
		badRequest(gctx, err)
		return
	}

	h.fire(gctx, correlator.QuoteKey(uri.ID), domain.QuoteOutcome{Response: &resp})
	gctx.Status(http.StatusOK)
}

// QuoteError handles the refusal of a quote we sent.
func (h *Handler) QuoteError(gctx *gin.Context) {
	var (
		uri  uriRequest
		body domain.ErrorBody
	)

	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	if err := gctx.ShouldBindJSON(&body); err != nil {
		badRequest(gctx, err)
		return
	}

	h.fire(gctx, correlator.QuoteKey(uri.ID), domain.QuoteOutcome{Error: &body.ErrorInformation})
	gctx.Status(http.StatusOK)
}

// Transfer handles a transfer paying one of our users.
func (h *Handler) Transfer(gctx *gin.Context) {
	var req domain.TransferPrepare
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	source := gctx.GetHeader(middleware.FSPIOPSourceHeader)

	h.background(gctx, func(ctx context.Context) {
		_ = h.service.HandleInboundTransfer(ctx, source, req)
	})

	gctx.Status(http.StatusAccepted)
}

// TransferFulfil handles the result of a transfer we sent.
func (h *Handler) TransferFulfil(gctx *gin.Context) {
	var (
		uri    uriRequest
		fulfil domain.TransferFulfil
	)

	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	if err := gctx.ShouldBindJSON(&fulfil); err != nil {
		badRequest(gctx, err)
		return
	}

	h.transferResult(gctx, uri.ID, domain.TransferResult{Fulfil: &fulfil})
}

// TransferError handles the failure of a transfer we sent.
func (h *Handler) TransferError(gctx *gin.Context) {
	var (
		uri  uriRequest
		body domain.ErrorBody
	)

	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	if err := gctx.ShouldBindJSON(&body); err != nil {
		badRequest(gctx, err)
		return
	}

	h.transferResult(gctx, uri.ID, domain.TransferResult{Error: &body.ErrorInformation})
}

// transferResult applies results nobody waits for anymore, e.g. after a timeout.
func (h *Handler) transferResult(gctx *gin.Context, transferID string, result domain.TransferResult) {
	if !result.Final() {
		zerolog.Ctx(gctx.Request.Context()).Info().
			Str("transfer_id", transferID).
			Str("transfer_state", result.Fulfil.TransferState).
			Msg("non-final transfer state ignored")
		gctx.Status(http.StatusOK)

		return
	}

	if h.corr.Fire(correlator.TransferKey(transferID), result) {
		gctx.Status(http.StatusOK)
		return
	}

	if err := h.service.HandleTransferResult(gctx.Request.Context(), transferID, result); err != nil {
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Str("transfer_id", transferID).Msg("late transfer result")
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusOK)
}

// Authorization handles the passcode collected on the payee's device.
func (h *Handler) Authorization(gctx *gin.Context) {
	var (
		uri  uriRequest
		resp domain.AuthorizationResponse
	)

	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	if err := gctx.ShouldBindJSON(&resp); err != nil {
		badRequest(gctx, err)
		return
	}

	h.fire(gctx, correlator.AuthorizationKey(uri.ID), resp)
	gctx.Status(http.StatusOK)
}
