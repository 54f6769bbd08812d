// Package otpdelivery manages delivery layer of one time passcodes.
package otpdelivery

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

// Service provides service layer interface needed by otp delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package otpdelivery
type Service interface {
	Issue(ctx context.Context, userID string, accountID int64) (domain.OTP, error)
	GetActive(ctx context.Context, userID string) (domain.OTP, error)
}

// Handler facilitates otp delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns otp handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

// Register mounts the otp routes on an authenticated group.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/otp", h.Issue)
	r.GET("/otp", h.GetActive)
}

// otpView shows the code to its owner.
type otpView struct {
	AccountID int64     `json:"account_id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type data struct {
	OTP otpView `json:"otp"`
}

func newData(o domain.OTP) data {
	return data{OTP: otpView{AccountID: o.AccountID, Code: o.Code, ExpiresAt: o.ExpiresAt}}
}

type issueRequest struct {
	AccountID int64 `json:"account_id" binding:"required,min=1"`
}

// Issue handles http request to issue a passcode.
func (h *Handler) Issue(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req issueRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindErrorMsg(err)})

		return
	}

	otp, err := h.service.Issue(ctx, middleware.UserID(gctx), req.AccountID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: newData(otp)})
}

// GetActive handles http request to show the active passcode.
func (h *Handler) GetActive(gctx *gin.Context) {
	otp, err := h.service.GetActive(gctx.Request.Context(), middleware.UserID(gctx))
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: newData(otp)})
}

func writeError(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrActiveOTPExists):
		gctx.JSON(http.StatusConflict, web.Error(err))
	case errors.Is(err, domain.ErrOTPNotFound), errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrInvalidOwner):
		gctx.JSON(http.StatusForbidden, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
