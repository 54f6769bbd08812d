package domain

import "errors"

// Authentication types supported for transaction authorization.
const AuthenticationOTP = "OTP"

// Authorization response types.
const (
	ResponseTypeEntered  = "ENTERED"
	ResponseTypeRejected = "REJECTED"
	ResponseTypeResend   = "RESEND"
)

// AuthorizationParams is the query of a GET /authorizations/{transactionRequestId} request.
type AuthorizationParams struct {
	AuthenticationType string `json:"authenticationType"`
	RetriesLeft        int    `json:"retriesLeft"`
	Amount             Money  `json:"amount"`
}

// AuthenticationInfo carries the value a payer entered on the counterparty device.
type AuthenticationInfo struct {
	Authentication      string `json:"authentication" binding:"required,oneof=OTP QRCODE U2F"`
	AuthenticationValue string `json:"authenticationValue" binding:"required"`
}

// AuthorizationResponse is the PUT /authorizations/{transactionRequestId} body.
type AuthorizationResponse struct {
	AuthenticationInfo *AuthenticationInfo `json:"authenticationInfo,omitempty" binding:"omitempty"`
	ResponseType       string              `json:"responseType" binding:"required,oneof=ENTERED REJECTED RESEND"`
}

// ErrAuthorizationRejected indicates that the payer declined or did not complete authorization on the counterparty device.
var ErrAuthorizationRejected = errors.New("authorization rejected")
