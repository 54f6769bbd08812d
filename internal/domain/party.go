package domain

// Party identifier types accepted by the scheme.
const (
	PartyIDTypeMSISDN   = "MSISDN"
	PartyIDTypeAccount  = "ACCOUNT_ID"
	PartyIDTypePersonal = "PERSONAL_ID"
)

// PartyIDInfo identifies a party and the FSP that holds its account.
type PartyIDInfo struct {
	PartyIDType     string `json:"partyIdType" binding:"required,oneof=MSISDN ACCOUNT_ID PERSONAL_ID"`
	PartyIdentifier string `json:"partyIdentifier" binding:"required,min=1,max=128"`
	FspID           string `json:"fspId,omitempty" binding:"omitempty,max=32"`
}

// Party is a payer or payee of a transaction.
type Party struct {
	PartyIDInfo PartyIDInfo `json:"partyIdInfo" binding:"required"`
	Name        string      `json:"name,omitempty" binding:"omitempty,max=128"`
}

// Money is an amount in a protocol decimal representation.
type Money struct {
	Currency string `json:"currency" binding:"required,currencycode"`
	Amount   string `json:"amount" binding:"required,fspamount"`
}

// TransactionType describes the business scenario of a transaction.
type TransactionType struct {
	Scenario      string `json:"scenario" binding:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER PAYMENT REFUND"`
	Initiator     string `json:"initiator" binding:"required,oneof=PAYER PAYEE"`
	InitiatorType string `json:"initiatorType" binding:"required,oneof=CONSUMER AGENT BUSINESS DEVICE"`
}

// GeoCode is the position of a party when the quote was produced.
type GeoCode struct {
	Latitude  string `json:"latitude" binding:"required,latitude"`
	Longitude string `json:"longitude" binding:"required,longitude"`
}

// Extension is a free key/value pair carried by scheme messages.
type Extension struct {
	Key   string `json:"key" binding:"required,min=1,max=32"`
	Value string `json:"value" binding:"required,min=1,max=128"`
}

// ExtensionList wraps scheme extensions.
type ExtensionList struct {
	Extension []Extension `json:"extension" binding:"required,min=1,max=16,dive"`
}

// ErrorInformation is the error body of a scheme callback.
type ErrorInformation struct {
	ErrorCode        string         `json:"errorCode" binding:"required,len=4,numeric"`
	ErrorDescription string         `json:"errorDescription" binding:"required,min=1,max=128"`
	ExtensionList    *ExtensionList `json:"extensionList,omitempty" binding:"omitempty"`
}

// ErrorBody is the envelope of ErrorInformation on the wire.
type ErrorBody struct {
	ErrorInformation ErrorInformation `json:"errorInformation" binding:"required"`
}

// Scheme error codes sent by this wallet.
const (
	ErrCodeGeneric            = "2001"
	ErrCodeValidation         = "3100"
	ErrCodePartyNotFound      = "3204"
	ErrCodeQuoteExpired       = "3302"
	ErrCodeTransferExpired    = "3303"
	ErrCodePayeeLimitExceeded = "4200"
	ErrCodeInvalidFulfilment  = "5103"
)
