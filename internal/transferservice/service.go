// Package transferservice drives the payment flows of the wallet.
//
// As payer FSP it takes a transaction request through quote, OTP
// authorization and transfer, settling or compensating the debit. As payee
// FSP it answers inbound quotes and credits inbound transfers.
//
// Every step is persisted as a conditional state transition, so duplicate or
// late callbacks end up as logged no-ops.
package transferservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/correlator"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/ilp"
	"github.com/go-petr/pet-wallet/internal/notify"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
	"github.com/go-petr/pet-wallet/pkg/validatorpkg"
)

//go:generate mockgen -source service.go -destination service_mock.go -package transferservice

// TxRequestRepo stores transaction requests and their flow state.
type TxRequestRepo interface {
	Create(ctx context.Context, arg domain.CreateTransactionRequestParams) (domain.TransactionRequest, error)
	Get(ctx context.Context, id string) (domain.TransactionRequest, error)
	ListPending(ctx context.Context, userID string) ([]domain.TransactionRequest, error)
	Transition(ctx context.Context, id string, from []domain.State, to domain.State, status domain.Status) error
}

// QuoteRepo stores sent and received quotes.
type QuoteRepo interface {
	Create(ctx context.Context, arg domain.CreateQuoteParams) (domain.Quote, error)
	GetByTransactionID(ctx context.Context, transactionID string) (domain.Quote, error)
	GetLatestByTransactionRequest(ctx context.Context, transactionRequestID string) (domain.Quote, error)
	SetOutcome(ctx context.Context, id string, outcome domain.QuoteOutcome) error
}

// TransferRepo stores transfers together with their ledger effect.
type TransferRepo interface {
	Initiate(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, domain.PostResult, error)
	Get(ctx context.Context, id string) (domain.Transfer, error)
	Revert(ctx context.Context, id, description string) (domain.PostResult, error)
	Commit(ctx context.Context, id, fulfilment string) (bool, error)
}

// AccountRepo resolves the wallet account of a party.
type AccountRepo interface {
	GetByUserCurrency(ctx context.Context, userID, currency string) (domain.Account, error)
}

// OTPService issues and checks authorization codes.
type OTPService interface {
	Issue(ctx context.Context, userID string, accountID int64) (domain.OTP, error)
	Verify(ctx context.Context, userID, code string) error
	Consume(ctx context.Context, userID string) error
}

// Gateway sends scheme messages to the switch.
type Gateway interface {
	SendQuote(ctx context.Context, destination string, q domain.QuoteRequest) error
	SendTransfer(ctx context.Context, destination string, p domain.TransferPrepare) error
	SendAuthorizationRequest(ctx context.Context, destination, transactionRequestID string, p domain.AuthorizationParams) error
	SendQuoteResponse(ctx context.Context, destination, quoteID string, r domain.QuoteResponse) error
	SendQuoteError(ctx context.Context, destination, quoteID string, e domain.ErrorInformation) error
	SendTransferFulfil(ctx context.Context, destination, transferID string, f domain.TransferFulfil) error
	SendTransferError(ctx context.Context, destination, transferID string, e domain.ErrorInformation) error
}

// Notifier tells account holders about flow events. It never fails the flow.
type Notifier interface {
	Notify(ctx context.Context, accountID int64, eventType string, payload any)
}

// Deps are the collaborators of Service.
type Deps struct {
	TxRequests TxRequestRepo
	Quotes     QuoteRepo
	Transfers  TransferRepo
	Accounts   AccountRepo
	OTP        OTPService
	Gateway    Gateway
	Notifier   Notifier
	Correlator *correlator.Correlator
	ILP        *ilp.Builder
}

// Config holds the flow settings.
type Config struct {
	FSPID           string
	CallbackTimeout time.Duration
	QuoteExpiration time.Duration
	InboundQuoteTTL time.Duration
	QuoteFee        string
}

// Service facilitates transfer service layer logic.
type Service struct {
	txRequests TxRequestRepo
	quotes     QuoteRepo
	transfers  TransferRepo
	accounts   AccountRepo
	otp        OTPService
	gateway    Gateway
	notifier   Notifier
	corr       *correlator.Correlator
	ilp        *ilp.Builder
	validate   *validator.Validate
	config     Config
	now        func() time.Time
	newID      func() string
}

// New returns transfer service struct to manage payment flows.
func New(d Deps, c Config) *Service {
	if c.QuoteFee == "" {
		c.QuoteFee = "0"
	}

	return &Service{
		txRequests: d.TxRequests,
		quotes:     d.Quotes,
		transfers:  d.Transfers,
		accounts:   d.Accounts,
		otp:        d.OTP,
		gateway:    d.Gateway,
		notifier:   d.Notifier,
		corr:       d.Correlator,
		ilp:        d.ILP,
		validate:   validatorpkg.New(),
		config:     c,
		now:        time.Now,
		newID:      newUUID,
	}
}

// ReceiveTransactionRequest stores a request of a payee asking one of our users to pay.
//
// The payer is resolved by its party identifier and the requested currency.
func (s *Service) ReceiveTransactionRequest(ctx context.Context, p domain.TransactionRequestParams) (domain.TransactionRequest, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.GetByUserCurrency(ctx, p.Payer.PartyIDInfo.PartyIdentifier, p.Amount.Currency)
	if err != nil {
		return domain.TransactionRequest{}, err
	}

	if _, err := currencypkg.ToMinor(p.Amount.Amount, account.Scale); err != nil {
		return domain.TransactionRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}

	snapshot, err := json.Marshal(p)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransactionRequest{}, err
	}

	tr, err := s.txRequests.Create(ctx, domain.CreateTransactionRequestParams{
		ID:              p.TransactionRequestID,
		UserID:          account.UserID,
		AccountID:       account.ID,
		Payer:           p.Payer,
		Payee:           p.Payee,
		Amount:          p.Amount,
		TransactionType: p.TransactionType,
		Snapshot:        snapshot,
	})
	if err != nil {
		return domain.TransactionRequest{}, err
	}

	s.notifier.Notify(ctx, tr.AccountID, notify.EventRequestReceived, tr)

	return tr, nil
}

// GetTransactionRequest returns the user's transaction request.
func (s *Service) GetTransactionRequest(ctx context.Context, userID, id string) (domain.TransactionRequest, error) {
	tr, err := s.txRequests.Get(ctx, id)
	if err != nil {
		return domain.TransactionRequest{}, err
	}

	if tr.UserID != userID {
		return domain.TransactionRequest{}, domain.ErrInvalidOwner
	}

	return tr, nil
}

// ListPending returns the user's transaction requests that are still in flight.
func (s *Service) ListPending(ctx context.Context, userID string) ([]domain.TransactionRequest, error) {
	return s.txRequests.ListPending(ctx, userID)
}

// Reject declines a transaction request that has not been quoted yet.
func (s *Service) Reject(ctx context.Context, userID, id string) error {
	tr, err := s.GetTransactionRequest(ctx, userID, id)
	if err != nil {
		return err
	}

	err = s.txRequests.Transition(ctx, tr.ID, []domain.State{domain.StateReceived}, domain.StateRejected, domain.StatusRejected)
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, tr.AccountID, notify.EventRequestRejected, map[string]string{"transactionRequestId": tr.ID})

	return nil
}

// validateQuoteResponse applies the scheme format rules and checks the
// response prices the requested currency in amounts the account can hold.
func (s *Service) validateQuoteResponse(r domain.QuoteResponse, currency string) error {
	if err := s.validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidQuoteResponse, err)
	}

	if r.TransferAmount.Currency != currency {
		return fmt.Errorf("%w: transfer currency %s, want %s", domain.ErrInvalidQuoteResponse, r.TransferAmount.Currency, currency)
	}

	amount, err := currencypkg.ToMinor(r.TransferAmount.Amount, currencypkg.Scale(currency))
	if err != nil || amount <= 0 {
		return fmt.Errorf("%w: transfer amount %q", domain.ErrInvalidQuoteResponse, r.TransferAmount.Amount)
	}

	return nil
}

func (s *Service) checkOwner(ctx context.Context, userID, id string, allowed ...domain.State) (domain.TransactionRequest, error) {
	tr, err := s.GetTransactionRequest(ctx, userID, id)
	if err != nil {
		return domain.TransactionRequest{}, err
	}

	for _, st := range allowed {
		if tr.State == st {
			return tr, nil
		}
	}

	return domain.TransactionRequest{}, domain.ErrInvalidState
}

// quoteResponse returns the last accepted quote of the request and its response.
func (s *Service) quoteResponse(ctx context.Context, trID string) (domain.Quote, domain.QuoteResponse, error) {
	q, err := s.quotes.GetLatestByTransactionRequest(ctx, trID)
	if err != nil {
		return domain.Quote{}, domain.QuoteResponse{}, err
	}

	if q.Outcome == nil || q.Outcome.Response == nil {
		return domain.Quote{}, domain.QuoteResponse{}, domain.ErrInvalidState
	}

	return q, *q.Outcome.Response, nil
}

func isTimeout(err error) bool {
	return errors.Is(err, domain.ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
