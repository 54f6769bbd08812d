package transferservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/correlator"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/ilp"
	"github.com/go-petr/pet-wallet/internal/notify"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
	"github.com/go-petr/pet-wallet/pkg/validatorpkg"
)

func newUUID() string { return uuid.NewString() }

// Quote accepts the transaction request and asks the payee FSP to price it.
//
// It blocks until the quote callback arrives or CallbackTimeout elapses.
// A response that breaks the format rules fails with
// domain.ErrInvalidQuoteResponse and leaves the request QUOTED.
func (s *Service) Quote(ctx context.Context, userID, id string) (domain.QuoteResponse, error) {
	l := zerolog.Ctx(ctx)

	// a timed out quote may be requested again
	tr, err := s.checkOwner(ctx, userID, id, domain.StateReceived, domain.StateQuoted)
	if err != nil {
		return domain.QuoteResponse{}, err
	}

	now := s.now()
	expiration := now.Add(s.config.QuoteExpiration)

	req := domain.QuoteRequest{
		QuoteID:              s.newID(),
		TransactionID:        s.newID(),
		TransactionRequestID: tr.ID,
		Payee:                tr.Payee,
		Payer:                tr.Payer,
		AmountType:           domain.AmountTypeReceive,
		Amount:               tr.Amount,
		Fees:                 &domain.Money{Currency: tr.Amount.Currency, Amount: s.config.QuoteFee},
		TransactionType:      tr.TransactionType,
		Expiration:           validatorpkg.FormatDateTime(expiration),
	}

	if _, err := s.quotes.Create(ctx, domain.CreateQuoteParams{Expiration: expiration, Request: req}); err != nil {
		return domain.QuoteResponse{}, err
	}

	err = s.txRequests.Transition(ctx, tr.ID, []domain.State{domain.StateReceived, domain.StateQuoted}, domain.StateQuoted, domain.StatusAccepted)
	if err != nil {
		return domain.QuoteResponse{}, err
	}

	resolver, err := s.corr.AwaitOnce(correlator.QuoteKey(req.QuoteID))
	if err != nil {
		return domain.QuoteResponse{}, err
	}

	if err := s.gateway.SendQuote(ctx, tr.Payee.PartyIDInfo.FspID, req); err != nil {
		resolver.Cancel()
		return domain.QuoteResponse{}, err
	}

	payload, err := resolver.Wait(ctx, s.config.CallbackTimeout)
	if err != nil {
		l.Warn().Err(err).Str("quote_id", req.QuoteID).Msg("quote callback not received")
		return domain.QuoteResponse{}, err
	}

	outcome, ok := payload.(domain.QuoteOutcome)
	if !ok {
		return domain.QuoteResponse{}, fmt.Errorf("%w: unexpected quote payload %T", domain.ErrInvalidQuoteResponse, payload)
	}

	if outcome.Error != nil {
		if err := s.quotes.SetOutcome(ctx, req.QuoteID, outcome); err != nil {
			l.Error().Err(err).Str("quote_id", req.QuoteID).Msg("store quote error")
		}

		return domain.QuoteResponse{}, fmt.Errorf("%w: %s %s", domain.ErrQuoteRejected,
			outcome.Error.ErrorCode, outcome.Error.ErrorDescription)
	}

	if outcome.Response == nil {
		return domain.QuoteResponse{}, domain.ErrInvalidQuoteResponse
	}

	resp := *outcome.Response

	if err := s.validateQuoteResponse(resp, tr.Amount.Currency); err != nil {
		l.Warn().Err(err).Str("quote_id", req.QuoteID).Send()
		return domain.QuoteResponse{}, err
	}

	if err := s.quotes.SetOutcome(ctx, req.QuoteID, outcome); err != nil {
		return domain.QuoteResponse{}, err
	}

	err = s.txRequests.Transition(ctx, tr.ID, []domain.State{domain.StateQuoted}, domain.StateQuoteReceived, "")
	if err != nil {
		return domain.QuoteResponse{}, err
	}

	s.notifier.Notify(ctx, tr.AccountID, notify.EventQuoteReceived, resp)

	return resp, nil
}

// RequestAuthorization issues the OTP that authorizes paying the quote.
func (s *Service) RequestAuthorization(ctx context.Context, userID, id string) (domain.OTP, error) {
	tr, err := s.checkOwner(ctx, userID, id, domain.StateQuoteReceived, domain.StateAuthorizationRequested)
	if err != nil {
		return domain.OTP{}, err
	}

	_, resp, err := s.quoteResponse(ctx, tr.ID)
	if err != nil {
		return domain.OTP{}, err
	}

	expiration, err := validatorpkg.ParseDateTime(resp.Expiration)
	if err != nil || !expiration.After(s.now()) {
		return domain.OTP{}, domain.ErrQuoteExpired
	}

	otp, err := s.otp.Issue(ctx, tr.UserID, tr.AccountID)
	if err != nil {
		return domain.OTP{}, err
	}

	s.notifier.Notify(ctx, tr.AccountID, notify.EventOTPIssued, map[string]any{
		"transactionRequestId": tr.ID,
		"code":                 otp.Code,
		"expiresAt":            otp.ExpiresAt,
	})

	err = s.txRequests.Transition(ctx, tr.ID,
		[]domain.State{domain.StateQuoteReceived, domain.StateAuthorizationRequested},
		domain.StateAuthorizationRequested, "")
	if err != nil {
		return domain.OTP{}, err
	}

	return otp, nil
}

// Authorize checks the OTP and pays the quoted amount.
//
// The payer account is debited together with recording the transfer. The
// debit is settled when the payee commits and reverted on an error callback,
// a timeout or a failed send.
func (s *Service) Authorize(ctx context.Context, userID, id, code string) (domain.Transfer, error) {
	tr, err := s.checkOwner(ctx, userID, id, domain.StateAuthorizationRequested)
	if err != nil {
		return domain.Transfer{}, err
	}

	if err := s.otp.Verify(ctx, tr.UserID, code); err != nil {
		return domain.Transfer{}, err
	}

	if err := s.otp.Consume(ctx, tr.UserID); err != nil {
		return domain.Transfer{}, err
	}

	err = s.txRequests.Transition(ctx, tr.ID, []domain.State{domain.StateAuthorizationRequested}, domain.StateAuthorized, "")
	if err != nil {
		return domain.Transfer{}, err
	}

	return s.initiateTransfer(ctx, tr)
}

// AuthorizeViaCounterparty collects the OTP on the payee's device and then authorizes with it.
func (s *Service) AuthorizeViaCounterparty(ctx context.Context, userID, id string) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	tr, err := s.checkOwner(ctx, userID, id, domain.StateAuthorizationRequested)
	if err != nil {
		return domain.Transfer{}, err
	}

	_, resp, err := s.quoteResponse(ctx, tr.ID)
	if err != nil {
		return domain.Transfer{}, err
	}

	resolver, err := s.corr.AwaitOnce(correlator.AuthorizationKey(tr.ID))
	if err != nil {
		return domain.Transfer{}, err
	}

	err = s.gateway.SendAuthorizationRequest(ctx, tr.Payee.PartyIDInfo.FspID, tr.ID, domain.AuthorizationParams{
		AuthenticationType: domain.AuthenticationOTP,
		RetriesLeft:        1,
		Amount:             resp.TransferAmount,
	})
	if err != nil {
		resolver.Cancel()
		return domain.Transfer{}, err
	}

	payload, err := resolver.Wait(ctx, s.config.CallbackTimeout)
	if err != nil {
		l.Warn().Err(err).Str("transaction_request_id", tr.ID).Msg("authorization callback not received")
		return domain.Transfer{}, err
	}

	auth, ok := payload.(domain.AuthorizationResponse)
	if !ok || auth.ResponseType != domain.ResponseTypeEntered || auth.AuthenticationInfo == nil {
		return domain.Transfer{}, domain.ErrAuthorizationRejected
	}

	return s.Authorize(ctx, userID, id, auth.AuthenticationInfo.AuthenticationValue)
}

func (s *Service) initiateTransfer(ctx context.Context, tr domain.TransactionRequest) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	q, resp, err := s.quoteResponse(ctx, tr.ID)
	if err != nil {
		return domain.Transfer{}, err
	}

	amount, err := currencypkg.ToMinor(resp.TransferAmount.Amount, currencypkg.Scale(resp.TransferAmount.Currency))
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}

	expiration := s.now().Add(s.config.CallbackTimeout)

	t, _, err := s.transfers.Initiate(ctx, domain.CreateTransferParams{
		ID:                   s.newID(),
		TransactionID:        q.TransactionID,
		TransactionRequestID: tr.ID,
		QuoteID:              q.ID,
		AccountID:            tr.AccountID,
		Amount:               amount,
		Direction:            domain.DirectionOutbound,
		IlpPacket:            resp.IlpPacket,
		Condition:            resp.Condition,
		Expiration:           expiration,
		State:                domain.TransferStateReserved,
		Description:          "transfer to " + tr.Payee.PartyIDInfo.PartyIdentifier,
	})
	if err != nil {
		return domain.Transfer{}, err
	}

	err = s.txRequests.Transition(ctx, tr.ID, []domain.State{domain.StateAuthorized}, domain.StateTransferInitiated, "")
	if err != nil {
		l.Error().Err(err).Str("transfer_id", t.ID).Msg("transfer initiated out of order")
		return domain.Transfer{}, s.failTransfer(ctx, t, "state conflict", err)
	}

	resolver, err := s.corr.AwaitOnce(correlator.TransferKey(t.ID))
	if err != nil {
		return domain.Transfer{}, s.failTransfer(ctx, t, "already awaited", err)
	}

	err = s.gateway.SendTransfer(ctx, tr.Payee.PartyIDInfo.FspID, domain.TransferPrepare{
		TransferID: t.ID,
		PayerFsp:   s.config.FSPID,
		PayeeFsp:   tr.Payee.PartyIDInfo.FspID,
		Amount:     resp.TransferAmount,
		IlpPacket:  resp.IlpPacket,
		Condition:  resp.Condition,
		Expiration: validatorpkg.FormatDateTime(expiration),
	})
	if err != nil {
		resolver.Cancel()
		return domain.Transfer{}, s.failTransfer(ctx, t, "send failed", err)
	}

	payload, err := resolver.Wait(ctx, s.config.CallbackTimeout)
	if err != nil {
		if isTimeout(err) {
			err = domain.ErrTimeout
		}

		return domain.Transfer{}, s.failTransfer(ctx, t, "transfer expired", err)
	}

	result, ok := payload.(domain.TransferResult)
	if !ok {
		return domain.Transfer{}, s.failTransfer(ctx, t, "unexpected callback", domain.ErrTransferFailed)
	}

	if !result.Committed() {
		reason := "transfer aborted"
		if result.Error != nil {
			reason = result.Error.ErrorCode + " " + result.Error.ErrorDescription
		}

		return domain.Transfer{}, s.failTransfer(ctx, t, reason, domain.ErrTransferFailed)
	}

	if !ilp.Verify(result.Fulfil.Fulfilment, t.Condition) {
		return domain.Transfer{}, s.failTransfer(ctx, t, "fulfilment does not match condition", domain.ErrInvalidFulfilment)
	}

	if err := s.settle(ctx, t, result.Fulfil.Fulfilment); err != nil {
		return domain.Transfer{}, err
	}

	t.State = domain.TransferStateCommitted
	t.Fulfilment = result.Fulfil.Fulfilment

	return t, nil
}

// failTransfer reverts t and returns cause.
func (s *Service) failTransfer(ctx context.Context, t domain.Transfer, reason string, cause error) error {
	// the caller may be gone, the compensation must still happen
	if err := s.Revert(context.WithoutCancel(ctx), t.ID, reason); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("transfer_id", t.ID).Msg("revert failed")
		return errors.Join(cause, err)
	}

	return cause
}

func (s *Service) settle(ctx context.Context, t domain.Transfer, fulfilment string) error {
	l := zerolog.Ctx(ctx)

	committed, err := s.transfers.Commit(ctx, t.ID, fulfilment)
	if err != nil {
		return err
	}

	if !committed {
		l.Info().Str("transfer_id", t.ID).Msg("transfer already committed or reverted")
		return nil
	}

	err = s.txRequests.Transition(ctx, t.TransactionRequestID, []domain.State{domain.StateTransferInitiated}, domain.StateSettled, "")
	if err != nil && !errors.Is(err, domain.ErrInvalidState) {
		return err
	}

	s.notifier.Notify(ctx, t.AccountID, notify.EventTransferSettled, map[string]any{
		"transferId": t.ID,
		"amount":     t.Amount,
	})

	return nil
}

// HandleTransferResult applies a transfer callback nobody was waiting for.
//
// Late commits settle unless the transfer was reverted meanwhile, errors revert.
func (s *Service) HandleTransferResult(ctx context.Context, transferID string, result domain.TransferResult) error {
	l := zerolog.Ctx(ctx).With().Str("transfer_id", transferID).Logger()

	t, err := s.transfers.Get(ctx, transferID)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			l.Warn().Msg("callback for unknown transfer")
			return nil
		}

		return err
	}

	if !result.Final() {
		l.Info().Msg("non-final transfer result ignored")
		return nil
	}

	if result.Committed() {
		if t.Reverted {
			l.Warn().Msg("commit received for reverted transfer")
			return nil
		}

		if !ilp.Verify(result.Fulfil.Fulfilment, t.Condition) {
			l.Warn().Msg("late commit with invalid fulfilment")
			return s.Revert(ctx, t.ID, "fulfilment does not match condition")
		}

		return s.settle(ctx, t, result.Fulfil.Fulfilment)
	}

	if t.State == domain.TransferStateCommitted {
		l.Warn().Msg("error received for committed transfer")
		return nil
	}

	reason := "transfer aborted"
	if result.Error != nil {
		reason = result.Error.ErrorCode + " " + result.Error.ErrorDescription
	}

	return s.Revert(ctx, t.ID, reason)
}

// Revert credits back the debit of an outbound transfer, at most once.
//
// Unknown and already reverted transfers are logged and ignored, so the
// compensation is safe to call for duplicate or late error callbacks.
func (s *Service) Revert(ctx context.Context, transferID, reason string) error {
	l := zerolog.Ctx(ctx).With().Str("transfer_id", transferID).Logger()

	t, err := s.transfers.Get(ctx, transferID)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			l.Warn().Msg("revert of unknown transfer ignored")
			return nil
		}

		return err
	}

	if t.Reverted {
		l.Info().Msg("transfer already reverted")
		return nil
	}

	tr, err := s.txRequests.Get(ctx, t.TransactionRequestID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionRequestNotFound) {
			l.Warn().Msg("revert of transfer without transaction request ignored")
			return nil
		}

		return err
	}

	if _, err := s.transfers.Revert(ctx, t.ID, "revert: "+reason); err != nil {
		if errors.Is(err, domain.ErrAlreadyReverted) {
			l.Info().Msg("transfer reverted concurrently")
			return nil
		}

		return err
	}

	err = s.txRequests.Transition(ctx, tr.ID,
		[]domain.State{domain.StateAuthorized, domain.StateTransferInitiated}, domain.StateReverted, "")
	if err != nil && !errors.Is(err, domain.ErrInvalidState) {
		return err
	}

	l.Info().Str("reason", reason).Msg("transfer reverted")

	s.notifier.Notify(ctx, tr.AccountID, notify.EventTransferReverted, map[string]any{
		"transferId": t.ID,
		"amount":     t.Amount,
		"reason":     reason,
	})

	return nil
}
