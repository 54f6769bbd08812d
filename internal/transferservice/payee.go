package transferservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/ilp"
	"github.com/go-petr/pet-wallet/internal/notify"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
	"github.com/go-petr/pet-wallet/pkg/validatorpkg"
)

// HandleInboundQuote prices a quote for one of our users as payee and answers the sender.
//
// Failures are answered with a quote error callback and also returned.
func (s *Service) HandleInboundQuote(ctx context.Context, source string, q domain.QuoteRequest) error {
	l := zerolog.Ctx(ctx).With().Str("quote_id", q.QuoteID).Logger()

	resp, err := s.priceQuote(ctx, q)
	if err != nil {
		l.Warn().Err(err).Msg("inbound quote refused")

		if sendErr := s.gateway.SendQuoteError(ctx, source, q.QuoteID, errorInformation(err)); sendErr != nil {
			l.Error().Err(sendErr).Msg("send quote error")
		}

		return err
	}

	if err := s.gateway.SendQuoteResponse(ctx, source, q.QuoteID, resp); err != nil {
		l.Error().Err(err).Msg("send quote response")
		return err
	}

	return nil
}

func (s *Service) priceQuote(ctx context.Context, q domain.QuoteRequest) (domain.QuoteResponse, error) {
	if err := s.validate.Struct(q); err != nil {
		return domain.QuoteResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	account, err := s.accounts.GetByUserCurrency(ctx, q.Payee.PartyIDInfo.PartyIdentifier, q.Amount.Currency)
	if err != nil {
		return domain.QuoteResponse{}, err
	}

	if amount, err := currencypkg.ToMinor(q.Amount.Amount, account.Scale); err != nil || amount <= 0 {
		return domain.QuoteResponse{}, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, q.Amount.Amount)
	}

	packet, condition, err := s.ilp.Build(ilp.TransactionFromQuote(q))
	if err != nil {
		return domain.QuoteResponse{}, err
	}

	expiration := s.now().Add(s.config.InboundQuoteTTL)

	resp := domain.QuoteResponse{
		TransferAmount:     q.Amount,
		PayeeReceiveAmount: &domain.Money{Currency: q.Amount.Currency, Amount: q.Amount.Amount},
		PayeeFspFee:        &domain.Money{Currency: q.Amount.Currency, Amount: "0"},
		Expiration:         validatorpkg.FormatDateTime(expiration),
		IlpPacket:          packet,
		Condition:          condition,
	}

	if _, err := s.quotes.Create(ctx, domain.CreateQuoteParams{Inbound: true, Expiration: expiration, Request: q}); err != nil {
		return domain.QuoteResponse{}, err
	}

	if err := s.quotes.SetOutcome(ctx, q.QuoteID, domain.QuoteOutcome{Response: &resp}); err != nil {
		return domain.QuoteResponse{}, err
	}

	return resp, nil
}

// HandleInboundTransfer credits a transfer we quoted as payee and sends the fulfilment.
//
// A transfer already committed is answered with the same fulfilment again.
func (s *Service) HandleInboundTransfer(ctx context.Context, source string, p domain.TransferPrepare) error {
	l := zerolog.Ctx(ctx).With().Str("transfer_id", p.TransferID).Logger()

	if t, err := s.transfers.Get(ctx, p.TransferID); err == nil {
		return s.answerDuplicate(ctx, source, t)
	} else if !errors.Is(err, domain.ErrTransferNotFound) {
		return err
	}

	t, err := s.creditTransfer(ctx, p)
	if errors.Is(err, domain.ErrTransferExists) {
		// a concurrent prepare with the same id recorded it first
		l.Info().Msg("inbound transfer recorded concurrently")

		if t, err = s.transfers.Get(ctx, p.TransferID); err != nil {
			return err
		}

		return s.answerDuplicate(ctx, source, t)
	}

	if err != nil {
		return s.refuseTransfer(ctx, source, p.TransferID, err)
	}

	s.notifier.Notify(ctx, t.AccountID, notify.EventTransferReceived, map[string]any{
		"transferId": t.ID,
		"amount":     t.Amount,
		"payerFsp":   p.PayerFsp,
	})

	return s.sendFulfil(ctx, source, t)
}

// answerDuplicate resends the fulfilment of a transfer we already credited.
func (s *Service) answerDuplicate(ctx context.Context, source string, t domain.Transfer) error {
	if t.Direction != domain.DirectionInbound || t.State != domain.TransferStateCommitted {
		return s.refuseTransfer(ctx, source, t.ID, domain.ErrValidation)
	}

	zerolog.Ctx(ctx).Info().Str("transfer_id", t.ID).Msg("duplicate inbound transfer, resending fulfilment")

	return s.sendFulfil(ctx, source, t)
}

func (s *Service) creditTransfer(ctx context.Context, p domain.TransferPrepare) (domain.Transfer, error) {
	if err := s.validate.Struct(p); err != nil {
		return domain.Transfer{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tx, err := ilp.DecodePacket(p.IlpPacket)
	if err != nil {
		return domain.Transfer{}, err
	}

	q, err := s.quotes.GetByTransactionID(ctx, tx.TransactionID)
	if err != nil {
		return domain.Transfer{}, err
	}

	if !q.Inbound || q.Outcome == nil || q.Outcome.Response == nil {
		return domain.Transfer{}, domain.ErrQuoteNotFound
	}

	now := s.now()
	if !q.Expiration.After(now) {
		return domain.Transfer{}, domain.ErrQuoteExpired
	}

	if p.Amount != q.Outcome.Response.TransferAmount {
		return domain.Transfer{}, fmt.Errorf("%w: transfer amount differs from quote", domain.ErrValidation)
	}

	fulfilment := s.ilp.Fulfilment(p.IlpPacket)
	if !ilp.Verify(fulfilment, p.Condition) {
		return domain.Transfer{}, domain.ErrInvalidFulfilment
	}

	account, err := s.accounts.GetByUserCurrency(ctx, q.Request.Payee.PartyIDInfo.PartyIdentifier, p.Amount.Currency)
	if err != nil {
		return domain.Transfer{}, err
	}

	amount, err := currencypkg.ToMinor(p.Amount.Amount, account.Scale)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}

	expiration, err := validatorpkg.ParseDateTime(p.Expiration)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if !expiration.After(now) {
		return domain.Transfer{}, domain.ErrTransferExpired
	}

	t, _, err := s.transfers.Initiate(ctx, domain.CreateTransferParams{
		ID:            p.TransferID,
		TransactionID: q.TransactionID,
		QuoteID:       q.ID,
		AccountID:     account.ID,
		Amount:        amount,
		Direction:     domain.DirectionInbound,
		IlpPacket:     p.IlpPacket,
		Condition:     p.Condition,
		Fulfilment:    fulfilment,
		Expiration:    expiration,
		State:         domain.TransferStateCommitted,
		Description:   "transfer from " + q.Request.Payer.PartyIDInfo.PartyIdentifier,
	})
	if err != nil {
		return domain.Transfer{}, err
	}

	return t, nil
}

func (s *Service) sendFulfil(ctx context.Context, destination string, t domain.Transfer) error {
	return s.gateway.SendTransferFulfil(ctx, destination, t.ID, domain.TransferFulfil{
		Fulfilment:         t.Fulfilment,
		CompletedTimestamp: validatorpkg.FormatDateTime(s.now()),
		TransferState:      domain.TransferStateCommitted,
	})
}

func (s *Service) refuseTransfer(ctx context.Context, destination, transferID string, cause error) error {
	l := zerolog.Ctx(ctx)
	l.Warn().Err(cause).Str("transfer_id", transferID).Msg("inbound transfer refused")

	if err := s.gateway.SendTransferError(ctx, destination, transferID, errorInformation(cause)); err != nil {
		l.Error().Err(err).Str("transfer_id", transferID).Msg("send transfer error")
	}

	return cause
}

// errorInformation maps a domain error to the scheme error sent back to the switch.
func errorInformation(err error) domain.ErrorInformation {
	code, description := domain.ErrCodeGeneric, "Generic server error"

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		code, description = domain.ErrCodePartyNotFound, "Party not found"
	case errors.Is(err, domain.ErrQuoteExpired):
		code, description = domain.ErrCodeQuoteExpired, "Quote expired"
	case errors.Is(err, domain.ErrTransferExpired):
		code, description = domain.ErrCodeTransferExpired, "Transfer expired"
	case errors.Is(err, domain.ErrInsufficientLimit):
		code, description = domain.ErrCodePayeeLimitExceeded, "Payee limit error"
	case errors.Is(err, domain.ErrInvalidFulfilment):
		code, description = domain.ErrCodeInvalidFulfilment, "Invalid fulfilment"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrQuoteNotFound):
		code, description = domain.ErrCodeValidation, "Generic validation error"
	}

	return domain.ErrorInformation{ErrorCode: code, ErrorDescription: description}
}
