// Package gateway sends scheme requests and callbacks to the switch.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
)

// Scheme headers.
const (
	HeaderSource      = "FSPIOP-Source"
	HeaderDestination = "FSPIOP-Destination"
	HeaderDate        = "Date"
)

const protocolVersion = "1.0"

// ContentType returns the versioned content type of a scheme resource.
func ContentType(resource string) string {
	return fmt.Sprintf("application/vnd.interoperability.%s+json;version=%s", resource, protocolVersion)
}

// Client is an HTTP client of the switch.
type Client struct {
	baseURL string
	source  string
	http    *http.Client
	now     func() time.Time
}

// New returns a Client for the switch at baseURL identifying itself as source.
//
// Every call is bounded by timeout.
func New(baseURL, source string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		source:  source,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// SendQuote asks the payee FSP to price q.
func (c *Client) SendQuote(ctx context.Context, destination string, q domain.QuoteRequest) error {
	return c.do(ctx, http.MethodPost, "/quotes", "quotes", destination, q)
}

// SendTransfer asks the switch to move the prepared transfer.
func (c *Client) SendTransfer(ctx context.Context, destination string, p domain.TransferPrepare) error {
	return c.do(ctx, http.MethodPost, "/transfers", "transfers", destination, p)
}

// SendAuthorizationRequest asks the payee device to collect the payer's authorization.
func (c *Client) SendAuthorizationRequest(ctx context.Context, destination, transactionRequestID string, p domain.AuthorizationParams) error {
	q := url.Values{}
	q.Set("authenticationType", p.AuthenticationType)
	q.Set("retriesLeft", strconv.Itoa(p.RetriesLeft))
	q.Set("amount", p.Amount.Amount)
	q.Set("currency", p.Amount.Currency)

	path := "/authorizations/" + url.PathEscape(transactionRequestID) + "?" + q.Encode()

	return c.do(ctx, http.MethodGet, path, "authorizations", destination, nil)
}

// SendQuoteResponse answers an inbound quote.
func (c *Client) SendQuoteResponse(ctx context.Context, destination, quoteID string, r domain.QuoteResponse) error {
	return c.do(ctx, http.MethodPut, "/quotes/"+url.PathEscape(quoteID), "quotes", destination, r)
}

// SendQuoteError rejects an inbound quote.
func (c *Client) SendQuoteError(ctx context.Context, destination, quoteID string, e domain.ErrorInformation) error {
	return c.do(ctx, http.MethodPut, "/quotes/"+url.PathEscape(quoteID)+"/error", "quotes", destination,
		domain.ErrorBody{ErrorInformation: e})
}

// SendTransferFulfil commits an inbound transfer.
func (c *Client) SendTransferFulfil(ctx context.Context, destination, transferID string, f domain.TransferFulfil) error {
	return c.do(ctx, http.MethodPut, "/transfers/"+url.PathEscape(transferID), "transfers", destination, f)
}

// SendTransferError aborts an inbound transfer.
func (c *Client) SendTransferError(ctx context.Context, destination, transferID string, e domain.ErrorInformation) error {
	return c.do(ctx, http.MethodPut, "/transfers/"+url.PathEscape(transferID)+"/error", "transfers", destination,
		domain.ErrorBody{ErrorInformation: e})
}

func (c *Client) do(ctx context.Context, method, path, resource, destination string, body any) error {
	l := zerolog.Ctx(ctx)

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			l.Error().Err(err).Str("path", path).Msg("encode scheme body")
			return fmt.Errorf("%w: %v", domain.ErrGateway, err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		l.Error().Err(err).Str("path", path).Send()
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}

	contentType := ContentType(resource)
	req.Header.Set("Accept", contentType)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(HeaderDate, c.now().UTC().Format(http.TimeFormat))
	req.Header.Set(HeaderSource, c.source)
	if destination != "" {
		req.Header.Set(HeaderDestination, destination)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		l.Error().Err(err).Str("method", method).Str("path", path).Msg("scheme call failed")
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		l.Error().Str("method", method).Str("path", path).Int("status_code", resp.StatusCode).Msg("scheme call rejected")
		return fmt.Errorf("%w: %s %s returned %d", domain.ErrGateway, method, path, resp.StatusCode)
	}

	l.Debug().Str("method", method).Str("path", path).Int("status_code", resp.StatusCode).Msg("scheme call sent")

	return nil
}
