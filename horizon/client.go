// Package horizon provides an HTTP client for a Horizon-compatible ledger
// gateway: account state reads and signed-transaction submission.
package horizon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nacorid/stellarpay"
)

// Client is a gateway client for a Horizon-compatible service.
type Client struct {
	// BaseURL is the gateway URL (e.g. stellarpay.TestnetHorizonURL).
	BaseURL string

	// HTTP is the HTTP client to use for requests. If nil, http.DefaultClient
	// is used.
	HTTP *http.Client

	// Timeout is applied per request when the caller's context carries no
	// deadline. Zero means no client-side timeout.
	Timeout time.Duration

	// Authorization is an optional static Authorization header value.
	Authorization string
}

// Verify that Client implements stellarpay.Gateway.
var _ stellarpay.Gateway = (*Client)(nil)

// accountResponse is the gateway's account record. Sequence arrives as a
// quoted integer.
type accountResponse struct {
	ID       string               `json:"id"`
	Sequence string               `json:"sequence"`
	Balances []stellarpay.Balance `json:"balances"`
}

// submitResponse is the gateway's confirmation for an accepted transaction.
type submitResponse struct {
	Hash   string `json:"hash"`
	Ledger int32  `json:"ledger"`
}

// problem is the gateway's structured error document.
type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Extras struct {
		ResultCodes struct {
			Transaction string   `json:"transaction"`
			Operations  []string `json:"operations"`
		} `json:"result_codes"`
	} `json:"extras"`
}

// httpClient returns the HTTP client to use, defaulting to http.DefaultClient.
func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// requestContext applies the client timeout when the context has no deadline.
func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return ctx, func() {}
}

// do sends the request with common headers applied.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if c.Authorization != "" {
		req.Header.Set("Authorization", c.Authorization)
	}
	return c.httpClient().Do(req)
}

// LoadAccount implements stellarpay.Gateway.
func (c *Client) LoadAccount(ctx context.Context, address string) (*stellarpay.AccountSnapshot, error) {
	if address == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "GET", c.BaseURL+"/accounts/"+url.PathEscape(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stellarpay.ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", stellarpay.ErrAccountNotFound, address)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp)
	}

	var account accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode account response: %w", err)
	}

	sequence, err := strconv.ParseInt(account.Sequence, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse account sequence %q: %w", account.Sequence, err)
	}

	return &stellarpay.AccountSnapshot{
		Address:  address,
		Sequence: sequence,
		Balances: account.Balances,
	}, nil
}

// SubmitTransaction implements stellarpay.Gateway. The envelope is sent as
// a form-encoded "tx" field, the gateway's wire format for submissions.
func (c *Client) SubmitTransaction(ctx context.Context, envelopeXDR string) (*stellarpay.SubmitResult, error) {
	if envelopeXDR == "" {
		return nil, fmt.Errorf("envelope cannot be empty")
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	form := url.Values{"tx": []string{envelopeXDR}}
	req, err := http.NewRequestWithContext(reqCtx, "POST", c.BaseURL+"/transactions",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stellarpay.ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp)
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return nil, fmt.Errorf("failed to decode submit response: %w", err)
	}

	return &stellarpay.SubmitResult{
		TransactionID: submitted.Hash,
		Ledger:        submitted.Ledger,
	}, nil
}

// parseErrorResponse extracts error details from a non-200 response. A body
// carrying ledger result codes becomes a *stellarpay.RejectionError for the
// classifier; anything else is reported with status and title only.
func parseErrorResponse(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var prob problem
	if err := json.Unmarshal(bodyBytes, &prob); err == nil {
		codes := prob.Extras.ResultCodes
		if codes.Transaction != "" || len(codes.Operations) > 0 {
			return &stellarpay.RejectionError{
				TransactionCode: codes.Transaction,
				OperationCodes:  codes.Operations,
				Detail:          prob.Detail,
			}
		}
		if prob.Title != "" {
			return fmt.Errorf("gateway error: status %d: %s", resp.StatusCode, prob.Title)
		}
	}

	if len(bodyBytes) > 0 && len(bodyBytes) < 500 {
		return fmt.Errorf("gateway error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return fmt.Errorf("gateway error: status %d", resp.StatusCode)
}
