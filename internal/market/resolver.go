// Package market resolves token metadata from the DexScreener pairs API.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/observability"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.dexscreener.com/latest/dex"
	DefaultTimeout = 10 * time.Second
)

// Resolver resolves a token address to a display summary. Resolve is a total
// function: it never returns an error, degrading to the unknown summary so
// enrichment can never abort the notification pipeline.
type Resolver interface {
	Resolve(ctx context.Context, tokenAddress string) domain.TokenSummary
}

// Client implements Resolver against the DexScreener HTTP API. One request
// per lookup, no retries, no caching; the transport timeout bounds the effort.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new DexScreener client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  log.New(os.Stdout, "[market] ", log.LstdFlags|log.Lshortfile),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile-time interface check.
var _ Resolver = (*Client)(nil)

// pairsResponse mirrors the DexScreener pairs payload. priceUsd arrives as a
// string, fdv as a number; both are kept provider-native for display.
type pairsResponse struct {
	Pairs []struct {
		BaseToken struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"baseToken"`
		PriceUsd string      `json:"priceUsd"`
		FDV      json.Number `json:"fdv"`
	} `json:"pairs"`
}

// Resolve looks up the first pair for the token address and extracts the
// base-token name, symbol, price, and fully-diluted valuation with per-field
// defaults. Any failure yields the unknown summary.
func (c *Client) Resolve(ctx context.Context, tokenAddress string) domain.TokenSummary {
	start := time.Now()
	summary, err := c.lookup(ctx, tokenAddress)
	observability.RecordTokenLookup(time.Since(start).Seconds(), err)
	if err != nil {
		c.logger.Printf("token lookup failed for %q: %v", tokenAddress, err)
		return domain.UnknownTokenSummary()
	}
	return summary
}

func (c *Client) lookup(ctx context.Context, tokenAddress string) (domain.TokenSummary, error) {
	endpoint := fmt.Sprintf("%s/pairs/solana/%s", c.baseURL, url.PathEscape(tokenAddress))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.TokenSummary{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.TokenSummary{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TokenSummary{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.TokenSummary{}, fmt.Errorf("read response: %w", err)
	}

	var parsed pairsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.TokenSummary{}, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Pairs) == 0 {
		return domain.TokenSummary{}, fmt.Errorf("no pairs for token")
	}

	pair := parsed.Pairs[0]
	summary := domain.UnknownTokenSummary()
	if pair.BaseToken.Name != "" {
		summary.Name = pair.BaseToken.Name
	}
	summary.Symbol = pair.BaseToken.Symbol
	if pair.PriceUsd != "" {
		summary.Price = pair.PriceUsd
	}
	if fdv := pair.FDV.String(); fdv != "" && fdv != "0" {
		summary.MarketCap = fdv
	}
	return summary, nil
}
