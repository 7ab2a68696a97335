// Package currency maintains the dual-currency amount invariant and the
// cached exchange-rate lookups behind it.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateTable holds one fetched rate set. Rates are keyed by target currency
// and express units of target per one unit of the base the table was
// fetched for.
type RateTable struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
}

// RateProvider fetches a rate table for a base currency. The core depends
// only on the {rates: {code: multiplier}} shape, not on any specific
// provider.
type RateProvider interface {
	Fetch(ctx context.Context, base string) (*RateTable, error)
}

// HTTPProvider fetches rate tables from an exchange-rate API that serves
// GET <baseURL>/<BASE> responses shaped {"rates": {"USD": 0.01203, ...}}.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider against the given API root. A nil
// client falls back to one with a 10s timeout.
func NewHTTPProvider(baseURL string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *HTTPProvider) Fetch(ctx context.Context, base string) (*RateTable, error) {
	url := fmt.Sprintf("%s/%s", p.baseURL, strings.ToUpper(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates for %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates for %s: unexpected status %d", base, resp.StatusCode)
	}

	var body struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate response for %s has no rates", base)
	}

	return &RateTable{
		Base:      strings.ToUpper(base),
		Rates:     body.Rates,
		FetchedAt: time.Now(),
	}, nil
}
