// Package data fetches the business and menu documents the site is rendered
// from. Both are read once at startup; failures are logged and the affected
// section stays empty.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/rasoilabs/menucart/internal/domain"
)

// Loader fetches JSON documents over HTTP. A circuit breaker keeps a flaky
// origin from being hammered and singleflight collapses concurrent fetches
// of the same URL.
type Loader struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	sfg     singleflight.Group
}

func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Loader{
		client: client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    "data-fetch",
			Timeout: 30 * time.Second,
		}),
	}
}

// FetchBusiness reads and decodes the business document.
func (l *Loader) FetchBusiness(ctx context.Context, url string) (*domain.Business, error) {
	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	var business domain.Business
	if err := json.Unmarshal(data, &business); err != nil {
		return nil, fmt.Errorf("failed to decode business document: %w", err)
	}
	return &business, nil
}

// FetchMenu reads and decodes the menu document.
func (l *Loader) FetchMenu(ctx context.Context, url string) (*domain.Menu, error) {
	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	var menu domain.Menu
	if err := json.Unmarshal(data, &menu); err != nil {
		return nil, fmt.Errorf("failed to decode menu document: %w", err)
	}
	return &menu, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	v, err, _ := l.sfg.Do(url, func() (interface{}, error) {
		return l.breaker.Execute(func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to build request: %w", err)
			}
			resp, err := l.client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("fetch %s failed: %w", url, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("fetch %s failed: status %d", url, resp.StatusCode)
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", url, err)
			}
			return body, nil
		})
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
