// Package remote implements the MappingFetcher port against an HTTP asset API.
package remote

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
)

const (
	// UserAgent identifies the fetcher to the asset API.
	UserAgent = "peek-asset-resolver/1.0"

	// ActivityHeader carries the workspace activity signal.
	ActivityHeader = "x-activity-id"

	// maxBodyBytes bounds the size of a mapping payload.
	maxBodyBytes = 32 << 20
)

var _ ports.MappingFetcher = (*Fetcher)(nil)

// Fetcher performs single, non-retried GET requests against the asset API.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher using a dedicated http.Client.
// The per-request bound comes from the timeout passed to Fetch.
func NewFetcher() *Fetcher {
	return NewFetcherWithClient(&http.Client{})
}

// NewFetcherWithClient creates a Fetcher with a custom http client (used for testing).
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{httpClient: client}
}

// Fetch requests the mapping from url. Every failure is returned as a *domain.FetchError.
func (f *Fetcher) Fetch(
	ctx context.Context,
	url string,
	timeout time.Duration,
	activity string,
) (domain.AssetMapping, error) {
	if url == "" {
		return nil, &domain.FetchError{Kind: domain.ErrRemoteNotConfigured}
	}

	if timeout <= 0 {
		timeout = domain.DefaultAPITimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.ErrRemoteNoResponse, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if activity != "" {
		req.Header.Set(ActivityHeader, activity)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Kind: classify(err), URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{Kind: domain.ErrRemoteHTTPStatus, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.FetchError{Kind: classify(err), URL: url, Err: err}
	}

	mapping, _, err := domain.DecodeMapping(body)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.ErrRemoteMalformedBody, URL: url, Err: err}
	}

	return mapping, nil
}

// classify maps a transport error to a timeout or a no-response failure.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrRemoteTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrRemoteTimeout
	}
	return domain.ErrRemoteNoResponse
}
