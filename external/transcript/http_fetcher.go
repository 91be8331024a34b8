package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gparth254/meet-ai/internal/transcript"
)

const (
	fetchTimeout  = 20 * time.Second
	maxTranscript = 32 << 20
)

type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() transcript.Fetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: fetchTimeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("transcript download returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTranscript+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxTranscript {
		return nil, fmt.Errorf("transcript exceeds %d bytes", maxTranscript)
	}
	return body, nil
}
