package loader

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pyneda/wsdlgen/pkg/wsdl"
)

// Fetcher retrieves the raw bytes of a document by location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// DefaultFetcher reads local paths from disk and HTTP(S) URLs over the network.
type DefaultFetcher struct {
	client  *http.Client
	headers map[string]string
}

// NewDefaultFetcher creates a fetcher configured from opts
func NewDefaultFetcher(opts Options) *DefaultFetcher {
	return &DefaultFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.InsecureSkipVerify},
			},
		},
		headers: opts.Headers,
	}
}

// WithClient sets a custom HTTP client
func (f *DefaultFetcher) WithClient(client *http.Client) *DefaultFetcher {
	f.client = client
	return f
}

func (f *DefaultFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if wsdl.IsRemoteLocation(location) {
		return f.fetchRemote(ctx, location)
	}
	data, err := os.ReadFile(strings.TrimPrefix(location, "file://"))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

func (f *DefaultFetcher) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/xml, application/xml, application/wsdl+xml")
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return io.ReadAll(resp.Body)
}

// MapFetcher serves documents from memory, keyed by location.
type MapFetcher map[string][]byte

func (m MapFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	data, ok := m[location]
	if !ok {
		return nil, fmt.Errorf("document not found: %s", location)
	}
	return data, nil
}
