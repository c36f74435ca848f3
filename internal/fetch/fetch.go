// Package fetch downloads an OpenAPI schema document from a running API.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// schemaEndpoint is the well-known path the API publishes its schema under.
const schemaEndpoint = "/config/schema/"

// Fetcher downloads schema documents over HTTP.
type Fetcher struct {
	client  *http.Client
	baseURL string
	token   string
}

// New creates a fetcher for the API at baseURL. token, when non-empty, is
// sent as a bearer token.
func New(baseURL, token string) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
	}
}

// Fetch downloads the schema and verifies it is a JSON document with a
// top-level paths object before returning it.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	url := f.baseURL + schemaEndpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schema from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching schema from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema response: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("schema response from %s is not valid JSON", url)
	}
	if !gjson.GetBytes(body, "paths").Exists() {
		return nil, fmt.Errorf("schema response from %s has no paths object", url)
	}

	return body, nil
}

// FetchToFile downloads the schema and writes it to path.
func (f *Fetcher) FetchToFile(ctx context.Context, path string) error {
	body, err := f.Fetch(ctx)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}
	return nil
}
