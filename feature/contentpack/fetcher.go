package contentpack

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"artifact-host/core/storage"

	"github.com/minio/minio-go/v7"
)

// Fetcher retrieves the raw JSON document of a content pack.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (io.ReadCloser, error)
}

// HTTPFetcher downloads packs from the content-pack web API.
type HTTPFetcher struct {
	client *http.Client
	base   string
}

// NewHTTPFetcher creates a fetcher for host. A host without a scheme uses https.
func NewHTTPFetcher(host string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	base := strings.TrimRight(host, "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &HTTPFetcher{client: client, base: base}
}

// URL returns the raw JSON URL of a content pack.
func (f *HTTPFetcher) URL(id string) string {
	return fmt.Sprintf("%s/api/content_packs/%s/raw.json", f.base, url.PathEscape(id))
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, id string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// StorageFetcher reads packs stored as content_packs/<id>/raw.json in a bucket.
type StorageFetcher struct {
	client storage.Client
	bucket string
}

// NewStorageFetcher creates a fetcher reading from the given bucket.
func NewStorageFetcher(client storage.Client, bucket string) *StorageFetcher {
	return &StorageFetcher{client: client, bucket: bucket}
}

// ObjectName returns the storage key of a content pack.
func ObjectName(id string) string {
	return "content_packs/" + id + "/raw.json"
}

// Fetch implements Fetcher.
func (f *StorageFetcher) Fetch(ctx context.Context, id string) (io.ReadCloser, error) {
	return f.client.GetObject(ctx, f.bucket, ObjectName(id), minio.GetObjectOptions{})
}

// NewFetcher builds the fetcher selected by cfg.Source.
func NewFetcher(cfg Config, client storage.Client, bucket string) (Fetcher, error) {
	switch cfg.Source {
	case "", SourceHTTP:
		return NewHTTPFetcher(cfg.Host, &http.Client{Timeout: cfg.Timeout()}), nil
	case SourceStorage:
		if client == nil {
			return nil, fmt.Errorf("content pack source %q requires a storage client", cfg.Source)
		}
		return NewStorageFetcher(client, bucket), nil
	default:
		return nil, fmt.Errorf("unknown content pack source %q", cfg.Source)
	}
}
