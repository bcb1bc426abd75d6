package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	DefaultUserAgent = "Debian APT-HTTP/1.3 (2.0.9) non-interactive"
	DefaultTimeout   = time.Minute
)

// Response is a fully buffered reply from the archive.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the archive answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// NotFound reports whether the archive does not have the file.
func (r *Response) NotFound() bool {
	return r.StatusCode == http.StatusNotFound
}

// Fetcher retrieves a file relative to the distribution root of an
// archive. Any HTTP status is a successful fetch; only transport
// failures are returned as errors.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*Response, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, path string) (*Response, error)

func (f FetcherFunc) Fetch(ctx context.Context, path string) (*Response, error) {
	return f(ctx, path)
}

// TransportError is returned when a request could not be completed.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPFetcher fetches files beneath <archive>/dists/<distribution>/.
type HTTPFetcher struct {
	client    *http.Client
	base      string
	userAgent string
	timeout   time.Duration
}

// NewHTTPFetcher creates a Fetcher for the given archive root and
// distribution. A zero timeout selects DefaultTimeout.
func NewHTTPFetcher(archive, distribution, userAgent string, timeout time.Duration) (*HTTPFetcher, error) {
	if _, err := url.Parse(archive); err != nil {
		return nil, fmt.Errorf("parsing archive url: %w", err)
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client:    cleanhttp.DefaultPooledClient(),
		base:      fmt.Sprintf("%s/dists/%s", strings.TrimSuffix(archive, "/"), distribution),
		userAgent: userAgent,
		timeout:   timeout,
	}, nil
}

// URL returns the absolute location of a distribution-relative path.
func (f *HTTPFetcher) URL(path string) string {
	return f.base + "/" + strings.TrimPrefix(path, "/")
}

func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (*Response, error) {
	target := f.URL(path)
	log := logr.FromContextOrDiscard(ctx).WithValues("url", target)
	log.V(1).Info("downloading file")

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("reading response: %w", err)}
	}
	log.V(2).Info("http request completed", "code", resp.StatusCode, "size", len(body))
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
