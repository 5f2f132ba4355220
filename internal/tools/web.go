package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gabriel-vasile/mimetype"
)

// Fetcher defaults.
const (
	DefaultTimeout = 10 * time.Second
	UserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
	MaxBodyBytes   = 5 << 20
)

// ErrBodyTooLarge is returned when a response exceeds the fetcher's body
// limit.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Web fetches pages over HTTP with a browser User-Agent.
type Web struct {
	client  *http.Client
	maxBody int64
}

// NewWeb returns a fetcher with its own connection pool. Bodies larger than
// MaxBodyBytes are rejected with ErrBodyTooLarge.
func NewWeb() *Web {
	return &Web{
		client:  &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		maxBody: MaxBodyBytes,
	}
}

// Get fetches url and returns the body as text. A timeout of zero uses
// DefaultTimeout.
func (w *Web) Get(ctx context.Context, url string, timeout time.Duration) (string, error) {
	body, _, err := w.fetch(ctx, url, timeout)
	return string(body), err
}

// GetText fetches url like Get but converts HTML bodies to Markdown, which
// reads better inside a prompt.
func (w *Web) GetText(ctx context.Context, url string, timeout time.Duration) (string, error) {
	body, contentType, err := w.fetch(ctx, url, timeout)
	if err != nil {
		return "", err
	}
	if !isHTML(body, contentType) {
		return string(body), nil
	}
	md, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return "", fmt.Errorf("converting %s to markdown: %w", url, err)
	}
	return md, nil
}

func (w *Web) fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, w.maxBody+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", url, err)
	}
	if int64(len(body)) > w.maxBody {
		return nil, "", fmt.Errorf("GET %s: %w (limit %d bytes)", url, ErrBodyTooLarge, w.maxBody)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// isHTML trusts a specific Content-Type and sniffs the body otherwise.
func isHTML(body []byte, contentType string) bool {
	media, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	switch media = strings.TrimSpace(media); media {
	case "", "application/octet-stream":
		return mimetype.Detect(body).Is("text/html")
	default:
		return media == "text/html" || media == "application/xhtml+xml"
	}
}

// Close releases idle connections.
func (w *Web) Close() {
	w.client.CloseIdleConnections()
}
