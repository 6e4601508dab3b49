package ice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/synbiotools/ice-cli/internal/core/ports/driven"
	"github.com/synbiotools/ice-cli/internal/logger"
)

// Ensure HTTPTransport implements the port.
var _ driven.Transport = (*HTTPTransport)(nil)

// HTTPTransport implements driven.Transport over net/http. Each request
// is throttled by the rate limiter and stamped with an X-Request-ID for
// server-side correlation. A zero timeout means requests block until the
// exchange completes or the context is cancelled.
type HTTPTransport struct {
	client  *http.Client
	limiter *RateLimiter
}

// NewHTTPTransport creates a transport with the given request timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client:  &http.Client{Timeout: timeout},
		limiter: NewRateLimiter(),
	}
}

// Get performs a GET and returns the response body.
func (t *HTTPTransport) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return t.do(ctx, http.MethodGet, url, nil, "", headers)
}

// Post performs a POST with an optional JSON body.
func (t *HTTPTransport) Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return t.do(ctx, http.MethodPost, url, bytes.NewReader(body), "", headers)
}

// Put performs a PUT with an optional JSON body.
func (t *HTTPTransport) Put(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return t.do(ctx, http.MethodPut, url, bytes.NewReader(body), "", headers)
}

// Delete performs a DELETE.
func (t *HTTPTransport) Delete(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return t.do(ctx, http.MethodDelete, url, nil, "", headers)
}

// PostFile performs a multipart POST. The file part is built in memory;
// sequence documents are small enough that streaming buys nothing.
func (t *HTTPTransport) PostFile(
	ctx context.Context, url string, file driven.FilePart, fields map[string]string, headers map[string]string,
) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", k, err)
		}
	}

	part, err := w.CreateFormFile(file.FieldName, file.FileName)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	return t.do(ctx, http.MethodPost, url, &buf, w.FormDataContentType(), headers)
}

// do issues a single request. Transport failures become a NetworkError;
// non-2xx statuses become an APIError carrying the decoded message.
func (t *HTTPTransport) do(
	ctx context.Context, method, url string, body io.Reader, contentType string, headers map[string]string,
) ([]byte, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	logger.Debug("%s %s -> %d (%d bytes)", method, url, resp.StatusCode, len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			URL:        url,
		}
	}

	return data, nil
}

// errorMessage extracts a human-readable message from an ICE error body.
// ICE usually returns {"errorMessage": "..."}; anything else is passed
// through truncated.
func errorMessage(body []byte) string {
	var payload struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.ErrorMessage != "" {
		return payload.ErrorMessage
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = "no error detail"
	}
	return msg
}
