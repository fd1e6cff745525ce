package zaim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/martinohansen/zaim/internal/log"
)

// maxResponseBodyBytes caps how much of a response body is buffered.
const maxResponseBodyBytes = 10 * 1024 * 1024

const formContentType = "application/x-www-form-urlencoded"

// Transport executes OAuth signed requests against the API and returns the
// response as a raw top-level JSON object. Every request is signed with the
// access pair held by the Credentials at the time it is sent.
type Transport struct {
	baseURL      string
	signer       Signer
	credentials  *Credentials
	timeout      time.Duration
	userAgent    string
	deleteViaPut bool
	logger       *slog.Logger
}

// Get requests path, which may carry a query string.
func (t *Transport) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return t.do(ctx, http.MethodGet, path, nil)
}

// Post sends body form encoded. A nil body is sent as an empty form.
func (t *Transport) Post(ctx context.Context, path string, body url.Values) (json.RawMessage, error) {
	return t.do(ctx, http.MethodPost, path, formOrEmpty(body))
}

// Put sends body form encoded. A nil body is sent as an empty form.
func (t *Transport) Put(ctx context.Context, path string, body url.Values) (json.RawMessage, error) {
	return t.do(ctx, http.MethodPut, path, formOrEmpty(body))
}

// Delete sends a DELETE, or a PUT when the client was configured with
// DeleteViaPut.
func (t *Transport) Delete(ctx context.Context, path string, body url.Values) (json.RawMessage, error) {
	method := http.MethodDelete
	if t.deleteViaPut {
		method = http.MethodPut
	}
	return t.do(ctx, method, path, formOrEmpty(body))
}

func formOrEmpty(body url.Values) url.Values {
	if body == nil {
		return url.Values{}
	}
	return body
}

func (t *Transport) do(ctx context.Context, method, path string, body url.Values) (json.RawMessage, error) {
	var (
		reader  io.Reader
		payload string
	)
	if body != nil {
		payload = body.Encode()
		reader = strings.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", formContentType)
	}
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	client := t.signer.Client(ctx, t.credentials.Access())
	if t.timeout > 0 {
		// The signer may hand out a shared client.
		c := *client
		c.Timeout = t.timeout
		client = &c
	}

	log.Trace(ctx, t.logger, "http request", "method", method, "url", req.URL.String(), "body", payload)

	res, err := client.Do(req)
	if err != nil {
		t.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, &TransportError{Err: err}
	}
	defer res.Body.Close()

	resPayload, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, &TransportError{StatusCode: res.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	log.Trace(ctx, t.logger, "http response", "status", res.StatusCode, "body", resPayload)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		t.logger.Debug("api error", "method", method, "path", path, "status", res.StatusCode)
		return nil, &TransportError{StatusCode: res.StatusCode, Data: string(resPayload)}
	}

	return decodeObject(resPayload)
}

// decodeObject reads body as UTF-8 text, tolerating a byte order mark, and
// returns it if it holds a single top-level JSON object.
func decodeObject(body []byte) (json.RawMessage, error) {
	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), body)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var v any
	if err := json.Unmarshal(text, &v); err != nil {
		return nil, &ParseError{Err: err}
	}

	switch v.(type) {
	case map[string]any:
		return json.RawMessage(text), nil
	case []any:
		return nil, &ShapeError{Kind: "array"}
	case nil:
		return nil, &ShapeError{Kind: "null"}
	case string:
		return nil, &ShapeError{Kind: "string"}
	case float64:
		return nil, &ShapeError{Kind: "number"}
	case bool:
		return nil, &ShapeError{Kind: "boolean"}
	}
	return nil, &ShapeError{Kind: fmt.Sprintf("%T", v)}
}

// decodeInto unmarshals an object returned by the transport into a wire
// envelope, reporting mismatches as DecodeError.
func decodeInto(raw json.RawMessage, resource string, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &DecodeError{Resource: resource, Err: err}
	}
	return nil
}

// normalizeAll applies fn to every wire item, naming the failing index.
func normalizeAll[W, D any](resource, key string, items []W, fn func(W) (D, error)) ([]D, error) {
	if items == nil {
		return nil, &DecodeError{Resource: resource, Err: fmt.Errorf("missing field %q", key)}
	}
	out := make([]D, 0, len(items))
	for i, item := range items {
		d, err := fn(item)
		if err != nil {
			return nil, &DecodeError{Resource: resource, Err: fmt.Errorf("%s[%d]: %w", key, i, err)}
		}
		out = append(out, d)
	}
	return out, nil
}
