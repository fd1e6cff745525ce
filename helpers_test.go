package zaim

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/martinohansen/zaim/internal/log"
)

type fakeResponse struct {
	status int
	body   string
}

// capturingTransport records every request and answers from responses, keyed
// by "METHOD path", falling back to an empty object.
type capturingTransport struct {
	mu        sync.Mutex
	requests  []*http.Request
	bodies    [][]byte
	responses map[string]fakeResponse
	err       error
}

func newCapturingTransport() *capturingTransport {
	return &capturingTransport{responses: map[string]fakeResponse{}}
}

func (c *capturingTransport) respond(method, path string, status int, body string) {
	c.responses[method+" "+path] = fakeResponse{status: status, body: body}
}

func (c *capturingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(b))
		bodyBytes = b
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	c.bodies = append(c.bodies, bodyBytes)

	if c.err != nil {
		return nil, c.err
	}
	res, ok := c.responses[req.Method+" "+req.URL.Path]
	if !ok {
		res = fakeResponse{status: http.StatusOK, body: "{}"}
	}
	return &http.Response{
		StatusCode: res.status,
		Body:       io.NopCloser(strings.NewReader(res.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (c *capturingTransport) last(t *testing.T) (*http.Request, url.Values) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		t.Fatalf("no request was sent")
	}
	i := len(c.requests) - 1
	form, err := url.ParseQuery(string(c.bodies[i]))
	if err != nil {
		t.Fatalf("parsing request body: %v", err)
	}
	return c.requests[i], form
}

func (c *capturingTransport) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// fakeSigner stands in for the OAuth primitive. Its clients stamp the access
// token they were built with onto each request instead of signing.
type fakeSigner struct {
	rt http.RoundTripper

	requestToken Token
	requestErr   error
	accessToken  Token
	accessErr    error

	callbackURL string
	verifier    string
}

func (f *fakeSigner) RequestToken(_ context.Context, callbackURL string) (Token, error) {
	f.callbackURL = callbackURL
	return f.requestToken, f.requestErr
}

func (f *fakeSigner) AccessToken(_ context.Context, _ Token, verifier string) (Token, error) {
	f.verifier = verifier
	return f.accessToken, f.accessErr
}

func (f *fakeSigner) Client(_ context.Context, access Token) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		req.Header.Set("X-Test-Access-Token", access.Token)
		req.Header.Set("X-Test-Access-Secret", access.Secret)
		return f.rt.RoundTrip(req)
	})}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// newTestClient returns a Client whose requests end up in rt.
func newTestClient(t *testing.T, rt *capturingTransport) (*Client, *fakeSigner) {
	t.Helper()
	signer := &fakeSigner{rt: rt}
	client, err := NewClient(Config{
		ConsumerKey:       "test-key",
		ConsumerSecret:    "test-secret",
		AccessToken:       "test-token",
		AccessTokenSecret: "test-token-secret",
		Signer:            signer,
		Logger:            log.Discard(),
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client, signer
}

// fixNow pins the clock used for date range validation.
func fixNow(t *testing.T, year int, month time.Month, day int) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Date(year, month, day, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
}
