package callback_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/martinohansen/zaim/internal/callback"
)

// startServer creates and starts a Server on an OS-assigned port. The server
// shuts down when the test ends.
func startServer(t *testing.T) *Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv := NewServer(0, "", nil)
	require.NoError(t, srv.Start(ctx))
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestServerHealth(t *testing.T) {
	srv := startServer(t)
	base := strings.TrimSuffix(srv.URL(), Path)

	status, body := get(t, base+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestServerURL(t *testing.T) {
	srv := NewServer(8910, "", nil)
	assert.Equal(t, "http://127.0.0.1:8910/callback", srv.URL())
}

func TestServerCallback(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantResult bool
	}{
		{
			name:       "token and verifier are captured",
			query:      "?oauth_token=req-token&oauth_verifier=pin123",
			wantStatus: http.StatusOK,
			wantResult: true,
		},
		{
			name:       "missing verifier is rejected",
			query:      "?oauth_token=req-token",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing token is rejected",
			query:      "?oauth_verifier=pin123",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := startServer(t)

			status, _ := get(t, srv.URL()+tt.query)
			assert.Equal(t, tt.wantStatus, status)

			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			res, err := srv.Wait(ctx)
			if !tt.wantResult {
				assert.ErrorIs(t, err, context.DeadlineExceeded)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Result{RequestToken: "req-token", Verifier: "pin123"}, res)
		})
	}
}

func TestServerKeepsFirstCallback(t *testing.T) {
	srv := startServer(t)

	status, _ := get(t, srv.URL()+"?oauth_token=first&oauth_verifier=v1")
	require.Equal(t, http.StatusOK, status)
	status, _ = get(t, srv.URL()+"?oauth_token=second&oauth_verifier=v2")
	require.Equal(t, http.StatusOK, status)

	res, err := srv.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", res.RequestToken)
}

func TestServerStartTwice(t *testing.T) {
	srv := startServer(t)
	assert.Error(t, srv.Start(context.Background()))
}

func TestServerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(0, "", nil)
	require.NoError(t, srv.Start(ctx))
	addr := strings.TrimPrefix(strings.TrimSuffix(srv.URL(), Path), "http://")

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err != nil {
			return
		}
		conn.Close()
		time.Sleep(50 * time.Millisecond)
	}
	t.Error("server still accepting connections 2s after context cancellation")
}
