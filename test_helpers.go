package renamed

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start test server listener: %v", err)
	}
	server := httptest.NewUnstartedServer(handler)
	server.Listener = ln
	server.Start()
	return server
}

// newTestHTTPClient builds an httpClient with fast retry timing for tests.
func newTestHTTPClient(t *testing.T, baseURL string, maxRetries int) *httpClient {
	t.Helper()
	cfg := Config{
		APIKey:               "rt_test_key_123456",
		BaseURL:              baseURL,
		Timeout:              2 * time.Second,
		MaxRetries:           maxRetries,
		RetryInitialInterval: 10 * time.Millisecond,
		RetryMaxInterval:     40 * time.Millisecond,
		RetryMultiplier:      2,
	}
	return newHTTPClient(cfg, newAuth(cfg))
}
