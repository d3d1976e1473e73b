package renamed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"
)

type httpClient struct {
	client *http.Client
	cfg    Config
	auth   Auth
	logger Logger
}

func newHTTPClient(cfg Config, auth Auth) *httpClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryInitialInterval == 0 {
		cfg.RetryInitialInterval = defaultRetryInitial
	}
	if cfg.RetryMaxInterval == 0 {
		cfg.RetryMaxInterval = defaultRetryMax
	}
	if cfg.RetryMultiplier == 0 {
		cfg.RetryMultiplier = defaultRetryMultiplier
	}

	logger := cfg.Logger
	if cfg.Debug && logger == nil {
		logger = log.New(os.Stderr, "renamed-sdk ", log.LstdFlags)
	}
	if !cfg.Debug {
		logger = nil
	}

	return &httpClient{
		cfg:  cfg,
		auth: auth,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (c *httpClient) close() {
	transport := c.client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if t, ok := transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
}

// buildURL resolves a path against the configured base URL. Absolute URLs
// (status and download links issued by the server) pass through verbatim.
// Trailing slashes on the base and missing leading slashes on the path are
// normalized so no double slash is ever produced.
func (c *httpClient) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimSuffix(c.cfg.BaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// doRequest executes one logical request with the bounded retry policy:
// up to MaxRetries additional attempts for 5xx responses and transport
// failures, exponential backoff between attempts, no retry for 4xx.
func (c *httpClient) doRequest(ctx context.Context, method, path string, headers http.Header, body []byte) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	fullURL := c.buildURL(path)

	var lastErr error
	maxAttempts := c.cfg.MaxRetries + 1

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return nil, err
		}
		c.applyHeaders(req, headers)
		c.runRequestHooks(req)

		start := time.Now()
		resp, err := c.client.Do(req)
		elapsed := time.Since(start)

		if err != nil {
			// Cancellation surfaces as-is, never remapped to the taxonomy.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			apiErr := classifyTransportError(err)
			c.logf("%s %s -> %s (%dms)", method, extractPath(fullURL), apiErr.Kind.Code(), elapsed.Milliseconds())
			lastErr = apiErr
			if attempt < c.cfg.MaxRetries {
				if err := c.backoff(ctx, attempt, maxAttempts); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = classifyTransportError(readErr)
			if attempt < c.cfg.MaxRetries {
				if err := c.backoff(ctx, attempt, maxAttempts); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}

		c.logf("%s %s -> %d (%dms)", method, extractPath(fullURL), resp.StatusCode, elapsed.Milliseconds())
		c.runResponseHooks(resp, respBody)

		if resp.StatusCode < 400 {
			return respBody, nil
		}

		apiErr := apiErrorFromResponse(resp.StatusCode, resp.Status, respBody)
		lastErr = apiErr

		// Client errors are deterministic for the same request.
		if resp.StatusCode < 500 {
			return nil, apiErr
		}
		if attempt < c.cfg.MaxRetries {
			if err := c.backoff(ctx, attempt, maxAttempts); err != nil {
				return nil, err
			}
			continue
		}
		return nil, lastErr
	}

	return nil, lastErr
}

// classifyTransportError maps a transport failure onto the error taxonomy:
// explicit timeouts become KindTimeout, everything else KindNetwork.
func classifyTransportError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(err.Error())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newTimeoutError(err.Error())
	}
	return newNetworkError(err.Error())
}

// backoff sleeps before retry attempt+1. The delay sequence is
// 200ms, 400ms, 800ms, ... with no jitter, capped at RetryMaxInterval.
func (c *httpClient) backoff(ctx context.Context, attempt, maxAttempts int) error {
	factor := math.Pow(c.cfg.RetryMultiplier, float64(attempt))
	delay := time.Duration(float64(c.cfg.RetryInitialInterval) * factor)
	if delay > c.cfg.RetryMaxInterval {
		delay = c.cfg.RetryMaxInterval
	}
	c.logf("Retry attempt %d/%d, waiting %dms", attempt+1, maxAttempts-1, delay.Milliseconds())
	return sleepWithContext(ctx, delay)
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *httpClient) logf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	defer func() {
		// A broken logger must never take down request flow.
		_ = recover()
	}()
	c.logger.Printf(format, args...)
}

func (c *httpClient) applyHeaders(req *http.Request, headers http.Header) {
	for k, vals := range c.auth.Headers() {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	for k, vals := range c.cfg.ExtraHeaders {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
}

func (c *httpClient) runRequestHooks(req *http.Request) {
	for i, hook := range c.cfg.BeforeRequest {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logf("request hook[%d] panic: %v", i, r)
				}
			}()
			hook(req)
		}()
	}
}

func (c *httpClient) runResponseHooks(resp *http.Response, body []byte) {
	for i, hook := range c.cfg.AfterResponse {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logf("response hook[%d] panic: %v", i, r)
				}
			}()
			hook(resp, body)
		}()
	}
}

// decode unmarshals a response body. An empty body is the empty-object
// equivalent: out keeps its zero value and no error is raised.
func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	data, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *httpClient) getBytes(ctx context.Context, path string) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, path, nil, nil)
}

// upload sends a multipart request: one file part (Content-Type from the
// static extension table) plus one text field per entry in fields.
func (c *httpClient) upload(ctx context.Context, path, filename string, content []byte, fields map[string]string, out any) error {
	c.logf("Upload: %s (%s)", filename, formatBytes(int64(len(content))))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", mimeTypeByExtension(filename))

	part, err := writer.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := part.Write(content); err != nil {
		return err
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("Content-Type", writer.FormDataContentType())

	data, err := c.doRequest(ctx, http.MethodPost, path, headers, buf.Bytes())
	if err != nil {
		return err
	}
	return decode(data, out)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
