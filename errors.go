package renamed

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("API key is required. Provide it or set RENAMED_API_KEY")

// ErrorKind discriminates the variants of APIError.
type ErrorKind int

const (
	// KindGeneric covers API responses that match no specific variant.
	KindGeneric ErrorKind = iota

	// KindAuthentication indicates an invalid or missing API key (401).
	KindAuthentication

	// KindInsufficientCredits indicates the account has no credits left (402).
	KindInsufficientCredits

	// KindValidation indicates invalid request parameters (400, 422).
	KindValidation

	// KindRateLimit indicates the rate limit was exceeded (429).
	KindRateLimit

	// KindNetwork indicates a transport-level failure with no HTTP status.
	KindNetwork

	// KindTimeout indicates the transport reported an explicit timeout.
	KindTimeout

	// KindJob indicates an async job ended in failure or violated the
	// status protocol.
	KindJob
)

// Code returns the stable string code for the kind.
func (k ErrorKind) Code() string {
	switch k {
	case KindAuthentication:
		return "AUTHENTICATION_ERROR"
	case KindInsufficientCredits:
		return "INSUFFICIENT_CREDITS"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindRateLimit:
		return "RATE_LIMIT_ERROR"
	case KindNetwork:
		return "NETWORK_ERROR"
	case KindTimeout:
		return "TIMEOUT_ERROR"
	case KindJob:
		return "JOB_ERROR"
	default:
		return "API_ERROR"
	}
}

// APIError is the single error type surfaced by the SDK for expected failure
// modes. Kind discriminates the variant; switch on it for exhaustive
// handling, or use errors.As at the base level.
type APIError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Details    map[string]any

	// RetryAfter is the server-suggested wait in seconds. Only set for
	// KindRateLimit, and only when the payload provides it.
	RetryAfter int

	// JobID identifies the failed job. Only set for KindJob, and absent
	// for synthetic polling timeouts.
	JobID string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind.Code(), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Message)
}

// Code returns the stable string code for the error.
func (e *APIError) Code() string {
	return e.Kind.Code()
}

// Retryable reports whether the request executor may retry after this error.
// Client errors (4xx) are deterministic given the same request and are
// never retried.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout:
		return true
	default:
		return e.StatusCode >= 500
	}
}

func newNetworkError(message string) *APIError {
	if message == "" {
		message = "Network request failed"
	}
	return &APIError{Kind: KindNetwork, Message: message}
}

func newTimeoutError(message string) *APIError {
	if message == "" {
		message = "Request timed out"
	}
	return &APIError{Kind: KindTimeout, Message: message}
}

func newJobError(message, jobID string) *APIError {
	if message == "" {
		message = "Job failed"
	}
	return &APIError{Kind: KindJob, Message: message, JobID: jobID}
}

// apiErrorFromResponse maps an HTTP status and optional JSON body to an
// APIError. The body is parsed best-effort; an unparseable body falls back
// to the HTTP status text for the message.
func apiErrorFromResponse(status int, statusText string, body []byte) *APIError {
	message, payload := extractErrorPayload(body)

	switch status {
	case 401:
		if message == "" {
			message = "Invalid or missing API key"
		}
		return &APIError{Kind: KindAuthentication, Message: message, StatusCode: 401, Details: payload}
	case 402:
		if message == "" {
			message = "Insufficient credits"
		}
		return &APIError{Kind: KindInsufficientCredits, Message: message, StatusCode: 402, Details: payload}
	case 400, 422:
		if message == "" {
			message = "Bad request"
			if status == 422 {
				message = "Unprocessable entity"
			}
		}
		return &APIError{Kind: KindValidation, Message: message, StatusCode: status, Details: payload}
	case 429:
		if message == "" {
			message = "Rate limit exceeded"
		}
		retryAfter := 0
		if ra, ok := payload["retryAfter"].(float64); ok {
			retryAfter = int(ra)
		}
		return &APIError{Kind: KindRateLimit, Message: message, StatusCode: 429, Details: payload, RetryAfter: retryAfter}
	default:
		if message == "" {
			message = statusText
		}
		if message == "" {
			message = fmt.Sprintf("HTTP %d", status)
		}
		return &APIError{Kind: KindGeneric, Message: message, StatusCode: status, Details: payload}
	}
}

// extractErrorPayload parses the body best-effort and returns the
// server-provided "error" message, if any, plus the parsed payload. A
// server message always overrides the per-kind default.
func extractErrorPayload(body []byte) (string, map[string]any) {
	var payload map[string]any
	if len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}
	if msg, ok := payload["error"].(string); ok && msg != "" {
		return msg, payload
	}
	return "", payload
}
