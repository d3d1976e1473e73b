package renamed

import (
	"testing"
)

func TestAPIErrorFromResponseDefaults(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		statusText  string
		body        string
		wantKind    ErrorKind
		wantCode    string
		wantMessage string
		wantStatus  int
	}{
		{
			name:        "Unauthorized",
			status:      401,
			statusText:  "401 Unauthorized",
			wantKind:    KindAuthentication,
			wantCode:    "AUTHENTICATION_ERROR",
			wantMessage: "Invalid or missing API key",
			wantStatus:  401,
		},
		{
			name:        "PaymentRequired",
			status:      402,
			statusText:  "402 Payment Required",
			wantKind:    KindInsufficientCredits,
			wantCode:    "INSUFFICIENT_CREDITS",
			wantMessage: "Insufficient credits",
			wantStatus:  402,
		},
		{
			name:        "BadRequest",
			status:      400,
			statusText:  "400 Bad Request",
			wantKind:    KindValidation,
			wantCode:    "VALIDATION_ERROR",
			wantMessage: "Bad request",
			wantStatus:  400,
		},
		{
			name:        "UnprocessableEntity",
			status:      422,
			statusText:  "422 Unprocessable Entity",
			wantKind:    KindValidation,
			wantCode:    "VALIDATION_ERROR",
			wantMessage: "Unprocessable entity",
			wantStatus:  422,
		},
		{
			name:        "TooManyRequests",
			status:      429,
			statusText:  "429 Too Many Requests",
			wantKind:    KindRateLimit,
			wantCode:    "RATE_LIMIT_ERROR",
			wantMessage: "Rate limit exceeded",
			wantStatus:  429,
		},
		{
			name:        "ServerError",
			status:      500,
			statusText:  "500 Internal Server Error",
			wantKind:    KindGeneric,
			wantCode:    "API_ERROR",
			wantMessage: "500 Internal Server Error",
			wantStatus:  500,
		},
		{
			name:        "UnmappedClientError",
			status:      404,
			statusText:  "404 Not Found",
			wantKind:    KindGeneric,
			wantCode:    "API_ERROR",
			wantMessage: "404 Not Found",
			wantStatus:  404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apiErrorFromResponse(tt.status, tt.statusText, []byte(tt.body))
			if err.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", err.Kind, tt.wantKind)
			}
			if err.Code() != tt.wantCode {
				t.Errorf("code = %q, want %q", err.Code(), tt.wantCode)
			}
			if err.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", err.Message, tt.wantMessage)
			}
			if err.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", err.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestAPIErrorFromResponsePayloadOverridesMessage(t *testing.T) {
	for _, status := range []int{400, 401, 402, 422, 429, 500, 503} {
		err := apiErrorFromResponse(status, "irrelevant", []byte(`{"error":"server says no"}`))
		if err.Message != "server says no" {
			t.Errorf("status %d: message = %q, want payload message", status, err.Message)
		}
	}
}

func TestAPIErrorFromResponseUnparseableBody(t *testing.T) {
	err := apiErrorFromResponse(401, "401 Unauthorized", []byte("<html>nope</html>"))
	if err.Kind != KindAuthentication {
		t.Fatalf("kind = %v, want KindAuthentication", err.Kind)
	}
	if err.Message != "Invalid or missing API key" {
		t.Fatalf("message = %q, want default", err.Message)
	}
}

func TestAPIErrorFromResponseRetryAfter(t *testing.T) {
	err := apiErrorFromResponse(429, "429 Too Many Requests", []byte(`{"error":"slow down","retryAfter":30}`))
	if err.Kind != KindRateLimit {
		t.Fatalf("kind = %v, want KindRateLimit", err.Kind)
	}
	if err.RetryAfter != 30 {
		t.Fatalf("retryAfter = %d, want 30", err.RetryAfter)
	}
	if err.Message != "slow down" {
		t.Fatalf("message = %q, want payload message", err.Message)
	}

	noHint := apiErrorFromResponse(429, "429 Too Many Requests", []byte(`{"error":"slow down"}`))
	if noHint.RetryAfter != 0 {
		t.Fatalf("retryAfter = %d, want 0 when payload omits it", noHint.RetryAfter)
	}
}

func TestAPIErrorFromResponseValidationCarriesDetails(t *testing.T) {
	err := apiErrorFromResponse(422, "422 Unprocessable Entity", []byte(`{"error":"bad field","field":"template"}`))
	if err.Kind != KindValidation {
		t.Fatalf("kind = %v, want KindValidation", err.Kind)
	}
	if got, ok := err.Details["field"].(string); !ok || got != "template" {
		t.Fatalf("details[field] = %v, want template", err.Details["field"])
	}
}

func TestAPIErrorErrorString(t *testing.T) {
	withStatus := &APIError{Kind: KindAuthentication, Message: "Invalid or missing API key", StatusCode: 401}
	if got := withStatus.Error(); got != "AUTHENTICATION_ERROR (status 401): Invalid or missing API key" {
		t.Errorf("unexpected error string: %q", got)
	}

	withoutStatus := newNetworkError("connection refused")
	if got := withoutStatus.Error(); got != "NETWORK_ERROR: connection refused" {
		t.Errorf("unexpected error string: %q", got)
	}
}

func TestAPIErrorRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want bool
	}{
		{"Network", newNetworkError(""), true},
		{"Timeout", newTimeoutError(""), true},
		{"ServerError", apiErrorFromResponse(500, "500 Internal Server Error", nil), true},
		{"BadGateway", apiErrorFromResponse(502, "502 Bad Gateway", nil), true},
		{"Authentication", apiErrorFromResponse(401, "401 Unauthorized", nil), false},
		{"Validation", apiErrorFromResponse(400, "400 Bad Request", nil), false},
		{"RateLimit", apiErrorFromResponse(429, "429 Too Many Requests", nil), false},
		{"Job", newJobError("boom", "job_1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Retryable(); got != tt.want {
				t.Errorf("Retryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewJobErrorDefaults(t *testing.T) {
	err := newJobError("", "job_9")
	if err.Message != "Job failed" {
		t.Errorf("message = %q, want default", err.Message)
	}
	if err.JobID != "job_9" {
		t.Errorf("jobID = %q, want job_9", err.JobID)
	}
	if err.Code() != "JOB_ERROR" {
		t.Errorf("code = %q, want JOB_ERROR", err.Code())
	}
}
