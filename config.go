package renamed

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Logger is the minimal logging interface supported by the SDK. It is
// compatible with *log.Logger from the standard library.
type Logger interface {
	Printf(format string, v ...any)
}

// RequestHook allows callers to inspect or mutate requests before they are sent.
type RequestHook func(*http.Request)

// ResponseHook allows callers to inspect responses (raw bytes included).
type ResponseHook func(*http.Response, []byte)

// Config holds SDK configuration.
type Config struct {
	APIKey  string
	BaseURL string

	// Timeout bounds each individual HTTP call, independent of the retry
	// loop and the poll ceiling.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after the first for
	// 5xx and transport failures. 4xx responses are never retried.
	MaxRetries int

	// PollInterval and MaxPollAttempts are the defaults handed to jobs
	// created by PDFSplit.
	PollInterval    time.Duration
	MaxPollAttempts int

	// Debug enables request/retry/poll logging. With a nil Logger a
	// stderr logger is installed; setting Logger implies Debug.
	Debug  bool
	Logger Logger

	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	ExtraHeaders http.Header

	BeforeRequest []RequestHook
	AfterResponse []ResponseHook
}

// ConfigParams provides optional overrides for building a Config.
type ConfigParams struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	TimeoutSeconds float64
	MaxRetries     *int

	PollInterval    time.Duration
	MaxPollAttempts int

	Debug  *bool
	Logger Logger

	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	ExtraHeaders http.Header

	BeforeRequest []RequestHook
	AfterResponse []ResponseHook
}

const (
	defaultBaseURL         = "https://www.renamed.to/api/v1"
	defaultTimeout         = 30 * time.Second
	defaultMaxRetries      = 2
	defaultPollInterval    = 2 * time.Second
	defaultMaxPollAttempts = 150 // 5 minutes at 2s intervals
	defaultRetryInitial    = 200 * time.Millisecond
	defaultRetryMax        = 30 * time.Second
	defaultRetryMultiplier = 2.0
)

// LoadConfig builds a Config from parameters or environment variables.
// Environment fallbacks:
//
//	RENAMED_API_KEY, RENAMED_BASE_URL, RENAMED_TIMEOUT, RENAMED_MAX_RETRIES,
//	RENAMED_DEBUG, RENAMED_POLL_INTERVAL, RENAMED_MAX_POLL_ATTEMPTS.
func LoadConfig(apiKey, baseURL string, timeoutSeconds float64, maxRetries int) (Config, error) {
	params := ConfigParams{
		APIKey:         apiKey,
		BaseURL:        baseURL,
		TimeoutSeconds: timeoutSeconds,
	}
	if maxRetries != 0 {
		params.MaxRetries = &maxRetries
	}
	return LoadConfigWithParams(params)
}

// LoadConfigWithParams is an extended constructor that accepts structured options.
func LoadConfigWithParams(params ConfigParams) (Config, error) {
	envMaxRetries, envMaxRetriesSet, err := parseEnvInt("RENAMED_MAX_RETRIES")
	if err != nil {
		return Config{}, err
	}
	envPollAttempts, envPollAttemptsSet, err := parseEnvInt("RENAMED_MAX_POLL_ATTEMPTS")
	if err != nil {
		return Config{}, err
	}
	envPollInterval, err := parseEnvDuration("RENAMED_POLL_INTERVAL", time.Second)
	if err != nil {
		return Config{}, err
	}

	maxRetries := defaultMaxRetries
	if envMaxRetriesSet {
		maxRetries = envMaxRetries
	}
	if params.MaxRetries != nil {
		maxRetries = *params.MaxRetries
	}

	maxPollAttempts := defaultMaxPollAttempts
	if envPollAttemptsSet {
		maxPollAttempts = envPollAttempts
	}
	if params.MaxPollAttempts != 0 {
		maxPollAttempts = params.MaxPollAttempts
	}

	cfg := Config{
		APIKey:               firstNonEmpty(params.APIKey, os.Getenv("RENAMED_API_KEY")),
		BaseURL:              firstNonEmpty(params.BaseURL, os.Getenv("RENAMED_BASE_URL"), defaultBaseURL),
		MaxRetries:           maxRetries,
		PollInterval:         firstNonZeroDuration(params.PollInterval, envPollInterval, defaultPollInterval),
		MaxPollAttempts:      maxPollAttempts,
		Logger:               params.Logger,
		RetryInitialInterval: firstNonZeroDuration(params.RetryInitialInterval, defaultRetryInitial),
		RetryMaxInterval:     firstNonZeroDuration(params.RetryMaxInterval, defaultRetryMax),
		RetryMultiplier:      params.RetryMultiplier,
		ExtraHeaders:         cloneHeaders(params.ExtraHeaders),
		BeforeRequest:        params.BeforeRequest,
		AfterResponse:        params.AfterResponse,
	}
	if cfg.RetryMultiplier == 0 {
		cfg.RetryMultiplier = defaultRetryMultiplier
	}

	if params.Debug != nil {
		cfg.Debug = *params.Debug
	} else if env := os.Getenv("RENAMED_DEBUG"); env != "" {
		val, err := strconv.ParseBool(env)
		if err != nil {
			return Config{}, fmt.Errorf("parse RENAMED_DEBUG: %w", err)
		}
		cfg.Debug = val
	}
	// A caller-supplied logger implies debug output.
	if cfg.Logger != nil {
		cfg.Debug = true
	}

	if params.Timeout > 0 {
		cfg.Timeout = params.Timeout
	} else if params.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(params.TimeoutSeconds * float64(time.Second))
	} else if envTimeout, err := parseEnvDuration("RENAMED_TIMEOUT", time.Second); err != nil {
		return Config{}, err
	} else if envTimeout > 0 {
		cfg.Timeout = envTimeout
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("timeout must be non-negative")
	}

	if cfg.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	if cfg.MaxRetries < 0 {
		return Config{}, fmt.Errorf("max retries must be >= 0")
	}
	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("poll interval must be positive")
	}
	if cfg.MaxPollAttempts <= 0 {
		return Config{}, fmt.Errorf("max poll attempts must be positive")
	}
	if cfg.RetryInitialInterval <= 0 || cfg.RetryMaxInterval <= 0 {
		return Config{}, fmt.Errorf("retry intervals must be positive")
	}
	if cfg.RetryMultiplier < 1 {
		return Config{}, fmt.Errorf("retry multiplier must be >= 1")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZeroDuration(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func parseEnvInt(env string) (int, bool, error) {
	val, ok := os.LookupEnv(env)
	if !ok || val == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, true, fmt.Errorf("parse %s: %w", env, err)
	}
	return parsed, true, nil
}

func parseEnvDuration(env string, numericUnit time.Duration) (time.Duration, error) {
	val := os.Getenv(env)
	if val == "" {
		return 0, nil
	}
	if duration, err := time.ParseDuration(val); err == nil {
		return duration, nil
	}
	seconds, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", env, err)
	}
	return time.Duration(seconds * float64(numericUnit)), nil
}

func cloneHeaders(h http.Header) http.Header {
	if h == nil {
		return http.Header{}
	}
	clone := http.Header{}
	for k, vals := range h {
		clone[k] = append([]string(nil), vals...)
	}
	return clone
}
