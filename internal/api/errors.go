package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	ghapi "github.com/cli/go-gh/v2/pkg/api"
)

// Common errors
var (
	ErrNotAuthenticated = errors.New("not authenticated - set GITHUB_TOKEN or GH_TOKEN")
	ErrNotFound         = errors.New("resource not found")
	ErrRateLimited      = errors.New("API rate limit exceeded")
	ErrMissingTag       = errors.New("latest release has no tag_name")
)

// APIError wraps GitHub API errors with additional context
type APIError struct {
	Operation string
	Resource  string
	Err       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Resource, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// statusCode returns the HTTP status carried by a go-gh HTTPError, or 0.
func statusCode(err error) int {
	var httpErr *ghapi.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsNotFound checks if an error indicates a resource was not found.
// A repository without any published release also answers 404.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	if err == nil {
		return false
	}
	return statusCode(err) == http.StatusNotFound
}

// IsRateLimited checks if an error indicates rate limiting.
// Detects rate limits via:
//   - Sentinel ErrRateLimited
//   - HTTP 429 status code (any 429 is a rate limit)
//   - HTTP 403 with rate-limit messaging or an exhausted X-RateLimit-Remaining
//
// Non-rate-limit 403 errors (e.g., permission denied) are NOT treated as rate limits.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	if err == nil {
		return false
	}

	var httpErr *ghapi.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests:
			return true
		case http.StatusForbidden:
			if httpErr.Headers != nil && httpErr.Headers.Get("X-RateLimit-Remaining") == "0" {
				return true
			}
			msg := strings.ToLower(httpErr.Message)
			return strings.Contains(msg, "rate limit")
		}
		return false
	}

	return strings.Contains(strings.ToLower(err.Error()), "rate limit")
}

// GetRetryAfter extracts a Retry-After duration from an error, if available.
// Returns 0 if no Retry-After information is present.
func GetRetryAfter(err error) time.Duration {
	var httpErr *ghapi.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Headers == nil {
		return 0
	}
	if s := httpErr.Headers.Get("Retry-After"); s != "" {
		if seconds, parseErr := strconv.Atoi(s); parseErr == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}

// IsAuthError checks if an error indicates authentication issues
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) {
		return true
	}
	if err == nil {
		return false
	}
	return statusCode(err) == http.StatusUnauthorized
}

// WrapError wraps an API error with operation context
func WrapError(operation, resource string, err error) error {
	if err == nil {
		return nil
	}

	if IsRateLimited(err) {
		if wait := GetRetryAfter(err); wait > 0 {
			return &APIError{
				Operation: operation,
				Resource:  resource,
				Err:       fmt.Errorf("%w (retry after %v)", ErrRateLimited, wait),
			}
		}
		return &APIError{
			Operation: operation,
			Resource:  resource,
			Err:       ErrRateLimited,
		}
	}

	if IsNotFound(err) {
		return &APIError{
			Operation: operation,
			Resource:  resource,
			Err:       ErrNotFound,
		}
	}

	if IsAuthError(err) {
		return &APIError{
			Operation: operation,
			Resource:  resource,
			Err:       ErrNotAuthenticated,
		}
	}

	return &APIError{
		Operation: operation,
		Resource:  resource,
		Err:       err,
	}
}
