package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	ghapi "github.com/cli/go-gh/v2/pkg/api"
)

func httpError(status int, message string, headers http.Header) *ghapi.HTTPError {
	if headers == nil {
		headers = http.Header{}
	}
	return &ghapi.HTTPError{StatusCode: status, Message: message, Headers: headers}
}

func TestIsNotFound_WithNotFoundError(t *testing.T) {
	if !IsNotFound(ErrNotFound) {
		t.Error("Expected IsNotFound to return true for ErrNotFound")
	}
}

func TestIsNotFound_WithHTTP404(t *testing.T) {
	err := fmt.Errorf("lookup: %w", httpError(404, "Not Found", nil))
	if !IsNotFound(err) {
		t.Error("Expected IsNotFound to return true for HTTP 404")
	}
}

func TestIsNotFound_WithOtherError(t *testing.T) {
	if IsNotFound(errors.New("some other error")) {
		t.Error("Expected IsNotFound to return false for other errors")
	}
}

func TestIsNotFound_WithNil(t *testing.T) {
	if IsNotFound(nil) {
		t.Error("Expected IsNotFound to return false for nil")
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "sentinel", err: ErrRateLimited, expected: true},
		{name: "wrapped sentinel", err: fmt.Errorf("x: %w", ErrRateLimited), expected: true},
		{name: "http 429", err: httpError(429, "slow down", nil), expected: true},
		{name: "http 403 with rate limit message", err: httpError(403, "API rate limit exceeded", nil), expected: true},
		{name: "http 403 with exhausted quota header", err: httpError(403, "Forbidden", http.Header{"X-Ratelimit-Remaining": []string{"0"}}), expected: true},
		{name: "http 403 permission denied", err: httpError(403, "Resource not accessible by integration", nil), expected: false},
		{name: "http 500", err: httpError(500, "rate limit", nil), expected: false},
		{name: "plain message", err: errors.New("secondary rate limit hit"), expected: true},
		{name: "unrelated", err: errors.New("connection refused"), expected: false},
		{name: "nil", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimited(tt.err); got != tt.expected {
				t.Errorf("IsRateLimited() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetRetryAfter(t *testing.T) {
	err := httpError(429, "slow down", http.Header{"Retry-After": []string{"30"}})
	if got := GetRetryAfter(err); got != 30*time.Second {
		t.Errorf("Expected 30s, got %v", got)
	}

	if got := GetRetryAfter(httpError(429, "slow down", nil)); got != 0 {
		t.Errorf("Expected 0 without header, got %v", got)
	}

	if got := GetRetryAfter(errors.New("plain")); got != 0 {
		t.Errorf("Expected 0 for non-HTTP error, got %v", got)
	}
}

func TestIsAuthError_WithAuthError(t *testing.T) {
	if !IsAuthError(ErrNotAuthenticated) {
		t.Error("Expected IsAuthError to return true for ErrNotAuthenticated")
	}
}

func TestIsAuthError_WithHTTP401(t *testing.T) {
	if !IsAuthError(httpError(401, "Bad credentials", nil)) {
		t.Error("Expected IsAuthError to return true for HTTP 401")
	}
}

func TestIsAuthError_WithOtherError(t *testing.T) {
	if IsAuthError(httpError(500, "boom", nil)) {
		t.Error("Expected IsAuthError to return false for HTTP 500")
	}
	if IsAuthError(nil) {
		t.Error("Expected IsAuthError to return false for nil")
	}
}

func TestAPIError_ErrorAndUnwrap(t *testing.T) {
	err := &APIError{Operation: "fetch latest release", Resource: "a/b", Err: ErrMissingTag}

	if err.Error() != "fetch latest release a/b: latest release has no tag_name" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, ErrMissingTag) {
		t.Error("Expected APIError to unwrap to ErrMissingTag")
	}
}

func TestWrapError_Nil(t *testing.T) {
	if WrapError("op", "res", nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestWrapError_Classification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "not found", err: httpError(404, "Not Found", nil), sentinel: ErrNotFound},
		{name: "rate limited", err: httpError(429, "", nil), sentinel: ErrRateLimited},
		{name: "rate limited with retry-after", err: httpError(429, "", http.Header{"Retry-After": []string{"5"}}), sentinel: ErrRateLimited},
		{name: "unauthorized", err: httpError(401, "Bad credentials", nil), sentinel: ErrNotAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError("fetch latest release", "a/b", tt.err)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %T", err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Expected %v in chain, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestWrapError_KeepsUnclassifiedCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := WrapError("fetch latest release", "a/b", cause)

	if !errors.Is(err, cause) {
		t.Errorf("Expected original cause in chain, got %v", err)
	}
}
