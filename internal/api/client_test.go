package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rickgao/kalshi-baskets/internal/auth"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.example.com/trade-api/v2", nil)

		if c.baseURL != "https://api.example.com/trade-api/v2" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://api.example.com/trade-api/v2")
		}
		if c.basePath != "/trade-api/v2" {
			t.Errorf("basePath = %q, want %q", c.basePath, "/trade-api/v2")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.retryBackoff != time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
		if c.HasCredentials() {
			t.Error("HasCredentials() = true for nil creds")
		}
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		c := NewClient("https://api.example.com/trade-api/v2/", nil)
		if c.baseURL != "https://api.example.com/trade-api/v2" {
			t.Errorf("baseURL = %q, want trimmed", c.baseURL)
		}
	})

	t.Run("with options", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://api.example.com", nil,
			WithTimeout(15*time.Second),
			WithRetries(10, 500*time.Millisecond),
			WithLogger(logger),
		)
		if c.httpClient.Timeout != 15*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 15*time.Second)
		}
		if c.maxRetries != 10 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 10)
		}
		if c.retryBackoff != 500*time.Millisecond {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 500*time.Millisecond)
		}
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{
			StatusCode: 404,
			Message:    "Not Found",
		}
		expected := "kalshi api error 404: Not Found"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("IsRetryable", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{500, true},
			{502, true},
			{503, true},
			{429, true},
			{400, false},
			{401, false},
			{404, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() for status %d = %v, want %v", tt.code, got, tt.expected)
			}
		}
	})

	t.Run("message extracted from wrapped error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"code": "insufficient_balance", "message": "not enough funds"}}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, WithRetries(0, time.Millisecond))
		_, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil, nil)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T: %v", err, err)
		}
		if apiErr.Message != "not enough funds" {
			t.Errorf("Message = %q, want %q", apiErr.Message, "not enough funds")
		}
	})
}

// TestDoRequest_Signing tests that authenticated requests carry signed headers.
func TestDoRequest_Signing(t *testing.T) {
	creds := testCredentials(t)

	t.Run("signed headers present", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("KALSHI-ACCESS-KEY") != "test-key" {
				t.Errorf("KALSHI-ACCESS-KEY = %q, want %q", r.Header.Get("KALSHI-ACCESS-KEY"), "test-key")
			}
			if r.Header.Get("KALSHI-ACCESS-TIMESTAMP") == "" {
				t.Error("KALSHI-ACCESS-TIMESTAMP missing")
			}
			if r.Header.Get("KALSHI-ACCESS-SIGNATURE") == "" {
				t.Error("KALSHI-ACCESS-SIGNATURE missing")
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, creds)
		if _, err := c.doRequest(context.Background(), http.MethodGet, "/markets", nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("fresh timestamp per call", func(t *testing.T) {
		var timestamps []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timestamps = append(timestamps, r.Header.Get("KALSHI-ACCESS-TIMESTAMP"))
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, creds)
		for i := 0; i < 2; i++ {
			if _, err := c.doRequest(context.Background(), http.MethodGet, "/markets", nil, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			time.Sleep(5 * time.Millisecond)
		}

		if len(timestamps) != 2 || timestamps[0] == "" {
			t.Fatalf("expected 2 timestamps, got %v", timestamps)
		}
		if timestamps[0] == timestamps[1] {
			t.Error("timestamp was reused across calls")
		}
	})

	t.Run("unsigned without credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("KALSHI-ACCESS-KEY") != "" {
				t.Error("unexpected KALSHI-ACCESS-KEY on unauthenticated client")
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)
		if _, err := c.doRequest(context.Background(), http.MethodGet, "/markets", nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

// TestDoRequest_Timeout tests that timeouts surface as ErrGatewayTimeout.
func TestDoRequest_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, WithTimeout(20*time.Millisecond))
	_, err := c.doRequest(context.Background(), http.MethodGet, "/slow", nil, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrGatewayTimeout) {
		t.Errorf("expected ErrGatewayTimeout, got %v", err)
	}
}

// TestDoWithRetry tests the retry logic for reads.
func TestDoWithRetry(t *testing.T) {
	t.Run("retries on 5xx and succeeds", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&attempts, 1)
			if n < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"ok": true}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, WithRetries(3, 10*time.Millisecond))
		body, err := c.doWithRetry(context.Background(), http.MethodGet, "/test", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != `{"ok": true}` {
			t.Errorf("body = %q, want %q", string(body), `{"ok": true}`)
		}
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}
	})

	t.Run("does not retry on 4xx", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, WithRetries(3, 10*time.Millisecond))
		_, err := c.doWithRetry(context.Background(), http.MethodGet, "/test", nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
	})

	t.Run("max retries exceeded", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, WithRetries(2, 10*time.Millisecond))
		_, err := c.doWithRetry(context.Background(), http.MethodGet, "/test", nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "max retries exceeded") {
			t.Errorf("error should contain 'max retries exceeded', got %v", err)
		}
		// 1 initial + 2 retries = 3 attempts
		if attempts != 3 {
			t.Errorf("attempts = %d, want 3", attempts)
		}
	})

	t.Run("context cancellation during retry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, nil, WithRetries(5, 50*time.Millisecond))
		ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
		defer cancel()

		_, err := c.doWithRetry(ctx, http.MethodGet, "/test", nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "context") {
			t.Errorf("error should be context-related, got %v", err)
		}
	})
}

// testCredentials returns throwaway signing credentials.
func testCredentials(t *testing.T) *auth.Credentials {
	t.Helper()
	key, err := generateTestKey()
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}
	return &auth.Credentials{KeyID: "test-key", PrivateKey: key}
}
