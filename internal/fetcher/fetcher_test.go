package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestValidateURL(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantError bool
	}{
		{name: "http url", input: "http://example.com"},
		{name: "https url", input: "https://example.com/path?q=1"},
		{name: "surrounding whitespace", input: "  https://example.com  "},
		{name: "missing scheme", input: "example.com", wantError: true},
		{name: "unsupported scheme", input: "ftp://example.com", wantError: true},
		{name: "javascript scheme", input: "javascript:alert(1)", wantError: true},
		{name: "no host", input: "https://", wantError: true},
		{name: "empty", input: "", wantError: true},
		{name: "relative path", input: "/about", wantError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateURL(tc.input)

			if tc.wantError {
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("expected ErrInvalidURL for %q, got %v", tc.input, err)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error for %q: %v", tc.input, err)
			}
		})
	}
}

func TestFetch_Success(t *testing.T) {
	const page = "<html><head><title>Test</title></head><body>hello</body></html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	f := New(WithHTTPClient(server.Client()))

	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.HTML != page {
		t.Errorf("expected body %q, got %q", page, result.HTML)
	}

	if result.ByteSize != len(page) {
		t.Errorf("expected byte size %d, got %d", len(page), result.ByteSize)
	}

	if result.FinalURL != server.URL {
		t.Errorf("expected final url %q, got %q", server.URL, result.FinalURL)
	}

	if result.Headers.Get("X-Frame-Options") != "DENY" {
		t.Error("expected response headers to be captured")
	}

	if result.ResponseTime <= 0 {
		t.Error("expected a positive response time")
	}
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var gotUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	f := New(WithHTTPClient(server.Client()), WithUserAgent("custom-agent/2.0"))

	if _, err := f.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotUA != "custom-agent/2.0" {
		t.Errorf("expected custom user agent, got %q", gotUA)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	f := New(WithHTTPClient(server.Client()))

	result, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FinalURL != server.URL+"/final" {
		t.Errorf("expected final url %q, got %q", server.URL+"/final", result.FinalURL)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		f := New(WithHTTPClient(server.Client()))

		_, err := f.Fetch(context.Background(), server.URL)
		server.Close()

		if err == nil {
			t.Fatalf("expected error for status %d", status)
		}

		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected *FetchError, got %T", err)
		}

		if fetchErr.StatusCode != status {
			t.Errorf("expected status code %d, got %d", status, fetchErr.StatusCode)
		}
	}
}

func TestFetch_InvalidURLBeforeIO(t *testing.T) {
	f := New()

	_, err := f.Fetch(context.Background(), "not-a-url")
	if !errors.Is(err, ErrInvalidURL) {
		t.Errorf("expected ErrInvalidURL, got %v", err)
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	f := New(WithHTTPClient(server.Client()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, server.URL)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
}
