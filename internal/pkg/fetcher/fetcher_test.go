package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/warmstack/primer/internal/pkg/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:     baseURL,
		MediaType:   "application/json",
		Username:    "alice",
		Password:    "s3cret",
		APIKey:      "test-key",
		UserAgent:   "primer/test",
		MaxRetry:    2,
		RetryDelay:  time.Millisecond,
		HTTPTimeout: 5 * time.Second,
	}
}

func TestFetchSetsHeaders(t *testing.T) {
	var gotAccept, gotAPIKey, gotUA string
	var gotBasic bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAPIKey = r.Header.Get("api-key")
		gotUA = r.Header.Get("User-Agent")
		user, pass, ok := r.BasicAuth()
		gotBasic = ok && user == "alice" && pass == "s3cret"
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_links": {}}`))
	}))
	defer server.Close()

	f, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result := f.Fetch(context.Background(), "/mdr/sdtm/1-8")
	if result.Err != nil {
		t.Fatalf("Fetch() error = %v", result.Err)
	}

	if gotAccept != "application/json" {
		t.Errorf("Accept header = %q, want application/json", gotAccept)
	}
	if gotAPIKey != "test-key" {
		t.Errorf("api-key header = %q, want test-key", gotAPIKey)
	}
	if gotUA != "primer/test" {
		t.Errorf("User-Agent = %q, want primer/test", gotUA)
	}
	if !gotBasic {
		t.Error("expected basic auth credentials")
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", result.StatusCode)
	}
	if result.ContentType != "application/json" {
		t.Errorf("ContentType = %q, want application/json", result.ContentType)
	}
}

func TestFetchRetriesServerErrorsThenFails(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result := f.Fetch(context.Background(), "/broken")

	// maxRetry=2 means 3 attempts total
	if got := hits.Load(); got != 3 {
		t.Errorf("server hits = %d, want 3", got)
	}
	if result.Attempts != 3 {
		t.Errorf("result.Attempts = %d, want 3", result.Attempts)
	}
	if result.Class != ErrorClassTransient {
		t.Errorf("result.Class = %v, want transient", result.Class)
	}
	if result.Err == nil {
		t.Error("expected an error after exhausted retries")
	}
}

func TestFetchRecoversWithinRetryBudget(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	f, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result := f.Fetch(context.Background(), "/flaky")
	if result.Err != nil {
		t.Fatalf("Fetch() error = %v, want recovery on third attempt", result.Err)
	}
	if result.Attempts != 3 {
		t.Errorf("result.Attempts = %d, want 3", result.Attempts)
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	tests := []struct {
		status int
		class  ErrorClass
	}{
		{http.StatusUnauthorized, ErrorClassAuth},
		{http.StatusForbidden, ErrorClassAuth},
		{http.StatusNotFound, ErrorClassHTTP},
		{http.StatusGone, ErrorClassHTTP},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var hits atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			f, err := New(testConfig(server.URL))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			result := f.Fetch(context.Background(), "/protected")

			if got := hits.Load(); got != 1 {
				t.Errorf("server hits = %d, want 1 (no retry)", got)
			}
			if result.Class != tt.class {
				t.Errorf("result.Class = %v, want %v", result.Class, tt.class)
			}
			if result.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", result.StatusCode, tt.status)
			}
		})
	}
}

func TestURLResolution(t *testing.T) {
	f, err := New(testConfig("https://library.example.org/api"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		resource string
		want     string
	}{
		{"/mdr/sdtm/1-8", "https://library.example.org/api/mdr/sdtm/1-8"},
		{"mdr/sdtm/1-8", "https://library.example.org/api/mdr/sdtm/1-8"},
		{"https://other.example.org/x", "https://other.example.org/x"},
	}

	for _, tt := range tests {
		if got := f.URL(tt.resource); got != tt.want {
			t.Errorf("URL(%q) = %q, want %q", tt.resource, got, tt.want)
		}
	}
}
