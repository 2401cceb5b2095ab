package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/acelabs/ace/internal/adapters/memory"
)

const currentBody = `{
	"cod": 200,
	"weather": [{"description": "light rain"}],
	"main": {"temp": 11.5}
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestCurrent(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "london" {
			t.Errorf("expected location london, got %q", got)
		}
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("expected api key in query, got %q", got)
		}
		fmt.Fprint(w, currentBody)
	})

	client := NewClient("test-key", WithBaseURL(server.URL))

	report, err := client.Current(context.Background(), "london")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Location != "London" {
		t.Errorf("expected title-cased location, got %q", report.Location)
	}
	if report.Condition != "light rain" {
		t.Errorf("unexpected condition %q", report.Condition)
	}
	if report.Temp != 11.5 {
		t.Errorf("unexpected temp %v", report.Temp)
	}
	if report.Units != "C" {
		t.Errorf("expected metric units, got %q", report.Units)
	}
}

func TestCurrent_HomeFallback(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "paris" {
			t.Errorf("expected home location paris, got %q", got)
		}
		fmt.Fprint(w, currentBody)
	})

	client := NewClient("test-key", WithBaseURL(server.URL), WithHomeLocation("paris"))

	if _, err := client.Current(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCurrent_NoLocation(t *testing.T) {
	client := NewClient("test-key")

	_, err := client.Current(context.Background(), "  ")
	if !errors.Is(err, ErrNoLocation) {
		t.Errorf("expected ErrNoLocation, got %v", err)
	}
}

func TestCurrent_StatusErrors(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"401", ErrInvalidKey},
		{"404", ErrNotFound},
		{"429", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				// Error bodies carry "cod" as a string, unlike successes.
				fmt.Fprintf(w, `{"cod": "%s", "message": "nope"}`, tt.code)
			})

			client := NewClient("test-key", WithBaseURL(server.URL))

			_, err := client.Current(context.Background(), "london")
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTomorrow_AggregatesForecast(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	tomorrow := "2026-03-15"

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"cod": "200",
			"list": [
				{"dt_txt": "%[1]s 09:00:00", "weather": [{"description": "few clouds"}], "main": {"temp": 10}},
				{"dt_txt": "%[1]s 12:00:00", "weather": [{"description": "light rain"}], "main": {"temp": 12}},
				{"dt_txt": "%[1]s 15:00:00", "weather": [{"description": "light rain"}], "main": {"temp": 14.3}},
				{"dt_txt": "2026-03-16 09:00:00", "weather": [{"description": "snow"}], "main": {"temp": -5}}
			]
		}`, tomorrow)
	})

	client := NewClient("test-key", WithBaseURL(server.URL))
	client.now = func() time.Time { return now }

	report, err := client.Tomorrow(context.Background(), "london")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Condition != "light rain" {
		t.Errorf("expected most common condition, got %q", report.Condition)
	}
	if report.Temp != 12.1 {
		t.Errorf("expected mean of tomorrow's temps rounded to 2dp, got %v", report.Temp)
	}
}

func TestFetch_UsesCache(t *testing.T) {
	var hits int
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, currentBody)
	})

	client := NewClient("test-key",
		WithBaseURL(server.URL),
		WithCache(memory.NewCache(), time.Hour),
	)

	ctx := context.Background()
	for range 3 {
		if _, err := client.Current(ctx, "london"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if hits != 1 {
		t.Errorf("expected a single upstream request, got %d", hits)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"london", "London"},
		{"new york", "New York"},
		{"San Francisco", "San Francisco"},
		{"épernay", "Épernay"},
		{"são paulo", "São Paulo"},
	}

	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
