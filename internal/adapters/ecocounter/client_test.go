package ecocounter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"velofact/internal/core/timerange"
	perr "velofact/internal/platform/errors"
	"velofact/internal/platform/testkit"
)

const goodFeed = `[["09/02/2019","5.0"],["09/03/2019","5"],["09/04/2019","3.0"],["09/05/2019","1"]]`

func TestParseFeed(t *testing.T) {
	h, err := ParseFeed([]byte(goodFeed))
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if h.Len() != 4 {
		t.Fatalf("got %d days, want 4", h.Len())
	}
	want := map[timerange.Day]int{
		timerange.MustDay(2019, time.September, 1): 0,
		timerange.MustDay(2019, time.September, 2): 5,
		timerange.MustDay(2019, time.September, 3): 5,
		timerange.MustDay(2019, time.September, 4): 3,
	}
	for day, count := range want {
		got, ok := h.Count(day)
		if !ok || got != count {
			t.Fatalf("count for %s = %d ok=%v, want %d", day.Start().Format("2006-01-02"), got, ok, count)
		}
	}
	// the in-progress trailing day never makes it into the history
	if _, ok := h.Count(timerange.MustDay(2019, time.September, 5)); ok {
		t.Fatal("trailing feed element should be dropped")
	}
	if h.Total() != 13 {
		t.Fatalf("total = %d, want 13", h.Total())
	}
}

func TestParseFeedNumericCells(t *testing.T) {
	h, err := ParseFeed([]byte(`[["09/02/2019",5.0],["09/03/2019",7],["09/04/2019",0]]`))
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if got, _ := h.Count(timerange.MustDay(2019, time.September, 3)); got != 7 {
		t.Fatalf("count = %d, want 7", got)
	}
}

func TestParseFeedRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		code perr.ErrorCode
	}{
		{"not a list", `{"a":1}`, perr.ErrorCodeJSON},
		{"empty", `[]`, perr.ErrorCodeValidation},
		{"wrong first day", `[["09/03/2019","5"],["09/04/2019","3"]]`, perr.ErrorCodeValidation},
		{"triple not pair", `[["09/02/2019","5"],["09/03/2019","5","x"],["09/04/2019","3"]]`, perr.ErrorCodeValidation},
		{"bad date", `[["09/02/2019","5"],["2019-09-03","5"],["09/04/2019","3"]]`, perr.ErrorCodeValidation},
		{"bad count", `[["09/02/2019","5"],["09/03/2019","many"],["09/04/2019","3"]]`, perr.ErrorCodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFeed([]byte(tc.body))
			testkit.MustCode(t, err, tc.code)
		})
	}
}

func TestParseFeedTrailingElementExemptFromPairCheck(t *testing.T) {
	// the dropped trailing element may be malformed without failing the parse
	h, err := ParseFeed([]byte(`[["09/02/2019","5"],["09/03/2019","3"],["09/04/2019"]]`))
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if h.Len() != 3 {
		t.Fatalf("got %d days, want 3", h.Len())
	}
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(Options{FeedURL: url, RetryBase: time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	testkit.Swap(t, &c.sleep, func(time.Duration) {})
	return c
}

func TestFetchDaily(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(goodFeed))
	}))
	defer srv.Close()

	h, err := newTestClient(t, srv.URL).FetchDaily(context.Background())
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if method != http.MethodPost {
		t.Fatalf("feed hit with %s, want POST", method)
	}
	if h.Total() != 13 {
		t.Fatalf("total = %d, want 13", h.Total())
	}
}

func TestFetchDailyUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FetchDaily(context.Background())
	testkit.MustCode(t, err, perr.ErrorCodeUpstream)
	if !perr.Retryable(err) {
		t.Fatal("upstream errors should be retryable")
	}
}

func TestFetchDailyRetriesTransient(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(goodFeed))
	}))
	defer srv.Close()

	h, err := newTestClient(t, srv.URL).FetchDaily(context.Background())
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if hits != 3 {
		t.Fatalf("feed hit %d times, want 3", hits)
	}
	if h.Len() != 4 {
		t.Fatalf("got %d days, want 4", h.Len())
	}
}

func TestFetchDailyGivesUpAfterMaxRetries(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := NewClient(Options{FeedURL: srv.URL, MaxRetries: 2, RetryBase: time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	testkit.Swap(t, &c.sleep, func(time.Duration) {})

	_, err = c.FetchDaily(context.Background())
	testkit.MustCode(t, err, perr.ErrorCodeUpstream)
	if hits != 3 {
		t.Fatalf("feed hit %d times, want 3", hits)
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(Options{})
	testkit.MustCode(t, err, perr.ErrorCodeValidation)
}
