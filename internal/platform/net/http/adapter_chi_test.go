package http

import (
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChiRouting(t *testing.T) {
	m := chi.NewRouter()
	r := AdaptChi(m)

	r.Get("/ping", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	r.Route("/v1", func(sub Router) {
		sub.Get("/fact", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			_, _ = w.Write([]byte("fact"))
		})
		sub.Group(func(g Router) {
			g.Post("/refresh", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.WriteHeader(stdhttp.StatusAccepted)
			})
		})
	})

	srv := httptest.NewServer(r.Mux())
	defer srv.Close()

	get := func(path string) (int, string) {
		resp, err := stdhttp.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	if code, body := get("/ping"); code != 200 || body != "pong" {
		t.Fatalf("/ping = %d %q", code, body)
	}
	if code, body := get("/v1/fact"); code != 200 || body != "fact" {
		t.Fatalf("/v1/fact = %d %q", code, body)
	}
	resp, err := stdhttp.Post(srv.URL+"/v1/refresh", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /v1/refresh: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusAccepted {
		t.Fatalf("POST /v1/refresh = %d", resp.StatusCode)
	}
	if code, _ := get("/missing"); code != stdhttp.StatusNotFound {
		t.Fatalf("/missing = %d, want 404", code)
	}
}

func TestUseAppliesMiddleware(t *testing.T) {
	m := chi.NewRouter()
	r := AdaptChi(m)
	r.Use(func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set("X-Seen", "1")
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/x", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {})

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/x", nil))
	if rec.Header().Get("X-Seen") != "1" {
		t.Fatal("middleware did not run")
	}
}
