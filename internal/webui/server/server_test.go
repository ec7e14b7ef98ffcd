package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vscch/internal/router"
)

func newRouter() *router.Router {
	r := router.New()
	r.Handle("get-environment", func(context.Context, string) (string, error) { return `{"Version":"3.1.0"}`, nil })
	r.Handle("verify-editor", func(_ context.Context, body string) (string, error) {
		if body == "/ok" {
			return "valid", nil
		}
		return "invalid", nil
	})
	r.Handle("save-profile", func(context.Context, string) (string, error) { return "", errors.New("disk full") })
	r.HandleTerminal("finish", func(context.Context, string) (string, error) { return "ok", nil })
	return r
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestOperationRoutes(t *testing.T) {
	s := &Server{Router: newRouter()}
	h := s.Handler()

	if w := post(t, h, "/verify-editor", "/ok"); w.Code != http.StatusOK || w.Body.String() != "valid" {
		t.Fatalf("verify-editor: %d %q", w.Code, w.Body.String())
	}
	if w := post(t, h, "/verifyVscode", "/nope"); w.Code != http.StatusOK || w.Body.String() != "invalid" {
		t.Fatalf("legacy path: %d %q", w.Code, w.Body.String())
	}
	if w := post(t, h, "/getEnv", ""); !strings.Contains(w.Body.String(), "3.1.0") {
		t.Fatalf("legacy get env: %q", w.Body.String())
	}
	if w := post(t, h, "/save-profile", "{}"); w.Code != http.StatusInternalServerError || w.Body.String() != "disk full" {
		t.Fatalf("handler error: %d %q", w.Code, w.Body.String())
	}
	if w := post(t, h, "/get-folder", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unregistered op: %d", w.Code)
	}
	if w := post(t, h, "/done", ""); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("finish: %d %q", w.Code, w.Body.String())
	}
	if w := post(t, h, "/finish", ""); w.Code != http.StatusGone {
		t.Fatalf("after finish: %d", w.Code)
	}
	if w := post(t, h, "/verify-editor", "/ok"); w.Code != http.StatusGone {
		t.Fatalf("after finish: %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := &Server{Router: newRouter()}
	req := httptest.NewRequest(http.MethodOptions, "/get-environment", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight: %d %v", w.Code, w.Header())
	}
}

func TestHealthAndOperations(t *testing.T) {
	s := &Server{Router: newRouter()}
	h := s.Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/operations", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"finish"`) {
		t.Fatalf("operations: %d %s", w.Code, w.Body.String())
	}
}

func TestStartStopsAfterFinish(t *testing.T) {
	s := &Server{Addr: "127.0.0.1:0", Router: newRouter()}
	addr, err := s.Listen()
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	errc := make(chan error, 1)
	go func() { errc <- s.Start(context.Background()) }()

	resp, err := http.Post(fmt.Sprintf("http://%s/finish", addr), "text/plain", strings.NewReader(`{"success":false}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(b) != "ok" {
		t.Fatalf("finish body %q", b)
	}
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after finish")
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	s := &Server{Router: newRouter()}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Start(ctx) }()
	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop on cancel")
	}
}

func TestFrontEndURL(t *testing.T) {
	got, err := FrontEndURL("https://v3.vscch.tk/", 51234)
	if err != nil || got != "https://v3.vscch.tk/?port=51234" {
		t.Fatalf("got %q %v", got, err)
	}
}
