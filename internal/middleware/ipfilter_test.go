package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBlocklist(t *testing.T) {
	bl := NewBlocklist()

	if bl.IsBlocked("192.0.2.1") {
		t.Error("fresh blocklist should not block anything")
	}

	bl.Block("192.0.2.1")
	if !bl.IsBlocked("192.0.2.1") {
		t.Error("blocked address should be reported blocked")
	}

	bl.Unblock("192.0.2.1")
	if bl.IsBlocked("192.0.2.1") {
		t.Error("unblocked address should no longer be blocked")
	}
}

func TestIPFilterMiddleware(t *testing.T) {
	bl := NewBlocklist()
	bl.Block("192.0.2.1")

	handler := IPFilter(bl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("blocked client: status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.2:4000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want %d", rec.Code, http.StatusOK)
	}
}
