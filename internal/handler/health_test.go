package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vendops/api/internal/handler"
)

func TestHealth(t *testing.T) {
	r := chi.NewRouter()
	handler.NewHealthHandler().RegisterRoutes(r)

	rr := doRequest(t, r, "GET", "/health", nil)
	assertStatus(t, rr, http.StatusOK)

	resp := decodeMap(t, rr)
	if resp["status"] != "OK" {
		t.Errorf("status: got %v, want OK", resp["status"])
	}
	uptime, ok := resp["uptime"].(float64)
	if !ok || uptime < 0 {
		t.Errorf("uptime: got %v", resp["uptime"])
	}
	ts, _ := resp["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", ts, err)
	}
}
