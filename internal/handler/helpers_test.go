package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, 201, map[string]string{"message": "created"})

	if rec.Code != 201 {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["message"] != "created" {
		t.Fatalf("body = %+v", body)
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, 404, "Form not found")

	if rec.Code != 404 {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Form not found" {
		t.Fatalf("body = %+v", body)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr only", "10.0.0.1:12345", "", "", "10.0.0.1"},
		{"forwarded for", "10.0.0.1:12345", "203.0.113.7, 10.0.0.2", "", "203.0.113.7"},
		{"real ip", "10.0.0.1:12345", "", "203.0.113.9", "203.0.113.9"},
		{"forwarded wins over real ip", "10.0.0.1:12345", "203.0.113.7", "203.0.113.9", "203.0.113.7"},
	}

	for _, c := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = c.remoteAddr
		if c.xff != "" {
			r.Header.Set("X-Forwarded-For", c.xff)
		}
		if c.xri != "" {
			r.Header.Set("X-Real-IP", c.xri)
		}
		if got := clientIP(r); got != c.want {
			t.Fatalf("%s: clientIP = %q, want %q", c.name, got, c.want)
		}
	}
}
