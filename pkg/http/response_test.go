package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return env
}

func TestStatusWord(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "success"},
		{201, "success"},
		{400, "fail"},
		{401, "fail"},
		{403, "fail"},
		{404, "fail"},
		{500, "error"},
	}
	for _, tt := range tests {
		if got := StatusWord(tt.code); got != tt.want {
			t.Errorf("StatusWord(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestWriteToken(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteToken(rec, 201, "tok123", map[string]any{"user": map[string]any{"name": "A"}})

	if rec.Code != 201 {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	env := decode(t, rec)
	if env.Status != "success" || env.Token != "tok123" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if _, ok := env.Data["user"]; !ok {
		t.Error("data.user missing")
	}
}

func TestWriteFail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteUnauthorized(rec, "Incorrect email or password")

	if rec.Code != 401 {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	env := decode(t, rec)
	if env.Status != "fail" || env.Message != "Incorrect email or password" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestWriteUnexpected_ProductionHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteUnexpected(rec, "production", errors.New("pq: connection refused"))

	env := decode(t, rec)
	if env.Detail != "" {
		t.Errorf("production response leaked detail: %q", env.Detail)
	}
	if env.Message != "Something went very wrong!" {
		t.Errorf("unexpected message: %q", env.Message)
	}
}

func TestWriteUnexpected_DevelopmentShowsDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteUnexpected(rec, "development", errors.New("pq: connection refused"))

	env := decode(t, rec)
	if env.Detail != "pq: connection refused" {
		t.Errorf("development response missing detail, got %q", env.Detail)
	}
}
