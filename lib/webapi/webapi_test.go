// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package webapi

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

// decodeEnvelope parses a recorded response body.
func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var envelope Envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, recorder.Body.String())
	}
	return envelope
}

func TestSuccess(t *testing.T) {
	recorder := httptest.NewRecorder()
	Success(recorder, "Login successful", map[string]string{"id": "u-1"})

	if recorder.Code != 200 {
		t.Errorf("status = %d, want 200", recorder.Code)
	}
	if got := recorder.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	envelope := decodeEnvelope(t, recorder)
	if !envelope.Success {
		t.Error("success = false, want true")
	}
	if envelope.Message != "Login successful" {
		t.Errorf("message = %q", envelope.Message)
	}
	if envelope.ErrorCode != "" {
		t.Errorf("errorCode = %q, want empty on success", envelope.ErrorCode)
	}
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		invoke func(recorder *httptest.ResponseRecorder)
		status int
		code   string
	}{
		{"domain_error", func(r *httptest.ResponseRecorder) { Error(r, "Incorrect password") }, 400, ""},
		{"validation", func(r *httptest.ResponseRecorder) { ValidationError(r, "Email is required") }, 422, ""},
		{"unauthorized", func(r *httptest.ResponseRecorder) { Unauthorized(r, "Invalid token") }, 401, CodeUnauthorized},
		{"forbidden", func(r *httptest.ResponseRecorder) { Forbidden(r, "Access forbidden") }, 403, CodeForbidden},
		{"not_found", func(r *httptest.ResponseRecorder) { NotFound(r, "Rifle not found") }, 404, CodeNotFound},
		{"server_error", func(r *httptest.ResponseRecorder) { ServerError(r, "Login failed") }, 500, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			tt.invoke(recorder)

			if recorder.Code != tt.status {
				t.Errorf("status = %d, want %d", recorder.Code, tt.status)
			}
			envelope := decodeEnvelope(t, recorder)
			if envelope.Success {
				t.Error("success = true, want false")
			}
			if envelope.ErrorCode != tt.code {
				t.Errorf("errorCode = %q, want %q", envelope.ErrorCode, tt.code)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	t.Run("valid", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com"}`))
		request.Header.Set("Content-Type", "application/json")

		var got payload
		if err := DecodeJSON(request, &got); err != nil {
			t.Fatalf("DecodeJSON: %v", err)
		}
		if got.Email != "a@b.com" {
			t.Errorf("email = %q", got.Email)
		}
	})

	t.Run("charset_parameter_accepted", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com"}`))
		request.Header.Set("Content-Type", "application/json; charset=utf-8")

		var got payload
		if err := DecodeJSON(request, &got); err != nil {
			t.Fatalf("DecodeJSON: %v", err)
		}
	})

	t.Run("wrong_content_type", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com"}`))
		request.Header.Set("Content-Type", "text/plain")

		var got payload
		if err := DecodeJSON(request, &got); !errors.Is(err, ErrNotJSON) {
			t.Fatalf("DecodeJSON = %v, want ErrNotJSON", err)
		}
	})

	t.Run("missing_content_type_with_body", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com"}`))

		var got payload
		if err := DecodeJSON(request, &got); !errors.Is(err, ErrNotJSON) {
			t.Fatalf("DecodeJSON = %v, want ErrNotJSON", err)
		}
	})

	t.Run("empty_body", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(""))
		request.Header.Set("Content-Type", "application/json")

		var got payload
		if err := DecodeJSON(request, &got); err == nil {
			t.Fatal("DecodeJSON with empty body = nil, want error")
		}
	})

	t.Run("malformed_json", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))
		request.Header.Set("Content-Type", "application/json")

		var got payload
		if err := DecodeJSON(request, &got); err == nil {
			t.Fatal("DecodeJSON with malformed body = nil, want error")
		}
	})
}
