// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package webapi defines the JSON envelope every API route speaks and
// the request decoding helpers shared by the handlers.
//
// Every response has the shape:
//
//	{"success": bool, "message": string, "data"?: ..., "errorCode"?: string}
//
// Success responses are 200. Domain failures (wrong password, email
// already registered) are 400 with success=false. Validation failures
// are 422, auth failures 401, ownership failures 403, missing rows
// 404, and unexpected failures 500 with a generic message; internal
// error text never reaches the client.
package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
)

// maxRequestBodySize bounds request payloads. Trajectory result
// payloads are the largest legitimate request at a few hundred KB.
const maxRequestBodySize = 1 << 20 // 1 MB

// Envelope is the wire shape of every response.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// Error codes carried alongside non-200 statuses.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// write serializes an envelope. Encoding failures are logged, not
// surfaced: headers are already written by then.
func write(writer http.ResponseWriter, status int, envelope Envelope) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(envelope); err != nil {
		slog.Error("webapi: encoding response", "error", err)
	}
}

// Success writes a 200 with the given message and optional data.
func Success(writer http.ResponseWriter, message string, data any) {
	write(writer, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a 400 domain failure.
func Error(writer http.ResponseWriter, message string) {
	write(writer, http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// ValidationError writes a 422 for malformed or rule-violating input.
func ValidationError(writer http.ResponseWriter, message string) {
	write(writer, http.StatusUnprocessableEntity, Envelope{Success: false, Message: message})
}

// Unauthorized writes a 401.
func Unauthorized(writer http.ResponseWriter, message string) {
	write(writer, http.StatusUnauthorized, Envelope{Success: false, Message: message, ErrorCode: CodeUnauthorized})
}

// Forbidden writes a 403.
func Forbidden(writer http.ResponseWriter, message string) {
	write(writer, http.StatusForbidden, Envelope{Success: false, Message: message, ErrorCode: CodeForbidden})
}

// NotFound writes a 404.
func NotFound(writer http.ResponseWriter, message string) {
	write(writer, http.StatusNotFound, Envelope{Success: false, Message: message, ErrorCode: CodeNotFound})
}

// ServerError writes a 500 with a caller-chosen generic message. The
// underlying error is the caller's to log, never the client's to see.
func ServerError(writer http.ResponseWriter, message string) {
	write(writer, http.StatusInternalServerError, Envelope{Success: false, Message: message, ErrorCode: CodeInternal})
}

// ErrNotJSON is returned by DecodeJSON when the request does not
// declare a JSON content type.
var ErrNotJSON = errors.New("webapi: request must be JSON")

// DecodeJSON parses the request body into destination. The body is
// capped at 1 MB and must carry a JSON content type. Callers map
// ErrNotJSON and parse errors to a 422.
func DecodeJSON(request *http.Request, destination any) error {
	contentType := request.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return ErrNotJSON
		}
	} else if request.ContentLength != 0 {
		return ErrNotJSON
	}

	body := http.MaxBytesReader(nil, request.Body, maxRequestBodySize)
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(destination); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("webapi: empty request body")
		}
		return fmt.Errorf("webapi: parsing request body: %w", err)
	}
	return nil
}
