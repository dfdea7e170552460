// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rifleaxis-foundation/rifleaxis/lib/authtoken"
	"github.com/rifleaxis-foundation/rifleaxis/lib/webapi"
)

type contextKey int

const (
	claimsKey contextKey = iota
	loggerKey
)

// claimsFrom returns the verified token claims attached by the
// authentication middleware. Panics if the handler was not wrapped;
// that is a route wiring bug, not a request condition.
func claimsFrom(ctx context.Context) *authtoken.Claims {
	claims, ok := ctx.Value(claimsKey).(*authtoken.Claims)
	if !ok {
		panic("claimsFrom: handler not wrapped in authentication middleware")
	}
	return claims
}

// userIDFrom is shorthand for the authenticated user's ID.
func userIDFrom(request *http.Request) string {
	return claimsFrom(request.Context()).UserID
}

// authenticated requires a valid access token in the Authorization
// header and attaches the claims to the request context.
func (s *apiServer) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return s.requireToken(authtoken.KindAccess, next)
}

// refreshAuthenticated is authenticated but for refresh tokens. Only
// the token refresh route uses it.
func (s *apiServer) refreshAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return s.requireToken(authtoken.KindRefresh, next)
}

func (s *apiServer) requireToken(kind authtoken.Kind, next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		header := request.Header.Get("Authorization")
		if header == "" {
			webapi.Unauthorized(writer, "Authorization header is required")
			return
		}
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			webapi.Unauthorized(writer, "Authorization header must be a Bearer token")
			return
		}

		claims, err := s.authority.Verify(raw, kind)
		if err != nil {
			switch {
			case errors.Is(err, authtoken.ErrTokenExpired):
				webapi.Unauthorized(writer, "Token has expired")
			case errors.Is(err, authtoken.ErrTokenRevoked):
				webapi.Unauthorized(writer, "Token has been revoked")
			default:
				webapi.Unauthorized(writer, "Invalid token")
			}
			return
		}

		ctx := context.WithValue(request.Context(), claimsKey, claims)
		next(writer, request.WithContext(ctx))
	}
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// log returns the request-scoped logger attached by logRequests. It
// carries the request ID, method, and path, so handler error lines
// correlate with the access log. Falls back to the server logger for
// code running outside the middleware chain.
func (s *apiServer) log(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return s.logger
}

// logRequests assigns each request an ID, attaches a request-scoped
// logger to the context, and emits one access-log line with the ID,
// method, path, status, and duration.
func (s *apiServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := s.clock.Now()
		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		logger := s.logger.With(
			"requestId", uuid.NewString(),
			"method", request.Method,
			"path", request.URL.Path,
		)
		ctx := context.WithValue(request.Context(), loggerKey, logger)

		next.ServeHTTP(recorder, request.WithContext(ctx))

		logger.Info("request",
			"status", recorder.status,
			"duration", s.clock.Now().Sub(start).Round(time.Microsecond).String(),
		)
	})
}
