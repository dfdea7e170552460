// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/rifleaxis-foundation/rifleaxis/lib/authtoken"
	"github.com/rifleaxis-foundation/rifleaxis/lib/clock"
	"github.com/rifleaxis-foundation/rifleaxis/lib/config"
	"github.com/rifleaxis-foundation/rifleaxis/lib/googleauth"
	"github.com/rifleaxis-foundation/rifleaxis/lib/mailer"
	"github.com/rifleaxis-foundation/rifleaxis/lib/store"
	"github.com/rifleaxis-foundation/rifleaxis/lib/webapi"
)

// apiServer holds the shared state behind every route handler.
type apiServer struct {
	store     *store.Store
	authority *authtoken.Authority
	mailer    mailer.Mailer

	// google is nil when Google sign-in is not configured; the
	// google-signin route rejects requests in that case.
	google googleauth.Verifier

	clock  clock.Clock
	logger *slog.Logger

	otpTTL        time.Duration
	resetTokenTTL time.Duration
	corsOrigins   []string
}

// serverConfig holds the dependencies for newAPIServer.
type serverConfig struct {
	Store     *store.Store
	Authority *authtoken.Authority
	Mailer    mailer.Mailer

	// Google may be nil to disable Google sign-in.
	Google googleauth.Verifier

	Clock  clock.Clock
	Logger *slog.Logger

	Auth        config.AuthConfig
	CORSOrigins []string
}

// newAPIServer creates the API server. Panics if a required dependency
// is missing; this is a programming error, not a runtime condition.
func newAPIServer(cfg serverConfig) *apiServer {
	if cfg.Store == nil {
		panic("apiServer: Store is required")
	}
	if cfg.Authority == nil {
		panic("apiServer: Authority is required")
	}
	if cfg.Mailer == nil {
		panic("apiServer: Mailer is required")
	}
	if cfg.Clock == nil {
		panic("apiServer: Clock is required")
	}
	if cfg.Logger == nil {
		panic("apiServer: Logger is required")
	}

	return &apiServer{
		store:         cfg.Store,
		authority:     cfg.Authority,
		mailer:        cfg.Mailer,
		google:        cfg.Google,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		otpTTL:        cfg.Auth.OTPTTL.Std(),
		resetTokenTTL: cfg.Auth.ResetTokenTTL.Std(),
		corsOrigins:   cfg.CORSOrigins,
	}
}

// routes builds the full handler chain: method-and-path routing, then
// CORS, then request logging on the outside.
func (s *apiServer) routes() http.Handler {
	mux := http.NewServeMux()

	// Account routes.
	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/google-signin", s.handleGoogleSignIn)
	mux.HandleFunc("POST /api/auth/forgot-password", s.handleForgotPassword)
	mux.HandleFunc("POST /api/auth/verify-otp", s.handleVerifyOTP)
	mux.HandleFunc("POST /api/auth/reset-password", s.handleResetPassword)
	mux.HandleFunc("GET /api/auth/me", s.authenticated(s.handleCurrentUser))
	mux.HandleFunc("POST /api/auth/refresh", s.refreshAuthenticated(s.handleRefresh))
	mux.HandleFunc("POST /api/auth/logout", s.authenticated(s.handleLogout))
	mux.HandleFunc("GET /api/auth/health", serviceHealth("auth", "Auth service is running"))

	// Loadout routes.
	mux.HandleFunc("GET /api/loadout/rifles", s.authenticated(s.handleListRifles))
	mux.HandleFunc("POST /api/loadout/rifles", s.authenticated(s.handleCreateRifle))
	mux.HandleFunc("GET /api/loadout/rifles/{id}", s.authenticated(s.handleGetRifle))
	mux.HandleFunc("PUT /api/loadout/rifles/{id}", s.authenticated(s.handleUpdateRifle))
	mux.HandleFunc("DELETE /api/loadout/rifles/{id}", s.authenticated(s.handleDeleteRifle))
	mux.HandleFunc("POST /api/loadout/rifles/set-active", s.authenticated(s.handleSetActiveRifle))
	mux.HandleFunc("PUT /api/loadout/rifles/{id}/scope", s.authenticated(s.handleSetRifleScope))
	mux.HandleFunc("PUT /api/loadout/rifles/{id}/ammunition", s.authenticated(s.handleSetRifleAmmunition))
	mux.HandleFunc("GET /api/loadout/ammunition", s.authenticated(s.handleListAmmunition))
	mux.HandleFunc("POST /api/loadout/ammunition", s.authenticated(s.handleCreateAmmunition))
	mux.HandleFunc("PUT /api/loadout/ammunition/{id}", s.authenticated(s.handleUpdateAmmunition))
	mux.HandleFunc("DELETE /api/loadout/ammunition/{id}", s.authenticated(s.handleDeleteAmmunition))
	mux.HandleFunc("GET /api/loadout/scopes", s.authenticated(s.handleListScopes))
	mux.HandleFunc("POST /api/loadout/scopes", s.authenticated(s.handleCreateScope))
	mux.HandleFunc("PUT /api/loadout/scopes/{id}", s.authenticated(s.handleUpdateScope))
	mux.HandleFunc("DELETE /api/loadout/scopes/{id}", s.authenticated(s.handleDeleteScope))
	mux.HandleFunc("GET /api/loadout/maintenance", s.authenticated(s.handleListMaintenance))
	mux.HandleFunc("POST /api/loadout/maintenance", s.authenticated(s.handleCreateMaintenance))
	mux.HandleFunc("POST /api/loadout/maintenance/{id}/complete", s.authenticated(s.handleCompleteMaintenance))
	mux.HandleFunc("DELETE /api/loadout/maintenance/{id}", s.authenticated(s.handleDeleteMaintenance))
	mux.HandleFunc("GET /api/loadout/summary", s.authenticated(s.handleLoadoutSummary))
	mux.HandleFunc("GET /api/loadout/health", serviceHealth("loadout", "Loadout service is running"))

	// Ballistic routes.
	mux.HandleFunc("GET /api/ballistic/dope", s.authenticated(s.handleListDope))
	mux.HandleFunc("POST /api/ballistic/dope", s.authenticated(s.handleCreateDope))
	mux.HandleFunc("DELETE /api/ballistic/dope/{id}", s.authenticated(s.handleDeleteDope))
	mux.HandleFunc("GET /api/ballistic/zero", s.authenticated(s.handleListZero))
	mux.HandleFunc("POST /api/ballistic/zero", s.authenticated(s.handleCreateZero))
	mux.HandleFunc("DELETE /api/ballistic/zero/{id}", s.authenticated(s.handleDeleteZero))
	mux.HandleFunc("GET /api/ballistic/chronograph", s.authenticated(s.handleListChronograph))
	mux.HandleFunc("POST /api/ballistic/chronograph", s.authenticated(s.handleCreateChronograph))
	mux.HandleFunc("DELETE /api/ballistic/chronograph/{id}", s.authenticated(s.handleDeleteChronograph))
	mux.HandleFunc("GET /api/ballistic/calculations", s.authenticated(s.handleListCalculations))
	mux.HandleFunc("POST /api/ballistic/calculations", s.authenticated(s.handleCreateCalculation))
	mux.HandleFunc("DELETE /api/ballistic/calculations/{id}", s.authenticated(s.handleDeleteCalculation))
	mux.HandleFunc("GET /api/ballistic/summary", s.authenticated(s.handleBallisticSummary))
	mux.HandleFunc("GET /api/ballistic/all-data", s.authenticated(s.handleAllBallisticData))
	mux.HandleFunc("GET /api/ballistic/health", serviceHealth("ballistic", "Ballistic service is running"))

	mux.HandleFunc("GET /api/health", s.handleHealth)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	})

	return s.logRequests(corsMiddleware.Handler(mux))
}

// serviceHealth returns a static health handler. Health routes are
// unauthenticated so load balancers can probe them.
func serviceHealth(service, message string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		webapi.Success(writer, message, map[string]string{
			"service": service,
			"status":  "healthy",
		})
	}
}

// handleHealth is the top-level health route. Unlike the static
// per-area routes it round-trips a query through the database, so a
// wedged or closed store shows up as unhealthy.
func (s *apiServer) handleHealth(writer http.ResponseWriter, request *http.Request) {
	if err := s.store.Ping(request.Context()); err != nil {
		s.log(request).Error("health check database ping", "error", err)
		webapi.ServerError(writer, "Database connection failed")
		return
	}
	webapi.Success(writer, "RifleAxis API is running", map[string]string{
		"service":  "rifleaxis",
		"status":   "healthy",
		"database": "connected",
	})
}

// sweepExpired periodically drops expired token revocations and
// expired password reset tokens. Runs until ctx is cancelled.
func (s *apiServer) sweepExpired(ctx context.Context, interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			revocations := s.authority.PurgeRevoked()
			resetTokens, err := s.store.PurgeExpiredResetTokens(ctx)
			if err != nil {
				s.logger.Error("purging expired reset tokens", "error", err)
				continue
			}
			if revocations > 0 || resetTokens > 0 {
				s.logger.Info("purged expired auth state",
					"revocations", revocations,
					"resetTokens", resetTokens,
				)
			}
		}
	}
}
