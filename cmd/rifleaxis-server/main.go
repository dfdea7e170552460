// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rifleaxis-foundation/rifleaxis/lib/authtoken"
	"github.com/rifleaxis-foundation/rifleaxis/lib/clock"
	"github.com/rifleaxis-foundation/rifleaxis/lib/config"
	"github.com/rifleaxis-foundation/rifleaxis/lib/googleauth"
	"github.com/rifleaxis-foundation/rifleaxis/lib/httpserver"
	"github.com/rifleaxis-foundation/rifleaxis/lib/mailer"
	"github.com/rifleaxis-foundation/rifleaxis/lib/process"
	"github.com/rifleaxis-foundation/rifleaxis/lib/store"
	"github.com/rifleaxis-foundation/rifleaxis/lib/version"
)

// sweepInterval is how often expired revocations and reset tokens are
// purged. Tokens stay valid for hours, so hourly is plenty.
const sweepInterval = time.Hour

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var configPath string
	var showVersion bool
	flag.StringVar(&configPath, "config", "", "path to rifleaxis.yaml (overrides RIFLEAXIS_CONFIG)")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		version.Print("rifleaxis-server")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	realClock := clock.Real()

	databaseStore, err := store.Open(store.Config{
		Path:     cfg.Database.Path,
		PoolSize: cfg.Database.PoolSize,
		Clock:    realClock,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer databaseStore.Close()

	authority, err := authtoken.NewAuthority(authtoken.AuthorityConfig{
		Secret:     cfg.Auth.JWTSecret,
		AccessTTL:  cfg.Auth.AccessTokenTTL.Std(),
		RefreshTTL: cfg.Auth.RefreshTokenTTL.Std(),
		Clock:      realClock,
	})
	if err != nil {
		return err
	}

	var mail mailer.Mailer
	if cfg.Mail.Enabled {
		mail, err = mailer.New(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			Sender:   cfg.Mail.Sender,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
	} else {
		logger.Info("mail disabled, outbound messages will be logged and dropped")
		mail = mailer.Discard(logger)
	}

	var google googleauth.Verifier
	if cfg.Google.ClientID != "" {
		google, err = googleauth.New(cfg.Google.ClientID)
		if err != nil {
			return err
		}
	} else {
		logger.Info("google sign-in disabled, no client ID configured")
	}

	server := newAPIServer(serverConfig{
		Store:       databaseStore,
		Authority:   authority,
		Mailer:      mail,
		Google:      google,
		Clock:       realClock,
		Logger:      logger,
		Auth:        cfg.Auth,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	go server.sweepExpired(ctx, sweepInterval)

	httpServer := httpserver.New(httpserver.Config{
		Address:         cfg.Server.Address,
		Handler:         server.routes(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
		Logger:          logger,
	})

	go func() {
		select {
		case <-httpServer.Ready():
			logger.Info("rifleaxis server running",
				"address", httpServer.Addr().String(),
				"environment", string(cfg.Environment),
			)
		case <-ctx.Done():
		}
	}()

	return httpServer.Serve(ctx)
}
