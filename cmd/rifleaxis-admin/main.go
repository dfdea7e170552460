// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

// Rifleaxis-admin manages the RifleAxis SQLite database from the
// command line:
//
//	rifleaxis-admin init   creates the database and schema
//	rifleaxis-admin reset  deletes all data, keeping the schema
//	rifleaxis-admin seed   inserts a demo account with sample gear
//
// init is safe to re-run; the schema is idempotent. reset and seed
// are for development databases, not production ones.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rifleaxis-foundation/rifleaxis/lib/clock"
	"github.com/rifleaxis-foundation/rifleaxis/lib/config"
	"github.com/rifleaxis-foundation/rifleaxis/lib/password"
	"github.com/rifleaxis-foundation/rifleaxis/lib/process"
	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/account"
	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/ballistic"
	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/loadout"
	"github.com/rifleaxis-foundation/rifleaxis/lib/store"
	"github.com/rifleaxis-foundation/rifleaxis/lib/version"
)

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
		version.Print("rifleaxis-admin")
		return nil
	}

	command := flag.Arg(0)
	if command == "" {
		return fmt.Errorf("usage: rifleaxis-admin [--config path] init|reset|seed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

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

	// Opening the store creates the database file and applies the
	// schema, so init needs nothing beyond Open.
	databaseStore, err := store.Open(store.Config{
		Path:     cfg.Database.Path,
		PoolSize: 1,
		Clock:    clock.Real(),
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer databaseStore.Close()

	switch command {
	case "init":
		logger.Info("database initialized", "path", cfg.Database.Path)
		return nil
	case "reset":
		if cfg.Environment == config.Production {
			return fmt.Errorf("refusing to reset a production database")
		}
		if err := databaseStore.DeleteAllData(ctx); err != nil {
			return err
		}
		logger.Info("database reset", "path", cfg.Database.Path)
		return nil
	case "seed":
		if cfg.Environment == config.Production {
			return fmt.Errorf("refusing to seed a production database")
		}
		if err := seed(ctx, databaseStore, logger); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q (want init, reset, or seed)", command)
	}
}

// Demo account credentials. Development only; seed refuses to run
// against a production configuration.
const (
	demoEmail    = "demo@rifleaxis.app"
	demoPassword = "Demo123!pass"
)

// seed inserts a demo user with a small but realistic loadout and a
// few ballistic records, enough to exercise every app screen.
func seed(ctx context.Context, databaseStore *store.Store, logger *slog.Logger) error {
	hash, err := password.Hash(demoPassword)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	user := &account.User{
		FullName:     "Demo Shooter",
		Email:        demoEmail,
		PasswordHash: hash,
		IsActive:     true,
		SignInMethod: account.SignInEmail,
	}
	if err := databaseStore.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return fmt.Errorf("demo account already exists; run reset first")
		}
		return err
	}

	scope := &loadout.Scope{
		UserID:       user.ID,
		Manufacturer: "Vortex",
		Model:        "Razor HD Gen III 6-36x56",
		TubeSize:     stringPointer("34mm"),
		FocalPlane:   stringPointer("FFP"),
		Reticle:      stringPointer("EBR-7D MRAD"),
	}
	if err := databaseStore.CreateScope(ctx, scope); err != nil {
		return err
	}

	ammunition := &loadout.Ammunition{
		UserID:       user.ID,
		Name:         "Match 140gr ELD-M",
		Manufacturer: "Hornady",
		Caliber:      "6.5 Creedmoor",
		Velocity:     intPointer(2710),
		Count:        180,
	}
	if err := databaseStore.CreateAmmunition(ctx, ammunition); err != nil {
		return err
	}

	rifle := &loadout.Rifle{
		UserID:            user.ID,
		Name:              "Match Rifle",
		Brand:             "Tikka",
		Manufacturer:      "Sako",
		GenerationVariant: "Gen 2",
		Model:             "T3x TAC A1",
		Caliber:           "6.5 Creedmoor",
		ScopeID:           &scope.ID,
		AmmunitionID:      &ammunition.ID,
	}
	if err := databaseStore.CreateRifle(ctx, rifle); err != nil {
		return err
	}
	if err := databaseStore.SetActiveRifle(ctx, rifle.ID, user.ID); err != nil {
		return err
	}

	task := &loadout.Maintenance{
		UserID:   user.ID,
		RifleID:  rifle.ID,
		Title:    "Clean barrel",
		Type:     "cleaning",
		Interval: []byte(`{"rounds": 200}`),
	}
	if err := databaseStore.CreateMaintenance(ctx, task); err != nil {
		return err
	}

	zero := &ballistic.ZeroEntry{
		UserID:    user.ID,
		RifleID:   rifle.ID,
		Distance:  100,
		POIOffset: "centered",
		Confirmed: true,
	}
	if err := databaseStore.CreateZeroEntry(ctx, zero); err != nil {
		return err
	}

	for _, entry := range []struct {
		distance  int
		elevation string
	}{
		{200, "0.4 MIL"},
		{400, "1.7 MIL"},
		{600, "3.4 MIL"},
	} {
		dope := &ballistic.DopeEntry{
			UserID:       user.ID,
			RifleID:      rifle.ID,
			AmmunitionID: ammunition.ID,
			Distance:     entry.distance,
			Elevation:    entry.elevation,
			Windage:      "0.0 MIL",
		}
		if err := databaseStore.CreateDopeEntry(ctx, dope); err != nil {
			return err
		}
	}

	logger.Info("seeded demo account", "email", demoEmail, "password", demoPassword)
	return nil
}

func stringPointer(value string) *string { return &value }

func intPointer(value int) *int { return &value }
