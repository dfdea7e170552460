// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/ballistic"
)

func TestDopeEntriesSortedByDistance(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	rifle := createTestRifle(t, store, user.ID)
	ammunition := createTestAmmunition(t, store, user.ID)

	for _, distance := range []int{600, 100, 300} {
		entry := &ballistic.DopeEntry{
			UserID:       user.ID,
			RifleID:      rifle.ID,
			AmmunitionID: ammunition.ID,
			Distance:     distance,
			Elevation:    "1.0 MIL",
			Windage:      "0.0 MIL",
		}
		if err := store.CreateDopeEntry(ctx, entry); err != nil {
			t.Fatalf("CreateDopeEntry(%d): %v", distance, err)
		}
	}

	entries, err := store.DopeEntries(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("DopeEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	for i, want := range []int{100, 300, 600} {
		if entries[i].Distance != want {
			t.Errorf("entries[%d].Distance = %d, want %d", i, entries[i].Distance, want)
		}
	}
}

func TestDopeEntryReferencesChecked(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	other := createTestUser(t, store)
	rifle := createTestRifle(t, store, user.ID)
	foreignAmmunition := createTestAmmunition(t, store, other.ID)

	entry := &ballistic.DopeEntry{
		UserID:       user.ID,
		RifleID:      rifle.ID,
		AmmunitionID: foreignAmmunition.ID,
		Distance:     300,
		Elevation:    "1.0 MIL",
		Windage:      "0.0 MIL",
	}
	if err := store.CreateDopeEntry(ctx, entry); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateDopeEntry with foreign ammunition = %v, want ErrNotFound", err)
	}
}

func TestZeroEntriesNewestFirst(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	rifle := createTestRifle(t, store, user.ID)

	for _, offset := range []string{"0.5 in low", "0.2 in low", "centered"} {
		entry := &ballistic.ZeroEntry{
			UserID:    user.ID,
			RifleID:   rifle.ID,
			Distance:  100,
			POIOffset: offset,
			Confirmed: offset == "centered",
		}
		if err := store.CreateZeroEntry(ctx, entry); err != nil {
			t.Fatalf("CreateZeroEntry: %v", err)
		}
		fake.Advance(time.Minute)
	}

	entries, err := store.ZeroEntries(ctx, user.ID, rifle.ID)
	if err != nil {
		t.Fatalf("ZeroEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if entries[0].POIOffset != "centered" || !entries[0].Confirmed {
		t.Errorf("entries[0] = %+v, want the newest entry first", entries[0])
	}
}

func TestChronographSessionRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	rifle := createTestRifle(t, store, user.ID)
	ammunition := createTestAmmunition(t, store, user.ID)

	session := &ballistic.ChronographSession{
		UserID:            user.ID,
		RifleID:           rifle.ID,
		AmmunitionID:      ammunition.ID,
		Velocities:        []float64{2701, 2695, 2712, 2698},
		Average:           2701.5,
		ExtremeSpread:     17,
		StandardDeviation: 7.1,
	}
	if err := store.CreateChronographSession(ctx, session); err != nil {
		t.Fatalf("CreateChronographSession: %v", err)
	}

	sessions, err := store.ChronographSessions(ctx, user.ID, rifle.ID)
	if err != nil {
		t.Fatalf("ChronographSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
	if len(sessions[0].Velocities) != 4 || sessions[0].Velocities[2] != 2712 {
		t.Errorf("Velocities = %v, want the stored readings", sessions[0].Velocities)
	}
	if sessions[0].Average != 2701.5 {
		t.Errorf("Average = %v, want 2701.5", sessions[0].Average)
	}
}

func TestTrajectoryResultStoresPayloadVerbatim(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	rifle := createTestRifle(t, store, user.ID)
	ammunition := createTestAmmunition(t, store, user.ID)

	payload := `[{"range":100,"drop":0},{"range":200,"drop":-1.4}]`
	result := &ballistic.TrajectoryResult{
		UserID:               user.ID,
		RifleID:              rifle.ID,
		AmmunitionID:         ammunition.ID,
		BallisticCoefficient: 0.535,
		MuzzleVelocity:       2700,
		TargetDistance:       800,
		WindSpeed:            10,
		WindDirection:        90,
		TrajectoryData:       json.RawMessage(payload),
	}
	if err := store.CreateTrajectoryResult(ctx, result); err != nil {
		t.Fatalf("CreateTrajectoryResult: %v", err)
	}

	results, err := store.TrajectoryResults(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("TrajectoryResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if string(results[0].TrajectoryData) != payload {
		t.Errorf("TrajectoryData = %s, want the verbatim payload", results[0].TrajectoryData)
	}
}

func TestBallisticSummary(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	rifle := createTestRifle(t, store, user.ID)
	ammunition := createTestAmmunition(t, store, user.ID)

	entry := &ballistic.DopeEntry{
		UserID:       user.ID,
		RifleID:      rifle.ID,
		AmmunitionID: ammunition.ID,
		Distance:     300,
		Elevation:    "1.0 MIL",
		Windage:      "0.0 MIL",
	}
	if err := store.CreateDopeEntry(ctx, entry); err != nil {
		t.Fatalf("CreateDopeEntry: %v", err)
	}
	zero := &ballistic.ZeroEntry{
		UserID:    user.ID,
		RifleID:   rifle.ID,
		Distance:  100,
		POIOffset: "centered",
		Confirmed: true,
	}
	if err := store.CreateZeroEntry(ctx, zero); err != nil {
		t.Fatalf("CreateZeroEntry: %v", err)
	}

	summary, err := store.BallisticSummary(ctx, user.ID, rifle.ID)
	if err != nil {
		t.Fatalf("BallisticSummary: %v", err)
	}
	if summary.DopeCount != 1 || summary.ZeroCount != 1 {
		t.Errorf("counts = %d dope, %d zero, want 1 each", summary.DopeCount, summary.ZeroCount)
	}
	if summary.LatestZero == nil || summary.LatestZero.ID != zero.ID {
		t.Error("LatestZero missing from summary")
	}
	if summary.ChronographCount != 0 || summary.LatestChronograph != nil {
		t.Error("summary reports chronograph data that was never logged")
	}

	// Summary for someone else's rifle is not disclosed.
	other := createTestUser(t, store)
	if _, err := store.BallisticSummary(ctx, other.ID, rifle.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign BallisticSummary = %v, want ErrNotFound", err)
	}
}

func TestAllBallisticDataFiltersByRifle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	first := createTestRifle(t, store, user.ID)
	second := createTestRifle(t, store, user.ID)
	ammunition := createTestAmmunition(t, store, user.ID)

	for _, rifleID := range []string{first.ID, second.ID} {
		entry := &ballistic.DopeEntry{
			UserID:       user.ID,
			RifleID:      rifleID,
			AmmunitionID: ammunition.ID,
			Distance:     300,
			Elevation:    "1.0 MIL",
			Windage:      "0.0 MIL",
		}
		if err := store.CreateDopeEntry(ctx, entry); err != nil {
			t.Fatalf("CreateDopeEntry: %v", err)
		}
	}

	all, err := store.AllBallisticData(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("AllBallisticData: %v", err)
	}
	if len(all.Dope) != 2 {
		t.Errorf("unfiltered dope count = %d, want 2", len(all.Dope))
	}

	filtered, err := store.AllBallisticData(ctx, user.ID, first.ID)
	if err != nil {
		t.Fatalf("AllBallisticData(filtered): %v", err)
	}
	if len(filtered.Dope) != 1 || filtered.Dope[0].RifleID != first.ID {
		t.Errorf("filtered dope = %+v, want only rifle %s", filtered.Dope, first.ID)
	}
}

func TestDeleteRifleCascadesBallisticData(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	rifle := createTestRifle(t, store, user.ID)
	ammunition := createTestAmmunition(t, store, user.ID)

	entry := &ballistic.DopeEntry{
		UserID:       user.ID,
		RifleID:      rifle.ID,
		AmmunitionID: ammunition.ID,
		Distance:     300,
		Elevation:    "1.0 MIL",
		Windage:      "0.0 MIL",
	}
	if err := store.CreateDopeEntry(ctx, entry); err != nil {
		t.Fatalf("CreateDopeEntry: %v", err)
	}

	if err := store.DeleteRifle(ctx, rifle.ID, user.ID); err != nil {
		t.Fatalf("DeleteRifle: %v", err)
	}

	entries, err := store.DopeEntries(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("DopeEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d after rifle delete, want 0", len(entries))
	}
}
