// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/loadout"
)

func TestRifleCRUD(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	rifle := createTestRifle(t, store, user.ID)
	if rifle.ID == "" {
		t.Fatal("CreateRifle did not assign an ID")
	}

	found, err := store.RifleByID(ctx, rifle.ID, user.ID)
	if err != nil {
		t.Fatalf("RifleByID: %v", err)
	}
	if found.Name != "Match Rifle" {
		t.Errorf("Name = %q, want %q", found.Name, "Match Rifle")
	}

	notes := "bedded action"
	found.Notes = &notes
	found.Barrel = json.RawMessage(`{"length":"24in","twist":"1:8"}`)
	if err := store.UpdateRifle(ctx, found); err != nil {
		t.Fatalf("UpdateRifle: %v", err)
	}

	updated, err := store.RifleByID(ctx, rifle.ID, user.ID)
	if err != nil {
		t.Fatalf("RifleByID: %v", err)
	}
	if updated.Notes == nil || *updated.Notes != notes {
		t.Errorf("Notes = %v, want %q", updated.Notes, notes)
	}
	if string(updated.Barrel) != `{"length":"24in","twist":"1:8"}` {
		t.Errorf("Barrel = %s, want the stored document", updated.Barrel)
	}

	if err := store.DeleteRifle(ctx, rifle.ID, user.ID); err != nil {
		t.Fatalf("DeleteRifle: %v", err)
	}
	if _, err := store.RifleByID(ctx, rifle.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("RifleByID after delete = %v, want ErrNotFound", err)
	}
}

func TestRifleOwnershipIsolation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	owner := createTestUser(t, store)
	intruder := createTestUser(t, store)

	rifle := createTestRifle(t, store, owner.ID)

	if _, err := store.RifleByID(ctx, rifle.ID, intruder.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign RifleByID = %v, want ErrNotFound", err)
	}
	if err := store.DeleteRifle(ctx, rifle.ID, intruder.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign DeleteRifle = %v, want ErrNotFound", err)
	}

	// The rifle is untouched.
	if _, err := store.RifleByID(ctx, rifle.ID, owner.ID); err != nil {
		t.Errorf("owner RifleByID after foreign delete: %v", err)
	}
}

func TestRifleLinksResolvedAndChecked(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	other := createTestUser(t, store)

	scope := createTestScope(t, store, user.ID)
	ammunition := createTestAmmunition(t, store, user.ID)
	foreignScope := createTestScope(t, store, other.ID)

	rifle := &loadout.Rifle{
		UserID:            user.ID,
		Name:              "Hunter",
		Brand:             "Sako",
		Manufacturer:      "Sako",
		GenerationVariant: "90",
		Model:             "Quest",
		Caliber:           "308 Win",
		ScopeID:           &foreignScope.ID,
	}
	if err := store.CreateRifle(ctx, rifle); !errors.Is(err, ErrNotFound) {
		t.Fatalf("CreateRifle with foreign scope = %v, want ErrNotFound", err)
	}

	rifle.ScopeID = &scope.ID
	rifle.AmmunitionID = &ammunition.ID
	if err := store.CreateRifle(ctx, rifle); err != nil {
		t.Fatalf("CreateRifle: %v", err)
	}
	if rifle.Scope == nil || rifle.Scope.ID != scope.ID {
		t.Error("linked scope was not resolved on create")
	}
	if rifle.Ammunition == nil || rifle.Ammunition.ID != ammunition.ID {
		t.Error("linked ammunition was not resolved on create")
	}

	found, err := store.RifleByID(ctx, rifle.ID, user.ID)
	if err != nil {
		t.Fatalf("RifleByID: %v", err)
	}
	if found.Scope == nil || found.Scope.Manufacturer != "Vortex" {
		t.Error("linked scope was not resolved on read")
	}
}

func TestDeleteScopeDetachesRifle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	scope := createTestScope(t, store, user.ID)
	rifle := createTestRifle(t, store, user.ID)
	if err := store.SetRifleScope(ctx, rifle.ID, user.ID, &scope.ID); err != nil {
		t.Fatalf("SetRifleScope: %v", err)
	}

	if err := store.DeleteScope(ctx, scope.ID, user.ID); err != nil {
		t.Fatalf("DeleteScope: %v", err)
	}

	found, err := store.RifleByID(ctx, rifle.ID, user.ID)
	if err != nil {
		t.Fatalf("RifleByID: %v", err)
	}
	if found.ScopeID != nil || found.Scope != nil {
		t.Error("rifle still references a deleted scope")
	}
}

func TestSetRifleLinkDetach(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	ammunition := createTestAmmunition(t, store, user.ID)
	rifle := createTestRifle(t, store, user.ID)

	if err := store.SetRifleAmmunition(ctx, rifle.ID, user.ID, &ammunition.ID); err != nil {
		t.Fatalf("SetRifleAmmunition: %v", err)
	}
	if err := store.SetRifleAmmunition(ctx, rifle.ID, user.ID, nil); err != nil {
		t.Fatalf("SetRifleAmmunition(nil): %v", err)
	}

	found, err := store.RifleByID(ctx, rifle.ID, user.ID)
	if err != nil {
		t.Fatalf("RifleByID: %v", err)
	}
	if found.AmmunitionID != nil {
		t.Error("ammunition still attached after detach")
	}
}

func TestSetActiveRifleClearsOthers(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	first := createTestRifle(t, store, user.ID)
	second := createTestRifle(t, store, user.ID)

	if err := store.SetActiveRifle(ctx, first.ID, user.ID); err != nil {
		t.Fatalf("SetActiveRifle(first): %v", err)
	}
	if err := store.SetActiveRifle(ctx, second.ID, user.ID); err != nil {
		t.Fatalf("SetActiveRifle(second): %v", err)
	}

	rifles, err := store.Rifles(ctx, user.ID)
	if err != nil {
		t.Fatalf("Rifles: %v", err)
	}
	for _, rifle := range rifles {
		want := rifle.ID == second.ID
		if rifle.IsActive != want {
			t.Errorf("rifle %s IsActive = %t, want %t", rifle.ID, rifle.IsActive, want)
		}
	}

	if err := store.SetActiveRifle(ctx, "missing", user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetActiveRifle(missing) = %v, want ErrNotFound", err)
	}
}

func TestMaintenanceLifecycle(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	rifle := createTestRifle(t, store, user.ID)

	task := &loadout.Maintenance{
		UserID:       user.ID,
		RifleID:      rifle.ID,
		Title:        "Barrel cleaning",
		Type:         "cleaning",
		Interval:     json.RawMessage(`{"rounds":200}`),
		CurrentCount: 150,
	}
	if err := store.CreateMaintenance(ctx, task); err != nil {
		t.Fatalf("CreateMaintenance: %v", err)
	}

	tasks, err := store.MaintenanceList(ctx, user.ID)
	if err != nil {
		t.Fatalf("MaintenanceList: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(tasks))
	}
	if tasks[0].LastCompleted != nil {
		t.Error("new task has a completion timestamp")
	}

	if err := store.CompleteMaintenance(ctx, task.ID, user.ID); err != nil {
		t.Fatalf("CompleteMaintenance: %v", err)
	}
	tasks, err = store.MaintenanceList(ctx, user.ID)
	if err != nil {
		t.Fatalf("MaintenanceList: %v", err)
	}
	if tasks[0].LastCompleted == nil || !tasks[0].LastCompleted.Equal(fake.Now().UTC()) {
		t.Errorf("LastCompleted = %v, want %v", tasks[0].LastCompleted, fake.Now().UTC())
	}
	if tasks[0].CurrentCount != 0 {
		t.Errorf("CurrentCount = %d, want 0", tasks[0].CurrentCount)
	}

	// Maintenance for a rifle the user does not own is rejected.
	other := createTestUser(t, store)
	foreign := &loadout.Maintenance{
		UserID:   other.ID,
		RifleID:  rifle.ID,
		Title:    "Scope check",
		Type:     "inspection",
		Interval: json.RawMessage(`{"months":6}`),
	}
	if err := store.CreateMaintenance(ctx, foreign); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateMaintenance(foreign rifle) = %v, want ErrNotFound", err)
	}
}

func TestDeleteRifleCascadesMaintenance(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)
	rifle := createTestRifle(t, store, user.ID)

	task := &loadout.Maintenance{
		UserID:   user.ID,
		RifleID:  rifle.ID,
		Title:    "Barrel cleaning",
		Type:     "cleaning",
		Interval: json.RawMessage(`{"rounds":200}`),
	}
	if err := store.CreateMaintenance(ctx, task); err != nil {
		t.Fatalf("CreateMaintenance: %v", err)
	}

	if err := store.DeleteRifle(ctx, rifle.ID, user.ID); err != nil {
		t.Fatalf("DeleteRifle: %v", err)
	}

	tasks, err := store.MaintenanceList(ctx, user.ID)
	if err != nil {
		t.Fatalf("MaintenanceList: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d after rifle delete, want 0", len(tasks))
	}
}

func TestLoadoutSummary(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	first := createTestRifle(t, store, user.ID)
	createTestRifle(t, store, user.ID)
	createTestAmmunition(t, store, user.ID)
	createTestScope(t, store, user.ID)
	if err := store.SetActiveRifle(ctx, first.ID, user.ID); err != nil {
		t.Fatalf("SetActiveRifle: %v", err)
	}
	task := &loadout.Maintenance{
		UserID:   user.ID,
		RifleID:  first.ID,
		Title:    "Barrel cleaning",
		Type:     "cleaning",
		Interval: json.RawMessage(`{"rounds":200}`),
	}
	if err := store.CreateMaintenance(ctx, task); err != nil {
		t.Fatalf("CreateMaintenance: %v", err)
	}

	summary, err := store.LoadoutSummary(ctx, user.ID)
	if err != nil {
		t.Fatalf("LoadoutSummary: %v", err)
	}
	counts := summary.Summary
	if counts.TotalRifles != 2 || counts.TotalAmmunition != 1 || counts.TotalScopes != 1 {
		t.Errorf("counts = %+v, want 2 rifles, 1 ammunition, 1 scope", counts)
	}
	if counts.TotalMaintenance != 1 || counts.MaintenanceDue != 1 {
		t.Errorf("maintenance counts = %d/%d due, want 1/1", counts.TotalMaintenance, counts.MaintenanceDue)
	}
	if counts.ActiveRifle == nil || counts.ActiveRifle.ID != first.ID {
		t.Error("active rifle missing from summary")
	}
}
