// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/loadout"
)

const rifleColumns = `id, user_id, name, brand, manufacturer, generation_variant,
	model, caliber, barrel, action, stock, scope_id, ammunition_id, is_active,
	notes, serial_number, overall_length, weight, capacity, finish, sight_type,
	sight_optic, sight_model, sight_height, purchase_date, modifications,
	created_at, updated_at`

const scopeColumns = `id, user_id, manufacturer, model, tube_size, focal_plane,
	reticle, tracking_units, click_value, total_travel, zero_data, notes,
	created_at, updated_at`

const ammunitionColumns = `id, user_id, name, manufacturer, caliber, bullet,
	powder, primer, brass, velocity, es, sd, lot_number, count, price,
	temp_stable, notes, cartridge_type, case_material, primer_type,
	pressure_class, sectional_density, recoil_energy, powder_charge,
	powder_type, chronograph_fps, created_at, updated_at`

const maintenanceColumns = `id, user_id, rifle_id, title, type, interval,
	last_completed, current_count, torque_spec, notes, created_at, updated_at`

// CreateRifle inserts a rifle. Referenced scope and ammunition must
// belong to the same user; the linked records are loaded onto the
// rifle for the response.
func (s *Store) CreateRifle(ctx context.Context, rifle *loadout.Rifle) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create rifle: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: create rifle: %w", err)
	}
	defer endTransaction(&err)

	if err = s.checkRifleReferences(conn, rifle); err != nil {
		return err
	}

	now := s.now()
	rifle.ID = uuid.NewString()
	rifle.CreatedAt = now
	rifle.UpdatedAt = now

	err = sqlitex.Execute(conn, `INSERT INTO rifles
		(id, user_id, name, brand, manufacturer, generation_variant, model,
		 caliber, barrel, action, stock, scope_id, ammunition_id, is_active,
		 notes, serial_number, overall_length, weight, capacity, finish,
		 sight_type, sight_optic, sight_model, sight_height, purchase_date,
		 modifications, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: rifleArgs(rifle)})
	if err != nil {
		return fmt.Errorf("store: create rifle: %w", err)
	}

	return s.resolveRifleLinks(conn, rifle)
}

// Rifles returns all of a user's rifles with their linked scope and
// ammunition records resolved.
func (s *Store) Rifles(ctx context.Context, userID string) ([]loadout.Rifle, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list rifles: %w", err)
	}
	defer s.pool.Put(conn)

	return s.listRifles(conn, userID)
}

func (s *Store) listRifles(conn *sqlite.Conn, userID string) ([]loadout.Rifle, error) {
	rifles := []loadout.Rifle{}
	query := fmt.Sprintf(`SELECT %s FROM rifles WHERE user_id = ? ORDER BY created_at`, rifleColumns)
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{userID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rifles = append(rifles, *readRifle(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: list rifles: %w", err)
	}
	for i := range rifles {
		if err := s.resolveRifleLinks(conn, &rifles[i]); err != nil {
			return nil, err
		}
	}
	return rifles, nil
}

// RifleByID returns one of the user's rifles with links resolved.
func (s *Store) RifleByID(ctx context.Context, id, userID string) (*loadout.Rifle, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: find rifle: %w", err)
	}
	defer s.pool.Put(conn)

	rifle, err := s.findRifle(conn, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveRifleLinks(conn, rifle); err != nil {
		return nil, err
	}
	return rifle, nil
}

func (s *Store) findRifle(conn *sqlite.Conn, id, userID string) (*loadout.Rifle, error) {
	var rifle *loadout.Rifle
	query := fmt.Sprintf(`SELECT %s FROM rifles WHERE id = ? AND user_id = ?`, rifleColumns)
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{id, userID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rifle = readRifle(stmt)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: find rifle: %w", err)
	}
	if rifle == nil {
		return nil, ErrNotFound
	}
	return rifle, nil
}

// UpdateRifle writes the rifle's mutable fields back to its row.
// Referenced scope and ammunition must belong to the same user.
func (s *Store) UpdateRifle(ctx context.Context, rifle *loadout.Rifle) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: update rifle: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: update rifle: %w", err)
	}
	defer endTransaction(&err)

	if err = s.checkRifleReferences(conn, rifle); err != nil {
		return err
	}

	rifle.UpdatedAt = s.now()
	err = sqlitex.Execute(conn, `UPDATE rifles SET
		name = ?, brand = ?, manufacturer = ?, generation_variant = ?,
		model = ?, caliber = ?, barrel = ?, action = ?, stock = ?,
		scope_id = ?, ammunition_id = ?, is_active = ?, notes = ?,
		serial_number = ?, overall_length = ?, weight = ?, capacity = ?,
		finish = ?, sight_type = ?, sight_optic = ?, sight_model = ?,
		sight_height = ?, purchase_date = ?, modifications = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`, &sqlitex.ExecOptions{
		Args: append(rifleArgs(rifle)[2:26],
			timestamp(rifle.UpdatedAt), rifle.ID, rifle.UserID),
	})
	if err != nil {
		return fmt.Errorf("store: update rifle: %w", err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	return s.resolveRifleLinks(conn, rifle)
}

// DeleteRifle removes a rifle. Maintenance tasks and ballistic
// records logged against it are removed by the schema's cascades.
func (s *Store) DeleteRifle(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "rifles", id, userID)
}

// SetActiveRifle marks one rifle active and clears the flag on the
// user's others.
func (s *Store) SetActiveRifle(ctx context.Context, id, userID string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: set active rifle: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: set active rifle: %w", err)
	}
	defer endTransaction(&err)

	if _, err = s.findRifle(conn, id, userID); err != nil {
		return err
	}

	now := timestamp(s.now())
	err = sqlitex.Execute(conn,
		`UPDATE rifles SET is_active = 0, updated_at = ? WHERE user_id = ? AND is_active = 1`,
		&sqlitex.ExecOptions{Args: []any{now, userID}})
	if err != nil {
		return fmt.Errorf("store: set active rifle: %w", err)
	}
	err = sqlitex.Execute(conn,
		`UPDATE rifles SET is_active = 1, updated_at = ? WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{now, id}})
	if err != nil {
		return fmt.Errorf("store: set active rifle: %w", err)
	}
	return nil
}

// SetRifleScope attaches a scope to a rifle, or detaches it when
// scopeID is nil. The scope must belong to the same user.
func (s *Store) SetRifleScope(ctx context.Context, rifleID, userID string, scopeID *string) error {
	return s.setRifleLink(ctx, rifleID, userID, scopeID, "scopes", "scope_id")
}

// SetRifleAmmunition attaches an ammunition record to a rifle, or
// detaches it when ammunitionID is nil.
func (s *Store) SetRifleAmmunition(ctx context.Context, rifleID, userID string, ammunitionID *string) error {
	return s.setRifleLink(ctx, rifleID, userID, ammunitionID, "ammunition", "ammunition_id")
}

func (s *Store) setRifleLink(ctx context.Context, rifleID, userID string, linkID *string, table, column string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: set rifle %s: %w", column, err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: set rifle %s: %w", column, err)
	}
	defer endTransaction(&err)

	if linkID != nil {
		if err = s.checkOwned(conn, table, *linkID, userID); err != nil {
			return err
		}
	}

	query := fmt.Sprintf(`UPDATE rifles SET %s = ?, updated_at = ? WHERE id = ? AND user_id = ?`, column)
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{textOrNil(linkID), timestamp(s.now()), rifleID, userID},
	})
	if err != nil {
		return fmt.Errorf("store: set rifle %s: %w", column, err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	return nil
}

// checkRifleReferences verifies the rifle's scope and ammunition
// links belong to the rifle's owner.
func (s *Store) checkRifleReferences(conn *sqlite.Conn, rifle *loadout.Rifle) error {
	if rifle.ScopeID != nil {
		if err := s.checkOwned(conn, "scopes", *rifle.ScopeID, rifle.UserID); err != nil {
			return err
		}
	}
	if rifle.AmmunitionID != nil {
		if err := s.checkOwned(conn, "ammunition", *rifle.AmmunitionID, rifle.UserID); err != nil {
			return err
		}
	}
	return nil
}

// resolveRifleLinks loads the scope and ammunition records referenced
// by the rifle onto its embedded fields.
func (s *Store) resolveRifleLinks(conn *sqlite.Conn, rifle *loadout.Rifle) error {
	rifle.Scope = nil
	rifle.Ammunition = nil
	if rifle.ScopeID != nil {
		scope, err := s.findScope(conn, *rifle.ScopeID, rifle.UserID)
		if err != nil {
			return err
		}
		rifle.Scope = scope
	}
	if rifle.AmmunitionID != nil {
		ammunition, err := s.findAmmunition(conn, *rifle.AmmunitionID, rifle.UserID)
		if err != nil {
			return err
		}
		rifle.Ammunition = ammunition
	}
	return nil
}

// CreateAmmunition inserts an ammunition record.
func (s *Store) CreateAmmunition(ctx context.Context, ammunition *loadout.Ammunition) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create ammunition: %w", err)
	}
	defer s.pool.Put(conn)

	now := s.now()
	ammunition.ID = uuid.NewString()
	ammunition.CreatedAt = now
	ammunition.UpdatedAt = now

	err = sqlitex.Execute(conn, `INSERT INTO ammunition
		(id, user_id, name, manufacturer, caliber, bullet, powder, primer,
		 brass, velocity, es, sd, lot_number, count, price, temp_stable,
		 notes, cartridge_type, case_material, primer_type, pressure_class,
		 sectional_density, recoil_energy, powder_charge, powder_type,
		 chronograph_fps, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: ammunitionArgs(ammunition)})
	if err != nil {
		return fmt.Errorf("store: create ammunition: %w", err)
	}
	return nil
}

// AmmunitionList returns all of a user's ammunition records.
func (s *Store) AmmunitionList(ctx context.Context, userID string) ([]loadout.Ammunition, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list ammunition: %w", err)
	}
	defer s.pool.Put(conn)

	return s.listAmmunition(conn, userID)
}

func (s *Store) listAmmunition(conn *sqlite.Conn, userID string) ([]loadout.Ammunition, error) {
	records := []loadout.Ammunition{}
	query := fmt.Sprintf(`SELECT %s FROM ammunition WHERE user_id = ? ORDER BY created_at`, ammunitionColumns)
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{userID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			records = append(records, *readAmmunition(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: list ammunition: %w", err)
	}
	return records, nil
}

// AmmunitionByID returns one of the user's ammunition records.
func (s *Store) AmmunitionByID(ctx context.Context, id, userID string) (*loadout.Ammunition, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: find ammunition: %w", err)
	}
	defer s.pool.Put(conn)

	return s.findAmmunition(conn, id, userID)
}

func (s *Store) findAmmunition(conn *sqlite.Conn, id, userID string) (*loadout.Ammunition, error) {
	var record *loadout.Ammunition
	query := fmt.Sprintf(`SELECT %s FROM ammunition WHERE id = ? AND user_id = ?`, ammunitionColumns)
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{id, userID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			record = readAmmunition(stmt)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: find ammunition: %w", err)
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// UpdateAmmunition writes the record's mutable fields back to its row.
func (s *Store) UpdateAmmunition(ctx context.Context, ammunition *loadout.Ammunition) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: update ammunition: %w", err)
	}
	defer s.pool.Put(conn)

	ammunition.UpdatedAt = s.now()
	err = sqlitex.Execute(conn, `UPDATE ammunition SET
		name = ?, manufacturer = ?, caliber = ?, bullet = ?, powder = ?,
		primer = ?, brass = ?, velocity = ?, es = ?, sd = ?, lot_number = ?,
		count = ?, price = ?, temp_stable = ?, notes = ?, cartridge_type = ?,
		case_material = ?, primer_type = ?, pressure_class = ?,
		sectional_density = ?, recoil_energy = ?, powder_charge = ?,
		powder_type = ?, chronograph_fps = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`, &sqlitex.ExecOptions{
		Args: append(ammunitionArgs(ammunition)[2:26],
			timestamp(ammunition.UpdatedAt), ammunition.ID, ammunition.UserID),
	})
	if err != nil {
		return fmt.Errorf("store: update ammunition: %w", err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAmmunition removes an ammunition record. Rifles referencing
// it are detached; its DOPE, chronograph, and calculation rows are
// removed by the schema's cascades.
func (s *Store) DeleteAmmunition(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "ammunition", id, userID)
}

// CreateScope inserts a scope.
func (s *Store) CreateScope(ctx context.Context, scope *loadout.Scope) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create scope: %w", err)
	}
	defer s.pool.Put(conn)

	now := s.now()
	scope.ID = uuid.NewString()
	scope.CreatedAt = now
	scope.UpdatedAt = now
	if len(scope.ZeroData) == 0 {
		scope.ZeroData = json.RawMessage("[]")
	}

	err = sqlitex.Execute(conn, `INSERT INTO scopes
		(id, user_id, manufacturer, model, tube_size, focal_plane, reticle,
		 tracking_units, click_value, total_travel, zero_data, notes,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: scopeArgs(scope)})
	if err != nil {
		return fmt.Errorf("store: create scope: %w", err)
	}
	return nil
}

// Scopes returns all of a user's scopes.
func (s *Store) Scopes(ctx context.Context, userID string) ([]loadout.Scope, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list scopes: %w", err)
	}
	defer s.pool.Put(conn)

	return s.listScopes(conn, userID)
}

func (s *Store) listScopes(conn *sqlite.Conn, userID string) ([]loadout.Scope, error) {
	scopes := []loadout.Scope{}
	query := fmt.Sprintf(`SELECT %s FROM scopes WHERE user_id = ? ORDER BY created_at`, scopeColumns)
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{userID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			scopes = append(scopes, *readScope(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: list scopes: %w", err)
	}
	return scopes, nil
}

// ScopeByID returns one of the user's scopes.
func (s *Store) ScopeByID(ctx context.Context, id, userID string) (*loadout.Scope, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: find scope: %w", err)
	}
	defer s.pool.Put(conn)

	return s.findScope(conn, id, userID)
}

func (s *Store) findScope(conn *sqlite.Conn, id, userID string) (*loadout.Scope, error) {
	var scope *loadout.Scope
	query := fmt.Sprintf(`SELECT %s FROM scopes WHERE id = ? AND user_id = ?`, scopeColumns)
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{id, userID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			scope = readScope(stmt)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: find scope: %w", err)
	}
	if scope == nil {
		return nil, ErrNotFound
	}
	return scope, nil
}

// UpdateScope writes the scope's mutable fields back to its row.
func (s *Store) UpdateScope(ctx context.Context, scope *loadout.Scope) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: update scope: %w", err)
	}
	defer s.pool.Put(conn)

	scope.UpdatedAt = s.now()
	err = sqlitex.Execute(conn, `UPDATE scopes SET
		manufacturer = ?, model = ?, tube_size = ?, focal_plane = ?,
		reticle = ?, tracking_units = ?, click_value = ?, total_travel = ?,
		zero_data = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`, &sqlitex.ExecOptions{
		Args: append(scopeArgs(scope)[2:12],
			timestamp(scope.UpdatedAt), scope.ID, scope.UserID),
	})
	if err != nil {
		return fmt.Errorf("store: update scope: %w", err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteScope removes a scope. Rifles referencing it are detached by
// the schema's SET NULL.
func (s *Store) DeleteScope(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "scopes", id, userID)
}

// CreateMaintenance inserts a maintenance task. The rifle must belong
// to the same user.
func (s *Store) CreateMaintenance(ctx context.Context, task *loadout.Maintenance) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create maintenance: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: create maintenance: %w", err)
	}
	defer endTransaction(&err)

	if err = s.checkOwned(conn, "rifles", task.RifleID, task.UserID); err != nil {
		return err
	}

	now := s.now()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	err = sqlitex.Execute(conn, `INSERT INTO maintenance
		(id, user_id, rifle_id, title, type, interval, last_completed,
		 current_count, torque_spec, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{
			task.ID,
			task.UserID,
			task.RifleID,
			task.Title,
			task.Type,
			string(task.Interval),
			nullableTimestamp(task.LastCompleted),
			int64(task.CurrentCount),
			textOrNil(task.TorqueSpec),
			textOrNil(task.Notes),
			timestamp(task.CreatedAt),
			timestamp(task.UpdatedAt),
		},
	})
	if err != nil {
		return fmt.Errorf("store: create maintenance: %w", err)
	}
	return nil
}

// MaintenanceList returns all of a user's maintenance tasks.
func (s *Store) MaintenanceList(ctx context.Context, userID string) ([]loadout.Maintenance, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list maintenance: %w", err)
	}
	defer s.pool.Put(conn)

	return s.listMaintenance(conn, userID)
}

func (s *Store) listMaintenance(conn *sqlite.Conn, userID string) ([]loadout.Maintenance, error) {
	tasks := []loadout.Maintenance{}
	query := fmt.Sprintf(`SELECT %s FROM maintenance WHERE user_id = ? ORDER BY created_at`, maintenanceColumns)
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{userID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			tasks = append(tasks, *readMaintenance(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: list maintenance: %w", err)
	}
	return tasks, nil
}

// CompleteMaintenance stamps a task as completed now and resets its
// round counter.
func (s *Store) CompleteMaintenance(ctx context.Context, id, userID string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: complete maintenance: %w", err)
	}
	defer s.pool.Put(conn)

	now := timestamp(s.now())
	err = sqlitex.Execute(conn, `UPDATE maintenance
		SET last_completed = ?, current_count = 0, updated_at = ?
		WHERE id = ? AND user_id = ?`, &sqlitex.ExecOptions{
		Args: []any{now, now, id, userID},
	})
	if err != nil {
		return fmt.Errorf("store: complete maintenance: %w", err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMaintenance removes a maintenance task.
func (s *Store) DeleteMaintenance(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "maintenance", id, userID)
}

// LoadoutSummary assembles the full equipment overview for a user on
// a single connection.
func (s *Store) LoadoutSummary(ctx context.Context, userID string) (*loadout.Summary, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: loadout summary: %w", err)
	}
	defer s.pool.Put(conn)

	rifles, err := s.listRifles(conn, userID)
	if err != nil {
		return nil, err
	}
	ammunition, err := s.listAmmunition(conn, userID)
	if err != nil {
		return nil, err
	}
	scopes, err := s.listScopes(conn, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.listMaintenance(conn, userID)
	if err != nil {
		return nil, err
	}

	summary := &loadout.Summary{
		Rifles:      rifles,
		Ammunition:  ammunition,
		Scopes:      scopes,
		Maintenance: tasks,
		Summary: loadout.SummaryCounts{
			TotalRifles:      len(rifles),
			TotalAmmunition:  len(ammunition),
			TotalScopes:      len(scopes),
			TotalMaintenance: len(tasks),
		},
	}
	for i := range tasks {
		if tasks[i].LastCompleted == nil {
			summary.Summary.MaintenanceDue++
		}
	}
	for i := range rifles {
		if rifles[i].IsActive {
			summary.Summary.ActiveRifle = &rifles[i]
			break
		}
	}
	return summary, nil
}

// checkOwned verifies a row exists in the table and belongs to the
// user. The table name is always one of the fixed schema tables.
func (s *Store) checkOwned(conn *sqlite.Conn, table, id, userID string) error {
	found := false
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ? AND user_id = ?`, table)
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args:       []any{id, userID},
		ResultFunc: func(*sqlite.Stmt) error { found = true; return nil },
	})
	if err != nil {
		return fmt.Errorf("store: checking %s reference: %w", table, err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *Store) deleteOwned(ctx context.Context, table, id, userID string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: delete from %s: %w", table, err)
	}
	defer s.pool.Put(conn)

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, table)
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: []any{id, userID}})
	if err != nil {
		return fmt.Errorf("store: delete from %s: %w", table, err)
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	return nil
}

func rifleArgs(rifle *loadout.Rifle) []any {
	return []any{
		rifle.ID,
		rifle.UserID,
		rifle.Name,
		rifle.Brand,
		rifle.Manufacturer,
		rifle.GenerationVariant,
		rifle.Model,
		rifle.Caliber,
		jsonOrNil(rifle.Barrel),
		jsonOrNil(rifle.Action),
		jsonOrNil(rifle.Stock),
		textOrNil(rifle.ScopeID),
		textOrNil(rifle.AmmunitionID),
		boolArg(rifle.IsActive),
		textOrNil(rifle.Notes),
		textOrNil(rifle.SerialNumber),
		textOrNil(rifle.OverallLength),
		textOrNil(rifle.Weight),
		textOrNil(rifle.Capacity),
		textOrNil(rifle.Finish),
		textOrNil(rifle.SightType),
		textOrNil(rifle.SightOptic),
		textOrNil(rifle.SightModel),
		textOrNil(rifle.SightHeight),
		textOrNil(rifle.PurchaseDate),
		textOrNil(rifle.Modifications),
		timestamp(rifle.CreatedAt),
		timestamp(rifle.UpdatedAt),
	}
}

func readRifle(stmt *sqlite.Stmt) *loadout.Rifle {
	return &loadout.Rifle{
		ID:                stmt.ColumnText(0),
		UserID:            stmt.ColumnText(1),
		Name:              stmt.ColumnText(2),
		Brand:             stmt.ColumnText(3),
		Manufacturer:      stmt.ColumnText(4),
		GenerationVariant: stmt.ColumnText(5),
		Model:             stmt.ColumnText(6),
		Caliber:           stmt.ColumnText(7),
		Barrel:            columnJSON(stmt, 8),
		Action:            columnJSON(stmt, 9),
		Stock:             columnJSON(stmt, 10),
		ScopeID:           columnText(stmt, 11),
		AmmunitionID:      columnText(stmt, 12),
		IsActive:          stmt.ColumnInt64(13) != 0,
		Notes:             columnText(stmt, 14),
		SerialNumber:      columnText(stmt, 15),
		OverallLength:     columnText(stmt, 16),
		Weight:            columnText(stmt, 17),
		Capacity:          columnText(stmt, 18),
		Finish:            columnText(stmt, 19),
		SightType:         columnText(stmt, 20),
		SightOptic:        columnText(stmt, 21),
		SightModel:        columnText(stmt, 22),
		SightHeight:       columnText(stmt, 23),
		PurchaseDate:      columnText(stmt, 24),
		Modifications:     columnText(stmt, 25),
		CreatedAt:         fromTimestamp(stmt.ColumnInt64(26)),
		UpdatedAt:         fromTimestamp(stmt.ColumnInt64(27)),
	}
}

func ammunitionArgs(ammunition *loadout.Ammunition) []any {
	return []any{
		ammunition.ID,
		ammunition.UserID,
		ammunition.Name,
		ammunition.Manufacturer,
		ammunition.Caliber,
		jsonOrNil(ammunition.Bullet),
		textOrNil(ammunition.Powder),
		textOrNil(ammunition.Primer),
		textOrNil(ammunition.Brass),
		intOrNil(ammunition.Velocity),
		intOrNil(ammunition.ES),
		intOrNil(ammunition.SD),
		textOrNil(ammunition.LotNumber),
		int64(ammunition.Count),
		floatOrNil(ammunition.Price),
		boolArg(ammunition.TempStable),
		textOrNil(ammunition.Notes),
		textOrNil(ammunition.CartridgeType),
		textOrNil(ammunition.CaseMaterial),
		textOrNil(ammunition.PrimerType),
		textOrNil(ammunition.PressureClass),
		floatOrNil(ammunition.SectionalDensity),
		floatOrNil(ammunition.RecoilEnergy),
		floatOrNil(ammunition.PowderCharge),
		textOrNil(ammunition.PowderType),
		intOrNil(ammunition.ChronographFPS),
		timestamp(ammunition.CreatedAt),
		timestamp(ammunition.UpdatedAt),
	}
}

func readAmmunition(stmt *sqlite.Stmt) *loadout.Ammunition {
	return &loadout.Ammunition{
		ID:               stmt.ColumnText(0),
		UserID:           stmt.ColumnText(1),
		Name:             stmt.ColumnText(2),
		Manufacturer:     stmt.ColumnText(3),
		Caliber:          stmt.ColumnText(4),
		Bullet:           columnJSON(stmt, 5),
		Powder:           columnText(stmt, 6),
		Primer:           columnText(stmt, 7),
		Brass:            columnText(stmt, 8),
		Velocity:         columnInt(stmt, 9),
		ES:               columnInt(stmt, 10),
		SD:               columnInt(stmt, 11),
		LotNumber:        columnText(stmt, 12),
		Count:            int(stmt.ColumnInt64(13)),
		Price:            columnFloat(stmt, 14),
		TempStable:       stmt.ColumnInt64(15) != 0,
		Notes:            columnText(stmt, 16),
		CartridgeType:    columnText(stmt, 17),
		CaseMaterial:     columnText(stmt, 18),
		PrimerType:       columnText(stmt, 19),
		PressureClass:    columnText(stmt, 20),
		SectionalDensity: columnFloat(stmt, 21),
		RecoilEnergy:     columnFloat(stmt, 22),
		PowderCharge:     columnFloat(stmt, 23),
		PowderType:       columnText(stmt, 24),
		ChronographFPS:   columnInt(stmt, 25),
		CreatedAt:        fromTimestamp(stmt.ColumnInt64(26)),
		UpdatedAt:        fromTimestamp(stmt.ColumnInt64(27)),
	}
}

func scopeArgs(scope *loadout.Scope) []any {
	return []any{
		scope.ID,
		scope.UserID,
		scope.Manufacturer,
		scope.Model,
		textOrNil(scope.TubeSize),
		textOrNil(scope.FocalPlane),
		textOrNil(scope.Reticle),
		textOrNil(scope.TrackingUnits),
		textOrNil(scope.ClickValue),
		jsonOrNil(scope.TotalTravel),
		string(scope.ZeroData),
		textOrNil(scope.Notes),
		timestamp(scope.CreatedAt),
		timestamp(scope.UpdatedAt),
	}
}

func readScope(stmt *sqlite.Stmt) *loadout.Scope {
	scope := &loadout.Scope{
		ID:            stmt.ColumnText(0),
		UserID:        stmt.ColumnText(1),
		Manufacturer:  stmt.ColumnText(2),
		Model:         stmt.ColumnText(3),
		TubeSize:      columnText(stmt, 4),
		FocalPlane:    columnText(stmt, 5),
		Reticle:       columnText(stmt, 6),
		TrackingUnits: columnText(stmt, 7),
		ClickValue:    columnText(stmt, 8),
		TotalTravel:   columnJSON(stmt, 9),
		ZeroData:      columnJSON(stmt, 10),
		Notes:         columnText(stmt, 11),
		CreatedAt:     fromTimestamp(stmt.ColumnInt64(12)),
		UpdatedAt:     fromTimestamp(stmt.ColumnInt64(13)),
	}
	if len(scope.ZeroData) == 0 {
		scope.ZeroData = json.RawMessage("[]")
	}
	return scope
}

func readMaintenance(stmt *sqlite.Stmt) *loadout.Maintenance {
	return &loadout.Maintenance{
		ID:            stmt.ColumnText(0),
		UserID:        stmt.ColumnText(1),
		RifleID:       stmt.ColumnText(2),
		Title:         stmt.ColumnText(3),
		Type:          stmt.ColumnText(4),
		Interval:      columnJSON(stmt, 5),
		LastCompleted: columnTime(stmt, 6),
		CurrentCount:  int(stmt.ColumnInt64(7)),
		TorqueSpec:    columnText(stmt, 8),
		Notes:         columnText(stmt, 9),
		CreatedAt:     fromTimestamp(stmt.ColumnInt64(10)),
		UpdatedAt:     fromTimestamp(stmt.ColumnInt64(11)),
	}
}
