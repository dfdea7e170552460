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

	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/ballistic"
)

const dopeColumns = `id, user_id, rifle_id, ammunition_id, distance,
	elevation, windage, notes, created_at, updated_at`

const zeroColumns = `id, user_id, rifle_id, distance, poi_offset,
	confirmed, notes, created_at, updated_at`

const chronographColumns = `id, user_id, rifle_id, ammunition_id, velocities,
	average, extreme_spread, standard_deviation, notes, created_at, updated_at`

const calculationColumns = `id, user_id, rifle_id, ammunition_id,
	ballistic_coefficient, muzzle_velocity, target_distance, wind_speed,
	wind_direction, trajectory_data, notes, created_at, updated_at`

// CreateDopeEntry inserts a DOPE entry. The rifle and ammunition must
// belong to the entry's owner.
func (s *Store) CreateDopeEntry(ctx context.Context, entry *ballistic.DopeEntry) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create dope entry: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: create dope entry: %w", err)
	}
	defer endTransaction(&err)

	if err = s.checkOwned(conn, "rifles", entry.RifleID, entry.UserID); err != nil {
		return err
	}
	if err = s.checkOwned(conn, "ammunition", entry.AmmunitionID, entry.UserID); err != nil {
		return err
	}

	now := s.now()
	entry.ID = uuid.NewString()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	err = sqlitex.Execute(conn, `INSERT INTO dope_entries
		(id, user_id, rifle_id, ammunition_id, distance, elevation, windage,
		 notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{
			entry.ID,
			entry.UserID,
			entry.RifleID,
			entry.AmmunitionID,
			int64(entry.Distance),
			entry.Elevation,
			entry.Windage,
			textOrNil(entry.Notes),
			timestamp(entry.CreatedAt),
			timestamp(entry.UpdatedAt),
		},
	})
	if err != nil {
		return fmt.Errorf("store: create dope entry: %w", err)
	}
	return nil
}

// DopeEntries returns a user's DOPE entries sorted by distance,
// optionally filtered to one rifle.
func (s *Store) DopeEntries(ctx context.Context, userID, rifleID string) ([]ballistic.DopeEntry, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list dope entries: %w", err)
	}
	defer s.pool.Put(conn)

	return s.listDopeEntries(conn, userID, rifleID)
}

func (s *Store) listDopeEntries(conn *sqlite.Conn, userID, rifleID string) ([]ballistic.DopeEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM dope_entries WHERE user_id = ?`, dopeColumns)
	args := []any{userID}
	if rifleID != "" {
		query += ` AND rifle_id = ?`
		args = append(args, rifleID)
	}
	query += ` ORDER BY distance`

	entries := []ballistic.DopeEntry{}
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			entries = append(entries, *readDopeEntry(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: list dope entries: %w", err)
	}
	return entries, nil
}

// DeleteDopeEntry removes a DOPE entry.
func (s *Store) DeleteDopeEntry(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "dope_entries", id, userID)
}

// CreateZeroEntry inserts a zero confirmation. The rifle must belong
// to the entry's owner.
func (s *Store) CreateZeroEntry(ctx context.Context, entry *ballistic.ZeroEntry) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create zero entry: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: create zero entry: %w", err)
	}
	defer endTransaction(&err)

	if err = s.checkOwned(conn, "rifles", entry.RifleID, entry.UserID); err != nil {
		return err
	}

	now := s.now()
	entry.ID = uuid.NewString()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	err = sqlitex.Execute(conn, `INSERT INTO zero_entries
		(id, user_id, rifle_id, distance, poi_offset, confirmed, notes,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{
			entry.ID,
			entry.UserID,
			entry.RifleID,
			int64(entry.Distance),
			entry.POIOffset,
			boolArg(entry.Confirmed),
			textOrNil(entry.Notes),
			timestamp(entry.CreatedAt),
			timestamp(entry.UpdatedAt),
		},
	})
	if err != nil {
		return fmt.Errorf("store: create zero entry: %w", err)
	}
	return nil
}

// ZeroEntries returns a user's zero entries, newest first, optionally
// filtered to one rifle.
func (s *Store) ZeroEntries(ctx context.Context, userID, rifleID string) ([]ballistic.ZeroEntry, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list zero entries: %w", err)
	}
	defer s.pool.Put(conn)

	return s.listZeroEntries(conn, userID, rifleID)
}

func (s *Store) listZeroEntries(conn *sqlite.Conn, userID, rifleID string) ([]ballistic.ZeroEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM zero_entries WHERE user_id = ?`, zeroColumns)
	args := []any{userID}
	if rifleID != "" {
		query += ` AND rifle_id = ?`
		args = append(args, rifleID)
	}
	query += ` ORDER BY created_at DESC`

	entries := []ballistic.ZeroEntry{}
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			entries = append(entries, *readZeroEntry(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: list zero entries: %w", err)
	}
	return entries, nil
}

// DeleteZeroEntry removes a zero entry.
func (s *Store) DeleteZeroEntry(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "zero_entries", id, userID)
}

// CreateChronographSession inserts a chronograph session. The rifle
// and ammunition must belong to the session's owner.
func (s *Store) CreateChronographSession(ctx context.Context, session *ballistic.ChronographSession) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create chronograph session: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: create chronograph session: %w", err)
	}
	defer endTransaction(&err)

	if err = s.checkOwned(conn, "rifles", session.RifleID, session.UserID); err != nil {
		return err
	}
	if err = s.checkOwned(conn, "ammunition", session.AmmunitionID, session.UserID); err != nil {
		return err
	}

	velocities, err := json.Marshal(session.Velocities)
	if err != nil {
		return fmt.Errorf("store: marshal velocities: %w", err)
	}

	now := s.now()
	session.ID = uuid.NewString()
	session.CreatedAt = now
	session.UpdatedAt = now

	err = sqlitex.Execute(conn, `INSERT INTO chronograph_data
		(id, user_id, rifle_id, ammunition_id, velocities, average,
		 extreme_spread, standard_deviation, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{
			session.ID,
			session.UserID,
			session.RifleID,
			session.AmmunitionID,
			string(velocities),
			session.Average,
			session.ExtremeSpread,
			session.StandardDeviation,
			textOrNil(session.Notes),
			timestamp(session.CreatedAt),
			timestamp(session.UpdatedAt),
		},
	})
	if err != nil {
		return fmt.Errorf("store: create chronograph session: %w", err)
	}
	return nil
}

// ChronographSessions returns a user's chronograph sessions, newest
// first, optionally filtered to one rifle.
func (s *Store) ChronographSessions(ctx context.Context, userID, rifleID string) ([]ballistic.ChronographSession, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list chronograph sessions: %w", err)
	}
	defer s.pool.Put(conn)

	return s.listChronographSessions(conn, userID, rifleID)
}

func (s *Store) listChronographSessions(conn *sqlite.Conn, userID, rifleID string) ([]ballistic.ChronographSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM chronograph_data WHERE user_id = ?`, chronographColumns)
	args := []any{userID}
	if rifleID != "" {
		query += ` AND rifle_id = ?`
		args = append(args, rifleID)
	}
	query += ` ORDER BY created_at DESC`

	sessions := []ballistic.ChronographSession{}
	var readErr error
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			session, err := readChronographSession(stmt)
			if err != nil {
				readErr = err
				return err
			}
			sessions = append(sessions, *session)
			return nil
		},
	})
	if readErr != nil {
		return nil, readErr
	}
	if err != nil {
		return nil, fmt.Errorf("store: list chronograph sessions: %w", err)
	}
	return sessions, nil
}

// DeleteChronographSession removes a chronograph session.
func (s *Store) DeleteChronographSession(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "chronograph_data", id, userID)
}

// CreateTrajectoryResult inserts a stored calculation. The rifle and
// ammunition must belong to the result's owner.
func (s *Store) CreateTrajectoryResult(ctx context.Context, result *ballistic.TrajectoryResult) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: create trajectory result: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store: create trajectory result: %w", err)
	}
	defer endTransaction(&err)

	if err = s.checkOwned(conn, "rifles", result.RifleID, result.UserID); err != nil {
		return err
	}
	if err = s.checkOwned(conn, "ammunition", result.AmmunitionID, result.UserID); err != nil {
		return err
	}

	trajectory := result.TrajectoryData
	if len(trajectory) == 0 {
		trajectory = json.RawMessage("null")
		result.TrajectoryData = trajectory
	}

	now := s.now()
	result.ID = uuid.NewString()
	result.CreatedAt = now
	result.UpdatedAt = now

	err = sqlitex.Execute(conn, `INSERT INTO ballistic_calculations
		(id, user_id, rifle_id, ammunition_id, ballistic_coefficient,
		 muzzle_velocity, target_distance, wind_speed, wind_direction,
		 trajectory_data, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{
			result.ID,
			result.UserID,
			result.RifleID,
			result.AmmunitionID,
			result.BallisticCoefficient,
			result.MuzzleVelocity,
			int64(result.TargetDistance),
			result.WindSpeed,
			result.WindDirection,
			string(trajectory),
			textOrNil(result.Notes),
			timestamp(result.CreatedAt),
			timestamp(result.UpdatedAt),
		},
	})
	if err != nil {
		return fmt.Errorf("store: create trajectory result: %w", err)
	}
	return nil
}

// TrajectoryResults returns a user's stored calculations, newest
// first, optionally filtered to one rifle.
func (s *Store) TrajectoryResults(ctx context.Context, userID, rifleID string) ([]ballistic.TrajectoryResult, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list trajectory results: %w", err)
	}
	defer s.pool.Put(conn)

	return s.listTrajectoryResults(conn, userID, rifleID)
}

func (s *Store) listTrajectoryResults(conn *sqlite.Conn, userID, rifleID string) ([]ballistic.TrajectoryResult, error) {
	query := fmt.Sprintf(`SELECT %s FROM ballistic_calculations WHERE user_id = ?`, calculationColumns)
	args := []any{userID}
	if rifleID != "" {
		query += ` AND rifle_id = ?`
		args = append(args, rifleID)
	}
	query += ` ORDER BY created_at DESC`

	results := []ballistic.TrajectoryResult{}
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			results = append(results, *readTrajectoryResult(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store: list trajectory results: %w", err)
	}
	return results, nil
}

// DeleteTrajectoryResult removes a stored calculation.
func (s *Store) DeleteTrajectoryResult(ctx context.Context, id, userID string) error {
	return s.deleteOwned(ctx, "ballistic_calculations", id, userID)
}

// BallisticSummary aggregates one rifle's ballistic records. The
// rifle must belong to the user.
func (s *Store) BallisticSummary(ctx context.Context, userID, rifleID string) (*ballistic.Summary, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: ballistic summary: %w", err)
	}
	defer s.pool.Put(conn)

	if err := s.checkOwned(conn, "rifles", rifleID, userID); err != nil {
		return nil, err
	}

	summary := &ballistic.Summary{RifleID: rifleID}
	counts := map[string]*int{
		"dope_entries":           &summary.DopeCount,
		"zero_entries":           &summary.ZeroCount,
		"chronograph_data":       &summary.ChronographCount,
		"ballistic_calculations": &summary.CalculationCount,
	}
	for table, target := range counts {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = ? AND rifle_id = ?`, table)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{userID, rifleID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				*target = int(stmt.ColumnInt64(0))
				return nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("store: ballistic summary: %w", err)
		}
	}

	zeroEntries, err := s.listZeroEntries(conn, userID, rifleID)
	if err != nil {
		return nil, err
	}
	if len(zeroEntries) > 0 {
		summary.LatestZero = &zeroEntries[0]
	}
	sessions, err := s.listChronographSessions(conn, userID, rifleID)
	if err != nil {
		return nil, err
	}
	if len(sessions) > 0 {
		summary.LatestChronograph = &sessions[0]
	}
	return summary, nil
}

// AllBallisticData bundles every ballistic record for a user,
// optionally filtered to one rifle, on a single connection.
func (s *Store) AllBallisticData(ctx context.Context, userID, rifleID string) (*ballistic.AllData, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: all ballistic data: %w", err)
	}
	defer s.pool.Put(conn)

	dope, err := s.listDopeEntries(conn, userID, rifleID)
	if err != nil {
		return nil, err
	}
	zero, err := s.listZeroEntries(conn, userID, rifleID)
	if err != nil {
		return nil, err
	}
	chronograph, err := s.listChronographSessions(conn, userID, rifleID)
	if err != nil {
		return nil, err
	}
	calculations, err := s.listTrajectoryResults(conn, userID, rifleID)
	if err != nil {
		return nil, err
	}
	return &ballistic.AllData{
		Dope:         dope,
		Zero:         zero,
		Chronograph:  chronograph,
		Calculations: calculations,
	}, nil
}

func readDopeEntry(stmt *sqlite.Stmt) *ballistic.DopeEntry {
	return &ballistic.DopeEntry{
		ID:           stmt.ColumnText(0),
		UserID:       stmt.ColumnText(1),
		RifleID:      stmt.ColumnText(2),
		AmmunitionID: stmt.ColumnText(3),
		Distance:     int(stmt.ColumnInt64(4)),
		Elevation:    stmt.ColumnText(5),
		Windage:      stmt.ColumnText(6),
		Notes:        columnText(stmt, 7),
		CreatedAt:    fromTimestamp(stmt.ColumnInt64(8)),
		UpdatedAt:    fromTimestamp(stmt.ColumnInt64(9)),
	}
}

func readZeroEntry(stmt *sqlite.Stmt) *ballistic.ZeroEntry {
	return &ballistic.ZeroEntry{
		ID:        stmt.ColumnText(0),
		UserID:    stmt.ColumnText(1),
		RifleID:   stmt.ColumnText(2),
		Distance:  int(stmt.ColumnInt64(3)),
		POIOffset: stmt.ColumnText(4),
		Confirmed: stmt.ColumnInt64(5) != 0,
		Notes:     columnText(stmt, 6),
		CreatedAt: fromTimestamp(stmt.ColumnInt64(7)),
		UpdatedAt: fromTimestamp(stmt.ColumnInt64(8)),
	}
}

func readChronographSession(stmt *sqlite.Stmt) (*ballistic.ChronographSession, error) {
	session := &ballistic.ChronographSession{
		ID:                stmt.ColumnText(0),
		UserID:            stmt.ColumnText(1),
		RifleID:           stmt.ColumnText(2),
		AmmunitionID:      stmt.ColumnText(3),
		Average:           stmt.ColumnFloat(5),
		ExtremeSpread:     stmt.ColumnFloat(6),
		StandardDeviation: stmt.ColumnFloat(7),
		Notes:             columnText(stmt, 8),
		CreatedAt:         fromTimestamp(stmt.ColumnInt64(9)),
		UpdatedAt:         fromTimestamp(stmt.ColumnInt64(10)),
	}
	if err := json.Unmarshal([]byte(stmt.ColumnText(4)), &session.Velocities); err != nil {
		return nil, fmt.Errorf("store: unmarshal velocities for %s: %w", session.ID, err)
	}
	return session, nil
}

func readTrajectoryResult(stmt *sqlite.Stmt) *ballistic.TrajectoryResult {
	return &ballistic.TrajectoryResult{
		ID:                   stmt.ColumnText(0),
		UserID:               stmt.ColumnText(1),
		RifleID:              stmt.ColumnText(2),
		AmmunitionID:         stmt.ColumnText(3),
		BallisticCoefficient: stmt.ColumnFloat(4),
		MuzzleVelocity:       stmt.ColumnFloat(5),
		TargetDistance:       int(stmt.ColumnInt64(6)),
		WindSpeed:            stmt.ColumnFloat(7),
		WindDirection:        stmt.ColumnFloat(8),
		TrajectoryData:       columnJSON(stmt, 9),
		Notes:                columnText(stmt, 10),
		CreatedAt:            fromTimestamp(stmt.ColumnInt64(11)),
		UpdatedAt:            fromTimestamp(stmt.ColumnInt64(12)),
	}
}
