// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package store

// schemaSQL is the full database schema, applied on every Open. All
// statements are idempotent.
//
// Timestamps are Unix nanoseconds in INTEGER columns. Free-form
// client documents (barrel, interval, trajectory_data, ...) are JSON
// in TEXT columns.
//
// Deleting a user removes everything they own. Deleting a rifle
// removes its maintenance tasks and ballistic records. Deleting a
// scope or ammunition record detaches it from any rifle that
// references it; ammunition deletion also removes the DOPE,
// chronograph, and calculation rows logged against it.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id             TEXT PRIMARY KEY,
	full_name      TEXT NOT NULL,
	email          TEXT NOT NULL UNIQUE,
	password_hash  TEXT,
	google_id      TEXT UNIQUE,
	email_verified INTEGER NOT NULL DEFAULT 0,
	is_active      INTEGER NOT NULL DEFAULT 1,
	photo_url      TEXT,
	sign_in_method TEXT NOT NULL,
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL,
	last_sign_in   INTEGER
);

CREATE TABLE IF NOT EXISTS password_reset_tokens (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	token      TEXT NOT NULL,
	kind       TEXT NOT NULL,
	used       INTEGER NOT NULL DEFAULT 0,
	expires_at INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reset_tokens_user
	ON password_reset_tokens (user_id, kind);

CREATE TABLE IF NOT EXISTS scopes (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	manufacturer   TEXT NOT NULL,
	model          TEXT NOT NULL,
	tube_size      TEXT,
	focal_plane    TEXT,
	reticle        TEXT,
	tracking_units TEXT,
	click_value    TEXT,
	total_travel   TEXT,
	zero_data      TEXT,
	notes          TEXT,
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scopes_user ON scopes (user_id);

CREATE TABLE IF NOT EXISTS ammunition (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name              TEXT NOT NULL,
	manufacturer      TEXT NOT NULL,
	caliber           TEXT NOT NULL,
	bullet            TEXT,
	powder            TEXT,
	primer            TEXT,
	brass             TEXT,
	velocity          INTEGER,
	es                INTEGER,
	sd                INTEGER,
	lot_number        TEXT,
	count             INTEGER NOT NULL DEFAULT 0,
	price             REAL,
	temp_stable       INTEGER NOT NULL DEFAULT 0,
	notes             TEXT,
	cartridge_type    TEXT,
	case_material     TEXT,
	primer_type       TEXT,
	pressure_class    TEXT,
	sectional_density REAL,
	recoil_energy     REAL,
	powder_charge     REAL,
	powder_type       TEXT,
	chronograph_fps   INTEGER,
	created_at        INTEGER NOT NULL,
	updated_at        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ammunition_user ON ammunition (user_id);

CREATE TABLE IF NOT EXISTS rifles (
	id                 TEXT PRIMARY KEY,
	user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name               TEXT NOT NULL,
	brand              TEXT NOT NULL,
	manufacturer       TEXT NOT NULL,
	generation_variant TEXT NOT NULL,
	model              TEXT NOT NULL,
	caliber            TEXT NOT NULL,
	barrel             TEXT,
	action             TEXT,
	stock              TEXT,
	scope_id           TEXT REFERENCES scopes(id) ON DELETE SET NULL,
	ammunition_id      TEXT REFERENCES ammunition(id) ON DELETE SET NULL,
	is_active          INTEGER NOT NULL DEFAULT 0,
	notes              TEXT,
	serial_number      TEXT,
	overall_length     TEXT,
	weight             TEXT,
	capacity           TEXT,
	finish             TEXT,
	sight_type         TEXT,
	sight_optic        TEXT,
	sight_model        TEXT,
	sight_height       TEXT,
	purchase_date      TEXT,
	modifications      TEXT,
	created_at         INTEGER NOT NULL,
	updated_at         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rifles_user ON rifles (user_id);

CREATE TABLE IF NOT EXISTS maintenance (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rifle_id       TEXT NOT NULL REFERENCES rifles(id) ON DELETE CASCADE,
	title          TEXT NOT NULL,
	type           TEXT NOT NULL,
	interval       TEXT NOT NULL,
	last_completed INTEGER,
	current_count  INTEGER NOT NULL DEFAULT 0,
	torque_spec    TEXT,
	notes          TEXT,
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_maintenance_user ON maintenance (user_id);
CREATE INDEX IF NOT EXISTS idx_maintenance_rifle ON maintenance (rifle_id);

CREATE TABLE IF NOT EXISTS dope_entries (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rifle_id      TEXT NOT NULL REFERENCES rifles(id) ON DELETE CASCADE,
	ammunition_id TEXT NOT NULL REFERENCES ammunition(id) ON DELETE CASCADE,
	distance      INTEGER NOT NULL,
	elevation     TEXT NOT NULL,
	windage       TEXT NOT NULL,
	notes         TEXT,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_dope_user ON dope_entries (user_id);
CREATE INDEX IF NOT EXISTS idx_dope_rifle ON dope_entries (rifle_id);

CREATE TABLE IF NOT EXISTS zero_entries (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rifle_id   TEXT NOT NULL REFERENCES rifles(id) ON DELETE CASCADE,
	distance   INTEGER NOT NULL,
	poi_offset TEXT NOT NULL,
	confirmed  INTEGER NOT NULL DEFAULT 0,
	notes      TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_zero_user ON zero_entries (user_id);
CREATE INDEX IF NOT EXISTS idx_zero_rifle ON zero_entries (rifle_id);

CREATE TABLE IF NOT EXISTS chronograph_data (
	id                 TEXT PRIMARY KEY,
	user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rifle_id           TEXT NOT NULL REFERENCES rifles(id) ON DELETE CASCADE,
	ammunition_id      TEXT NOT NULL REFERENCES ammunition(id) ON DELETE CASCADE,
	velocities         TEXT NOT NULL,
	average            REAL NOT NULL,
	extreme_spread     REAL NOT NULL,
	standard_deviation REAL NOT NULL,
	notes              TEXT,
	created_at         INTEGER NOT NULL,
	updated_at         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chronograph_user ON chronograph_data (user_id);
CREATE INDEX IF NOT EXISTS idx_chronograph_rifle ON chronograph_data (rifle_id);

CREATE TABLE IF NOT EXISTS ballistic_calculations (
	id                    TEXT PRIMARY KEY,
	user_id               TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rifle_id              TEXT NOT NULL REFERENCES rifles(id) ON DELETE CASCADE,
	ammunition_id         TEXT NOT NULL REFERENCES ammunition(id) ON DELETE CASCADE,
	ballistic_coefficient REAL NOT NULL,
	muzzle_velocity       REAL NOT NULL,
	target_distance       INTEGER NOT NULL,
	wind_speed            REAL NOT NULL,
	wind_direction        REAL NOT NULL,
	trajectory_data       TEXT NOT NULL,
	notes                 TEXT,
	created_at            INTEGER NOT NULL,
	updated_at            INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_user ON ballistic_calculations (user_id);
CREATE INDEX IF NOT EXISTS idx_calculations_rifle ON ballistic_calculations (rifle_id);
`
