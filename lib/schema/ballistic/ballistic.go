// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package ballistic

import (
	"encoding/json"
	"errors"
	"time"
)

// DopeEntry is one row of a rifle's DOPE table: the elevation and
// windage correction that worked at a given distance.
type DopeEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	RifleID      string    `json:"rifleId"`
	AmmunitionID string    `json:"ammunitionId"`
	Distance     int       `json:"distance"`
	Elevation    string    `json:"elevation"`
	Windage      string    `json:"windage"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateDopeRequest is the payload for POST /api/ballistic/dope.
type CreateDopeRequest struct {
	RifleID      string  `json:"rifleId"`
	AmmunitionID string  `json:"ammunitionId"`
	Distance     *int    `json:"distance"`
	Elevation    string  `json:"elevation"`
	Windage      string  `json:"windage"`
	Notes        *string `json:"notes"`
}

// Validate checks the required DOPE fields.
func (r *CreateDopeRequest) Validate() error {
	switch {
	case r.RifleID == "":
		return errors.New("rifleId is required")
	case r.AmmunitionID == "":
		return errors.New("ammunitionId is required")
	case r.Distance == nil:
		return errors.New("distance is required")
	case *r.Distance <= 0:
		return errors.New("distance must be positive")
	case r.Elevation == "":
		return errors.New("elevation is required")
	case r.Windage == "":
		return errors.New("windage is required")
	}
	return nil
}

// ZeroEntry records a zeroing session at a distance: the point of
// impact offset and whether the zero was confirmed.
type ZeroEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	RifleID   string    `json:"rifleId"`
	Distance  int       `json:"distance"`
	POIOffset string    `json:"poiOffset"`
	Confirmed bool      `json:"confirmed"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateZeroRequest is the payload for POST /api/ballistic/zero.
type CreateZeroRequest struct {
	RifleID   string  `json:"rifleId"`
	Distance  *int    `json:"distance"`
	POIOffset string  `json:"poiOffset"`
	Confirmed bool    `json:"confirmed"`
	Notes     *string `json:"notes"`
}

// Validate checks the required zero entry fields.
func (r *CreateZeroRequest) Validate() error {
	switch {
	case r.RifleID == "":
		return errors.New("rifleId is required")
	case r.Distance == nil:
		return errors.New("distance is required")
	case *r.Distance <= 0:
		return errors.New("distance must be positive")
	case r.POIOffset == "":
		return errors.New("poiOffset is required")
	}
	return nil
}

// ChronographSession is a string of velocity readings with its
// computed statistics.
type ChronographSession struct {
	ID                string    `json:"id"`
	UserID            string    `json:"-"`
	RifleID           string    `json:"rifleId"`
	AmmunitionID      string    `json:"ammunitionId"`
	Velocities        []float64 `json:"velocities"`
	Average           float64   `json:"average"`
	ExtremeSpread     float64   `json:"extremeSpread"`
	StandardDeviation float64   `json:"standardDeviation"`
	Notes             *string   `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CreateChronographRequest is the payload for POST /api/ballistic/chronograph.
// Average, extremeSpread, and standardDeviation are computed by the
// client alongside the raw readings.
type CreateChronographRequest struct {
	RifleID           string    `json:"rifleId"`
	AmmunitionID      string    `json:"ammunitionId"`
	Velocities        []float64 `json:"velocities"`
	Average           *float64  `json:"average"`
	ExtremeSpread     *float64  `json:"extremeSpread"`
	StandardDeviation *float64  `json:"standardDeviation"`
	Notes             *string   `json:"notes"`
}

// Validate checks the required chronograph fields.
func (r *CreateChronographRequest) Validate() error {
	switch {
	case r.RifleID == "":
		return errors.New("rifleId is required")
	case r.AmmunitionID == "":
		return errors.New("ammunitionId is required")
	case len(r.Velocities) == 0:
		return errors.New("velocities is required")
	case r.Average == nil:
		return errors.New("average is required")
	case r.ExtremeSpread == nil:
		return errors.New("extremeSpread is required")
	case r.StandardDeviation == nil:
		return errors.New("standardDeviation is required")
	}
	return nil
}

// TrajectoryResult is a stored ballistic calculation: the input
// parameters plus the caller-computed trajectory table.
type TrajectoryResult struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"-"`
	RifleID              string          `json:"rifleId"`
	AmmunitionID         string          `json:"ammunitionId"`
	BallisticCoefficient float64         `json:"ballisticCoefficient"`
	MuzzleVelocity       float64         `json:"muzzleVelocity"`
	TargetDistance       int             `json:"targetDistance"`
	WindSpeed            float64         `json:"windSpeed"`
	WindDirection        float64         `json:"windDirection"`
	TrajectoryData       json.RawMessage `json:"trajectoryData"`
	Notes                *string         `json:"notes"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// CreateTrajectoryRequest is the payload for POST /api/ballistic/calculations.
type CreateTrajectoryRequest struct {
	RifleID              string          `json:"rifleId"`
	AmmunitionID         string          `json:"ammunitionId"`
	BallisticCoefficient *float64        `json:"ballisticCoefficient"`
	MuzzleVelocity       *float64        `json:"muzzleVelocity"`
	TargetDistance       *int            `json:"targetDistance"`
	WindSpeed            float64         `json:"windSpeed"`
	WindDirection        float64         `json:"windDirection"`
	TrajectoryData       json.RawMessage `json:"trajectoryData"`
	Notes                *string         `json:"notes"`
}

// Validate checks the required calculation parameters.
func (r *CreateTrajectoryRequest) Validate() error {
	switch {
	case r.RifleID == "":
		return errors.New("rifleId is required for ballistic calculation")
	case r.AmmunitionID == "":
		return errors.New("ammunitionId is required for ballistic calculation")
	case r.BallisticCoefficient == nil:
		return errors.New("ballisticCoefficient is required for ballistic calculation")
	case r.MuzzleVelocity == nil:
		return errors.New("muzzleVelocity is required for ballistic calculation")
	case r.TargetDistance == nil:
		return errors.New("targetDistance is required for ballistic calculation")
	}
	return nil
}

// Summary aggregates a rifle's ballistic data counts for
// GET /api/ballistic/summary.
type Summary struct {
	RifleID           string              `json:"rifleId"`
	DopeCount         int                 `json:"dopeCount"`
	ZeroCount         int                 `json:"zeroCount"`
	ChronographCount  int                 `json:"chronographCount"`
	CalculationCount  int                 `json:"calculationCount"`
	LatestZero        *ZeroEntry          `json:"latestZero"`
	LatestChronograph *ChronographSession `json:"latestChronograph"`
}

// AllData bundles every ballistic record for a user, optionally
// filtered to one rifle, for GET /api/ballistic/all-data.
type AllData struct {
	Dope         []DopeEntry          `json:"dope"`
	Zero         []ZeroEntry          `json:"zero"`
	Chronograph  []ChronographSession `json:"chronograph"`
	Calculations []TrajectoryResult   `json:"calculations"`
}
