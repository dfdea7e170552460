// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package loadout

import (
	"encoding/json"
	"errors"
	"time"
)

// Rifle is a rifle record. Scope and Ammunition are resolved from
// ScopeID and AmmunitionID at read time so responses carry the full
// linked records.
type Rifle struct {
	ID                string          `json:"id"`
	UserID            string          `json:"-"`
	Name              string          `json:"name"`
	Brand             string          `json:"brand"`
	Manufacturer      string          `json:"manufacturer"`
	GenerationVariant string          `json:"generationVariant"`
	Model             string          `json:"model"`
	Caliber           string          `json:"caliber"`
	Barrel            json.RawMessage `json:"barrel"`
	Action            json.RawMessage `json:"action"`
	Stock             json.RawMessage `json:"stock"`
	ScopeID           *string         `json:"-"`
	AmmunitionID      *string         `json:"-"`
	Scope             *Scope          `json:"scope"`
	Ammunition        *Ammunition     `json:"ammunition"`
	IsActive          bool            `json:"isActive"`
	Notes             *string         `json:"notes"`
	SerialNumber      *string         `json:"serialNumber"`
	OverallLength     *string         `json:"overallLength"`
	Weight            *string         `json:"weight"`
	Capacity          *string         `json:"capacity"`
	Finish            *string         `json:"finish"`
	SightType         *string         `json:"sightType"`
	SightOptic        *string         `json:"sightOptic"`
	SightModel        *string         `json:"sightModel"`
	SightHeight       *string         `json:"sightHeight"`
	PurchaseDate      *string         `json:"purchaseDate"`
	Modifications     *string         `json:"modifications"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// RifleParams carries the client-supplied rifle fields for create and
// update requests. Nil means the field was not provided.
type RifleParams struct {
	Name              *string         `json:"name"`
	Brand             *string         `json:"brand"`
	Manufacturer      *string         `json:"manufacturer"`
	GenerationVariant *string         `json:"generationVariant"`
	Model             *string         `json:"model"`
	Caliber           *string         `json:"caliber"`
	Barrel            json.RawMessage `json:"barrel"`
	Action            json.RawMessage `json:"action"`
	Stock             json.RawMessage `json:"stock"`
	ScopeID           *string         `json:"scopeId"`
	AmmunitionID      *string         `json:"ammunitionId"`
	IsActive          *bool           `json:"isActive"`
	Notes             *string         `json:"notes"`
	SerialNumber      *string         `json:"serialNumber"`
	OverallLength     *string         `json:"overallLength"`
	Weight            *string         `json:"weight"`
	Capacity          *string         `json:"capacity"`
	Finish            *string         `json:"finish"`
	SightType         *string         `json:"sightType"`
	SightOptic        *string         `json:"sightOptic"`
	SightModel        *string         `json:"sightModel"`
	SightHeight       *string         `json:"sightHeight"`
	PurchaseDate      *string         `json:"purchaseDate"`
	Modifications     *string         `json:"modifications"`
}

// ValidateCreate checks that the fields required to create a rifle
// are present and non-empty.
func (p *RifleParams) ValidateCreate() error {
	required := map[string]*string{
		"name":              p.Name,
		"brand":             p.Brand,
		"manufacturer":      p.Manufacturer,
		"generationVariant": p.GenerationVariant,
		"model":             p.Model,
		"caliber":           p.Caliber,
	}
	return checkRequired(required,
		"name", "brand", "manufacturer", "generationVariant", "model", "caliber")
}

// Apply copies every provided field onto the rifle.
func (r *Rifle) Apply(p *RifleParams) {
	applyString(&r.Name, p.Name)
	applyString(&r.Brand, p.Brand)
	applyString(&r.Manufacturer, p.Manufacturer)
	applyString(&r.GenerationVariant, p.GenerationVariant)
	applyString(&r.Model, p.Model)
	applyString(&r.Caliber, p.Caliber)
	if p.Barrel != nil {
		r.Barrel = p.Barrel
	}
	if p.Action != nil {
		r.Action = p.Action
	}
	if p.Stock != nil {
		r.Stock = p.Stock
	}
	if p.ScopeID != nil {
		r.ScopeID = p.ScopeID
	}
	if p.AmmunitionID != nil {
		r.AmmunitionID = p.AmmunitionID
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
	r.Notes = applyOptional(r.Notes, p.Notes)
	r.SerialNumber = applyOptional(r.SerialNumber, p.SerialNumber)
	r.OverallLength = applyOptional(r.OverallLength, p.OverallLength)
	r.Weight = applyOptional(r.Weight, p.Weight)
	r.Capacity = applyOptional(r.Capacity, p.Capacity)
	r.Finish = applyOptional(r.Finish, p.Finish)
	r.SightType = applyOptional(r.SightType, p.SightType)
	r.SightOptic = applyOptional(r.SightOptic, p.SightOptic)
	r.SightModel = applyOptional(r.SightModel, p.SightModel)
	r.SightHeight = applyOptional(r.SightHeight, p.SightHeight)
	r.PurchaseDate = applyOptional(r.PurchaseDate, p.PurchaseDate)
	r.Modifications = applyOptional(r.Modifications, p.Modifications)
}

// Ammunition is an ammunition record.
type Ammunition struct {
	ID               string          `json:"id"`
	UserID           string          `json:"-"`
	Name             string          `json:"name"`
	Manufacturer     string          `json:"manufacturer"`
	Caliber          string          `json:"caliber"`
	Bullet           json.RawMessage `json:"bullet"`
	Powder           *string         `json:"powder"`
	Primer           *string         `json:"primer"`
	Brass            *string         `json:"brass"`
	Velocity         *int            `json:"velocity"`
	ES               *int            `json:"es"`
	SD               *int            `json:"sd"`
	LotNumber        *string         `json:"lotNumber"`
	Count            int             `json:"count"`
	Price            *float64        `json:"price"`
	TempStable       bool            `json:"tempStable"`
	Notes            *string         `json:"notes"`
	CartridgeType    *string         `json:"cartridgeType"`
	CaseMaterial     *string         `json:"caseMaterial"`
	PrimerType       *string         `json:"primerType"`
	PressureClass    *string         `json:"pressureClass"`
	SectionalDensity *float64        `json:"sectionalDensity"`
	RecoilEnergy     *float64        `json:"recoilEnergy"`
	PowderCharge     *float64        `json:"powderCharge"`
	PowderType       *string         `json:"powderType"`
	ChronographFPS   *int            `json:"chronographFPS"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// AmmunitionParams carries client-supplied ammunition fields.
type AmmunitionParams struct {
	Name             *string         `json:"name"`
	Manufacturer     *string         `json:"manufacturer"`
	Caliber          *string         `json:"caliber"`
	Bullet           json.RawMessage `json:"bullet"`
	Powder           *string         `json:"powder"`
	Primer           *string         `json:"primer"`
	Brass            *string         `json:"brass"`
	Velocity         *int            `json:"velocity"`
	ES               *int            `json:"es"`
	SD               *int            `json:"sd"`
	LotNumber        *string         `json:"lotNumber"`
	Count            *int            `json:"count"`
	Price            *float64        `json:"price"`
	TempStable       *bool           `json:"tempStable"`
	Notes            *string         `json:"notes"`
	CartridgeType    *string         `json:"cartridgeType"`
	CaseMaterial     *string         `json:"caseMaterial"`
	PrimerType       *string         `json:"primerType"`
	PressureClass    *string         `json:"pressureClass"`
	SectionalDensity *float64        `json:"sectionalDensity"`
	RecoilEnergy     *float64        `json:"recoilEnergy"`
	PowderCharge     *float64        `json:"powderCharge"`
	PowderType       *string         `json:"powderType"`
	ChronographFPS   *int            `json:"chronographFPS"`
}

// ValidateCreate checks that the fields required to create an
// ammunition record are present and non-empty.
func (p *AmmunitionParams) ValidateCreate() error {
	required := map[string]*string{
		"name":         p.Name,
		"manufacturer": p.Manufacturer,
		"caliber":      p.Caliber,
	}
	return checkRequired(required, "name", "manufacturer", "caliber")
}

// Apply copies every provided field onto the ammunition record.
func (a *Ammunition) Apply(p *AmmunitionParams) {
	applyString(&a.Name, p.Name)
	applyString(&a.Manufacturer, p.Manufacturer)
	applyString(&a.Caliber, p.Caliber)
	if p.Bullet != nil {
		a.Bullet = p.Bullet
	}
	a.Powder = applyOptional(a.Powder, p.Powder)
	a.Primer = applyOptional(a.Primer, p.Primer)
	a.Brass = applyOptional(a.Brass, p.Brass)
	a.Velocity = applyOptional(a.Velocity, p.Velocity)
	a.ES = applyOptional(a.ES, p.ES)
	a.SD = applyOptional(a.SD, p.SD)
	a.LotNumber = applyOptional(a.LotNumber, p.LotNumber)
	if p.Count != nil {
		a.Count = *p.Count
	}
	a.Price = applyOptional(a.Price, p.Price)
	if p.TempStable != nil {
		a.TempStable = *p.TempStable
	}
	a.Notes = applyOptional(a.Notes, p.Notes)
	a.CartridgeType = applyOptional(a.CartridgeType, p.CartridgeType)
	a.CaseMaterial = applyOptional(a.CaseMaterial, p.CaseMaterial)
	a.PrimerType = applyOptional(a.PrimerType, p.PrimerType)
	a.PressureClass = applyOptional(a.PressureClass, p.PressureClass)
	a.SectionalDensity = applyOptional(a.SectionalDensity, p.SectionalDensity)
	a.RecoilEnergy = applyOptional(a.RecoilEnergy, p.RecoilEnergy)
	a.PowderCharge = applyOptional(a.PowderCharge, p.PowderCharge)
	a.PowderType = applyOptional(a.PowderType, p.PowderType)
	a.ChronographFPS = applyOptional(a.ChronographFPS, p.ChronographFPS)
}

// Scope is a rifle scope record. ZeroData is a client-owned JSON
// array and is never null on the wire.
type Scope struct {
	ID            string          `json:"id"`
	UserID        string          `json:"-"`
	Manufacturer  string          `json:"manufacturer"`
	Model         string          `json:"model"`
	TubeSize      *string         `json:"tubeSize"`
	FocalPlane    *string         `json:"focalPlane"`
	Reticle       *string         `json:"reticle"`
	TrackingUnits *string         `json:"trackingUnits"`
	ClickValue    *string         `json:"clickValue"`
	TotalTravel   json.RawMessage `json:"totalTravel"`
	ZeroData      json.RawMessage `json:"zeroData"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ScopeParams carries client-supplied scope fields.
type ScopeParams struct {
	Manufacturer  *string         `json:"manufacturer"`
	Model         *string         `json:"model"`
	TubeSize      *string         `json:"tubeSize"`
	FocalPlane    *string         `json:"focalPlane"`
	Reticle       *string         `json:"reticle"`
	TrackingUnits *string         `json:"trackingUnits"`
	ClickValue    *string         `json:"clickValue"`
	TotalTravel   json.RawMessage `json:"totalTravel"`
	ZeroData      json.RawMessage `json:"zeroData"`
	Notes         *string         `json:"notes"`
}

// ValidateCreate checks that the fields required to create a scope
// are present and non-empty.
func (p *ScopeParams) ValidateCreate() error {
	required := map[string]*string{
		"manufacturer": p.Manufacturer,
		"model":        p.Model,
	}
	return checkRequired(required, "manufacturer", "model")
}

// Apply copies every provided field onto the scope.
func (s *Scope) Apply(p *ScopeParams) {
	applyString(&s.Manufacturer, p.Manufacturer)
	applyString(&s.Model, p.Model)
	s.TubeSize = applyOptional(s.TubeSize, p.TubeSize)
	s.FocalPlane = applyOptional(s.FocalPlane, p.FocalPlane)
	s.Reticle = applyOptional(s.Reticle, p.Reticle)
	s.TrackingUnits = applyOptional(s.TrackingUnits, p.TrackingUnits)
	s.ClickValue = applyOptional(s.ClickValue, p.ClickValue)
	if p.TotalTravel != nil {
		s.TotalTravel = p.TotalTravel
	}
	if p.ZeroData != nil {
		s.ZeroData = p.ZeroData
	}
	if s.ZeroData == nil {
		s.ZeroData = json.RawMessage("[]")
	}
}

// Maintenance is a recurring maintenance task tied to a rifle.
type Maintenance struct {
	ID            string          `json:"id"`
	UserID        string          `json:"-"`
	RifleID       string          `json:"rifleId"`
	Title         string          `json:"title"`
	Type          string          `json:"type"`
	Interval      json.RawMessage `json:"interval"`
	LastCompleted *time.Time      `json:"lastCompleted"`
	CurrentCount  int             `json:"currentCount"`
	TorqueSpec    *string         `json:"torqueSpec"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// MaintenanceParams carries client-supplied maintenance fields.
type MaintenanceParams struct {
	RifleID    *string         `json:"rifleId"`
	Title      *string         `json:"title"`
	Type       *string         `json:"type"`
	Interval   json.RawMessage `json:"interval"`
	TorqueSpec *string         `json:"torqueSpec"`
	Notes      *string         `json:"notes"`
}

// ValidateCreate checks that the fields required to create a
// maintenance task are present.
func (p *MaintenanceParams) ValidateCreate() error {
	required := map[string]*string{
		"rifleId": p.RifleID,
		"title":   p.Title,
		"type":    p.Type,
	}
	if err := checkRequired(required, "rifleId", "title", "type"); err != nil {
		return err
	}
	if len(p.Interval) == 0 {
		return errors.New("interval is required")
	}
	return nil
}

// SetActiveRifleRequest is the payload for POST /api/loadout/rifles/set-active.
type SetActiveRifleRequest struct {
	RifleID string `json:"rifleId"`
}

// RifleScopeRequest is the payload for PUT /api/loadout/rifles/{id}/scope.
// A null or absent scopeId detaches the scope.
type RifleScopeRequest struct {
	ScopeID *string `json:"scopeId"`
}

// RifleAmmunitionRequest is the payload for
// PUT /api/loadout/rifles/{id}/ammunition. A null or absent
// ammunitionId detaches the ammunition.
type RifleAmmunitionRequest struct {
	AmmunitionID *string `json:"ammunitionId"`
}

// SummaryCounts is the statistics block of a loadout summary.
type SummaryCounts struct {
	TotalRifles      int    `json:"totalRifles"`
	TotalAmmunition  int    `json:"totalAmmunition"`
	TotalScopes      int    `json:"totalScopes"`
	TotalMaintenance int    `json:"totalMaintenance"`
	MaintenanceDue   int    `json:"maintenanceDue"`
	ActiveRifle      *Rifle `json:"activeRifle"`
}

// Summary is the full loadout overview returned by
// GET /api/loadout/summary.
type Summary struct {
	Rifles      []Rifle       `json:"rifles"`
	Ammunition  []Ammunition  `json:"ammunition"`
	Scopes      []Scope       `json:"scopes"`
	Maintenance []Maintenance `json:"maintenance"`
	Summary     SummaryCounts `json:"summary"`
}

func applyString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}

func applyOptional[T any](current, value *T) *T {
	if value != nil {
		return value
	}
	return current
}

func checkRequired(fields map[string]*string, order ...string) error {
	for _, name := range order {
		value := fields[name]
		if value == nil || *value == "" {
			return errors.New(name + " is required")
		}
	}
	return nil
}
