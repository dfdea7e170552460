// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"net/http"

	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/ballistic"
	"github.com/rifleaxis-foundation/rifleaxis/lib/store"
	"github.com/rifleaxis-foundation/rifleaxis/lib/webapi"
)

func (s *apiServer) handleCreateDope(writer http.ResponseWriter, request *http.Request) {
	var body ballistic.CreateDopeRequest
	if !decode(writer, request, &body) {
		return
	}
	if err := body.Validate(); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	entry := &ballistic.DopeEntry{
		UserID:       userIDFrom(request),
		RifleID:      body.RifleID,
		AmmunitionID: body.AmmunitionID,
		Distance:     *body.Distance,
		Elevation:    body.Elevation,
		Windage:      body.Windage,
		Notes:        body.Notes,
	}
	if err := s.store.CreateDopeEntry(request.Context(), entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle or ammunition not found")
			return
		}
		s.log(request).Error("creating DOPE entry", "error", err)
		webapi.ServerError(writer, "Failed to create DOPE entry")
		return
	}
	webapi.Success(writer, "DOPE entry created successfully", entry)
}

func (s *apiServer) handleListDope(writer http.ResponseWriter, request *http.Request) {
	entries, err := s.store.DopeEntries(request.Context(), userIDFrom(request), request.URL.Query().Get("rifleId"))
	if err != nil {
		s.log(request).Error("listing DOPE entries", "error", err)
		webapi.ServerError(writer, "Failed to get DOPE entries")
		return
	}
	webapi.Success(writer, "DOPE entries retrieved successfully", entries)
}

func (s *apiServer) handleDeleteDope(writer http.ResponseWriter, request *http.Request) {
	err := s.store.DeleteDopeEntry(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "DOPE entry not found")
			return
		}
		s.log(request).Error("deleting DOPE entry", "error", err)
		webapi.ServerError(writer, "Failed to delete DOPE entry")
		return
	}
	webapi.Success(writer, "DOPE entry deleted successfully", nil)
}

func (s *apiServer) handleCreateZero(writer http.ResponseWriter, request *http.Request) {
	var body ballistic.CreateZeroRequest
	if !decode(writer, request, &body) {
		return
	}
	if err := body.Validate(); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	entry := &ballistic.ZeroEntry{
		UserID:    userIDFrom(request),
		RifleID:   body.RifleID,
		Distance:  *body.Distance,
		POIOffset: body.POIOffset,
		Confirmed: body.Confirmed,
		Notes:     body.Notes,
	}
	if err := s.store.CreateZeroEntry(request.Context(), entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle not found")
			return
		}
		s.log(request).Error("creating zero entry", "error", err)
		webapi.ServerError(writer, "Failed to create zero entry")
		return
	}
	webapi.Success(writer, "Zero entry created successfully", entry)
}

func (s *apiServer) handleListZero(writer http.ResponseWriter, request *http.Request) {
	entries, err := s.store.ZeroEntries(request.Context(), userIDFrom(request), request.URL.Query().Get("rifleId"))
	if err != nil {
		s.log(request).Error("listing zero entries", "error", err)
		webapi.ServerError(writer, "Failed to get zero entries")
		return
	}
	webapi.Success(writer, "Zero entries retrieved successfully", entries)
}

func (s *apiServer) handleDeleteZero(writer http.ResponseWriter, request *http.Request) {
	err := s.store.DeleteZeroEntry(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Zero entry not found")
			return
		}
		s.log(request).Error("deleting zero entry", "error", err)
		webapi.ServerError(writer, "Failed to delete zero entry")
		return
	}
	webapi.Success(writer, "Zero entry deleted successfully", nil)
}

func (s *apiServer) handleCreateChronograph(writer http.ResponseWriter, request *http.Request) {
	var body ballistic.CreateChronographRequest
	if !decode(writer, request, &body) {
		return
	}
	if err := body.Validate(); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	session := &ballistic.ChronographSession{
		UserID:            userIDFrom(request),
		RifleID:           body.RifleID,
		AmmunitionID:      body.AmmunitionID,
		Velocities:        body.Velocities,
		Average:           *body.Average,
		ExtremeSpread:     *body.ExtremeSpread,
		StandardDeviation: *body.StandardDeviation,
		Notes:             body.Notes,
	}
	if err := s.store.CreateChronographSession(request.Context(), session); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle or ammunition not found")
			return
		}
		s.log(request).Error("creating chronograph session", "error", err)
		webapi.ServerError(writer, "Failed to create chronograph data")
		return
	}
	webapi.Success(writer, "Chronograph data created successfully", session)
}

func (s *apiServer) handleListChronograph(writer http.ResponseWriter, request *http.Request) {
	sessions, err := s.store.ChronographSessions(request.Context(), userIDFrom(request), request.URL.Query().Get("rifleId"))
	if err != nil {
		s.log(request).Error("listing chronograph sessions", "error", err)
		webapi.ServerError(writer, "Failed to get chronograph data")
		return
	}
	webapi.Success(writer, "Chronograph data retrieved successfully", sessions)
}

func (s *apiServer) handleDeleteChronograph(writer http.ResponseWriter, request *http.Request) {
	err := s.store.DeleteChronographSession(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Chronograph data not found")
			return
		}
		s.log(request).Error("deleting chronograph session", "error", err)
		webapi.ServerError(writer, "Failed to delete chronograph data")
		return
	}
	webapi.Success(writer, "Chronograph data deleted successfully", nil)
}

func (s *apiServer) handleCreateCalculation(writer http.ResponseWriter, request *http.Request) {
	var body ballistic.CreateTrajectoryRequest
	if !decode(writer, request, &body) {
		return
	}
	if err := body.Validate(); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	result := &ballistic.TrajectoryResult{
		UserID:               userIDFrom(request),
		RifleID:              body.RifleID,
		AmmunitionID:         body.AmmunitionID,
		BallisticCoefficient: *body.BallisticCoefficient,
		MuzzleVelocity:       *body.MuzzleVelocity,
		TargetDistance:       *body.TargetDistance,
		WindSpeed:            body.WindSpeed,
		WindDirection:        body.WindDirection,
		TrajectoryData:       body.TrajectoryData,
		Notes:                body.Notes,
	}
	if err := s.store.CreateTrajectoryResult(request.Context(), result); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle or ammunition not found")
			return
		}
		s.log(request).Error("creating trajectory result", "error", err)
		webapi.ServerError(writer, "Failed to save ballistic calculation")
		return
	}
	webapi.Success(writer, "Ballistic calculation saved successfully", result)
}

func (s *apiServer) handleListCalculations(writer http.ResponseWriter, request *http.Request) {
	results, err := s.store.TrajectoryResults(request.Context(), userIDFrom(request), request.URL.Query().Get("rifleId"))
	if err != nil {
		s.log(request).Error("listing trajectory results", "error", err)
		webapi.ServerError(writer, "Failed to get ballistic calculations")
		return
	}
	webapi.Success(writer, "Ballistic calculations retrieved successfully", results)
}

func (s *apiServer) handleDeleteCalculation(writer http.ResponseWriter, request *http.Request) {
	err := s.store.DeleteTrajectoryResult(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Ballistic calculation not found")
			return
		}
		s.log(request).Error("deleting trajectory result", "error", err)
		webapi.ServerError(writer, "Failed to delete ballistic calculation")
		return
	}
	webapi.Success(writer, "Ballistic calculation deleted successfully", nil)
}

func (s *apiServer) handleBallisticSummary(writer http.ResponseWriter, request *http.Request) {
	rifleID := request.URL.Query().Get("rifleId")
	if rifleID == "" {
		webapi.ValidationError(writer, "Rifle ID is required")
		return
	}

	summary, err := s.store.BallisticSummary(request.Context(), userIDFrom(request), rifleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle not found")
			return
		}
		s.log(request).Error("building ballistic summary", "error", err)
		webapi.ServerError(writer, "Failed to get ballistic summary")
		return
	}
	webapi.Success(writer, "Ballistic summary retrieved successfully", summary)
}

func (s *apiServer) handleAllBallisticData(writer http.ResponseWriter, request *http.Request) {
	data, err := s.store.AllBallisticData(request.Context(), userIDFrom(request), request.URL.Query().Get("rifleId"))
	if err != nil {
		s.log(request).Error("collecting ballistic data", "error", err)
		webapi.ServerError(writer, "Failed to get ballistic data")
		return
	}
	webapi.Success(writer, "Ballistic data retrieved successfully", data)
}
