// Copyright 2026 The RifleAxis Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"net/http"

	"github.com/rifleaxis-foundation/rifleaxis/lib/schema/loadout"
	"github.com/rifleaxis-foundation/rifleaxis/lib/store"
	"github.com/rifleaxis-foundation/rifleaxis/lib/webapi"
)

func (s *apiServer) handleCreateRifle(writer http.ResponseWriter, request *http.Request) {
	var params loadout.RifleParams
	if !decode(writer, request, &params) {
		return
	}
	if err := params.ValidateCreate(); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	rifle := &loadout.Rifle{UserID: userIDFrom(request)}
	rifle.Apply(&params)

	if err := s.store.CreateRifle(request.Context(), rifle); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Linked scope or ammunition not found")
			return
		}
		s.log(request).Error("creating rifle", "error", err)
		webapi.ServerError(writer, "Failed to create rifle")
		return
	}

	webapi.Success(writer, "Rifle created successfully", rifle)
}

func (s *apiServer) handleListRifles(writer http.ResponseWriter, request *http.Request) {
	rifles, err := s.store.Rifles(request.Context(), userIDFrom(request))
	if err != nil {
		s.log(request).Error("listing rifles", "error", err)
		webapi.ServerError(writer, "Failed to get rifles")
		return
	}
	webapi.Success(writer, "Rifles retrieved successfully", rifles)
}

func (s *apiServer) handleGetRifle(writer http.ResponseWriter, request *http.Request) {
	rifle, err := s.store.RifleByID(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle not found")
			return
		}
		s.log(request).Error("getting rifle", "error", err)
		webapi.ServerError(writer, "Failed to get rifle")
		return
	}
	webapi.Success(writer, "Rifle retrieved successfully", rifle)
}

func (s *apiServer) handleUpdateRifle(writer http.ResponseWriter, request *http.Request) {
	var params loadout.RifleParams
	if !decode(writer, request, &params) {
		return
	}

	userID := userIDFrom(request)
	rifle, err := s.store.RifleByID(request.Context(), request.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle not found")
			return
		}
		s.log(request).Error("getting rifle for update", "error", err)
		webapi.ServerError(writer, "Failed to update rifle")
		return
	}

	rifle.Apply(&params)
	if err := s.store.UpdateRifle(request.Context(), rifle); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle not found")
			return
		}
		s.log(request).Error("updating rifle", "error", err)
		webapi.ServerError(writer, "Failed to update rifle")
		return
	}

	webapi.Success(writer, "Rifle updated successfully", rifle)
}

func (s *apiServer) handleDeleteRifle(writer http.ResponseWriter, request *http.Request) {
	err := s.store.DeleteRifle(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle not found")
			return
		}
		s.log(request).Error("deleting rifle", "error", err)
		webapi.ServerError(writer, "Failed to delete rifle")
		return
	}
	webapi.Success(writer, "Rifle deleted successfully", nil)
}

func (s *apiServer) handleSetActiveRifle(writer http.ResponseWriter, request *http.Request) {
	var body loadout.SetActiveRifleRequest
	if !decode(writer, request, &body) {
		return
	}
	if body.RifleID == "" {
		webapi.ValidationError(writer, "Rifle ID is required")
		return
	}

	err := s.store.SetActiveRifle(request.Context(), body.RifleID, userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle not found")
			return
		}
		s.log(request).Error("setting active rifle", "error", err)
		webapi.ServerError(writer, "Failed to set active rifle")
		return
	}
	webapi.Success(writer, "Active rifle set successfully", nil)
}

func (s *apiServer) handleSetRifleScope(writer http.ResponseWriter, request *http.Request) {
	var body loadout.RifleScopeRequest
	if !decode(writer, request, &body) {
		return
	}

	userID := userIDFrom(request)
	rifleID := request.PathValue("id")
	if err := s.store.SetRifleScope(request.Context(), rifleID, userID, body.ScopeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle or scope not found")
			return
		}
		s.log(request).Error("setting rifle scope", "error", err)
		webapi.ServerError(writer, "Failed to update rifle scope")
		return
	}

	rifle, err := s.store.RifleByID(request.Context(), rifleID, userID)
	if err != nil {
		s.log(request).Error("reloading rifle after scope change", "error", err)
		webapi.ServerError(writer, "Failed to update rifle scope")
		return
	}
	webapi.Success(writer, "Rifle scope updated successfully", rifle)
}

func (s *apiServer) handleSetRifleAmmunition(writer http.ResponseWriter, request *http.Request) {
	var body loadout.RifleAmmunitionRequest
	if !decode(writer, request, &body) {
		return
	}

	userID := userIDFrom(request)
	rifleID := request.PathValue("id")
	if err := s.store.SetRifleAmmunition(request.Context(), rifleID, userID, body.AmmunitionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle or ammunition not found")
			return
		}
		s.log(request).Error("setting rifle ammunition", "error", err)
		webapi.ServerError(writer, "Failed to update rifle ammunition")
		return
	}

	rifle, err := s.store.RifleByID(request.Context(), rifleID, userID)
	if err != nil {
		s.log(request).Error("reloading rifle after ammunition change", "error", err)
		webapi.ServerError(writer, "Failed to update rifle ammunition")
		return
	}
	webapi.Success(writer, "Rifle ammunition updated successfully", rifle)
}

func (s *apiServer) handleCreateAmmunition(writer http.ResponseWriter, request *http.Request) {
	var params loadout.AmmunitionParams
	if !decode(writer, request, &params) {
		return
	}
	if err := params.ValidateCreate(); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	ammunition := &loadout.Ammunition{UserID: userIDFrom(request)}
	ammunition.Apply(&params)

	if err := s.store.CreateAmmunition(request.Context(), ammunition); err != nil {
		s.log(request).Error("creating ammunition", "error", err)
		webapi.ServerError(writer, "Failed to create ammunition")
		return
	}
	webapi.Success(writer, "Ammunition created successfully", ammunition)
}

func (s *apiServer) handleListAmmunition(writer http.ResponseWriter, request *http.Request) {
	ammunition, err := s.store.AmmunitionList(request.Context(), userIDFrom(request))
	if err != nil {
		s.log(request).Error("listing ammunition", "error", err)
		webapi.ServerError(writer, "Failed to get ammunition")
		return
	}
	webapi.Success(writer, "Ammunition retrieved successfully", ammunition)
}

func (s *apiServer) handleUpdateAmmunition(writer http.ResponseWriter, request *http.Request) {
	var params loadout.AmmunitionParams
	if !decode(writer, request, &params) {
		return
	}

	userID := userIDFrom(request)
	ammunition, err := s.store.AmmunitionByID(request.Context(), request.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Ammunition not found")
			return
		}
		s.log(request).Error("getting ammunition for update", "error", err)
		webapi.ServerError(writer, "Failed to update ammunition")
		return
	}

	ammunition.Apply(&params)
	if err := s.store.UpdateAmmunition(request.Context(), ammunition); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Ammunition not found")
			return
		}
		s.log(request).Error("updating ammunition", "error", err)
		webapi.ServerError(writer, "Failed to update ammunition")
		return
	}
	webapi.Success(writer, "Ammunition updated successfully", ammunition)
}

func (s *apiServer) handleDeleteAmmunition(writer http.ResponseWriter, request *http.Request) {
	err := s.store.DeleteAmmunition(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Ammunition not found")
			return
		}
		s.log(request).Error("deleting ammunition", "error", err)
		webapi.ServerError(writer, "Failed to delete ammunition")
		return
	}
	webapi.Success(writer, "Ammunition deleted successfully", nil)
}

func (s *apiServer) handleCreateScope(writer http.ResponseWriter, request *http.Request) {
	var params loadout.ScopeParams
	if !decode(writer, request, &params) {
		return
	}
	if err := params.ValidateCreate(); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	scope := &loadout.Scope{UserID: userIDFrom(request)}
	scope.Apply(&params)

	if err := s.store.CreateScope(request.Context(), scope); err != nil {
		s.log(request).Error("creating scope", "error", err)
		webapi.ServerError(writer, "Failed to create scope")
		return
	}
	webapi.Success(writer, "Scope created successfully", scope)
}

func (s *apiServer) handleListScopes(writer http.ResponseWriter, request *http.Request) {
	scopes, err := s.store.Scopes(request.Context(), userIDFrom(request))
	if err != nil {
		s.log(request).Error("listing scopes", "error", err)
		webapi.ServerError(writer, "Failed to get scopes")
		return
	}
	webapi.Success(writer, "Scopes retrieved successfully", scopes)
}

func (s *apiServer) handleUpdateScope(writer http.ResponseWriter, request *http.Request) {
	var params loadout.ScopeParams
	if !decode(writer, request, &params) {
		return
	}

	userID := userIDFrom(request)
	scope, err := s.store.ScopeByID(request.Context(), request.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Scope not found")
			return
		}
		s.log(request).Error("getting scope for update", "error", err)
		webapi.ServerError(writer, "Failed to update scope")
		return
	}

	scope.Apply(&params)
	if err := s.store.UpdateScope(request.Context(), scope); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Scope not found")
			return
		}
		s.log(request).Error("updating scope", "error", err)
		webapi.ServerError(writer, "Failed to update scope")
		return
	}
	webapi.Success(writer, "Scope updated successfully", scope)
}

func (s *apiServer) handleDeleteScope(writer http.ResponseWriter, request *http.Request) {
	err := s.store.DeleteScope(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Scope not found")
			return
		}
		s.log(request).Error("deleting scope", "error", err)
		webapi.ServerError(writer, "Failed to delete scope")
		return
	}
	webapi.Success(writer, "Scope deleted successfully", nil)
}

func (s *apiServer) handleCreateMaintenance(writer http.ResponseWriter, request *http.Request) {
	var params loadout.MaintenanceParams
	if !decode(writer, request, &params) {
		return
	}
	if err := params.ValidateCreate(); err != nil {
		webapi.ValidationError(writer, err.Error())
		return
	}

	task := &loadout.Maintenance{
		UserID:     userIDFrom(request),
		RifleID:    *params.RifleID,
		Title:      *params.Title,
		Type:       *params.Type,
		Interval:   params.Interval,
		TorqueSpec: params.TorqueSpec,
		Notes:      params.Notes,
	}
	if err := s.store.CreateMaintenance(request.Context(), task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Rifle not found")
			return
		}
		s.log(request).Error("creating maintenance task", "error", err)
		webapi.ServerError(writer, "Failed to create maintenance task")
		return
	}
	webapi.Success(writer, "Maintenance task created successfully", task)
}

func (s *apiServer) handleListMaintenance(writer http.ResponseWriter, request *http.Request) {
	tasks, err := s.store.MaintenanceList(request.Context(), userIDFrom(request))
	if err != nil {
		s.log(request).Error("listing maintenance tasks", "error", err)
		webapi.ServerError(writer, "Failed to get maintenance tasks")
		return
	}
	webapi.Success(writer, "Maintenance tasks retrieved successfully", tasks)
}

func (s *apiServer) handleCompleteMaintenance(writer http.ResponseWriter, request *http.Request) {
	err := s.store.CompleteMaintenance(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Maintenance task not found")
			return
		}
		s.log(request).Error("completing maintenance task", "error", err)
		webapi.ServerError(writer, "Failed to complete maintenance task")
		return
	}
	webapi.Success(writer, "Maintenance task completed successfully", nil)
}

func (s *apiServer) handleDeleteMaintenance(writer http.ResponseWriter, request *http.Request) {
	err := s.store.DeleteMaintenance(request.Context(), request.PathValue("id"), userIDFrom(request))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webapi.NotFound(writer, "Maintenance task not found")
			return
		}
		s.log(request).Error("deleting maintenance task", "error", err)
		webapi.ServerError(writer, "Failed to delete maintenance task")
		return
	}
	webapi.Success(writer, "Maintenance task deleted successfully", nil)
}

func (s *apiServer) handleLoadoutSummary(writer http.ResponseWriter, request *http.Request) {
	summary, err := s.store.LoadoutSummary(request.Context(), userIDFrom(request))
	if err != nil {
		s.log(request).Error("building loadout summary", "error", err)
		webapi.ServerError(writer, "Failed to get loadout summary")
		return
	}
	webapi.Success(writer, "Loadout summary retrieved successfully", summary)
}
