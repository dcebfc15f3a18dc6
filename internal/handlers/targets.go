package handlers

import (
	"errors"
	"net/http"

	"esgreport/db"
	"esgreport/models"
)

// targetRequest shadows the value fields with pointers; a baseline or
// target of zero is valid input, only omission is an error.
type targetRequest struct {
	models.ESGTarget
	BaselineValue *float64 `json:"baseline_value"`
	TargetValue   *float64 `json:"target_value"`
}

func (req *targetRequest) target() *models.ESGTarget {
	t := req.ESGTarget
	t.BaselineValue = *req.BaselineValue
	t.TargetValue = *req.TargetValue
	return &t
}

func validateTarget(req *targetRequest) error {
	if req.Name == "" {
		return errors.New("missing required field: name")
	}
	if req.TargetType == "" {
		return errors.New("missing required field: target_type")
	}
	if req.BaselineValue == nil {
		return errors.New("missing required field: baseline_value")
	}
	if req.BaselineYear == 0 {
		return errors.New("missing required field: baseline_year")
	}
	if req.TargetValue == nil {
		return errors.New("missing required field: target_value")
	}
	if req.TargetYear == 0 {
		return errors.New("missing required field: target_year")
	}
	if req.Unit == "" {
		return errors.New("missing required field: unit")
	}
	if req.BaselineYear < 1900 || req.BaselineYear > 2100 {
		return errors.New("baseline_year must be between 1900 and 2100")
	}
	if req.TargetYear < 1900 || req.TargetYear > 2100 {
		return errors.New("target_year must be between 1900 and 2100")
	}
	if req.TargetYear <= req.BaselineYear {
		return errors.New("target_year must be after baseline_year")
	}
	if req.Scope != nil && (*req.Scope < 1 || *req.Scope > 3) {
		return errors.New("scope must be 1, 2, or 3")
	}
	if req.ProgressPercentage < 0 || req.ProgressPercentage > 100 {
		return errors.New("progress_percentage must be between 0 and 100")
	}
	return nil
}

func (h *Handler) GetTargetsHandler(w http.ResponseWriter, r *http.Request) {
	filter := db.TargetFilter{
		TargetType: r.URL.Query().Get("target_type"),
		Scope:      queryInt(r, "scope"),
		Status:     r.URL.Query().Get("status"),
		Search:     r.URL.Query().Get("search"),
	}

	targets, err := h.Store.GetTargets(r.Context(), filter)
	if err != nil {
		h.Log.Error("failed to list targets", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, targets)
}

func (h *Handler) CreateTargetHandler(w http.ResponseWriter, r *http.Request) {
	var req targetRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateTarget(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	target := req.target()
	if target.Status == "" {
		target.Status = "active"
	}

	if err := h.Store.CreateTarget(r.Context(), target); err != nil {
		h.Log.Error("failed to create target", "name", target.Name, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("target created", "id", target.ID, "name", target.Name)
	respondJSON(w, http.StatusCreated, target)
}

func (h *Handler) GetTargetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid target id")
		return
	}
	target, err := h.Store.GetTarget(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "target not found")
		return
	}
	respondJSON(w, http.StatusOK, target)
}

func (h *Handler) UpdateTargetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid target id")
		return
	}
	target, err := h.Store.GetTarget(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "target not found")
		return
	}

	req := targetRequest{ESGTarget: *target}
	baseline, value := target.BaselineValue, target.TargetValue
	req.BaselineValue, req.TargetValue = &baseline, &value
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateTarget(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	target = req.target()
	target.ID = id

	if err := h.Store.UpdateTarget(r.Context(), target); err != nil {
		h.Log.Error("failed to update target", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, target)
}

func (h *Handler) DeleteTargetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid target id")
		return
	}
	if _, err := h.Store.GetTarget(r.Context(), id); err != nil {
		h.respondStorageError(w, err, "target not found")
		return
	}
	if err := h.Store.DeleteTarget(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Log.Info("target deleted", "id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "target deleted"})
}

func (h *Handler) GetTargetStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.TargetStats(r.Context())
	if err != nil {
		h.Log.Error("failed to compute target stats", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
