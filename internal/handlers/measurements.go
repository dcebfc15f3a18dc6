package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"esgreport/db"
	"esgreport/models"
)

// measurementRequest shadows amount with a pointer so an explicit zero
// reading is distinguishable from an omitted field.
type measurementRequest struct {
	models.Measurement
	Amount *float64 `json:"amount"`
}

func validateMeasurement(req *measurementRequest) error {
	if req.Date == "" {
		return errors.New("missing required field: date")
	}
	if !validDate(req.Date) {
		return errors.New("date must be YYYY-MM-DD")
	}
	if req.Category == "" {
		return errors.New("missing required field: category")
	}
	if req.Amount == nil {
		return errors.New("missing required field: amount")
	}
	if req.Unit == "" {
		return errors.New("missing required field: unit")
	}
	return nil
}

func measurementFilterFromQuery(r *http.Request) db.MeasurementFilter {
	page, perPage := parsePaginationParams(r)
	return db.MeasurementFilter{
		Category:   r.URL.Query().Get("category"),
		Location:   r.URL.Query().Get("location"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		Year:       queryInt(r, "year"),
		Month:      queryInt(r, "month"),
		Pagination: db.Pagination{Page: page, PerPage: perPage},
	}
}

func (h *Handler) GetMeasurementsHandler(w http.ResponseWriter, r *http.Request) {
	filter := measurementFilterFromQuery(r)
	measurements, total, err := h.Store.GetMeasurements(r.Context(), filter)
	if err != nil {
		h.Log.Error("failed to list measurements", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSONMeta(w, http.StatusOK, measurements,
		newPaginationMeta(filter.Page, filter.PerPage, total))
}

func (h *Handler) CreateMeasurementHandler(w http.ResponseWriter, r *http.Request) {
	var req measurementRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateMeasurement(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	m := req.Measurement
	m.Amount = *req.Amount

	if err := h.Store.CreateMeasurement(r.Context(), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusBadRequest, "emission factor not found")
			return
		}
		h.Log.Error("failed to create measurement", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("measurement created", "id", m.ID, "category", m.Category)
	respondJSON(w, http.StatusCreated, m)
}

func (h *Handler) GetMeasurementHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid measurement id")
		return
	}
	m, err := h.Store.GetMeasurement(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "measurement not found")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handler) UpdateMeasurementHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid measurement id")
		return
	}
	m, err := h.Store.GetMeasurement(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "measurement not found")
		return
	}

	req := measurementRequest{Measurement: *m}
	amount := m.Amount
	req.Amount = &amount
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateMeasurement(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	m = &req.Measurement
	m.ID = id
	m.Amount = *req.Amount

	if err := h.Store.UpdateMeasurement(r.Context(), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusBadRequest, "emission factor not found")
			return
		}
		h.Log.Error("failed to update measurement", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handler) DeleteMeasurementHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid measurement id")
		return
	}
	if _, err := h.Store.GetMeasurement(r.Context(), id); err != nil {
		h.respondStorageError(w, err, "measurement not found")
		return
	}
	if err := h.Store.DeleteMeasurement(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Log.Info("measurement deleted", "id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "measurement deleted"})
}

func (h *Handler) GetMeasurementsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	filter := measurementFilterFromQuery(r)
	summary, err := h.Store.MeasurementsSummary(r.Context(), filter)
	if err != nil {
		h.Log.Error("failed to summarize measurements", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// RecalculateEmissionsHandler recomputes every linked measurement against
// the current active factor values.
func (h *Handler) RecalculateEmissionsHandler(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Store.RecalculateEmissions(r.Context())
	if err != nil {
		h.Log.Error("recalculation failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Log.Info("emissions recalculated", "updated", updated)
	respondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (h *Handler) GetMeasurementLocationsHandler(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Store.MeasurementLocations(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, locations)
}
