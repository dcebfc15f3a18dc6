package handlers

import (
	"errors"
	"net/http"

	"esgreport/db"
	"esgreport/models"
)

// factorRequest shadows factor_value with a pointer; a zero factor is
// allowed, only omission is rejected.
type factorRequest struct {
	models.EmissionFactor
	FactorValue *float64 `json:"factor_value"`
}

func validateFactor(req *factorRequest) error {
	if req.Name == "" {
		return errors.New("missing required field: name")
	}
	if req.Scope < 1 || req.Scope > 3 {
		return errors.New("scope must be 1, 2, or 3")
	}
	if req.Category == "" {
		return errors.New("missing required field: category")
	}
	if req.FactorValue == nil {
		return errors.New("missing required field: factor_value")
	}
	if req.Unit == "" {
		return errors.New("missing required field: unit")
	}
	if req.Source == "" {
		return errors.New("missing required field: source")
	}
	if req.EffectiveDate == "" {
		return errors.New("missing required field: effective_date")
	}
	if !validDate(req.EffectiveDate) {
		return errors.New("effective_date must be YYYY-MM-DD")
	}
	return nil
}

func (h *Handler) GetEmissionFactorsHandler(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePaginationParams(r)
	filter := db.FactorFilter{
		Scope:       queryInt(r, "scope"),
		Category:    r.URL.Query().Get("category"),
		SubCategory: r.URL.Query().Get("sub_category"),
		Search:      r.URL.Query().Get("search"),
		Pagination:  db.Pagination{Page: page, PerPage: perPage},
	}

	factors, total, err := h.Store.GetEmissionFactors(r.Context(), filter)
	if err != nil {
		h.Log.Error("failed to list emission factors", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSONMeta(w, http.StatusOK, factors, newPaginationMeta(page, perPage, total))
}

func (h *Handler) CreateEmissionFactorHandler(w http.ResponseWriter, r *http.Request) {
	var req factorRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateFactor(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	factor := req.EmissionFactor
	factor.FactorValue = *req.FactorValue

	if err := h.Store.CreateEmissionFactor(r.Context(), &factor); err != nil {
		h.Log.Error("failed to create emission factor", "name", factor.Name, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("emission factor created", "id", factor.ID, "name", factor.Name)
	respondJSON(w, http.StatusCreated, factor)
}

func (h *Handler) GetEmissionFactorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid emission factor id")
		return
	}
	factor, err := h.Store.GetEmissionFactor(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "emission factor not found")
		return
	}
	respondJSON(w, http.StatusOK, factor)
}

func (h *Handler) UpdateEmissionFactorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid emission factor id")
		return
	}
	factor, err := h.Store.GetEmissionFactor(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "emission factor not found")
		return
	}

	req := factorRequest{EmissionFactor: *factor}
	value := factor.FactorValue
	req.FactorValue = &value
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateFactor(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	factor = &req.EmissionFactor
	factor.ID = id
	factor.FactorValue = *req.FactorValue

	if err := h.Store.UpdateEmissionFactor(r.Context(), factor); err != nil {
		h.Log.Error("failed to update emission factor", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, factor)
}

func (h *Handler) DeleteEmissionFactorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid emission factor id")
		return
	}
	if _, err := h.Store.GetEmissionFactor(r.Context(), id); err != nil {
		h.respondStorageError(w, err, "emission factor not found")
		return
	}
	if err := h.Store.DeleteEmissionFactor(r.Context(), id); err != nil {
		h.Log.Error("failed to delete emission factor", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Log.Info("emission factor deleted", "id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "emission factor deleted"})
}

func (h *Handler) GetFactorCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.FactorCategories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetFactorSubCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		respondError(w, http.StatusBadRequest, "missing required parameter: category")
		return
	}
	subs, err := h.Store.FactorSubCategories(r.Context(), category)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

func (h *Handler) GetFactorRevisionsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid emission factor id")
		return
	}
	if _, err := h.Store.GetEmissionFactor(r.Context(), id); err != nil {
		h.respondStorageError(w, err, "emission factor not found")
		return
	}
	revisions, err := h.Store.GetFactorRevisions(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, revisions)
}

type revisionRequest struct {
	models.EmissionFactorRevision
	Activate bool `json:"activate"`
}

// CreateFactorRevisionHandler snapshots new factor values as the next
// version. Fields left empty inherit the current factor values.
func (h *Handler) CreateFactorRevisionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid emission factor id")
		return
	}
	factor, err := h.Store.GetEmissionFactor(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "emission factor not found")
		return
	}

	var req revisionRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rev := req.EmissionFactorRevision
	rev.ParentFactorID = id
	if rev.Name == "" {
		rev.Name = factor.Name
	}
	if rev.Scope == 0 {
		rev.Scope = factor.Scope
	}
	if rev.Category == "" {
		rev.Category = factor.Category
	}
	if rev.SubCategory == "" {
		rev.SubCategory = factor.SubCategory
	}
	if rev.FactorValue == 0 {
		rev.FactorValue = factor.FactorValue
	}
	if rev.Unit == "" {
		rev.Unit = factor.Unit
	}
	if rev.Source == "" {
		rev.Source = factor.Source
	}
	if rev.EffectiveDate == "" {
		rev.EffectiveDate = factor.EffectiveDate
	}
	if rev.EffectiveDate != "" && !validDate(rev.EffectiveDate) {
		respondError(w, http.StatusBadRequest, "effective_date must be YYYY-MM-DD")
		return
	}

	if err := h.Store.CreateFactorRevision(r.Context(), &rev); err != nil {
		h.Log.Error("failed to create factor revision", "factor_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Activate {
		if err := h.Store.ActivateFactorRevision(r.Context(), id, rev.ID); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		rev.IsActive = true
	}

	h.Log.Info("factor revision created", "factor_id", id, "version", rev.Version)
	respondJSON(w, http.StatusCreated, rev)
}

func (h *Handler) ActivateFactorRevisionHandler(w http.ResponseWriter, r *http.Request) {
	revisionID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid revision id")
		return
	}
	rev, err := h.Store.GetFactorRevision(r.Context(), revisionID)
	if err != nil {
		h.respondStorageError(w, err, "revision not found")
		return
	}

	if err := h.Store.ActivateFactorRevision(r.Context(), rev.ParentFactorID, revisionID); err != nil {
		h.respondStorageError(w, err, "revision not found")
		return
	}

	h.Log.Info("factor revision activated", "factor_id", rev.ParentFactorID, "revision_id", revisionID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "revision activated"})
}

func (h *Handler) DeleteFactorRevisionHandler(w http.ResponseWriter, r *http.Request) {
	revisionID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid revision id")
		return
	}
	rev, err := h.Store.GetFactorRevision(r.Context(), revisionID)
	if err != nil {
		h.respondStorageError(w, err, "revision not found")
		return
	}

	if err := h.Store.DeleteFactorRevision(r.Context(), rev.ParentFactorID, revisionID); err != nil {
		if errors.Is(err, db.ErrActiveRevision) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondStorageError(w, err, "revision not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "revision deleted"})
}
