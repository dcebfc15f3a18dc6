package handlers

import (
	"net/http"
	"time"

	"esgreport/db"
	"esgreport/models"
)

func (h *Handler) GetSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePaginationParams(r)
	filter := db.SupplierFilter{
		Industry:   r.URL.Query().Get("industry"),
		ESGRating:  r.URL.Query().Get("esg_rating"),
		Status:     r.URL.Query().Get("status"),
		Search:     r.URL.Query().Get("search"),
		Pagination: db.Pagination{Page: page, PerPage: perPage},
	}

	suppliers, total, err := h.Store.GetSuppliers(r.Context(), filter)
	if err != nil {
		h.Log.Error("failed to list suppliers", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSONMeta(w, http.StatusOK, suppliers, newPaginationMeta(page, perPage, total))
}

func (h *Handler) CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var sup models.Supplier
	if err := decodeBody(w, r, &sup); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if sup.CompanyName == "" {
		respondError(w, http.StatusBadRequest, "missing required field: company_name")
		return
	}

	if sup.Status == "" {
		sup.Status = "pending"
	}
	if sup.PriorityLevel == "" {
		sup.PriorityLevel = "medium"
	}
	if sup.Scope3Categories == nil {
		sup.Scope3Categories = models.StringList{}
	}
	if sup.LastUpdated == "" {
		sup.LastUpdated = time.Now().UTC().Format("2006-01-02")
	}

	if err := h.Store.CreateSupplier(r.Context(), &sup); err != nil {
		h.Log.Error("failed to create supplier", "company", sup.CompanyName, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("supplier created", "id", sup.ID, "company", sup.CompanyName)
	respondJSON(w, http.StatusCreated, sup)
}

func (h *Handler) GetSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	sup, err := h.Store.GetSupplier(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "supplier not found")
		return
	}
	respondJSON(w, http.StatusOK, sup)
}

func (h *Handler) UpdateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	sup, err := h.Store.GetSupplier(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "supplier not found")
		return
	}

	if err := decodeBody(w, r, sup); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sup.ID = id
	if sup.CompanyName == "" {
		respondError(w, http.StatusBadRequest, "missing required field: company_name")
		return
	}

	if err := h.Store.UpdateSupplier(r.Context(), sup); err != nil {
		h.Log.Error("failed to update supplier", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sup)
}

func (h *Handler) DeleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	if _, err := h.Store.GetSupplier(r.Context(), id); err != nil {
		h.respondStorageError(w, err, "supplier not found")
		return
	}
	if err := h.Store.DeleteSupplier(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Log.Info("supplier deleted", "id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "supplier deleted"})
}

func (h *Handler) GetSupplierDataHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	if _, err := h.Store.GetSupplier(r.Context(), id); err != nil {
		h.respondStorageError(w, err, "supplier not found")
		return
	}
	data, err := h.Store.GetSupplierData(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// CreateSupplierDataHandler records a data point and returns the supplier's
// recomputed completeness score alongside the row.
func (h *Handler) CreateSupplierDataHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	// Zero is a legitimate reading, so value presence is tracked with a
	// pointer rather than the zero value.
	var req struct {
		models.SupplierData
		Value *float64 `json:"value"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.DataType == "" {
		respondError(w, http.StatusBadRequest, "missing required field: data_type")
		return
	}
	if req.Value == nil {
		respondError(w, http.StatusBadRequest, "missing required field: value")
		return
	}
	if req.Unit == "" {
		respondError(w, http.StatusBadRequest, "missing required field: unit")
		return
	}

	data := req.SupplierData
	data.SupplierID = id
	data.Value = *req.Value
	if data.VerificationStatus == "" {
		data.VerificationStatus = "unverified"
	}

	completeness, err := h.Store.CreateSupplierData(r.Context(), &data)
	if err != nil {
		h.respondStorageError(w, err, "supplier not found")
		return
	}

	h.Log.Info("supplier data recorded", "supplier_id", id, "data_completeness", completeness)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"entry":             data,
		"data_completeness": completeness,
	})
}

func (h *Handler) GetSupplierSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Store.SupplierSummary(r.Context())
	if err != nil {
		h.Log.Error("failed to summarize suppliers", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
