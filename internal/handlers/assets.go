package handlers

import (
	"errors"
	"net/http"

	"esgreport/db"
	"esgreport/models"
)

func validateAsset(a *models.Asset) error {
	if a.Name == "" {
		return errors.New("missing required field: name")
	}
	if a.AssetType == "" {
		return errors.New("missing required field: asset_type")
	}
	if a.InstallationDate != "" && !validDate(a.InstallationDate) {
		return errors.New("installation_date must be YYYY-MM-DD")
	}
	return nil
}

func (h *Handler) GetAssetsHandler(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePaginationParams(r)
	filter := db.AssetFilter{
		AssetType:  r.URL.Query().Get("asset_type"),
		Status:     r.URL.Query().Get("status"),
		Location:   r.URL.Query().Get("location"),
		Search:     r.URL.Query().Get("search"),
		Pagination: db.Pagination{Page: page, PerPage: perPage},
	}

	assets, total, err := h.Store.GetAssets(r.Context(), filter)
	if err != nil {
		h.Log.Error("failed to list assets", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSONMeta(w, http.StatusOK, assets, newPaginationMeta(page, perPage, total))
}

func (h *Handler) CreateAssetHandler(w http.ResponseWriter, r *http.Request) {
	var asset models.Asset
	if err := decodeBody(w, r, &asset); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateAsset(&asset); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if asset.Status == "" {
		asset.Status = "operational"
	}

	if err := h.Store.CreateAsset(r.Context(), &asset); err != nil {
		h.Log.Error("failed to create asset", "name", asset.Name, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("asset created", "id", asset.ID, "name", asset.Name)
	respondJSON(w, http.StatusCreated, asset)
}

func (h *Handler) GetAssetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset id")
		return
	}
	asset, err := h.Store.GetAsset(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "asset not found")
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

func (h *Handler) UpdateAssetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset id")
		return
	}
	asset, err := h.Store.GetAsset(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "asset not found")
		return
	}

	if err := decodeBody(w, r, asset); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	asset.ID = id
	if err := validateAsset(asset); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.UpdateAsset(r.Context(), asset); err != nil {
		h.Log.Error("failed to update asset", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

func (h *Handler) DeleteAssetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset id")
		return
	}
	if _, err := h.Store.GetAsset(r.Context(), id); err != nil {
		h.respondStorageError(w, err, "asset not found")
		return
	}
	if err := h.Store.DeleteAsset(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Log.Info("asset deleted", "id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "asset deleted"})
}

func (h *Handler) GetAssetTypesHandler(w http.ResponseWriter, r *http.Request) {
	types, err := h.Store.AssetTypes(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, types)
}

func (h *Handler) GetAssetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Store.AssetSummary(r.Context())
	if err != nil {
		h.Log.Error("failed to summarize assets", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
