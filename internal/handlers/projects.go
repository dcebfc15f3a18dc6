package handlers

import (
	"errors"
	"net/http"

	"esgreport/db"
	"esgreport/models"
)

func validateProject(p *models.Project) error {
	if p.Name == "" {
		return errors.New("missing required field: name")
	}
	if p.Year == 0 {
		return errors.New("missing required field: year")
	}
	if p.StartDate == "" {
		return errors.New("missing required field: start_date")
	}
	if p.EndDate == "" {
		return errors.New("missing required field: end_date")
	}
	if !validDate(p.StartDate) {
		return errors.New("start_date must be YYYY-MM-DD")
	}
	if !validDate(p.EndDate) {
		return errors.New("end_date must be YYYY-MM-DD")
	}
	return nil
}

func (h *Handler) GetProjectsHandler(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePaginationParams(r)
	filter := db.ProjectFilter{
		Year:       queryInt(r, "year"),
		Status:     r.URL.Query().Get("status"),
		Pagination: db.Pagination{Page: page, PerPage: perPage},
	}

	projects, total, err := h.Store.GetProjects(r.Context(), filter)
	if err != nil {
		h.Log.Error("failed to list projects", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSONMeta(w, http.StatusOK, projects, newPaginationMeta(page, perPage, total))
}

func (h *Handler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := decodeBody(w, r, &project); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateProject(&project); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if project.Status == "" {
		project.Status = "planning"
	}

	if err := h.Store.CreateProject(r.Context(), &project); err != nil {
		h.Log.Error("failed to create project", "name", project.Name, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("project created", "id", project.ID, "name", project.Name)
	respondJSON(w, http.StatusCreated, project)
}

func (h *Handler) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "project not found")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *Handler) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "project not found")
		return
	}

	if err := decodeBody(w, r, project); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	project.ID = id
	if err := validateProject(project); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.UpdateProject(r.Context(), project); err != nil {
		h.Log.Error("failed to update project", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *Handler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	if _, err := h.Store.GetProject(r.Context(), id); err != nil {
		h.respondStorageError(w, err, "project not found")
		return
	}
	if err := h.Store.DeleteProject(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Log.Info("project deleted", "id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}

func (h *Handler) GetProjectActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	activities, err := h.Store.GetProjectActivities(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, activities)
}

func (h *Handler) CreateProjectActivityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var activity models.ProjectActivity
	if err := decodeBody(w, r, &activity); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	activity.ProjectID = id
	if activity.Description == "" {
		respondError(w, http.StatusBadRequest, "missing required field: description")
		return
	}
	if activity.Status == "" {
		activity.Status = "not_started"
	}
	if activity.EmissionCategories == nil {
		activity.EmissionCategories = models.StringList{}
	}
	if activity.MeasurementIDs == nil {
		activity.MeasurementIDs = models.IntList{}
	}

	if err := h.Store.CreateProjectActivity(r.Context(), &activity); err != nil {
		h.respondStorageError(w, err, "project not found")
		return
	}

	h.Log.Info("project activity created", "project_id", id, "activity_id", activity.ID)
	respondJSON(w, http.StatusCreated, activity)
}

func (h *Handler) UpdateProjectActivityHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	activityID, err := urlParamInt(r, "activityID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	activity, err := h.Store.GetProjectActivity(r.Context(), projectID, activityID)
	if err != nil {
		h.respondStorageError(w, err, "activity not found")
		return
	}

	if err := decodeBody(w, r, activity); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	activity.ID = activityID
	activity.ProjectID = projectID
	if activity.Description == "" {
		respondError(w, http.StatusBadRequest, "missing required field: description")
		return
	}

	if err := h.Store.UpdateProjectActivity(r.Context(), activity); err != nil {
		h.Log.Error("failed to update activity", "activity_id", activityID, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

func (h *Handler) DeleteProjectActivityHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	activityID, err := urlParamInt(r, "activityID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid activity id")
		return
	}
	if _, err := h.Store.GetProjectActivity(r.Context(), projectID, activityID); err != nil {
		h.respondStorageError(w, err, "activity not found")
		return
	}
	if err := h.Store.DeleteProjectActivity(r.Context(), projectID, activityID); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "activity deleted"})
}

func (h *Handler) GetProjectStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.ProjectStatistics(r.Context())
	if err != nil {
		h.Log.Error("failed to compute project statistics", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
