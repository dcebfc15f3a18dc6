package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"esgreport/models"
)

type userRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	JobTitle   string `json:"job_title"`
	Role       string `json:"role"`
}

func (h *Handler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.GetUsers(r.Context())
	if err != nil {
		h.Log.Error("failed to list users", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" {
		respondError(w, http.StatusBadRequest, "missing required field: username")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "missing required field: email")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing required field: password")
		return
	}

	exists, err := h.Store.UserExists(r.Context(), req.Username, req.Email, 0)
	if err != nil {
		h.Log.Error("duplicate check failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if exists {
		respondError(w, http.StatusConflict, "username or email already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = "viewer"
	}
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Department:   req.Department,
		JobTitle:     req.JobTitle,
		Role:         role,
		IsActive:     true,
	}
	if err := h.Store.CreateUser(r.Context(), user); err != nil {
		h.Log.Error("failed to create user", "username", req.Username, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Info("user created", "username", user.Username, "id", user.ID)
	respondJSON(w, http.StatusCreated, user)
}

func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.Store.GetUser(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "user not found")
		return
	}

	var req userRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Department != "" {
		user.Department = req.Department
	}
	if req.JobTitle != "" {
		user.JobTitle = req.JobTitle
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		user.PasswordHash = string(hash)
	}

	exists, err := h.Store.UserExists(r.Context(), user.Username, user.Email, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if exists {
		respondError(w, http.StatusConflict, "username or email already in use")
		return
	}

	if err := h.Store.UpdateUser(r.Context(), user); err != nil {
		h.Log.Error("failed to update user", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ToggleUserStatusHandler flips is_active on the target account.
func (h *Handler) ToggleUserStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.Store.GetUser(r.Context(), id)
	if err != nil {
		h.respondStorageError(w, err, "user not found")
		return
	}

	if err := h.Store.SetUserActive(r.Context(), id, !user.IsActive); err != nil {
		h.Log.Error("failed to toggle user status", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	user.IsActive = !user.IsActive

	h.Log.Info("user status toggled", "id", id, "is_active", user.IsActive)
	respondJSON(w, http.StatusOK, user)
}
