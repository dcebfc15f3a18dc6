package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"esgreport/internal/logger"
)

const maxBodySize = 1048576

// Handler wires storage and logging into the HTTP layer.
type Handler struct {
	Store     StorageInterface
	Log       *logger.Logger
	JWTSecret []byte
}

func NewHandler(store StorageInterface, log *logger.Logger, jwtSecret string) *Handler {
	return &Handler{Store: store, Log: log, JWTSecret: []byte(jwtSecret)}
}

// envelope is the shape of every API response.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func respondJSONMeta(w http.ResponseWriter, status int, data, meta interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data, Meta: meta})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

// respondStorageError maps missing rows to 404 and everything else to 500.
func (h *Handler) respondStorageError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	h.Log.Error("storage error", "error", err)
	respondError(w, http.StatusInternalServerError, err.Error())
}

// decodeBody reads a size-capped JSON body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.New("failed to read request body")
	}
	if len(body) == 0 {
		return errors.New("no data provided")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.New("invalid JSON format")
	}
	return nil
}

func urlParamInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

type paginationMeta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

func newPaginationMeta(page, perPage, total int) paginationMeta {
	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return paginationMeta{Page: page, PerPage: perPage, Total: total, Pages: pages}
}

// parsePaginationParams reads page and per_page with defaults 1 and 20;
// per_page is capped at 100. Invalid values fall back to the defaults.
func parsePaginationParams(r *http.Request) (page, perPage int) {
	page, perPage = 1, 20

	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			page = v
		}
	}
	if s := r.URL.Query().Get("per_page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			if v > 100 {
				v = 100
			}
			perPage = v
		}
	}
	return page, perPage
}

func queryInt(r *http.Request, name string) int {
	if s := r.URL.Query().Get(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return 0
}

// validDate accepts YYYY-MM-DD only.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// HealthHandler reports liveness without touching the database.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// StatusHandler reports service identity and time for instance monitoring.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "esg-reporting-api",
		"status":  "running",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
