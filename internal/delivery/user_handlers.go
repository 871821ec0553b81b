package delivery

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/antonvrn/animegirl-backend/internal/user"
)

type UserHandler struct {
	userService user.Service
	log         *logger.ZapLogger
}

func NewUserHandler(userService user.Service, zl *logger.ZapLogger) *UserHandler {
	return &UserHandler{userService: userService, log: zl}
}

// POST /api/users — get-or-create по телу {id, username}
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == 0 {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	u, err := h.userService.GetOrCreate(r.Context(), req.ID, strings.TrimSpace(req.Username))
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "create user fail", Error: err})
		renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// POST /api/users/{user_id} — get-or-create по id из пути
func (h *UserHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	u, err := h.userService.GetOrCreate(r.Context(), userID, "")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "get-or-create user fail", Error: err})
		renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// POST /api/users/status/{user_id} — free ↔ premium
func (h *UserHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	u, err := h.userService.Get(ctx, userID)
	if err != nil {
		renderError(w, err)
		return
	}
	if u == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	newStatus, err := h.userService.ToggleStatus(ctx, userID)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "toggle status fail", Error: err})
		renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "updated",
		"new_status": newStatus,
	})
}

// POST /api/users/username/{user_id}?username=...
func (h *UserHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		http.Error(w, "missing username", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	u, err := h.userService.Get(ctx, userID)
	if err != nil {
		renderError(w, err)
		return
	}
	if u == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	if _, err := h.userService.Update(ctx, user.UpdateInput{ID: userID, Username: &username}); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "update username fail", Error: err})
		renderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "updated",
		"user_id":      userID,
		"new_username": username,
	})
}
