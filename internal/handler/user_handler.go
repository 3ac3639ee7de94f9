package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/clipstream/internal/auth"
	"github.com/prn-tf/clipstream/internal/service"
)

// UserHandler handles account lookup and self-management requests.
type UserHandler struct {
	userService *service.UserService
	require     func(http.Handler) http.Handler
	logger      zerolog.Logger
}

// NewUserHandler creates a new UserHandler. require is the strict auth
// middleware applied to password change and account deletion.
func NewUserHandler(userService *service.UserService, require func(http.Handler) http.Handler, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		require:     require,
		logger:      logger.With().Str("handler", "user").Logger(),
	}
}

// RegisterRoutes registers user routes. Reads are public; mutations
// require an authenticated owner.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/user", h.handleList)
	r.Get("/api/user/{id}", h.handleGet)

	r.Group(func(r chi.Router) {
		r.Use(h.require)
		r.Put("/api/user/{id}", h.handleChangePassword)
		r.Delete("/api/user/{id}", h.handleDelete)
	})
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "invalid user ID")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// changePasswordRequest is the JSON body for PUT /api/user/{id}.
type changePasswordRequest struct {
	Password string `json:"password"`
}

func (h *UserHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "invalid user ID")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	err = h.userService.ChangePassword(r.Context(), service.ChangePasswordInput{
		ActorID:     auth.ViewerID(r.Context()),
		TargetID:    id,
		NewPassword: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "invalid user ID")
		return
	}

	if err := h.userService.Delete(r.Context(), auth.ViewerID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
