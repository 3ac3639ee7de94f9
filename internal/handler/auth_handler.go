package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/clipstream/internal/domain"
	"github.com/prn-tf/clipstream/internal/service"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	authService *service.AuthService
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger.With().Str("handler", "auth").Logger(),
	}
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/auth/signup", h.handleSignup)
	r.Post("/api/auth/login", h.handleLogin)
}

// signupRequest is the JSON body for POST /api/auth/signup.
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the JSON body returned by signup and login.
type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	output, err := h.authService.Signup(r.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{User: output.User, Token: output.Token})
}

// loginRequest is the JSON body for POST /api/auth/login. Login carries the
// account's email or username.
type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	output, err := h.authService.Login(r.Context(), service.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: output.User, Token: output.Token})
}
