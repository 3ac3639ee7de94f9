package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/clipstream/internal/auth"
	"github.com/prn-tf/clipstream/internal/repository"
	"github.com/prn-tf/clipstream/internal/service"
)

// VideoHandler handles video metadata requests.
type VideoHandler struct {
	videoService *service.VideoService
	require      func(http.Handler) http.Handler
	optional     func(http.Handler) http.Handler
	logger       zerolog.Logger
}

// NewVideoHandler creates a new VideoHandler. require is the strict auth
// middleware for uploads and owner mutations; optional resolves an
// identity on public reads so owners see their private videos.
func NewVideoHandler(videoService *service.VideoService, require, optional func(http.Handler) http.Handler, logger zerolog.Logger) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		require:      require,
		optional:     optional,
		logger:       logger.With().Str("handler", "video").Logger(),
	}
}

// RegisterRoutes registers video routes. Likes deliberately take no
// identity and count every call.
func (h *VideoHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.optional)
		r.Get("/api/video", h.handleList)
		r.Get("/api/video/{id}", h.handleGet)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.require)
		r.Post("/api/video", h.handleCreate)
		r.Put("/api/video/{id}", h.handleUpdate)
		r.Delete("/api/video/{id}", h.handleDelete)
	})

	r.Post("/api/video/{id}/like", h.handleLike)
	r.Post("/api/video/{id}/unlike", h.handleUnlike)
}

// videoIDParam parses the {id} route parameter.
func videoIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// createVideoRequest is the JSON body for POST /api/video.
type createVideoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Credits     *string `json:"credits"`
	IsPrivate   bool    `json:"is_private"`
}

func (h *VideoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	video, err := h.videoService.Create(r.Context(), service.CreateVideoInput{
		OwnerID:     auth.ViewerID(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Credits:     req.Credits,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, video)
}

func (h *VideoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := repository.ListOptions{
		SortBy:     repository.ParseSortField(query.Get("sort")),
		Descending: query.Get("order") == "desc",
	}

	videos, err := h.videoService.List(r.Context(), auth.ViewerID(r.Context()), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func (h *VideoHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := videoIDParam(r)
	if !ok {
		writeBadRequest(w, "invalid video ID")
		return
	}

	video, err := h.videoService.Get(r.Context(), auth.ViewerID(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// updateVideoRequest is the JSON body for PUT /api/video/{id}.
// Omitted fields are left unchanged.
type updateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Credits     *string `json:"credits"`
	IsPrivate   *bool   `json:"is_private"`
}

func (h *VideoHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := videoIDParam(r)
	if !ok {
		writeBadRequest(w, "invalid video ID")
		return
	}

	var req updateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	video, err := h.videoService.Update(r.Context(), service.UpdateVideoInput{
		ActorID:     auth.ViewerID(r.Context()),
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Credits:     req.Credits,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := videoIDParam(r)
	if !ok {
		writeBadRequest(w, "invalid video ID")
		return
	}

	if err := h.videoService.Delete(r.Context(), auth.ViewerID(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *VideoHandler) handleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := videoIDParam(r)
	if !ok {
		writeBadRequest(w, "invalid video ID")
		return
	}

	video, err := h.videoService.Like(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) handleUnlike(w http.ResponseWriter, r *http.Request) {
	id, ok := videoIDParam(r)
	if !ok {
		writeBadRequest(w, "invalid video ID")
		return
	}

	video, err := h.videoService.Unlike(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}
