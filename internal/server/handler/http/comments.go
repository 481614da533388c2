package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/middleware"
	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/service"
)

// CommentService defines the photo comment operations required by
// CommentHandler.
type CommentService interface {
	List(ctx context.Context, admin bool) ([]models.Comment, error)
	ForPhoto(ctx context.Context, photoID string, admin bool) ([]models.Comment, error)
	Add(ctx context.Context, photoID string, in service.CommentInput) (models.Comment, error)
	SetApproved(ctx context.Context, id string, approved bool) (models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// CommentHandler serves photo comments and their moderation.
type CommentHandler struct {
	CommentService CommentService
	Log            *zap.Logger
}

// List handles GET /api/comments. Admins see every comment; everyone else
// sees approved comments without emails.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	cs, err := h.CommentService.List(r.Context(), isAdmin(r))
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to load comments")
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// ForPhoto handles GET /api/comments/{photoId}.
func (h *CommentHandler) ForPhoto(w http.ResponseWriter, r *http.Request) {
	cs, err := h.CommentService.ForPhoto(r.Context(), chi.URLParam(r, "photoId"), isAdmin(r))
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to load comments")
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// Add handles POST /api/comments/{photoId}.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in service.CommentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.CommentService.Add(r.Context(), chi.URLParam(r, "photoId"), in)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to add comment")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// SetApproved handles PUT /api/comments/{commentId} with body {approved}.
func (h *CommentHandler) SetApproved(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Approved *bool `json:"approved"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Approved == nil {
		writeError(w, http.StatusBadRequest, "approved is required")
		return
	}
	c, err := h.CommentService.SetApproved(r.Context(), chi.URLParam(r, "commentId"), *req.Approved)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to update comment")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/comments/{commentId}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.CommentService.Delete(r.Context(), chi.URLParam(r, "commentId")); err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to delete comment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}

func isAdmin(r *http.Request) bool {
	_, ok := middleware.ClaimsFromContext(r.Context())
	return ok
}
