package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/models"
)

// CollectionService defines the collection operations required by
// CollectionHandler.
type CollectionService interface {
	List(ctx context.Context) ([]models.Collection, error)
	Get(ctx context.Context, id string) (models.Collection, error)
	Create(ctx context.Context, c models.Collection) (models.Collection, error)
	Replace(ctx context.Context, id string, c models.Collection) (models.Collection, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, id, author, text string) (models.CollectionComment, error)
	DeleteComment(ctx context.Context, id string, commentID int64) error
	AddPhoto(ctx context.Context, id string, p models.CollectionPhoto) (models.CollectionPhoto, error)
	DeletePhoto(ctx context.Context, id, photoID string) error
	AddCollaborator(ctx context.Context, id string, c models.Collaborator) (models.Collaborator, error)
}

// CollectionHandler serves collections with their photos, collaborators and
// guest comments.
type CollectionHandler struct {
	CollectionService CollectionService
	Log               *zap.Logger
}

var success = map[string]bool{"success": true}

// List handles GET /api/collections.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	cs, err := h.CollectionService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to fetch collections")
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// Get handles GET /api/collections/{id}.
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.CollectionService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to fetch collection")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Create handles POST /api/collections.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Collection
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.CollectionService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to create collection")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Replace handles PUT /api/collections/{id}.
func (h *CollectionHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var in models.Collection
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.CollectionService.Replace(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to update collection")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/collections/{id}.
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.CollectionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to delete collection")
		return
	}
	writeJSON(w, http.StatusOK, success)
}

// AddComment handles POST /api/collections/{id}/comments.
func (h *CollectionHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Author string `json:"author"`
		Text   string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.CollectionService.AddComment(r.Context(), chi.URLParam(r, "id"), req.Author, req.Text)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to add comment")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// DeleteComment handles DELETE /api/collections/{id}/comments/{commentId}.
func (h *CollectionHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid comment id")
		return
	}
	if err := h.CollectionService.DeleteComment(r.Context(), chi.URLParam(r, "id"), commentID); err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to delete comment")
		return
	}
	writeJSON(w, http.StatusOK, success)
}

// AddPhoto handles POST /api/collections/{id}/photos.
func (h *CollectionHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	var in models.CollectionPhoto
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.CollectionService.AddPhoto(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to add photo")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// DeletePhoto handles DELETE /api/collections/{id}/photos/{photoId}.
func (h *CollectionHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	err := h.CollectionService.DeletePhoto(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "photoId"))
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to delete photo")
		return
	}
	writeJSON(w, http.StatusOK, success)
}

// AddCollaborator handles POST /api/collections/{id}/collaborators.
func (h *CollectionHandler) AddCollaborator(w http.ResponseWriter, r *http.Request) {
	var in models.Collaborator
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.CollectionService.AddCollaborator(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to add collaborator")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
