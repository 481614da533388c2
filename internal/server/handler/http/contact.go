package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/service"
)

// ContactService defines the contact form operations required by
// ContactHandler.
type ContactService interface {
	Submit(ctx context.Context, in service.ContactInput) (models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	SetStatus(ctx context.Context, id, status string) (models.Contact, error)
	Delete(ctx context.Context, id string) error
}

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	ContactService ContactService
	Log            *zap.Logger
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.ContactService.Submit(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Contact form submitted successfully",
		"id":      c.ID,
	})
}

// List handles GET /api/contact.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	cs, err := h.ContactService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// SetStatus handles PUT /api/contact/{id} with body {status}.
func (h *ContactHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.ContactService.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/contact/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ContactService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.Log, err, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Contact deleted"})
}
