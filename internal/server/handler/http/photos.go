package http

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/metrics"
	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/service"
	"github.com/fusedlens/studio/internal/uploads"
)

// multipartMemory is the part of a multipart form kept in memory; larger
// files spill to temporary files.
const multipartMemory = 1 << 20

// PhotoService defines the portfolio operations required by PhotoHandler.
type PhotoService interface {
	All(ctx context.Context) (models.Photos, error)
	Categories(ctx context.Context) ([]models.Category, error)
	ByCategory(ctx context.Context, category string) ([]models.Photo, error)
	Create(ctx context.Context, in service.PhotoInput) (models.Photo, error)
	Update(ctx context.Context, id string, patch service.PhotoPatch) (models.Photo, error)
	Delete(ctx context.Context, id string) (models.Photo, error)
	Reorder(ctx context.Context, order []models.PhotoOrder) ([]models.Photo, error)
	AddCategory(ctx context.Context, c models.Category) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id string) ([]models.Category, error)
}

// Uploader stores uploaded images and removes them again.
type Uploader interface {
	Save(originalName, declaredType string, r io.Reader) (string, error)
	Remove(src string) error
	MaxBytes() int64
}

// PhotoHandler serves the portfolio and its categories.
type PhotoHandler struct {
	PhotoService PhotoService
	Uploads      Uploader
	Log          *zap.Logger
}

// All handles GET /api/photos.
func (h *PhotoHandler) All(w http.ResponseWriter, r *http.Request) {
	p, err := h.PhotoService.All(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to load photos")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ByCategory handles GET /api/photos/category/{category}.
func (h *PhotoHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	photos, err := h.PhotoService.ByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to load photos")
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

// Categories handles GET /api/photos/categories.
func (h *PhotoHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.PhotoService.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Create handles POST /api/photos. The body is either JSON or a multipart
// form whose optional "photo" part is stored as an upload.
func (h *PhotoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		in       service.PhotoInput
		uploaded string
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		var ok bool
		in, uploaded, ok = h.readMultipart(w, r)
		if !ok {
			return
		}
	} else if !decodeJSON(w, r, &in) {
		return
	}

	p, err := h.PhotoService.Create(r.Context(), in)
	if err != nil {
		if uploaded != "" {
			h.removeUpload(uploaded)
		}
		writeServiceError(w, r, h.Log, err, "Failed to add photo")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PhotoHandler) readMultipart(w http.ResponseWriter, r *http.Request) (service.PhotoInput, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Uploads.MaxBytes()+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.RecordUpload("rejected")
			writeError(w, http.StatusBadRequest, "File too large")
			return service.PhotoInput{}, "", false
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return service.PhotoInput{}, "", false
	}

	in := service.PhotoInput{
		Src:          r.FormValue("src"),
		SrcLarge:     r.FormValue("srcLarge"),
		Title:        r.FormValue("title"),
		Category:     r.FormValue("category"),
		Aspect:       r.FormValue("aspect"),
		CollectionID: r.FormValue("collectionId"),
	}

	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return in, "", true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return service.PhotoInput{}, "", false
	}
	defer file.Close()

	src, err := h.Uploads.Save(header.Filename, header.Header.Get("Content-Type"), file)
	switch {
	case errors.Is(err, uploads.ErrUnsupportedType):
		metrics.RecordUpload("rejected")
		writeError(w, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, and WebP allowed.")
		return service.PhotoInput{}, "", false
	case errors.Is(err, uploads.ErrTooLarge):
		metrics.RecordUpload("rejected")
		writeError(w, http.StatusBadRequest, "File too large")
		return service.PhotoInput{}, "", false
	case err != nil:
		metrics.RecordUpload("failed")
		writeServiceError(w, r, h.Log, err, "Failed to add photo")
		return service.PhotoInput{}, "", false
	}
	metrics.RecordUpload("stored")
	in.Src, in.SrcLarge = src, src
	return in, src, true
}

// Update handles PUT /api/photos/{id}.
func (h *PhotoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch service.PhotoPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	p, err := h.PhotoService.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to update photo")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/photos/{id} and removes the uploaded file
// behind a local photo.
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := h.PhotoService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to delete photo")
		return
	}
	for _, src := range []string{p.Src, p.SrcLarge} {
		if uploads.IsLocal(src) {
			h.removeUpload(src)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Photo deleted"})
}

// Reorder handles PUT /api/photos/reorder/batch with body {order: [{id, order}]}.
func (h *PhotoHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Order []models.PhotoOrder `json:"order"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	photos, err := h.PhotoService.Reorder(r.Context(), req.Order)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to reorder photos")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Photos reordered",
		"photos":  photos,
	})
}

// AddCategory handles POST /api/photos/categories.
func (h *PhotoHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if !decodeJSON(w, r, &c) {
		return
	}
	cats, err := h.PhotoService.AddCategory(r.Context(), c)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to add category")
		return
	}
	writeJSON(w, http.StatusCreated, cats)
}

// DeleteCategory handles DELETE /api/photos/categories/{id}.
func (h *PhotoHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	cats, err := h.PhotoService.DeleteCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to delete category")
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *PhotoHandler) removeUpload(src string) {
	if err := h.Uploads.Remove(src); err != nil && h.Log != nil {
		h.Log.Warn("failed to remove upload", zap.String("src", src), zap.Error(err))
	}
}
