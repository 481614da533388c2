package http

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/models"
)

// ContentService defines the content document operations required by
// ContentHandler.
type ContentService interface {
	Get(ctx context.Context) (models.Content, error)
	Studio(ctx context.Context) (models.StudioInfo, error)
	UpdateStudio(ctx context.Context, in models.Studio) (models.Studio, error)
	UpdateSocial(ctx context.Context, links map[string]string) (map[string]string, error)
	SetMission(ctx context.Context, mission string) (string, error)
	SetHeroSlides(ctx context.Context, slides []models.HeroSlide) ([]models.HeroSlide, error)
	SetServices(ctx context.Context, services []models.Service) ([]models.Service, error)
	SetTestimonials(ctx context.Context, ts []models.Testimonial) ([]models.Testimonial, error)
	SetStats(ctx context.Context, stats []models.Stat) ([]models.Stat, error)
	SetAbout(ctx context.Context, about models.About) (models.About, error)
	SetCollaborators(ctx context.Context, team []models.TeamMember) ([]models.TeamMember, error)
}

// ContentHandler serves the site copy: studio details and page sections.
type ContentHandler struct {
	ContentService ContentService
	Log            *zap.Logger
}

// Get handles GET /api/content.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.ContentService.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to load content")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Studio handles GET /api/content/studio.
func (h *ContentHandler) Studio(w http.ResponseWriter, r *http.Request) {
	info, err := h.ContentService.Studio(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to load studio info")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// UpdateStudio handles PUT /api/content/studio.
func (h *ContentHandler) UpdateStudio(w http.ResponseWriter, r *http.Request) {
	var in models.Studio
	if !decodeJSON(w, r, &in) {
		return
	}
	st, err := h.ContentService.UpdateStudio(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to update studio info")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// UpdateSocial handles PUT /api/content/social.
func (h *ContentHandler) UpdateSocial(w http.ResponseWriter, r *http.Request) {
	var links map[string]string
	if !decodeJSON(w, r, &links) {
		return
	}
	social, err := h.ContentService.UpdateSocial(r.Context(), links)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to update social links")
		return
	}
	writeJSON(w, http.StatusOK, social)
}

// SetMission handles PUT /api/content/mission.
func (h *ContentHandler) SetMission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mission *string `json:"mission"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Mission == nil {
		writeError(w, http.StatusBadRequest, "mission is required")
		return
	}
	m, err := h.ContentService.SetMission(r.Context(), *req.Mission)
	if err != nil {
		writeServiceError(w, r, h.Log, err, "Failed to update mission")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mission": m})
}

// HeroSlides handles GET /api/content/hero.
func (h *ContentHandler) HeroSlides(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, "Failed to load hero slides", func(c models.Content) any { return c.HeroSlides })
}

// SetHeroSlides handles PUT /api/content/hero with body {slides}.
func (h *ContentHandler) SetHeroSlides(w http.ResponseWriter, r *http.Request) {
	replaceSection(h, w, r, "slides", "Failed to update hero slides", h.ContentService.SetHeroSlides)
}

// Services handles GET /api/content/services.
func (h *ContentHandler) Services(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, "Failed to load services", func(c models.Content) any { return c.Services })
}

// SetServices handles PUT /api/content/services with body {services}.
func (h *ContentHandler) SetServices(w http.ResponseWriter, r *http.Request) {
	replaceSection(h, w, r, "services", "Failed to update services", h.ContentService.SetServices)
}

// Testimonials handles GET /api/content/testimonials.
func (h *ContentHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, "Failed to load testimonials", func(c models.Content) any { return c.Testimonials })
}

// SetTestimonials handles PUT /api/content/testimonials with body {testimonials}.
func (h *ContentHandler) SetTestimonials(w http.ResponseWriter, r *http.Request) {
	replaceSection(h, w, r, "testimonials", "Failed to update testimonials", h.ContentService.SetTestimonials)
}

// Stats handles GET /api/content/stats.
func (h *ContentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, "Failed to load stats", func(c models.Content) any { return c.Stats })
}

// SetStats handles PUT /api/content/stats with body {stats}.
func (h *ContentHandler) SetStats(w http.ResponseWriter, r *http.Request) {
	replaceSection(h, w, r, "stats", "Failed to update stats", h.ContentService.SetStats)
}

// About handles GET /api/content/about.
func (h *ContentHandler) About(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, "Failed to load about", func(c models.Content) any { return c.About })
}

// SetAbout handles PUT /api/content/about with body {about}.
func (h *ContentHandler) SetAbout(w http.ResponseWriter, r *http.Request) {
	replaceSection(h, w, r, "about", "Failed to update about", h.ContentService.SetAbout)
}

// Collaborators handles GET /api/content/collaborators.
func (h *ContentHandler) Collaborators(w http.ResponseWriter, r *http.Request) {
	h.section(w, r, "Failed to load collaborators", func(c models.Content) any { return c.Collaborators })
}

// SetCollaborators handles PUT /api/content/collaborators with body {collaborators}.
func (h *ContentHandler) SetCollaborators(w http.ResponseWriter, r *http.Request) {
	replaceSection(h, w, r, "collaborators", "Failed to update collaborators", h.ContentService.SetCollaborators)
}

func (h *ContentHandler) section(w http.ResponseWriter, r *http.Request, fallback string, pick func(models.Content) any) {
	c, err := h.ContentService.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Log, err, fallback)
		return
	}
	writeJSON(w, http.StatusOK, pick(c))
}

// replaceSection decodes body[key] into T and stores it with set. A missing
// key is rejected rather than clearing the section.
func replaceSection[T any](
	h *ContentHandler,
	w http.ResponseWriter,
	r *http.Request,
	key, fallback string,
	set func(context.Context, T) (T, error),
) {
	var body map[string]json.RawMessage
	if !decodeJSON(w, r, &body) {
		return
	}
	raw, ok := body[key]
	if !ok || string(raw) == "null" {
		writeError(w, http.StatusBadRequest, key+" is required")
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+key)
		return
	}
	out, err := set(r.Context(), v)
	if err != nil {
		writeServiceError(w, r, h.Log, err, fallback)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
