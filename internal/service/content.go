package service

import (
	"context"
	"maps"

	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/store"
)

// ContentService reads and edits the content document.
type ContentService struct {
	doc *store.Document[models.Content]
}

// NewContentService constructs a ContentService.
func NewContentService(doc *store.Document[models.Content]) *ContentService {
	return &ContentService{doc: doc}
}

// Get returns the whole content document.
func (s *ContentService) Get(ctx context.Context) (models.Content, error) {
	return s.doc.Get(ctx)
}

// Studio returns the studio details together with social links and mission.
func (s *ContentService) Studio(ctx context.Context) (models.StudioInfo, error) {
	c, err := s.doc.Get(ctx)
	if err != nil {
		return models.StudioInfo{}, err
	}
	return models.StudioInfo{Studio: c.Studio, Social: c.Social, Mission: c.Mission}, nil
}

// UpdateStudio overwrites the studio fields that are set in in; empty
// fields keep their stored value.
func (s *ContentService) UpdateStudio(ctx context.Context, in models.Studio) (models.Studio, error) {
	c, err := s.doc.Update(ctx, func(c *models.Content) error {
		st := &c.Studio
		keep(&st.Name, in.Name)
		keep(&st.Tagline, in.Tagline)
		keep(&st.Description, in.Description)
		keep(&st.Location, in.Location)
		keep(&st.Address, in.Address)
		keep(&st.Email, in.Email)
		keep(&st.Phone, in.Phone)
		keep(&st.WhatsApp, in.WhatsApp)
		if in.Founded != 0 {
			st.Founded = in.Founded
		}
		return nil
	})
	return c.Studio, err
}

// UpdateSocial merges links into the stored social links.
func (s *ContentService) UpdateSocial(ctx context.Context, links map[string]string) (map[string]string, error) {
	c, err := s.doc.Update(ctx, func(c *models.Content) error {
		if c.Social == nil {
			c.Social = make(map[string]string, len(links))
		}
		maps.Copy(c.Social, links)
		return nil
	})
	return c.Social, err
}

// SetMission replaces the mission statement.
func (s *ContentService) SetMission(ctx context.Context, mission string) (string, error) {
	c, err := s.doc.Update(ctx, func(c *models.Content) error {
		c.Mission = mission
		return nil
	})
	return c.Mission, err
}

// SetHeroSlides replaces the hero slideshow.
func (s *ContentService) SetHeroSlides(ctx context.Context, slides []models.HeroSlide) ([]models.HeroSlide, error) {
	c, err := s.doc.Update(ctx, func(c *models.Content) error {
		c.HeroSlides = nonNil(slides)
		return nil
	})
	return c.HeroSlides, err
}

// SetServices replaces the services list.
func (s *ContentService) SetServices(ctx context.Context, services []models.Service) ([]models.Service, error) {
	c, err := s.doc.Update(ctx, func(c *models.Content) error {
		c.Services = nonNil(services)
		return nil
	})
	return c.Services, err
}

// SetTestimonials replaces the testimonials list.
func (s *ContentService) SetTestimonials(ctx context.Context, ts []models.Testimonial) ([]models.Testimonial, error) {
	c, err := s.doc.Update(ctx, func(c *models.Content) error {
		c.Testimonials = nonNil(ts)
		return nil
	})
	return c.Testimonials, err
}

// SetStats replaces the headline stats.
func (s *ContentService) SetStats(ctx context.Context, stats []models.Stat) ([]models.Stat, error) {
	c, err := s.doc.Update(ctx, func(c *models.Content) error {
		c.Stats = nonNil(stats)
		return nil
	})
	return c.Stats, err
}

// SetAbout replaces the about-page copy.
func (s *ContentService) SetAbout(ctx context.Context, about models.About) (models.About, error) {
	c, err := s.doc.Update(ctx, func(c *models.Content) error {
		about.Values = nonNil(about.Values)
		c.About = about
		return nil
	})
	return c.About, err
}

// SetCollaborators replaces the team list.
func (s *ContentService) SetCollaborators(ctx context.Context, team []models.TeamMember) ([]models.TeamMember, error) {
	c, err := s.doc.Update(ctx, func(c *models.Content) error {
		c.Collaborators = nonNil(team)
		return nil
	})
	return c.Collaborators, err
}

func keep(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
