package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusedlens/studio/internal/models"
)

func TestContent_StudioMergeKeepsEmptyFields(t *testing.T) {
	docs := newDocs(t)
	svc := NewContentService(docs.Content)
	ctx := context.Background()

	_, err := svc.UpdateStudio(ctx, models.Studio{Email: "hello@fusedlens.example", Phone: "+254 700"})
	require.NoError(t, err)

	st, err := svc.UpdateStudio(ctx, models.Studio{Phone: "+254 720", Founded: 2018})
	require.NoError(t, err)
	assert.Equal(t, "Fused Lens Studio", st.Name)
	assert.Equal(t, "hello@fusedlens.example", st.Email)
	assert.Equal(t, "+254 720", st.Phone)
	assert.Equal(t, 2018, st.Founded)
}

func TestContent_StudioInfoIncludesSocialAndMission(t *testing.T) {
	docs := newDocs(t)
	svc := NewContentService(docs.Content)
	ctx := context.Background()

	_, err := svc.UpdateSocial(ctx, map[string]string{"instagram": "https://instagram.com/fl"})
	require.NoError(t, err)
	social, err := svc.UpdateSocial(ctx, map[string]string{"twitter": "https://twitter.com/fl"})
	require.NoError(t, err)
	assert.Len(t, social, 2, "social links merge")

	_, err = svc.SetMission(ctx, "Freeze emotions.")
	require.NoError(t, err)

	info, err := svc.Studio(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fused Lens Studio", info.Name)
	assert.Equal(t, "Freeze emotions.", info.Mission)
	assert.Equal(t, "https://twitter.com/fl", info.Social["twitter"])
}

func TestContent_SectionsReplace(t *testing.T) {
	docs := newDocs(t)
	svc := NewContentService(docs.Content)
	ctx := context.Background()

	slides := []models.HeroSlide{{ID: 1, Image: "a.jpg", Title: "Timeless", Subtitle: "Memories"}}
	_, err := svc.SetHeroSlides(ctx, slides)
	require.NoError(t, err)

	services := []models.Service{{ID: 1, Title: "Wedding Photography", Features: []string{"Full Day Coverage"}}}
	_, err = svc.SetServices(ctx, services)
	require.NoError(t, err)

	stats := []models.Stat{{Value: 750, Suffix: "+", Label: "Projects Completed"}}
	_, err = svc.SetStats(ctx, stats)
	require.NoError(t, err)

	ts := []models.Testimonial{{ID: 1, Quote: "Beautiful", Author: "Sarah"}}
	_, err = svc.SetTestimonials(ctx, ts)
	require.NoError(t, err)

	about, err := svc.SetAbout(ctx, models.About{Title: "Our Story"})
	require.NoError(t, err)
	assert.NotNil(t, about.Values)

	team := []models.TeamMember{{ID: 7, Name: "Jane", Role: "Second Photographer"}}
	_, err = svc.SetCollaborators(ctx, team)
	require.NoError(t, err)

	c, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, slides, c.HeroSlides)
	assert.Equal(t, services, c.Services)
	assert.Equal(t, stats, c.Stats)
	assert.Equal(t, ts, c.Testimonials)
	assert.Equal(t, "Our Story", c.About.Title)
	assert.Equal(t, team, c.Collaborators)

	cleared, err := svc.SetServices(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, cleared)
	assert.Empty(t, cleared)
}
