package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusedlens/studio/internal/models"
)

func ids(photos []models.Photo) []string {
	out := make([]string, len(photos))
	for i, p := range photos {
		out[i] = p.ID
	}
	return out
}

func TestPhotos_CRUDRoundTrip(t *testing.T) {
	svc := NewPhotoService(newDocs(t).Photos)
	ctx := context.Background()

	p, err := svc.Create(ctx, PhotoInput{Src: "https://img.example/1.jpg"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, DefaultPhotoTitle, p.Title)
	assert.Equal(t, DefaultPhotoCategory, p.Category)
	assert.Equal(t, DefaultPhotoAspect, p.Aspect)
	assert.Equal(t, p.Src, p.SrcLarge)
	assert.Equal(t, 1, p.Order)

	p2, err := svc.Create(ctx, PhotoInput{Src: "https://img.example/2.jpg", Category: "wedding", Aspect: "portrait"})
	require.NoError(t, err)
	assert.Equal(t, 2, p2.Order)

	title := "First Look"
	updated, err := svc.Update(ctx, p.ID, PhotoPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "First Look", updated.Title)
	assert.Equal(t, p.Src, updated.Src, "unset fields are kept")

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID, p2.ID}, ids(all.Photos))

	removed, err := svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Look", removed.Title)

	_, err = svc.Delete(ctx, p.ID)
	assertKind(t, err, ErrNotFound, "Photo not found")

	_, err = svc.Update(ctx, "missing", PhotoPatch{Title: &title})
	assertKind(t, err, ErrNotFound, "Photo not found")
}

func TestPhotos_CreateValidation(t *testing.T) {
	svc := NewPhotoService(newDocs(t).Photos)
	ctx := context.Background()

	_, err := svc.Create(ctx, PhotoInput{Src: "  "})
	assertKind(t, err, ErrInvalidInput, "src is required")

	_, err = svc.Create(ctx, PhotoInput{Src: "a.jpg", Aspect: "panorama"})
	assertKind(t, err, ErrInvalidInput, "aspect must be one of: landscape portrait square")

	bad := "wide"
	_, err = svc.Update(ctx, "x", PhotoPatch{Aspect: &bad})
	assertKind(t, err, ErrInvalidInput, "")
}

func TestPhotos_ByCategorySorted(t *testing.T) {
	svc := NewPhotoService(newDocs(t).Photos)
	ctx := context.Background()

	a, _ := svc.Create(ctx, PhotoInput{Src: "a", Category: "wedding"})
	b, _ := svc.Create(ctx, PhotoInput{Src: "b", Category: "portrait"})
	c, _ := svc.Create(ctx, PhotoInput{Src: "c", Category: "wedding"})

	order := 0
	_, err := svc.Update(ctx, c.ID, PhotoPatch{Order: &order})
	require.NoError(t, err)

	wed, err := svc.ByCategory(ctx, "wedding")
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID, a.ID}, ids(wed))

	all, err := svc.ByCategory(ctx, models.AllCategory)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, ids(all))

	none, err := svc.ByCategory(ctx, "event")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPhotos_ReorderMatchesSubmittedOrder(t *testing.T) {
	svc := NewPhotoService(newDocs(t).Photos)
	ctx := context.Background()

	var created []models.Photo
	for _, src := range []string{"a", "b", "c", "d"} {
		p, err := svc.Create(ctx, PhotoInput{Src: src})
		require.NoError(t, err)
		created = append(created, p)
	}
	a, b, c, d := created[0], created[1], created[2], created[3]

	photos, err := svc.Reorder(ctx, []models.PhotoOrder{
		{ID: d.ID, Order: 1},
		{ID: b.ID, Order: 2},
		{ID: a.ID, Order: 3},
		{ID: c.ID, Order: 4},
		{ID: "unknown", Order: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{d.ID, b.ID, a.ID, c.ID}, ids(photos))
	for i, p := range photos {
		assert.Equal(t, i+1, p.Order, "orders are renumbered strictly")
	}

	listed, err := svc.ByCategory(ctx, models.AllCategory)
	require.NoError(t, err)
	assert.Equal(t, ids(photos), ids(listed))

	// Reordering with the same array is stable.
	again, err := svc.Reorder(ctx, []models.PhotoOrder{
		{ID: d.ID, Order: 1}, {ID: b.ID, Order: 2}, {ID: a.ID, Order: 3}, {ID: c.ID, Order: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, photos, again)
}

func TestPhotos_ReorderValidation(t *testing.T) {
	svc := NewPhotoService(newDocs(t).Photos)
	ctx := context.Background()

	_, err := svc.Reorder(ctx, nil)
	assertKind(t, err, ErrInvalidInput, "")

	_, err = svc.Reorder(ctx, []models.PhotoOrder{{ID: "x", Order: 1}, {ID: "x", Order: 2}})
	assertKind(t, err, ErrInvalidInput, "photo x listed twice")
}

func TestPhotos_Categories(t *testing.T) {
	svc := NewPhotoService(newDocs(t).Photos)
	ctx := context.Background()

	cats, err := svc.AddCategory(ctx, models.Category{ID: "fashion", Label: "Fashion"})
	require.NoError(t, err)
	assert.Equal(t, "fashion", cats[len(cats)-1].ID)

	_, err = svc.AddCategory(ctx, models.Category{ID: "fashion", Label: "Again"})
	assertKind(t, err, ErrInvalidInput, "Category already exists")

	_, err = svc.AddCategory(ctx, models.Category{ID: "x"})
	assertKind(t, err, ErrInvalidInput, "Category id and label are required")

	cats, err = svc.DeleteCategory(ctx, "fashion")
	require.NoError(t, err)
	for _, c := range cats {
		assert.NotEqual(t, "fashion", c.ID)
	}

	_, err = svc.DeleteCategory(ctx, "fashion")
	assertKind(t, err, ErrNotFound, "Category not found")
}

func TestPhotos_AllCategoryIsNeverDeletable(t *testing.T) {
	svc := NewPhotoService(newDocs(t).Photos)
	ctx := context.Background()

	_, err := svc.DeleteCategory(ctx, models.AllCategory)
	assertKind(t, err, ErrInvalidInput, `Cannot delete "all" category`)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AllCategory, cats[0].ID)
}
