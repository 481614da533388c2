package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/store"
	"github.com/fusedlens/studio/internal/validation"
)

// Photo defaults applied on create.
const (
	DefaultPhotoTitle    = "Untitled"
	DefaultPhotoCategory = "portrait"
	DefaultPhotoAspect   = "landscape"
)

// PhotoInput describes a new portfolio photo. Src is either a remote URL or
// the /uploads/ URL of a file the caller already stored.
type PhotoInput struct {
	Src          string `json:"src" validate:"required"`
	SrcLarge     string `json:"srcLarge"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Aspect       string `json:"aspect" validate:"omitempty,oneof=landscape portrait square"`
	CollectionID string `json:"collectionId"`
}

// PhotoPatch holds the fields of a partial photo update. Nil fields are left alone.
type PhotoPatch struct {
	Src          *string `json:"src"`
	SrcLarge     *string `json:"srcLarge"`
	Title        *string `json:"title"`
	Category     *string `json:"category"`
	Aspect       *string `json:"aspect" validate:"omitnil,oneof=landscape portrait square"`
	Order        *int    `json:"order"`
	CollectionID *string `json:"collectionId"`
}

// PhotoService manages the portfolio document.
type PhotoService struct {
	doc *store.Document[models.Photos]
}

// NewPhotoService constructs a PhotoService.
func NewPhotoService(doc *store.Document[models.Photos]) *PhotoService {
	return &PhotoService{doc: doc}
}

// All returns the whole portfolio document.
func (s *PhotoService) All(ctx context.Context) (models.Photos, error) {
	return s.doc.Get(ctx)
}

// Categories returns the portfolio categories.
func (s *PhotoService) Categories(ctx context.Context) ([]models.Category, error) {
	d, err := s.doc.Get(ctx)
	return d.Categories, err
}

// ByCategory returns the photos of category ("all" matches every photo)
// sorted by order.
func (s *PhotoService) ByCategory(ctx context.Context, category string) ([]models.Photo, error) {
	d, err := s.doc.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Photo, 0, len(d.Photos))
	for _, p := range d.Photos {
		if category == models.AllCategory || p.Category == category {
			out = append(out, p)
		}
	}
	sortByOrder(out)
	return out, nil
}

// Create appends a photo after the current last position.
func (s *PhotoService) Create(ctx context.Context, in PhotoInput) (models.Photo, error) {
	in.Src = strings.TrimSpace(in.Src)
	if err := validation.Struct(in); err != nil {
		return models.Photo{}, invalid("%s", err.Error())
	}

	p := models.Photo{
		ID:           uuid.NewString(),
		Src:          in.Src,
		SrcLarge:     cmpOr(in.SrcLarge, in.Src),
		Title:        cmpOr(strings.TrimSpace(in.Title), DefaultPhotoTitle),
		Category:     cmpOr(in.Category, DefaultPhotoCategory),
		Aspect:       cmpOr(in.Aspect, DefaultPhotoAspect),
		CollectionID: in.CollectionID,
	}
	_, err := s.doc.Update(ctx, func(d *models.Photos) error {
		maxOrder := 0
		for _, existing := range d.Photos {
			maxOrder = max(maxOrder, existing.Order)
		}
		p.Order = maxOrder + 1
		d.Photos = append(d.Photos, p)
		return nil
	})
	return p, err
}

// Update applies patch to the photo with id.
func (s *PhotoService) Update(ctx context.Context, id string, patch PhotoPatch) (models.Photo, error) {
	if err := validation.Struct(patch); err != nil {
		return models.Photo{}, invalid("%s", err.Error())
	}

	var out models.Photo
	_, err := s.doc.Update(ctx, func(d *models.Photos) error {
		i := slices.IndexFunc(d.Photos, func(p models.Photo) bool { return p.ID == id })
		if i < 0 {
			return notFound("Photo")
		}
		p := &d.Photos[i]
		setIf(&p.Src, patch.Src)
		setIf(&p.SrcLarge, patch.SrcLarge)
		setIf(&p.Title, patch.Title)
		setIf(&p.Category, patch.Category)
		setIf(&p.Aspect, patch.Aspect)
		setIf(&p.Order, patch.Order)
		setIf(&p.CollectionID, patch.CollectionID)
		out = *p
		return nil
	})
	return out, err
}

// Delete removes the photo with id and returns it so the caller can clean
// up its file.
func (s *PhotoService) Delete(ctx context.Context, id string) (models.Photo, error) {
	var removed models.Photo
	_, err := s.doc.Update(ctx, func(d *models.Photos) error {
		i := slices.IndexFunc(d.Photos, func(p models.Photo) bool { return p.ID == id })
		if i < 0 {
			return notFound("Photo")
		}
		removed = d.Photos[i]
		d.Photos = slices.Delete(d.Photos, i, i+1)
		return nil
	})
	return removed, err
}

// Reorder assigns the submitted positions, then renumbers every photo
// 1..n so orders are strictly increasing. Photos not named in order keep
// their relative position; unknown ids are ignored.
func (s *PhotoService) Reorder(ctx context.Context, order []models.PhotoOrder) ([]models.Photo, error) {
	if len(order) == 0 {
		return nil, invalid("order must list at least one photo")
	}
	seen := make(map[string]struct{}, len(order))
	for _, o := range order {
		if o.ID == "" {
			return nil, invalid("order entries need an id")
		}
		if _, dup := seen[o.ID]; dup {
			return nil, invalid("photo %s listed twice", o.ID)
		}
		seen[o.ID] = struct{}{}
	}

	d, err := s.doc.Update(ctx, func(d *models.Photos) error {
		byID := make(map[string]int, len(order))
		for _, o := range order {
			byID[o.ID] = o.Order
		}
		for i := range d.Photos {
			if v, ok := byID[d.Photos[i].ID]; ok {
				d.Photos[i].Order = v
			}
		}
		sortByOrder(d.Photos)
		for i := range d.Photos {
			d.Photos[i].Order = i + 1
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d.Photos, nil
}

// AddCategory appends a category. Ids are unique.
func (s *PhotoService) AddCategory(ctx context.Context, c models.Category) ([]models.Category, error) {
	c.ID = strings.TrimSpace(c.ID)
	c.Label = strings.TrimSpace(c.Label)
	if c.ID == "" || c.Label == "" {
		return nil, invalid("Category id and label are required")
	}

	d, err := s.doc.Update(ctx, func(d *models.Photos) error {
		if slices.ContainsFunc(d.Categories, func(x models.Category) bool { return x.ID == c.ID }) {
			return invalid("Category already exists")
		}
		d.Categories = append(d.Categories, c)
		return nil
	})
	return d.Categories, err
}

// DeleteCategory removes a category. The "all" category cannot be deleted.
func (s *PhotoService) DeleteCategory(ctx context.Context, id string) ([]models.Category, error) {
	if id == models.AllCategory {
		return nil, invalid(`Cannot delete "all" category`)
	}
	d, err := s.doc.Update(ctx, func(d *models.Photos) error {
		i := slices.IndexFunc(d.Categories, func(x models.Category) bool { return x.ID == id })
		if i < 0 {
			return notFound("Category")
		}
		d.Categories = slices.Delete(d.Categories, i, i+1)
		return nil
	})
	return d.Categories, err
}

func sortByOrder(photos []models.Photo) {
	slices.SortStableFunc(photos, func(a, b models.Photo) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// cmpOr returns the first of its arguments that is not the zero value
// (equivalent to cmp.Or from Go 1.22).
func cmpOr[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}
