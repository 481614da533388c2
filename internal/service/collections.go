package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/store"
)

// CollectionService manages collections and their nested photos,
// collaborators and guest comments.
type CollectionService struct {
	doc *store.Document[models.Collections]
	now func() time.Time
}

// NewCollectionService constructs a CollectionService.
func NewCollectionService(doc *store.Document[models.Collections]) *CollectionService {
	return &CollectionService{doc: doc, now: time.Now}
}

// List returns every collection.
func (s *CollectionService) List(ctx context.Context) ([]models.Collection, error) {
	d, err := s.doc.Get(ctx)
	return d.Collections, err
}

// Get returns the collection with id.
func (s *CollectionService) Get(ctx context.Context, id string) (models.Collection, error) {
	d, err := s.doc.Get(ctx)
	if err != nil {
		return models.Collection{}, err
	}
	i := indexCollection(d.Collections, id)
	if i < 0 {
		return models.Collection{}, notFound("Collection")
	}
	return d.Collections[i], nil
}

// Create adds a collection. Without an id one is derived from the clock.
// Comments always start empty.
func (s *CollectionService) Create(ctx context.Context, c models.Collection) (models.Collection, error) {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return models.Collection{}, invalid("Title is required")
	}
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		c.ID = fmt.Sprintf("collection-%d", s.now().UnixMilli())
	}
	normalizeCollection(&c)
	c.Comments = []models.CollectionComment{}

	_, err := s.doc.Update(ctx, func(d *models.Collections) error {
		if indexCollection(d.Collections, c.ID) >= 0 {
			return invalid("Collection %s already exists", c.ID)
		}
		d.Collections = append(d.Collections, c)
		return nil
	})
	return c, err
}

// Replace overwrites the collection with id, keeping its id and comments.
func (s *CollectionService) Replace(ctx context.Context, id string, c models.Collection) (models.Collection, error) {
	var out models.Collection
	_, err := s.doc.Update(ctx, func(d *models.Collections) error {
		i := indexCollection(d.Collections, id)
		if i < 0 {
			return notFound("Collection")
		}
		c.ID = id
		c.Comments = d.Collections[i].Comments
		normalizeCollection(&c)
		d.Collections[i] = c
		out = c
		return nil
	})
	return out, err
}

// Delete removes the collection with id.
func (s *CollectionService) Delete(ctx context.Context, id string) error {
	_, err := s.doc.Update(ctx, func(d *models.Collections) error {
		i := indexCollection(d.Collections, id)
		if i < 0 {
			return notFound("Collection")
		}
		d.Collections = slices.Delete(d.Collections, i, i+1)
		return nil
	})
	return err
}

// AddComment appends a guest comment to a collection.
func (s *CollectionService) AddComment(ctx context.Context, id, author, text string) (models.CollectionComment, error) {
	author, text = strings.TrimSpace(author), strings.TrimSpace(text)
	if author == "" || text == "" {
		return models.CollectionComment{}, invalid("Author and text are required")
	}

	now := s.now()
	cm := models.CollectionComment{
		Author: author,
		Text:   text,
		Date:   now.UTC().Format(time.DateOnly),
	}
	_, err := s.doc.Update(ctx, func(d *models.Collections) error {
		i := indexCollection(d.Collections, id)
		if i < 0 {
			return notFound("Collection")
		}
		col := &d.Collections[i]
		// Timestamp ids; bump past any id already taken in this collection.
		cm.ID = now.UnixMilli()
		for _, existing := range col.Comments {
			if existing.ID >= cm.ID {
				cm.ID = existing.ID + 1
			}
		}
		col.Comments = append(col.Comments, cm)
		return nil
	})
	return cm, err
}

// DeleteComment removes a comment from a collection.
func (s *CollectionService) DeleteComment(ctx context.Context, id string, commentID int64) error {
	_, err := s.doc.Update(ctx, func(d *models.Collections) error {
		i := indexCollection(d.Collections, id)
		if i < 0 {
			return notFound("Collection")
		}
		col := &d.Collections[i]
		j := slices.IndexFunc(col.Comments, func(c models.CollectionComment) bool { return c.ID == commentID })
		if j < 0 {
			return notFound("Comment")
		}
		col.Comments = slices.Delete(col.Comments, j, j+1)
		return nil
	})
	return err
}

// AddPhoto appends a photo to a collection. Without an id one is derived
// from the clock.
func (s *CollectionService) AddPhoto(ctx context.Context, id string, p models.CollectionPhoto) (models.CollectionPhoto, error) {
	p.Src = strings.TrimSpace(p.Src)
	if p.Src == "" {
		return models.CollectionPhoto{}, invalid("src is required")
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("photo-%d", s.now().UnixMilli())
	}
	_, err := s.doc.Update(ctx, func(d *models.Collections) error {
		i := indexCollection(d.Collections, id)
		if i < 0 {
			return notFound("Collection")
		}
		col := &d.Collections[i]
		if slices.ContainsFunc(col.Photos, func(x models.CollectionPhoto) bool { return x.ID == p.ID }) {
			return invalid("Photo %s already in collection", p.ID)
		}
		col.Photos = append(col.Photos, p)
		return nil
	})
	return p, err
}

// DeletePhoto removes a photo from a collection.
func (s *CollectionService) DeletePhoto(ctx context.Context, id, photoID string) error {
	_, err := s.doc.Update(ctx, func(d *models.Collections) error {
		i := indexCollection(d.Collections, id)
		if i < 0 {
			return notFound("Collection")
		}
		col := &d.Collections[i]
		j := slices.IndexFunc(col.Photos, func(p models.CollectionPhoto) bool { return p.ID == photoID })
		if j < 0 {
			return notFound("Photo")
		}
		col.Photos = slices.Delete(col.Photos, j, j+1)
		return nil
	})
	return err
}

// AddCollaborator credits a person on a collection.
func (s *CollectionService) AddCollaborator(ctx context.Context, id string, c models.Collaborator) (models.Collaborator, error) {
	c.Name, c.Role = strings.TrimSpace(c.Name), strings.TrimSpace(c.Role)
	if c.Name == "" || c.Role == "" {
		return models.Collaborator{}, invalid("Name and role are required")
	}
	_, err := s.doc.Update(ctx, func(d *models.Collections) error {
		i := indexCollection(d.Collections, id)
		if i < 0 {
			return notFound("Collection")
		}
		d.Collections[i].Collaborators = append(d.Collections[i].Collaborators, c)
		return nil
	})
	return c, err
}

func indexCollection(cs []models.Collection, id string) int {
	return slices.IndexFunc(cs, func(c models.Collection) bool { return c.ID == id })
}

func normalizeCollection(c *models.Collection) {
	c.Collaborators = nonNil(c.Collaborators)
	c.Photos = nonNil(c.Photos)
	c.Comments = nonNil(c.Comments)
}
