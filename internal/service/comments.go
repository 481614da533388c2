package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/store"
	"github.com/fusedlens/studio/internal/validation"
)

// CommentInput is a visitor comment on a photo.
type CommentInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,simpleemail"`
	Comment string `json:"comment" validate:"required"`
}

// CommentService stores photo comments and their moderation state.
type CommentService struct {
	doc *store.Document[[]models.Comment]
	now func() time.Time
}

// NewCommentService constructs a CommentService.
func NewCommentService(doc *store.Document[[]models.Comment]) *CommentService {
	return &CommentService{doc: doc, now: time.Now}
}

// List returns comments. Unless admin is set, only approved comments are
// returned and commenter emails are hidden.
func (s *CommentService) List(ctx context.Context, admin bool) ([]models.Comment, error) {
	return s.filter(ctx, admin, func(models.Comment) bool { return true })
}

// ForPhoto is List restricted to one photo.
func (s *CommentService) ForPhoto(ctx context.Context, photoID string, admin bool) ([]models.Comment, error) {
	return s.filter(ctx, admin, func(c models.Comment) bool { return c.PhotoID == photoID })
}

func (s *CommentService) filter(ctx context.Context, admin bool, keep func(models.Comment) bool) ([]models.Comment, error) {
	all, err := s.doc.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Comment, 0, len(all))
	for _, c := range all {
		if !keep(c) {
			continue
		}
		if !admin {
			if !c.Approved {
				continue
			}
			c.Email = ""
		}
		out = append(out, c)
	}
	return out, nil
}

// Add stores a new, unapproved comment on photoID.
func (s *CommentService) Add(ctx context.Context, photoID string, in CommentInput) (models.Comment, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Comment = strings.TrimSpace(in.Comment)
	if in.Name == "" || in.Email == "" || in.Comment == "" {
		return models.Comment{}, invalid("Name, email, and comment are required")
	}
	if err := validation.Struct(in); err != nil {
		return models.Comment{}, invalid("%s", err.Error())
	}

	c := models.Comment{
		ID:        uuid.NewString(),
		PhotoID:   photoID,
		Name:      in.Name,
		Email:     in.Email,
		Comment:   in.Comment,
		CreatedAt: s.now().UTC(),
	}
	_, err := s.doc.Update(ctx, func(all *[]models.Comment) error {
		*all = append(*all, c)
		return nil
	})
	return c, err
}

// SetApproved approves or hides a comment.
func (s *CommentService) SetApproved(ctx context.Context, id string, approved bool) (models.Comment, error) {
	var out models.Comment
	_, err := s.doc.Update(ctx, func(all *[]models.Comment) error {
		i := slices.IndexFunc(*all, func(c models.Comment) bool { return c.ID == id })
		if i < 0 {
			return notFound("Comment")
		}
		(*all)[i].Approved = approved
		out = (*all)[i]
		return nil
	})
	return out, err
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	_, err := s.doc.Update(ctx, func(all *[]models.Comment) error {
		i := slices.IndexFunc(*all, func(c models.Comment) bool { return c.ID == id })
		if i < 0 {
			return notFound("Comment")
		}
		*all = slices.Delete(*all, i, i+1)
		return nil
	})
	return err
}
