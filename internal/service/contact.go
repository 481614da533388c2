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

// ContactInput is a public contact form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,simpleemail"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message" validate:"required"`
}

type contactStatus struct {
	Status string `json:"status" validate:"required,oneof=unread read replied archived"`
}

// ContactService stores contact form submissions.
type ContactService struct {
	doc *store.Document[[]models.Contact]
	now func() time.Time
}

// NewContactService constructs a ContactService.
func NewContactService(doc *store.Document[[]models.Contact]) *ContactService {
	return &ContactService{doc: doc, now: time.Now}
}

// Submit validates and stores a submission as unread.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (models.Contact, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return models.Contact{}, invalid("Name, email, and message are required")
	}
	if err := validation.Struct(in); err != nil {
		return models.Contact{}, invalid("%s", err.Error())
	}

	c := models.Contact{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       strings.TrimSpace(in.Phone),
		Service:     strings.TrimSpace(in.Service),
		Message:     in.Message,
		SubmittedAt: s.now().UTC(),
		Status:      models.ContactUnread,
	}
	_, err := s.doc.Update(ctx, func(all *[]models.Contact) error {
		*all = append(*all, c)
		return nil
	})
	return c, err
}

// List returns every submission.
func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.doc.Get(ctx)
}

// SetStatus moves a submission to another status.
func (s *ContactService) SetStatus(ctx context.Context, id, status string) (models.Contact, error) {
	if err := validation.Struct(contactStatus{Status: status}); err != nil {
		return models.Contact{}, invalid("%s", err.Error())
	}
	var out models.Contact
	_, err := s.doc.Update(ctx, func(all *[]models.Contact) error {
		i := slices.IndexFunc(*all, func(c models.Contact) bool { return c.ID == id })
		if i < 0 {
			return notFound("Contact")
		}
		(*all)[i].Status = status
		out = (*all)[i]
		return nil
	})
	return out, err
}

// Delete removes a submission.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	_, err := s.doc.Update(ctx, func(all *[]models.Contact) error {
		i := slices.IndexFunc(*all, func(c models.Contact) bool { return c.ID == id })
		if i < 0 {
			return notFound("Contact")
		}
		*all = slices.Delete(*all, i, i+1)
		return nil
	})
	return err
}
