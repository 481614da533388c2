// Package repository names the studio's documents and binds them to their
// Go types on top of a store.Store.
package repository

import (
	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/store"
)

// Document names as stored on disk (<name>.json) or in the documents table.
const (
	AdminDocument       = "admin"
	ContentDocument     = "content"
	PhotosDocument      = "photos"
	CollectionsDocument = "collections"
	ContactsDocument    = "contacts"
	CommentsDocument    = "comments"
)

// Documents groups the typed documents of the studio.
type Documents struct {
	Admin       *store.Document[models.AdminRecord]
	Content     *store.Document[models.Content]
	Photos      *store.Document[models.Photos]
	Collections *store.Document[models.Collections]
	Contacts    *store.Document[[]models.Contact]
	Comments    *store.Document[[]models.Comment]
}

// New binds every studio document to s.
func New(s store.Store) *Documents {
	return &Documents{
		Admin:       store.NewDocument(s, AdminDocument, func() models.AdminRecord { return models.AdminRecord{} }),
		Content:     store.NewDocument(s, ContentDocument, models.DefaultContent),
		Photos:      store.NewDocument(s, PhotosDocument, models.DefaultPhotos),
		Collections: store.NewDocument(s, CollectionsDocument, models.DefaultCollections),
		Contacts:    store.NewDocument(s, ContactsDocument, func() []models.Contact { return []models.Contact{} }),
		Comments:    store.NewDocument(s, CommentsDocument, func() []models.Comment { return []models.Comment{} }),
	}
}
