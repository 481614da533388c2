package models

// AllCategory is the pseudo-category matching every photo. It cannot be deleted.
const AllCategory = "all"

// Photo is a portfolio image.
type Photo struct {
	ID           string `json:"id"`
	Src          string `json:"src"`
	SrcLarge     string `json:"srcLarge,omitempty"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Aspect       string `json:"aspect"`
	Order        int    `json:"order"`
	CollectionID string `json:"collectionId,omitempty"`
}

// Category labels a portfolio filter.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Photos is the portfolio document.
type Photos struct {
	Photos     []Photo    `json:"photos"`
	Categories []Category `json:"categories"`
}

// PhotoOrder assigns a position to one photo in a batch reorder.
type PhotoOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// DefaultPhotos is the portfolio document created on first access.
func DefaultPhotos() Photos {
	return Photos{
		Photos: []Photo{},
		Categories: []Category{
			{ID: AllCategory, Label: "All Work"},
			{ID: "wedding", Label: "Weddings"},
			{ID: "portrait", Label: "Portraits"},
			{ID: "commercial", Label: "Commercial"},
			{ID: "event", Label: "Events"},
		},
	}
}
