package models

// Collection is a named set of photos from one shoot.
type Collection struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Category      string              `json:"category,omitempty"`
	Date          string              `json:"date,omitempty"`
	Location      string              `json:"location,omitempty"`
	Description   string              `json:"description,omitempty"`
	CoverImage    string              `json:"coverImage,omitempty"`
	Collaborators []Collaborator      `json:"collaborators"`
	Photos        []CollectionPhoto   `json:"photos"`
	Comments      []CollectionComment `json:"comments"`
}

// Collaborator credits a person who worked on a collection.
type Collaborator struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// CollectionPhoto is an image inside a collection.
type CollectionPhoto struct {
	ID       string `json:"id"`
	Src      string `json:"src"`
	SrcLarge string `json:"srcLarge,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// CollectionComment is a guest comment left on a collection.
// ID is a millisecond timestamp.
type CollectionComment struct {
	ID     int64  `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// Collections is the collections document.
type Collections struct {
	Collections []Collection `json:"collections"`
}

// DefaultCollections is the collections document created on first access.
func DefaultCollections() Collections {
	return Collections{Collections: []Collection{}}
}
