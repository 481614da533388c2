// Package models defines the documents and records persisted by the studio API.
package models

// Content is the single document holding studio-wide marketing copy.
type Content struct {
	Studio        Studio            `json:"studio"`
	Social        map[string]string `json:"social"`
	Mission       string            `json:"mission"`
	HeroSlides    []HeroSlide       `json:"heroSlides"`
	Services      []Service         `json:"services"`
	Testimonials  []Testimonial     `json:"testimonials"`
	Stats         []Stat            `json:"stats"`
	About         About             `json:"about"`
	Collaborators []TeamMember      `json:"collaborators"`
}

// Studio holds the studio's contact details and tagline.
type Studio struct {
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	Founded     int    `json:"founded,omitempty"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	WhatsApp    string `json:"whatsapp"`
}

// HeroSlide is one frame of the landing page slideshow.
type HeroSlide struct {
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Service is an offered photography package.
type Service struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// Testimonial is a client quote.
type Testimonial struct {
	ID     int64  `json:"id"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
	Image  string `json:"image,omitempty"`
}

// Stat is a headline counter, e.g. "750+ Projects Completed".
type Stat struct {
	Value  int    `json:"value"`
	Suffix string `json:"suffix"`
	Label  string `json:"label"`
}

// About is the about-page copy.
type About struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Story   string   `json:"story"`
	Values  []string `json:"values"`
	Image   string   `json:"image,omitempty"`
}

// TeamMember is a member of the studio team shown on the site.
type TeamMember struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Role   string            `json:"role"`
	Bio    string            `json:"bio"`
	Image  string            `json:"image"`
	Social map[string]string `json:"social,omitempty"`
}

// StudioInfo is the public studio view: studio fields plus social links and mission.
type StudioInfo struct {
	Studio
	Social  map[string]string `json:"social"`
	Mission string            `json:"mission"`
}

// DefaultContent is the content document created on first access.
func DefaultContent() Content {
	return Content{
		Studio: Studio{
			Name:    "Fused Lens Studio",
			Tagline: "Timeless Memories",
		},
		Social:        map[string]string{},
		HeroSlides:    []HeroSlide{},
		Services:      []Service{},
		Testimonials:  []Testimonial{},
		Stats:         []Stat{},
		About:         About{Values: []string{}},
		Collaborators: []TeamMember{},
	}
}
