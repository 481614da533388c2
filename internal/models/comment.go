package models

import "time"

// Comment is a visitor comment on a portfolio photo. New comments wait for
// admin approval before they are shown publicly.
type Comment struct {
	ID        string    `json:"id"`
	PhotoID   string    `json:"photoId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}
