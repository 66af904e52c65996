package model

import "time"

// Category is a named grouping an item may reference. Categories form a
// tree through parent_id; neither the tree nor item references into it
// are validated.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    *string   `json:"parent_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
