package models

import (
	"errors"
	"strings"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if strings.TrimSpace(p.Content) == "" {
		return errors.New("content cannot be blank")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
}

// ApplyEdit copies the editable fields of edit onto the post and bumps UpdatedAt.
// Identity, author and creation time are never taken from the edit.
func (p *Post) ApplyEdit(edit *Post) {
	p.Title = edit.Title
	p.Content = edit.Content
	p.UpdatedAt = time.Now().UTC()
}

// Edited reports whether the post was changed after creation.
func (p Post) Edited() bool {
	return p.UpdatedAt.After(p.CreatedAt)
}
