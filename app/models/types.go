package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post represents a top-level forum entry.
type Post struct {
	ID        int       `json:"id" validate:"gte=0"`
	Author    string    `json:"author" validate:"required,min=2,max=50"`
	Title     string    `json:"title" validate:"required,min=3,max=100"`
	Content   string    `json:"content" validate:"required,min=1,max=5000"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment represents a reply attached to a post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"postId" validate:"required,gt=0"`
	Author    string    `json:"author" validate:"required,min=2,max=50"`
	Content   string    `json:"content" validate:"required,min=1,max=1000"`
	CreatedAt time.Time `json:"createdAt"`
}
