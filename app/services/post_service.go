package services

import (
	"fmt"
	"time"

	"forum/app/models"
	"forum/app/repositories"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PostService handles business logic for forum posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost validates and stores a new post
func (s *PostService) CreatePost(post *models.Post) error {
	post.ID = 0
	if err := post.Validate(); err != nil {
		return invalid("post", err)
	}

	post.CreatedAt = time.Time{}
	post.BeforeCreate()
	return s.postRepo.Create(post)
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(id int) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// ListPosts retrieves a page of posts in creation order
func (s *PostService) ListPosts(page, perPage int) ([]*models.Post, error) {
	page, perPage = clampPage(page, perPage, DefaultPerPage, MaxPerPage)
	return s.postRepo.List(perPage, (page-1)*perPage)
}

// UpdatePost applies the editable fields of edit to the stored post and
// returns the result.
func (s *PostService) UpdatePost(id int, edit *models.Post) (*models.Post, error) {
	existing, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.ApplyEdit(edit)
	if err := existing.Validate(); err != nil {
		return nil, invalid("post", err)
	}

	if err := s.postRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(id int) error {
	if _, err := s.postRepo.GetByID(id); err != nil {
		return err
	}

	// The post goes first so that no new comment can attach to it while its
	// thread is swept.
	if err := s.postRepo.Delete(id); err != nil {
		return err
	}

	if _, err := s.commentRepo.DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete comments of post %d: %w", id, err)
	}
	return nil
}
