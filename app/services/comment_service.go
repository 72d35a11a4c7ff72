package services

import (
	"fmt"
	"time"

	"forum/app/models"
	"forum/app/repositories"
)

const (
	DefaultCommentLimit = 10
	MaxCommentLimit     = 100
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment validates a comment and attaches it to an existing post
func (s *CommentService) CreateComment(comment *models.Comment) error {
	comment.ID = 0
	if err := comment.Validate(); err != nil {
		return invalid("comment", err)
	}

	post, err := s.postRepo.GetByID(comment.PostID)
	if err != nil {
		return fmt.Errorf("post %d: %w", comment.PostID, err)
	}
	if err := comment.SetPost(post); err != nil {
		return err
	}

	comment.CreatedAt = time.Time{}
	comment.BeforeCreate()
	return s.commentRepo.Create(comment)
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id int) (*models.Comment, error) {
	return s.commentRepo.GetByID(id)
}

// ListPostComments returns one page of a post's comments in creation order.
// A page past the end is empty, not an error.
func (s *CommentService) ListPostComments(postID, page, limit int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}

	page, limit = clampPage(page, limit, DefaultCommentLimit, MaxCommentLimit)
	comments, err := s.commentRepo.ListByPost(postID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(id int) error {
	return s.commentRepo.Delete(id)
}
