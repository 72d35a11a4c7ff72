package services

import (
	"errors"
	"fmt"
	"testing"

	"forum/app/models"
	"forum/app/repositories"
	"forum/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	service := NewCommentService(commentRepo, postRepo)

	post := validPost("Commented Post")
	require.NoError(t, postRepo.Create(post))

	t.Run("create comment", func(t *testing.T) {
		comment := &models.Comment{PostID: post.ID, Author: "bob", Content: "First!"}

		require.NoError(t, service.CreateComment(comment))
		assert.Equal(t, 1, comment.ID)
		assert.False(t, comment.CreatedAt.IsZero())
	})

	t.Run("create comment on missing post", func(t *testing.T) {
		err := service.CreateComment(&models.Comment{PostID: 42, Author: "bob", Content: "Hello?"})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("create invalid comment", func(t *testing.T) {
		tests := []struct {
			name    string
			comment *models.Comment
		}{
			{"missing post id", &models.Comment{Author: "bob", Content: "x"}},
			{"short author", &models.Comment{PostID: post.ID, Author: "b", Content: "x"}},
			{"blank content", &models.Comment{PostID: post.ID, Author: "bob", Content: "   "}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var verr *ValidationError
				assert.True(t, errors.As(service.CreateComment(tt.comment), &verr))
			})
		}
	})

	t.Run("get comment", func(t *testing.T) {
		comment, err := service.GetComment(1)
		require.NoError(t, err)
		assert.Equal(t, "First!", comment.Content)
	})

	t.Run("delete comment", func(t *testing.T) {
		require.NoError(t, service.DeleteComment(1))
		_, err := service.GetComment(1)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, service.DeleteComment(1), repositories.ErrNotFound)
	})
}

func TestCommentServiceListPostComments(t *testing.T) {
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	service := NewCommentService(commentRepo, postRepo)

	post := validPost("Busy Post")
	require.NoError(t, postRepo.Create(post))
	for i := 1; i <= 7; i++ {
		require.NoError(t, service.CreateComment(&models.Comment{
			PostID:  post.ID,
			Author:  "bob",
			Content: fmt.Sprintf("comment %d", i),
		}))
	}

	t.Run("pages in creation order", func(t *testing.T) {
		page1, err := service.ListPostComments(post.ID, 1, 3)
		require.NoError(t, err)
		require.Len(t, page1, 3)
		assert.Equal(t, "comment 1", page1[0].Content)

		page3, err := service.ListPostComments(post.ID, 3, 3)
		require.NoError(t, err)
		require.Len(t, page3, 1)
		assert.Equal(t, "comment 7", page3[0].Content)
	})

	t.Run("past the end is empty", func(t *testing.T) {
		comments, err := service.ListPostComments(post.ID, 9, 3)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("defaults", func(t *testing.T) {
		comments, err := service.ListPostComments(post.ID, 0, 0)
		require.NoError(t, err)
		assert.Len(t, comments, 7)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := service.ListPostComments(42, 1, 10)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
