package containers

import (
	"context"

	"forum/app/models"

	"github.com/google/uuid"
)

// CommentAPI is the comment backend a post container talks to.
type CommentAPI interface {
	GetCommentsByPostID(ctx context.Context, postID, page int) ([]models.Comment, error)
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	PageSize() int
}

// PostAPI is the post backend used by the feed and its containers.
type PostAPI interface {
	ListPosts(ctx context.Context, page, perPage int) ([]models.Post, error)
	UpdatePost(ctx context.Context, post models.Post) (models.Post, error)
	DeletePost(ctx context.Context, id int) error
}

// ContainerMsg is implemented by every result addressed to one post
// container. Seq identifies the request that produced it.
type ContainerMsg interface {
	Target() (uuid.UUID, uint64)
}

type addressed struct {
	ContainerID uuid.UUID
	Seq         uint64
}

func (a addressed) Target() (uuid.UUID, uint64) {
	return a.ContainerID, a.Seq
}

// CommentsLoadedMsg carries one fetched page of comments, or the error.
type CommentsLoadedMsg struct {
	addressed
	Page     int
	Comments []models.Comment
	Err      error
}

// DeleteResultMsg reports the outcome of deleting a post.
type DeleteResultMsg struct {
	addressed
	PostID int
	Err    error
}

// PostSavedMsg reports the outcome of saving an edited post.
type PostSavedMsg struct {
	addressed
	Post models.Post
	Err  error
}

// CommentCreatedMsg reports the outcome of submitting a comment.
type CommentCreatedMsg struct {
	addressed
	Comment models.Comment
	Err     error
}

// PostsLoadedMsg carries the feed's page of posts.
type PostsLoadedMsg struct {
	Seq   uint64
	Posts []models.Post
	Err   error
}
