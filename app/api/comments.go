package api

import (
	"context"
	"net/url"
	"strconv"

	"forum/app/models"
)

// GetCommentsByPostID fetches one page of a post's comments. Pages start at 1
// and a page past the end is empty.
func (c *Client) GetCommentsByPostID(ctx context.Context, postID, page int) ([]models.Comment, error) {
	query := url.Values{}
	query.Set("postId", strconv.Itoa(postID))
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(c.pageSize))

	comments := []models.Comment{}
	if err := c.do(ctx, "GET", "/comments", query, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a new comment and returns it as stored.
func (c *Client) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	var created models.Comment
	if err := c.do(ctx, "POST", "/comments", nil, comment, &created); err != nil {
		return models.Comment{}, err
	}
	return created, nil
}

func (c *Client) DeleteComment(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", "/comments/"+strconv.Itoa(id), nil, nil, nil)
}
