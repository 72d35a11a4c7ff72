package api

import (
	"context"
	"net/url"
	"strconv"

	"forum/app/models"
)

// ListPosts fetches one page of posts.
func (c *Client) ListPosts(ctx context.Context, page, perPage int) ([]models.Post, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	posts := []models.Post{}
	if err := c.do(ctx, "GET", "/posts", query, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := c.do(ctx, "GET", "/posts/"+strconv.Itoa(id), nil, nil, &post)
	return post, err
}

func (c *Client) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	var created models.Post
	err := c.do(ctx, "POST", "/posts", nil, post, &created)
	return created, err
}

// UpdatePost sends the post's title and content and returns the saved post.
func (c *Client) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	var saved models.Post
	err := c.do(ctx, "PUT", "/posts/"+strconv.Itoa(post.ID), nil, post, &saved)
	return saved, err
}

// DeletePost deletes a post together with its comments.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", "/posts/"+strconv.Itoa(id), nil, nil, nil)
}
