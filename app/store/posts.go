// Package store holds the client-side list of posts shown in the feed.
package store

import "forum/app/models"

// Posts is the ordered post list of the feed. Only the feed model mutates
// it, in response to messages, so it needs no locking.
type Posts struct {
	posts []models.Post
}

func NewPosts(posts []models.Post) *Posts {
	s := &Posts{}
	s.Set(posts)
	return s
}

// Set replaces the whole list.
func (s *Posts) Set(posts []models.Post) {
	s.posts = append([]models.Post(nil), posts...)
}

// All returns a copy of the list in display order.
func (s *Posts) All() []models.Post {
	return append([]models.Post(nil), s.posts...)
}

func (s *Posts) Len() int {
	return len(s.posts)
}

// At returns the post at index i.
func (s *Posts) At(i int) (models.Post, bool) {
	if i < 0 || i >= len(s.posts) {
		return models.Post{}, false
	}
	return s.posts[i], true
}

// Get finds a post by ID.
func (s *Posts) Get(id int) (models.Post, bool) {
	if i := s.index(id); i >= 0 {
		return s.posts[i], true
	}
	return models.Post{}, false
}

// Remove deletes the post with the given ID, keeping the order of the rest.
// It reports whether a post was removed.
func (s *Posts) Remove(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.posts = append(s.posts[:i:i], s.posts[i+1:]...)
	return true
}

// Replace swaps in post for the entry with the same ID.
func (s *Posts) Replace(post models.Post) bool {
	i := s.index(post.ID)
	if i < 0 {
		return false
	}
	s.posts[i] = post
	return true
}

func (s *Posts) index(id int) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
