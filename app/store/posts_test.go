package store

import (
	"testing"

	"forum/app/models"

	"github.com/stretchr/testify/assert"
)

func ids(posts []models.Post) []int {
	out := []int{}
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name     string
		initial  []int
		remove   int
		removed  bool
		expected []int
	}{
		{"middle", []int{1, 2, 3}, 2, true, []int{1, 3}},
		{"first", []int{1, 2, 3}, 1, true, []int{2, 3}},
		{"last", []int{1, 2, 3}, 3, true, []int{1, 2}},
		{"missing", []int{1, 2, 3}, 9, false, []int{1, 2, 3}},
		{"only", []int{5}, 5, true, []int{}},
		{"empty", nil, 1, false, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var posts []models.Post
			for _, id := range tt.initial {
				posts = append(posts, models.Post{ID: id})
			}
			s := NewPosts(posts)

			assert.Equal(t, tt.removed, s.Remove(tt.remove))
			assert.Equal(t, tt.expected, ids(s.All()))
		})
	}
}

func TestRemoveDoesNotAliasSnapshots(t *testing.T) {
	s := NewPosts([]models.Post{{ID: 1}, {ID: 2}, {ID: 3}})
	before := s.All()

	s.Remove(2)

	assert.Equal(t, []int{1, 2, 3}, ids(before))
	assert.Equal(t, []int{1, 3}, ids(s.All()))
}

func TestReplaceAndGet(t *testing.T) {
	s := NewPosts([]models.Post{{ID: 1, Title: "one"}, {ID: 2, Title: "two"}})

	assert.True(t, s.Replace(models.Post{ID: 2, Title: "deux"}))
	assert.False(t, s.Replace(models.Post{ID: 3, Title: "trois"}))

	p, ok := s.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "deux", p.Title)

	_, ok = s.Get(3)
	assert.False(t, ok)

	p, ok = s.At(0)
	assert.True(t, ok)
	assert.Equal(t, "one", p.Title)
	_, ok = s.At(2)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}
