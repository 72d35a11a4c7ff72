package api

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"forum/app/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	comments map[int][]models.Comment
	calls    int
	err      error
}

func (f *fakeSource) PageSize() int { return 2 }

func (f *fakeSource) GetCommentsByPostID(ctx context.Context, postID, page int) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	all := f.comments[postID]
	start := (page - 1) * 2
	if start >= len(all) {
		return []models.Comment{}, nil
	}
	end := start + 2
	if end > len(all) {
		end = len(all)
	}
	return append([]models.Comment(nil), all[start:end]...), nil
}

func (f *fakeSource) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = len(f.comments[comment.PostID]) + 100
	f.comments[comment.PostID] = append(f.comments[comment.PostID], comment)
	return comment, nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{comments: map[int][]models.Comment{
		1: {
			{ID: 1, PostID: 1, Author: "bob", Content: "a", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, PostID: 1, Author: "bob", Content: "b", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
			{ID: 3, PostID: 1, Author: "bob", Content: "c", CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		},
	}}
}

func TestMemoryClient(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client := &memoryClient{entries: make(map[string]memoryEntry), now: func() time.Time { return now }}

	var out []string
	assert.ErrorIs(t, client.Get(ctx, "k", &out), ErrCacheMiss)

	require.NoError(t, client.Set(ctx, "k", []string{"x", "y"}, time.Minute))
	require.NoError(t, client.Get(ctx, "k", &out))
	assert.Equal(t, []string{"x", "y"}, out)

	now = now.Add(time.Minute)
	assert.ErrorIs(t, client.Get(ctx, "k", &out), ErrCacheMiss)

	require.NoError(t, client.Set(ctx, "forever", 42, 0))
	now = now.Add(24 * time.Hour)
	var n int
	require.NoError(t, client.Get(ctx, "forever", &n))
	assert.Equal(t, 42, n)

	require.NoError(t, client.Delete(ctx, "forever"))
	assert.ErrorIs(t, client.Get(ctx, "forever", &n), ErrCacheMiss)
}

func TestMemcacheExpiration(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want int32
	}{
		{name: "no expiry", ttl: 0, want: 0},
		{name: "negative", ttl: -time.Second, want: 0},
		{name: "sub-second rounds up", ttl: 500 * time.Millisecond, want: 1},
		{name: "whole seconds", ttl: 30 * time.Second, want: 30},
		{name: "fraction rounds up", ttl: 1500 * time.Millisecond, want: 2},
		{name: "thirty days", ttl: 30 * 24 * time.Hour, want: 2592000},
		{name: "longer is capped", ttl: 365 * 24 * time.Hour, want: 2592000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, memcacheExpiration(tt.ttl))
		})
	}
}

func TestCachedCommentsHitsCache(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	cached := NewCachedComments(source, NewMemoryClient(), time.Minute)

	first, err := cached.GetCommentsByPostID(ctx, 1, 1)
	require.NoError(t, err)
	second, err := cached.GetCommentsByPostID(ctx, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached page differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, 2, cached.PageSize())

	empty, err := cached.GetCommentsByPostID(ctx, 1, 3)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	empty, err = cached.GetCommentsByPostID(ctx, 1, 3)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
	assert.Equal(t, 2, source.calls)
}

func TestCachedCommentsInvalidatesOnCreate(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	cached := NewCachedComments(source, NewMemoryClient(), time.Minute)

	page2, err := cached.GetCommentsByPostID(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)

	_, err = cached.CreateComment(ctx, models.Comment{PostID: 1, Author: "carol", Content: "d"})
	require.NoError(t, err)

	page2, err = cached.GetCommentsByPostID(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
	assert.Equal(t, 2, source.calls)
}

func TestCachedCommentsDegradesWhenCacheIsDown(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource()
	// Nothing listens on port 1, so every memcache call fails.
	cached := NewCachedComments(source, NewMemcacheClient("127.0.0.1:1", 100*time.Millisecond), time.Minute)

	for i := 0; i < 2; i++ {
		comments, err := cached.GetCommentsByPostID(ctx, 1, 1)
		require.NoError(t, err)
		assert.Len(t, comments, 2)
	}
	assert.Equal(t, 2, source.calls)

	_, err := cached.CreateComment(ctx, models.Comment{PostID: 1, Author: "carol", Content: "d"})
	assert.NoError(t, err)
}

func TestCachedCommentsPropagatesSourceErrors(t *testing.T) {
	source := newFakeSource()
	source.err = errors.New("backend down")
	cached := NewCachedComments(source, NewMemoryClient(), time.Minute)

	_, err := cached.GetCommentsByPostID(context.Background(), 1, 1)
	assert.EqualError(t, err, "backend down")

	source.err = nil
	comments, err := cached.GetCommentsByPostID(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}
