package containers

import (
	"context"
	"sync"
	"testing"
	"time"

	"forum/app/models"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeComments struct {
	mu        sync.Mutex
	pageSize  int
	pages     map[int][]models.Comment
	errs      map[int]error
	requested []int
	createErr error
	nextID    int
	// block makes fetches wait until their context is cancelled.
	block bool
}

func newFakeComments(pageSize int) *fakeComments {
	return &fakeComments{
		pageSize: pageSize,
		pages:    make(map[int][]models.Comment),
		errs:     make(map[int]error),
		nextID:   100,
	}
}

func (f *fakeComments) GetCommentsByPostID(ctx context.Context, postID, page int) ([]models.Comment, error) {
	f.mu.Lock()
	f.requested = append(f.requested, page)
	block := f.block
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[page]; err != nil {
		return nil, err
	}
	return append([]models.Comment{}, f.pages[page]...), nil
}

func (f *fakeComments) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Comment{}, f.createErr
	}
	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Now().UTC()
	return comment, nil
}

func (f *fakeComments) PageSize() int { return f.pageSize }

type fakePosts struct {
	mu        sync.Mutex
	posts     []models.Post
	listErr   error
	updateErr error
	deleteErr error
	deleted   []int
	block     bool
}

func (f *fakePosts) ListPosts(ctx context.Context, page, perPage int) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Post{}, f.posts...), nil
}

func (f *fakePosts) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return models.Post{}, f.updateErr
	}
	post.UpdatedAt = post.CreatedAt.Add(time.Minute)
	return post, nil
}

func (f *fakePosts) DeletePost(ctx context.Context, id int) error {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// runAsync runs cmd on its own goroutine, the way the Bubble Tea runtime does.
func runAsync(cmd tea.Cmd) <-chan tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	return out
}

func await(t *testing.T, msgs <-chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-msgs:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("request was not cancelled")
		return nil
	}
}

func commentsFor(postID int, ids ...int) []models.Comment {
	out := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Comment{ID: id, PostID: postID, Author: "bob", Content: "comment"})
	}
	return out
}

func testPost(id int) models.Post {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.Post{
		ID:        id,
		Author:    "alice",
		Title:     "Post title " + string(rune('A'+id-1)),
		Content:   "Some content",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func fixedPlaceholders(t *testing.T, n int) {
	t.Helper()
	orig := placeholderCount
	placeholderCount = func() int { return n }
	t.Cleanup(func() { placeholderCount = orig })
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
)
