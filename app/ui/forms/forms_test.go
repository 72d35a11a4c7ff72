package forms

import (
	"errors"
	"strings"
	"testing"

	"forum/app/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(update func(tea.Msg) tea.Cmd, s string) {
	update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestPostForm(t *testing.T) {
	post := models.Post{ID: 3, Author: "alice", Title: "Old title", Content: "Old content"}

	t.Run("prefilled value round trips", func(t *testing.T) {
		form := NewPostForm(post, 60)
		got, err := form.Value()
		require.NoError(t, err)
		assert.Equal(t, post, got)
	})

	t.Run("typing edits the focused field", func(t *testing.T) {
		form := NewPostForm(post, 60)
		typeText(form.Update, "!")

		form.Update(tea.KeyMsg{Type: tea.KeyTab})
		typeText(form.Update, " more")

		got, err := form.Value()
		require.NoError(t, err)
		assert.Equal(t, "Old title!", got.Title)
		assert.True(t, strings.HasPrefix(got.Content, "Old content"))
		assert.True(t, strings.HasSuffix(got.Content, "more"))
		assert.Equal(t, 3, got.ID)
	})

	t.Run("invalid edit is rejected", func(t *testing.T) {
		form := NewPostForm(models.Post{ID: 3, Author: "alice", Title: "ab", Content: "x"}, 60)
		_, err := form.Value()
		assert.Error(t, err)
	})

	t.Run("errors are shown", func(t *testing.T) {
		form := NewPostForm(post, 60)
		form.SetError(errors.New("save failed"))
		assert.Contains(t, form.View(), "save failed")
		assert.Error(t, form.Err())

		form.SetError(nil)
		assert.NotContains(t, form.View(), "save failed")
	})
}

func TestCommentForm(t *testing.T) {
	t.Run("empty comment is rejected", func(t *testing.T) {
		form := NewCommentForm(4, "bob", 60)
		_, err := form.Value()
		assert.Error(t, err)
	})

	t.Run("typed comment", func(t *testing.T) {
		form := NewCommentForm(4, "bob", 60)
		typeText(form.Update, "  hello there ")

		got, err := form.Value()
		require.NoError(t, err)
		assert.Equal(t, models.Comment{PostID: 4, Author: "bob", Content: "hello there"}, got)
	})

	t.Run("view shows errors", func(t *testing.T) {
		form := NewCommentForm(4, "bob", 60)
		form.SetError(errors.New("rejected"))
		assert.Contains(t, form.View(), "rejected")
	})
}
