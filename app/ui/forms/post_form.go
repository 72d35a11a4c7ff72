// Package forms holds the text input forms used inside a post container.
package forms

import (
	"strings"

	"forum/app/models"
	"forum/app/ui/components"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PostForm edits the title and content of an existing post.
type PostForm struct {
	post    models.Post
	title   textinput.Model
	content textarea.Model
	focus   int
	err     error
	keys    components.KeyMap
}

// NewPostForm returns a form pre-populated with post, focused on the title.
func NewPostForm(post models.Post, width int) *PostForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 100
	title.Width = max(width-4, 20)
	title.SetValue(post.Title)
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Content"
	content.CharLimit = 5000
	content.ShowLineNumbers = false
	content.SetWidth(max(width-2, 20))
	content.SetHeight(6)
	content.SetValue(post.Content)

	return &PostForm{
		post:    post,
		title:   title,
		content: content,
		keys:    components.DefaultKeyMap(),
	}
}

// Value returns the edited post, validated with the same rules the server
// applies.
func (f *PostForm) Value() (models.Post, error) {
	edited := f.post
	edited.Title = strings.TrimSpace(f.title.Value())
	edited.Content = strings.TrimSpace(f.content.Value())
	if err := edited.Validate(); err != nil {
		return models.Post{}, err
	}
	return edited, nil
}

// SetError shows err under the form. nil clears it.
func (f *PostForm) SetError(err error) {
	f.err = err
}

func (f *PostForm) Err() error {
	return f.err
}

func (f *PostForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, f.keys.Next) {
		f.focus = 1 - f.focus
		if f.focus == 0 {
			f.content.Blur()
			return f.title.Focus()
		}
		f.title.Blur()
		return f.content.Focus()
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.content, cmd = f.content.Update(msg)
	}
	return cmd
}

func (f *PostForm) View() string {
	lines := []string{
		components.MutedStyle.Render("Editing post"),
		f.title.View(),
		f.content.View(),
	}
	if f.err != nil {
		lines = append(lines, components.Alert(f.err, ""))
	}
	lines = append(lines, components.ButtonBar(
		components.BtnHint("ctrl+s", "save"),
		components.BtnHint("tab", "switch field"),
		components.BtnBack(),
	))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
