package forms

import (
	"strings"

	"forum/app/models"
	"forum/app/ui/components"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CommentForm collects the content of a new comment.
type CommentForm struct {
	postID  int
	author  string
	content textarea.Model
	err     error
}

func NewCommentForm(postID int, author string, width int) *CommentForm {
	content := textarea.New()
	content.Placeholder = "Write a comment as " + author
	content.CharLimit = 1000
	content.ShowLineNumbers = false
	content.SetWidth(max(width-2, 20))
	content.SetHeight(3)
	content.Focus()

	return &CommentForm{postID: postID, author: author, content: content}
}

// Value returns the comment to submit, validated like the server would.
func (f *CommentForm) Value() (models.Comment, error) {
	comment := models.Comment{
		PostID:  f.postID,
		Author:  f.author,
		Content: strings.TrimSpace(f.content.Value()),
	}
	if err := comment.Validate(); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (f *CommentForm) SetError(err error) {
	f.err = err
}

func (f *CommentForm) Err() error {
	return f.err
}

func (f *CommentForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.content, cmd = f.content.Update(msg)
	return cmd
}

func (f *CommentForm) View() string {
	lines := []string{f.content.View()}
	if f.err != nil {
		lines = append(lines, components.Alert(f.err, ""))
	}
	lines = append(lines, components.ButtonBar(
		components.BtnHint("ctrl+s", "post comment"),
		components.BtnBack(),
	))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
