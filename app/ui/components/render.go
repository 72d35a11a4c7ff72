package components

import (
	"fmt"
	"strings"
	"time"

	"forum/app/models"

	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "2006-01-02 15:04"

// RenderPostBody renders the read-only part of a post card.
func RenderPostBody(post models.Post, width int) string {
	meta := AuthorStyle.Render(post.Author) + MutedStyle.Render(" · "+formatTime(post.CreatedAt))
	if post.Edited() {
		meta += MutedStyle.Render(" · edited")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(post.Title),
		meta,
		"",
		ContentStyle.Width(max(width, 10)).Render(post.Content),
	)
}

// RenderComment renders one comment.
func RenderComment(comment models.Comment, width int) string {
	head := AuthorStyle.Render(comment.Author) + MutedStyle.Render(" · "+formatTime(comment.CreatedAt))
	body := ContentStyle.Width(max(width-4, 10)).Render(comment.Content)
	return CommentStyle.Render(head + "\n" + body)
}

// Skeletons renders n loading placeholders shaped like comments.
func Skeletons(n, width int) string {
	lineWidth := max(width-8, 8)
	cards := make([]string, 0, n)
	for i := 0; i < n; i++ {
		head := strings.Repeat("░", min(12, lineWidth))
		body := strings.Repeat("░", lineWidth-(i%3)*lineWidth/6)
		cards = append(cards, SkeletonStyle.Render(head+"\n"+body))
	}
	return strings.Join(cards, "\n")
}

// Alert renders a one-line notice. Errors render in red.
func Alert(err error, info string) string {
	if err != nil {
		return ErrorStyle.Render("✗ " + err.Error())
	}
	return InfoStyle.Render(info)
}

// ButtonBar joins buttons on one line.
func ButtonBar(buttons ...Button) string {
	views := make([]string, 0, len(buttons))
	for _, b := range buttons {
		views = append(views, b.View())
	}
	return strings.Join(views, "  ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "just now"
	}
	return t.Local().Format(timeLayout)
}

// Pluralize returns "1 comment", "2 comments" and so on.
func Pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
