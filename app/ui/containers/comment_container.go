package containers

import (
	"forum/app/models"
	"forum/app/ui/components"
)

// CommentContainer renders a single comment.
type CommentContainer struct {
	Comment models.Comment
}

func (c CommentContainer) View(width int) string {
	return components.RenderComment(c.Comment, width)
}
