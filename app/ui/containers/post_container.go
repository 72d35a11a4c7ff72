package containers

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"forum/app/logging"
	"forum/app/models"
	"forum/app/ui/components"
	"forum/app/ui/forms"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

var log = logging.NewLogger("ui")

// State is the comment section state of a post container.
type State int

const (
	Collapsed State = iota
	Expanding
	ExpandedEmpty
	ExpandedWithItems
	Failed
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanding:
		return "expanding"
	case ExpandedEmpty:
		return "expanded-empty"
	case ExpandedWithItems:
		return "expanded-with-items"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type request int

const (
	reqNone request = iota
	reqComments
	reqDelete
	reqSave
	reqComment
)

// placeholderCount picks how many loading skeletons a request shows.
var placeholderCount = func() int { return 1 + rand.Intn(4) }

// PostContainer owns the UI state of one post: its comment section, the
// edit toggle and the delete action. At most one request is outstanding at
// a time and actions issued meanwhile are ignored.
type PostContainer struct {
	id       uuid.UUID
	post     models.Post
	comments CommentAPI
	posts    PostAPI
	author   string
	keys     components.KeyMap
	width    int

	ctx    context.Context
	cancel context.CancelFunc
	seq    uint64
	req    request

	visible      bool
	loaded       bool
	page         int
	items        []models.Comment
	seen         map[int]struct{}
	hasMore      bool
	err          error
	alert        error
	placeholders int

	editForm    *forms.PostForm
	commentForm *forms.CommentForm
	deleted     bool
}

// NewPostContainer creates a container for post. Its requests run under a
// context derived from parent and cancelled by Close.
func NewPostContainer(parent context.Context, post models.Post, comments CommentAPI, posts PostAPI, author string) *PostContainer {
	ctx, cancel := context.WithCancel(parent)
	return &PostContainer{
		id:       uuid.New(),
		post:     post,
		comments: comments,
		posts:    posts,
		author:   author,
		keys:     components.DefaultKeyMap(),
		width:    80,
		ctx:      ctx,
		cancel:   cancel,
		seen:     make(map[int]struct{}),
	}
}

func (c *PostContainer) ID() uuid.UUID { return c.id }

func (c *PostContainer) Post() models.Post { return c.post }

// Comments returns the loaded comments in display order.
func (c *PostContainer) Comments() []models.Comment {
	return append([]models.Comment(nil), c.items...)
}

// Page is the pagination cursor: the last page requested, 0 before the first.
func (c *PostContainer) Page() int { return c.page }

func (c *PostContainer) HasMore() bool { return c.hasMore }

func (c *PostContainer) Busy() bool { return c.req != reqNone }

// Deleted reports whether the backend confirmed the post's deletion.
func (c *PostContainer) Deleted() bool { return c.deleted }

func (c *PostContainer) Editing() bool { return c.editForm != nil }

func (c *PostContainer) Composing() bool { return c.commentForm != nil }

// CapturesInput reports whether key presses belong to a form.
func (c *PostContainer) CapturesInput() bool {
	return c.editForm != nil || c.commentForm != nil
}

// Err is the error shown for the comment section or the last failed action.
func (c *PostContainer) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.alert
}

func (c *PostContainer) SetWidth(width int) {
	c.width = width
}

// State derives the comment section state.
func (c *PostContainer) State() State {
	switch {
	case !c.visible:
		return Collapsed
	case c.loaded && len(c.items) == 0:
		return ExpandedEmpty
	case c.loaded:
		return ExpandedWithItems
	case c.err != nil:
		return Failed
	default:
		return Expanding
	}
}

// Close cancels any request in flight. Results arriving afterwards are
// dropped.
func (c *PostContainer) Close() {
	c.cancel()
	c.req = reqNone
}

func (c *PostContainer) closed() bool {
	return c.ctx.Err() != nil
}

func (c *PostContainer) begin(r request) (context.Context, addressed) {
	c.seq++
	c.req = r
	c.alert = nil
	return c.ctx, addressed{ContainerID: c.id, Seq: c.seq}
}

// Current reports whether seq belongs to the request in flight.
func (c *PostContainer) Current(seq uint64) bool {
	return !c.closed() && c.req != reqNone && seq == c.seq
}

// ToggleComments flips the comment section. The first expansion fetches
// page 1; later toggles only change visibility.
func (c *PostContainer) ToggleComments() tea.Cmd {
	if c.visible {
		c.visible = false
		return nil
	}
	if c.loaded || c.req == reqComments {
		c.visible = true
		return nil
	}
	if c.Busy() || c.closed() {
		return nil
	}
	c.visible = true
	c.err = nil
	c.page = 1
	return c.fetch()
}

// Retry repeats the failed first-page fetch.
func (c *PostContainer) Retry() tea.Cmd {
	if c.State() != Failed || c.Busy() || c.closed() {
		return nil
	}
	c.err = nil
	return c.fetch()
}

// LoadMore requests the page after the cursor and appends it.
func (c *PostContainer) LoadMore() tea.Cmd {
	if c.State() != ExpandedWithItems || !c.hasMore || c.Busy() || c.closed() {
		return nil
	}
	c.page++
	return c.fetch()
}

func (c *PostContainer) fetch() tea.Cmd {
	ctx, to := c.begin(reqComments)
	c.placeholders = placeholderCount()
	api, postID, page := c.comments, c.post.ID, c.page
	return func() tea.Msg {
		comments, err := api.GetCommentsByPostID(ctx, postID, page)
		return CommentsLoadedMsg{addressed: to, Page: page, Comments: comments, Err: err}
	}
}

// Delete asks the backend to delete the post.
func (c *PostContainer) Delete() tea.Cmd {
	if c.Busy() || c.closed() || c.CapturesInput() {
		return nil
	}
	ctx, to := c.begin(reqDelete)
	api, postID := c.posts, c.post.ID
	return components.BtnDelete(func() tea.Msg {
		return DeleteResultMsg{addressed: to, PostID: postID, Err: api.DeletePost(ctx, postID)}
	}).Press()
}

// ToggleEdit swaps between the read-only post and the edit form.
func (c *PostContainer) ToggleEdit() tea.Cmd {
	if c.Busy() || c.closed() {
		return nil
	}
	if c.editForm != nil {
		c.editForm = nil
		return nil
	}
	c.commentForm = nil
	c.editForm = forms.NewPostForm(c.post, c.width)
	return nil
}

// OpenCommentForm shows the new comment form under a loaded comment section.
func (c *PostContainer) OpenCommentForm() tea.Cmd {
	if !c.loaded || !c.visible || c.CapturesInput() || c.closed() {
		return nil
	}
	c.commentForm = forms.NewCommentForm(c.post.ID, c.author, c.width)
	return nil
}

// Back leaves the edit form or the comment form. It reports false when
// there was nothing to leave.
func (c *PostContainer) Back() bool {
	switch {
	case c.editForm != nil:
		if c.req == reqSave {
			return true
		}
		c.editForm = nil
		return true
	case c.commentForm != nil:
		if c.req == reqComment {
			return true
		}
		c.commentForm = nil
		return true
	}
	return false
}

func (c *PostContainer) save() tea.Cmd {
	if c.Busy() || c.closed() {
		return nil
	}
	edited, err := c.editForm.Value()
	if err != nil {
		c.editForm.SetError(err)
		return nil
	}
	c.editForm.SetError(nil)
	ctx, to := c.begin(reqSave)
	api := c.posts
	return func() tea.Msg {
		saved, err := api.UpdatePost(ctx, edited)
		return PostSavedMsg{addressed: to, Post: saved, Err: err}
	}
}

func (c *PostContainer) submitComment() tea.Cmd {
	if c.Busy() || c.closed() {
		return nil
	}
	comment, err := c.commentForm.Value()
	if err != nil {
		c.commentForm.SetError(err)
		return nil
	}
	c.commentForm.SetError(nil)
	ctx, to := c.begin(reqComment)
	api := c.comments
	return func() tea.Msg {
		created, err := api.CreateComment(ctx, comment)
		return CommentCreatedMsg{addressed: to, Comment: created, Err: err}
	}
}

// Update applies request results and, while a form is open, key presses.
func (c *PostContainer) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ContainerMsg:
		id, seq := msg.Target()
		if id != c.id || !c.Current(seq) {
			log.Debugf("dropping stale %T for post %d", msg, c.post.ID)
			return nil
		}
		c.req = reqNone
		c.apply(msg)
		return nil

	case tea.KeyMsg:
		switch {
		case c.editForm != nil:
			if key.Matches(msg, c.keys.Save) {
				return c.save()
			}
			return c.editForm.Update(msg)
		case c.commentForm != nil:
			if key.Matches(msg, c.keys.Save) {
				return c.submitComment()
			}
			return c.commentForm.Update(msg)
		}
	}
	return nil
}

func (c *PostContainer) apply(msg ContainerMsg) {
	switch msg := msg.(type) {
	case CommentsLoadedMsg:
		if msg.Err != nil {
			c.failFetch(msg.Page, msg.Err)
			return
		}
		c.append(msg.Comments...)
		c.loaded = true
		c.hasMore = len(msg.Comments) == c.comments.PageSize()

	case DeleteResultMsg:
		if msg.Err != nil {
			log.Errorf("deleting post %d: %v", msg.PostID, msg.Err)
			c.alert = fmt.Errorf("delete failed: %w", msg.Err)
			return
		}
		c.deleted = true

	case PostSavedMsg:
		if msg.Err != nil {
			log.Errorf("saving post %d: %v", c.post.ID, msg.Err)
			c.editForm.SetError(fmt.Errorf("save failed: %w", msg.Err))
			return
		}
		c.post = msg.Post
		c.editForm = nil

	case CommentCreatedMsg:
		if msg.Err != nil {
			log.Errorf("creating comment on post %d: %v", c.post.ID, msg.Err)
			c.commentForm.SetError(fmt.Errorf("comment failed: %w", msg.Err))
			return
		}
		c.append(msg.Comment)
		c.commentForm = nil
	}
}

func (c *PostContainer) failFetch(page int, err error) {
	log.Errorf("loading comments page %d of post %d: %v", page, c.post.ID, err)
	if page > 1 {
		c.page = page - 1
		c.alert = fmt.Errorf("loading more comments failed: %w", err)
		return
	}
	c.err = err
}

// append adds comments that are not already shown.
func (c *PostContainer) append(comments ...models.Comment) {
	for _, comment := range comments {
		if _, ok := c.seen[comment.ID]; ok {
			continue
		}
		c.seen[comment.ID] = struct{}{}
		c.items = append(c.items, comment)
	}
}

// Buttons returns the actions offered for the post in its current state.
func (c *PostContainer) Buttons() []components.Button {
	if c.CapturesInput() {
		return nil
	}
	buttons := []components.Button{components.BtnHint("c", "comments")}
	switch c.State() {
	case ExpandedWithItems:
		if c.hasMore && !c.Busy() {
			buttons = append(buttons, components.BtnHint("m", "load more"))
		}
		buttons = append(buttons, components.BtnHint("n", "comment"))
	case ExpandedEmpty:
		buttons = append(buttons, components.BtnHint("n", "comment"))
	case Failed:
		buttons = append(buttons, components.BtnHint("r", "retry"))
	}
	buttons = append(buttons, components.BtnHint("e", "edit"), components.BtnDelete(nil))
	return buttons
}

// View renders the post card. selected highlights the border.
func (c *PostContainer) View(selected bool) string {
	var b strings.Builder

	if c.editForm != nil {
		b.WriteString(c.editForm.View())
	} else {
		b.WriteString(components.RenderPostBody(c.post, c.width-4))
	}
	b.WriteString("\n")

	if bar := components.ButtonBar(c.Buttons()...); bar != "" {
		b.WriteString("\n" + bar + "\n")
	}
	if c.req == reqDelete {
		b.WriteString(components.Alert(nil, "Deleting…") + "\n")
	}
	if c.alert != nil {
		b.WriteString(components.Alert(c.alert, "") + "\n")
	}

	if section := c.commentSection(); section != "" {
		b.WriteString("\n" + section)
	}

	style := components.PostStyle
	if selected {
		style = components.SelectedPostStyle
	}
	return style.Width(max(c.width-2, 20)).Render(strings.TrimRight(b.String(), "\n"))
}

func (c *PostContainer) commentSection() string {
	width := c.width - 4
	var parts []string

	switch c.State() {
	case Collapsed:
		if c.loaded {
			parts = append(parts, components.MutedStyle.Render(
				components.Pluralize(len(c.items), "comment")+" hidden"))
		}
		return strings.Join(parts, "\n")
	case Expanding:
		parts = append(parts, components.Skeletons(c.placeholders, width))
	case Failed:
		parts = append(parts, components.Alert(fmt.Errorf("could not load comments: %w", c.err), ""))
	case ExpandedEmpty:
		parts = append(parts, components.Alert(nil, "No comments yet."))
	case ExpandedWithItems:
		for _, comment := range c.items {
			parts = append(parts, CommentContainer{Comment: comment}.View(width))
		}
		if c.req == reqComments {
			parts = append(parts, components.Skeletons(c.placeholders, width))
		}
	}

	if c.commentForm != nil {
		parts = append(parts, c.commentForm.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
