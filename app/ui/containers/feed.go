package containers

import (
	"context"
	"strings"

	"forum/app/models"
	"forum/app/store"
	"forum/app/ui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Feed is the root model of the forum browser. It owns the post store and
// one PostContainer per post, and is the only writer of the store.
type Feed struct {
	ctx    context.Context
	cancel context.CancelFunc

	posts    PostAPI
	comments CommentAPI
	author   string
	perPage  int
	source   string

	store      *store.Posts
	containers map[uuid.UUID]*PostContainer
	byPost     map[int]uuid.UUID

	cursor  int
	top     int
	focused bool

	loading bool
	loadSeq uint64
	err     error

	spinner spinner.Model
	help    help.Model
	keys    components.KeyMap
	width   int
	height  int
}

// NewFeed builds the feed. source is shown in the header.
func NewFeed(posts PostAPI, comments CommentAPI, author string, perPage int, source string) *Feed {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(components.ColorAccent))

	ctx, cancel := context.WithCancel(context.Background())
	return &Feed{
		ctx:        ctx,
		cancel:     cancel,
		posts:      posts,
		comments:   comments,
		author:     author,
		perPage:    perPage,
		source:     source,
		store:      store.NewPosts(nil),
		containers: make(map[uuid.UUID]*PostContainer),
		byPost:     make(map[int]uuid.UUID),
		spinner:    s,
		help:       help.New(),
		keys:       components.DefaultKeyMap(),
		width:      80,
		height:     24,
	}
}

// Store exposes the post list for inspection. Callers must not mutate it.
func (f *Feed) Store() *store.Posts { return f.store }

func (f *Feed) Focused() bool { return f.focused }

func (f *Feed) Loading() bool { return f.loading }

func (f *Feed) Err() error { return f.err }

// Selected returns the container under the cursor.
func (f *Feed) Selected() *PostContainer {
	post, ok := f.store.At(f.cursor)
	if !ok {
		return nil
	}
	return f.Container(post.ID)
}

// Container returns the container of a post.
func (f *Feed) Container(postID int) *PostContainer {
	id, ok := f.byPost[postID]
	if !ok {
		return nil
	}
	return f.containers[id]
}

func (f *Feed) Init() tea.Cmd {
	return tea.Batch(f.load(), f.spinner.Tick)
}

// Close cancels every request still in flight.
func (f *Feed) Close() {
	for _, c := range f.containers {
		c.Close()
	}
	f.cancel()
}

func (f *Feed) load() tea.Cmd {
	f.loadSeq++
	f.loading = true
	ctx, api, seq, perPage := f.ctx, f.posts, f.loadSeq, f.perPage
	return func() tea.Msg {
		posts, err := api.ListPosts(ctx, 1, perPage)
		return PostsLoadedMsg{Seq: seq, Posts: posts, Err: err}
	}
}

func (f *Feed) reset(posts []models.Post) {
	for _, c := range f.containers {
		c.Close()
	}
	f.containers = make(map[uuid.UUID]*PostContainer, len(posts))
	f.byPost = make(map[int]uuid.UUID, len(posts))

	f.store.Set(posts)
	for _, post := range posts {
		c := NewPostContainer(f.ctx, post, f.comments, f.posts, f.author)
		c.SetWidth(f.width)
		f.containers[c.ID()] = c
		f.byPost[post.ID] = c.ID()
	}
	f.clampCursor()
}

func (f *Feed) removePost(postID int) {
	if c := f.Selected(); c != nil && c.Post().ID == postID {
		f.focused = false
	}
	removedAbove := false
	for i := 0; i < f.cursor; i++ {
		if post, _ := f.store.At(i); post.ID == postID {
			removedAbove = true
			break
		}
	}
	if !f.store.Remove(postID) {
		return
	}
	if removedAbove {
		f.cursor--
	}
	if id, ok := f.byPost[postID]; ok {
		f.containers[id].Close()
		delete(f.containers, id)
		delete(f.byPost, postID)
	}
	f.clampCursor()
}

func (f *Feed) clampCursor() {
	if f.cursor >= f.store.Len() {
		f.cursor = f.store.Len() - 1
	}
	if f.cursor < 0 {
		f.cursor = 0
	}
	if f.top > f.cursor {
		f.top = f.cursor
	}
}

func (f *Feed) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width, f.height = msg.Width, msg.Height
		f.help.Width = msg.Width
		for _, c := range f.containers {
			c.SetWidth(msg.Width)
		}
		return f, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd

	case PostsLoadedMsg:
		if msg.Seq != f.loadSeq {
			return f, nil
		}
		f.loading = false
		if msg.Err != nil {
			log.Errorf("loading posts: %v", msg.Err)
			f.err = msg.Err
			return f, nil
		}
		f.err = nil
		f.reset(msg.Posts)
		return f, nil

	case ContainerMsg:
		return f, f.route(msg)

	case components.BackMsg:
		f.back()
		return f, nil

	case tea.KeyMsg:
		return f, f.handleKey(msg)
	}
	return f, nil
}

// route hands a result to its container and applies the store changes it
// implies. Results for containers that no longer exist are dropped.
func (f *Feed) route(msg ContainerMsg) tea.Cmd {
	id, seq := msg.Target()
	c, ok := f.containers[id]
	if !ok {
		log.Debugf("dropping %T for closed container %s", msg, id)
		return nil
	}
	accepted := c.Current(seq)
	cmd := c.Update(msg)
	if !accepted {
		return cmd
	}

	switch msg := msg.(type) {
	case DeleteResultMsg:
		if c.Deleted() {
			f.removePost(msg.PostID)
		}
	case PostSavedMsg:
		if msg.Err == nil {
			f.store.Replace(c.Post())
		}
	}
	return cmd
}

func (f *Feed) back() {
	if c := f.Selected(); c != nil && c.Back() {
		return
	}
	f.focused = false
}

func (f *Feed) handleKey(msg tea.KeyMsg) tea.Cmd {
	c := f.Selected()

	if c != nil && c.CapturesInput() {
		switch {
		case key.Matches(msg, f.keys.Back):
			return components.BtnBack().Press()
		case msg.Type == tea.KeyCtrlC:
			f.Close()
			return tea.Quit
		}
		return c.Update(msg)
	}

	switch {
	case key.Matches(msg, f.keys.Quit):
		f.Close()
		return tea.Quit
	case key.Matches(msg, f.keys.Help):
		f.help.ShowAll = !f.help.ShowAll
	case key.Matches(msg, f.keys.Back):
		return components.BtnBack().Press()
	case key.Matches(msg, f.keys.Refresh):
		if !f.loading {
			return f.load()
		}
	case key.Matches(msg, f.keys.Up):
		if !f.focused && f.cursor > 0 {
			f.cursor--
			f.scroll()
		}
	case key.Matches(msg, f.keys.Down):
		if !f.focused && f.cursor < f.store.Len()-1 {
			f.cursor++
			f.scroll()
		}
	case c == nil:
	case key.Matches(msg, f.keys.Open):
		f.focused = true
	case key.Matches(msg, f.keys.Comments):
		return c.ToggleComments()
	case key.Matches(msg, f.keys.More):
		return c.LoadMore()
	case key.Matches(msg, f.keys.Retry):
		return c.Retry()
	case key.Matches(msg, f.keys.Reply):
		return c.OpenCommentForm()
	case key.Matches(msg, f.keys.Edit):
		return c.ToggleEdit()
	case key.Matches(msg, f.keys.Delete):
		return c.Delete()
	}
	return nil
}

// scroll moves the window so the selected card is fully visible.
func (f *Feed) scroll() {
	if f.cursor < f.top {
		f.top = f.cursor
		return
	}
	available := f.listHeight()
	for f.top < f.cursor {
		used := 0
		for i := f.top; i <= f.cursor; i++ {
			used += lipgloss.Height(f.cardView(i))
		}
		if used <= available {
			return
		}
		f.top++
	}
}

func (f *Feed) listHeight() int {
	return max(f.height-4, 5)
}

func (f *Feed) cardView(i int) string {
	post, ok := f.store.At(i)
	if !ok {
		return ""
	}
	c := f.Container(post.ID)
	if c == nil {
		return ""
	}
	return c.View(i == f.cursor)
}

func (f *Feed) View() string {
	var b strings.Builder

	header := components.HeaderStyle.Render("forum") + " " + components.MutedStyle.Render(f.source)
	if f.loading {
		header += " " + f.spinner.View()
	}
	b.WriteString(header + "\n")
	if f.err != nil {
		b.WriteString(components.Alert(f.err, "") + "\n")
	}

	switch {
	case f.store.Len() == 0 && f.loading:
		b.WriteString(components.MutedStyle.Render("Loading posts…") + "\n")
	case f.store.Len() == 0:
		b.WriteString(components.Alert(nil, "No posts yet.") + "\n")
	case f.focused:
		b.WriteString(f.cardView(f.cursor) + "\n")
		b.WriteString(components.ButtonBar(components.BtnBack()) + "\n")
	default:
		lines := 0
		for i := f.top; i < f.store.Len(); i++ {
			card := f.cardView(i)
			if lines > 0 && lines+lipgloss.Height(card) > f.listHeight() {
				break
			}
			b.WriteString(card + "\n")
			lines += lipgloss.Height(card)
		}
	}

	if c := f.Selected(); c != nil && c.CapturesInput() {
		b.WriteString(f.help.ShortHelpView(f.keys.FormHelp()))
	} else {
		b.WriteString(f.help.View(f.keys))
	}
	return b.String()
}
