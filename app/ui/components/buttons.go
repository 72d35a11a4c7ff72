package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// BackMsg asks the focused view to navigate one step back.
type BackMsg struct{}

// Button is a stateless action widget. Pressing it yields the command it was
// built with.
type Button struct {
	Label   string
	Key     string
	Danger  bool
	onPress tea.Cmd
}

// Press returns the bound command. A button without one does nothing.
func (b Button) Press() tea.Cmd {
	return b.onPress
}

func (b Button) View() string {
	style := ButtonStyle
	if b.Danger {
		style = DangerButtonStyle
	}
	return style.Render(fmt.Sprintf("[%s] %s", b.Key, b.Label))
}

// BtnDelete builds the delete button around onPress.
func BtnDelete(onPress tea.Cmd) Button {
	return Button{Label: "delete", Key: "d", Danger: true, onPress: onPress}
}

// BtnBack builds the back button, which always emits BackMsg.
func BtnBack() Button {
	return Button{Label: "back", Key: "esc", onPress: func() tea.Msg { return BackMsg{} }}
}

// BtnHint is a button that only documents a key handled elsewhere.
func BtnHint(key, label string) Button {
	return Button{Label: label, Key: key}
}
