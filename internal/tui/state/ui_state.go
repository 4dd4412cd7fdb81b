package state

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Tab is one screen of the TUI.
type Tab int

const (
	TabOrders Tab = iota
	TabNotifications
)

var tabNames = []string{"Orders", "Notifications"}

// UIState holds what the user sees but the core does not know about:
// size, cursors, and the search box.
type UIState struct {
	viewport viewport.Model
	search   textinput.Model
	width    int
	height   int

	tab        Tab
	cursors    map[Tab]int
	searchMode bool
}

// NewUIState creates a new UIState instance with default values.
func NewUIState() *UIState {
	search := textinput.New()
	search.Placeholder = "order id"
	search.Prompt = "search #"
	search.CharLimit = 18

	u := &UIState{
		search:  search,
		width:   defaultViewportWidth,
		height:  defaultViewportHeight,
		cursors: map[Tab]int{},
	}
	u.resize()
	return u
}

// SetSize updates the terminal size and the viewport.
func (u *UIState) SetSize(width, height int) {
	if width <= 0 {
		width = defaultViewportWidth
	}
	if height <= 0 {
		height = defaultViewportHeight
	}
	u.width, u.height = width, height
	u.resize()
}

func (u *UIState) resize() {
	h := u.height - headerFooterLines
	if h < 1 {
		h = 1
	}
	u.viewport = viewport.New(u.width, h)
}

// Cursor returns the cursor of the current tab.
func (u *UIState) Cursor() int {
	return u.cursors[u.tab]
}

// MoveCursor moves the current tab's cursor by delta within [0, n).
func (u *UIState) MoveCursor(delta, n int) {
	c := u.cursors[u.tab] + delta
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	u.cursors[u.tab] = c
}

// ClampCursor keeps the current tab's cursor inside a list of n rows.
func (u *UIState) ClampCursor(n int) {
	u.MoveCursor(0, n)
}

// NextTab switches to the following tab.
func (u *UIState) NextTab() {
	u.tab = (u.tab + 1) % Tab(len(tabNames))
}

// EnsureVisible scrolls the viewport so the cursor row is shown.
func (u *UIState) EnsureVisible() {
	c := u.Cursor()
	if c < u.viewport.YOffset {
		u.viewport.SetYOffset(c)
	} else if c >= u.viewport.YOffset+u.viewport.Height {
		u.viewport.SetYOffset(c - u.viewport.Height + 1)
	}
}
