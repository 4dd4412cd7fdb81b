// Package state holds the bubbletea model of the TUI and its messages.
package state

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
)

// SearchFocusMsg asks the view to focus or release the search box. Focusing
// brings up the keyboard on devices that have one on screen.
type SearchFocusMsg struct {
	Focused bool
}

// ordersLoadedMsg is sent when the open shift and its orders were fetched.
type ordersLoadedMsg struct {
	shift domain.Shift
	open  bool
	err   error
}

// notificationsLoadedMsg is sent when a feed fetch finished.
type notificationsLoadedMsg struct {
	err error
}

// ordersRefreshMsg re-reads the orders listing; sent while a search is
// pending or loading.
type ordersRefreshMsg struct{}

// inboxMsg signals that observer callbacks delivered new values.
type inboxMsg struct{}

// clearStatusMsg clears the status line if it still shows the message
// stamped at.
type clearStatusMsg struct {
	at time.Time
}

func focusSearch(focused bool) tea.Cmd {
	return func() tea.Msg { return SearchFocusMsg{Focused: focused} }
}

// inbox collects values pushed by counter and cache observers, which run on
// other goroutines, and wakes the program with at most one pending signal.
// Only the latest values are kept.
type inbox struct {
	mu            sync.Mutex
	unread        int
	notifications *pagecache.Snapshot[domain.Notification]
	signal        chan struct{}
}

func newInbox() *inbox {
	return &inbox{signal: make(chan struct{}, 1)}
}

func (b *inbox) setUnread(n int) {
	b.mu.Lock()
	b.unread = n
	b.mu.Unlock()
	b.poke()
}

func (b *inbox) setNotifications(snap pagecache.Snapshot[domain.Notification]) {
	b.mu.Lock()
	b.notifications = &snap
	b.mu.Unlock()
	b.poke()
}

func (b *inbox) poke() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// take returns the latest unread count and, once, the latest feed snapshot.
func (b *inbox) take() (int, *pagecache.Snapshot[domain.Notification]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	snap := b.notifications
	b.notifications = nil
	return b.unread, snap
}

func (b *inbox) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.signal:
			return inboxMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
