package state

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/core"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/errors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/logging"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/settings"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/tui/render"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
	// header, status, search and footer lines
	headerFooterLines = 4

	errorClearDuration = 5 * time.Second
	refreshInterval    = 100 * time.Millisecond
)

// Model is the bubbletea model of the TUI: an orders tab following the open
// shift and a notifications tab with the unread badge.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	core   *core.Core
	errs   *errors.TUIHandler
	ui     *UIState
	inbox  *inbox
	prefs  settings.Store

	unsubscribe []func()
	unread      int
	shift       *domain.Shift
	orders      pagecache.Snapshot[domain.Order]
	feed        pagecache.Snapshot[domain.Notification]

	status    errors.Message
	hasStatus bool
	quitting  bool
}

// Option configures a Model.
type Option func(*Model)

// WithSettings restores the tab and order sort from store and saves them
// on quit.
func WithSettings(store settings.Store) Option {
	return func(m *Model) {
		m.prefs = store
	}
}

// NewModel creates the model. c must have been started; errs must be the
// reporter c was built with so load failures reach the status line.
func NewModel(ctx context.Context, c *core.Core, errs *errors.TUIHandler, opts ...Option) *Model {
	if c == nil {
		panic("NewModel: core must not be nil")
	}
	if errs == nil {
		panic("NewModel: error handler must not be nil")
	}
	ctx, cancel := context.WithCancel(ctx)
	m := &Model{
		ctx:    ctx,
		cancel: cancel,
		core:   c,
		errs:   errs,
		ui:     NewUIState(),
		inbox:  newInbox(),
		orders: pagecache.Snapshot[domain.Order]{State: pagecache.Loading},
		feed:   pagecache.Snapshot[domain.Notification]{State: pagecache.Loading},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.restore()
	return m
}

func (m *Model) restore() {
	if m.prefs == nil {
		return
	}
	s, err := m.prefs.Load()
	if err != nil {
		m.errs.Warning(fmt.Sprintf("Using default settings: %v", err))
		s = settings.Default()
	}
	if s.Tab == settings.TabNotifications {
		m.ui.tab = TabNotifications
	}
	m.core.Orders().SetSort(s.OrderSort)
}

func (m *Model) save() {
	if m.prefs == nil {
		return
	}
	s := settings.Settings{Tab: settings.TabOrders, OrderSort: m.core.Orders().Sort()}
	if m.ui.tab == TabNotifications {
		s.Tab = settings.TabNotifications
	}
	if err := m.prefs.Save(s); err != nil {
		logging.Warn("save tui settings", "error", err)
	}
}

// Init subscribes to the unread counter and the feed, then starts loading
// both tabs.
func (m *Model) Init() tea.Cmd {
	m.subscribe()
	return tea.Batch(m.inbox.wait(m.ctx), m.loadOrders(), m.loadNotifications())
}

func (m *Model) subscribe() {
	if len(m.unsubscribe) > 0 {
		return
	}
	m.unsubscribe = append(m.unsubscribe,
		m.core.Counter().Subscribe(m.inbox.setUnread),
		m.core.Notifications().Cache().Subscribe(m.core.NotificationsKey(), m.inbox.setNotifications),
	)
}

func (m *Model) quit() tea.Cmd {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
	m.save()
	m.quitting = true
	m.cancel()
	return tea.Quit
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.ui.searchMode {
			return m, m.handleSearchKey(msg)
		}
		return m, m.handleKey(msg)

	case SearchFocusMsg:
		m.ui.searchMode = msg.Focused
		if msg.Focused {
			return m, m.ui.search.Focus()
		}
		m.ui.search.Blur()
		return m, nil

	case inboxMsg:
		unread, feed := m.inbox.take()
		m.unread = unread
		if feed != nil {
			m.feed = *feed
			if m.ui.tab == TabNotifications {
				m.ui.ClampCursor(len(m.feed.Items))
			}
		}
		return m, m.inbox.wait(m.ctx)

	case ordersLoadedMsg:
		if msg.err == nil {
			if msg.open {
				shift := msg.shift
				m.shift = &shift
			} else {
				m.shift = nil
				m.errs.Info("No open shift")
			}
		}
		m.orders = m.core.Orders().Snapshot()
		if !msg.open && msg.err == nil {
			m.orders = pagecache.Snapshot[domain.Order]{State: pagecache.Loaded}
		}
		return m, m.takeStatus()

	case notificationsLoadedMsg:
		m.feed = m.core.Notifications().Cache().Snapshot(m.core.NotificationsKey())
		return m, m.takeStatus()

	case ordersRefreshMsg:
		m.orders = m.core.Orders().Snapshot()
		if m.ui.tab == TabOrders {
			m.ui.ClampCursor(len(m.orders.Items))
		}
		status := m.takeStatus()
		if m.core.Orders().SearchPending() || m.orders.State == pagecache.Loading {
			return m, tea.Batch(status, refreshLater())
		}
		return m, status

	case clearStatusMsg:
		if m.hasStatus && m.status.Timestamp.Equal(msg.at) {
			m.hasStatus = false
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case "tab":
		m.ui.NextTab()
		return nil
	case "up", "k":
		m.ui.MoveCursor(-1, m.rows())
	case "down", "j":
		m.ui.MoveCursor(1, m.rows())
	case "r":
		if m.ui.tab == TabNotifications {
			return m.loadNotifications()
		}
		return m.refreshOrders()
	case "n":
		if m.ui.tab == TabNotifications {
			return m.moreNotifications()
		}
		return m.nextOrders()
	case "/":
		if m.ui.tab == TabOrders {
			return focusSearch(true)
		}
	case "s":
		if m.ui.tab == TabOrders {
			m.toggleSort()
		}
	case "enter":
		if m.ui.tab == TabNotifications {
			m.markSelectedRead()
		}
	case "a":
		if m.ui.tab == TabNotifications {
			n := m.core.MarkAllRead()
			m.errs.Success(fmt.Sprintf("Marked %d notifications as read", n))
			m.feed = m.core.Notifications().Cache().Snapshot(m.core.NotificationsKey())
			return m.takeStatus()
		}
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	orders := m.core.Orders()
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		if m.ui.search.Value() != "" {
			m.ui.search.SetValue("")
			orders.Search("")
			return tea.Batch(focusSearch(false), refreshLater())
		}
		return focusSearch(false)
	case "enter":
		coord := orders.Coordinator()
		return tea.Batch(focusSearch(false), func() tea.Msg {
			coord.FlushSearch()
			return ordersRefreshMsg{}
		})
	}

	before := m.ui.search.Value()
	var cmd tea.Cmd
	m.ui.search, cmd = m.ui.search.Update(msg)
	if after := m.ui.search.Value(); after != before {
		orders.Search(after)
		return tea.Batch(cmd, refreshLater())
	}
	return cmd
}

func (m *Model) markSelectedRead() {
	items := m.feed.Items
	c := m.ui.Cursor()
	if c < 0 || c >= len(items) {
		return
	}
	if m.core.MarkRead(items[c].ID) {
		m.feed = m.core.Notifications().Cache().Snapshot(m.core.NotificationsKey())
	}
}

func (m *Model) toggleSort() {
	orders := m.core.Orders()
	next := domain.SortOrderAsc
	if orders.Sort() == domain.SortOrderAsc {
		next = domain.SortOrderDesc
	}
	orders.SetSort(next)
	m.orders.Items = domain.SortOrders(m.orders.Items, next)
}

func (m *Model) rows() int {
	if m.ui.tab == TabNotifications {
		return len(m.feed.Items)
	}
	return len(m.orders.Items)
}

func (m *Model) loadOrders() tea.Cmd {
	ctx, orders := m.ctx, m.core.Orders()
	return func() tea.Msg {
		shift, open, err := orders.LoadOpenShift(ctx)
		return ordersLoadedMsg{shift: shift, open: open, err: err}
	}
}

func (m *Model) refreshOrders() tea.Cmd {
	if m.shift == nil {
		return m.loadOrders()
	}
	ctx, orders := m.ctx, m.core.Orders()
	m.orders.State = pagecache.Loading
	return func() tea.Msg {
		_ = orders.Refresh(ctx)
		return ordersRefreshMsg{}
	}
}

func (m *Model) nextOrders() tea.Cmd {
	if !m.orders.HasMore {
		return nil
	}
	ctx, orders := m.ctx, m.core.Orders()
	return func() tea.Msg {
		_, _ = orders.NextPage(ctx)
		return ordersRefreshMsg{}
	}
}

func (m *Model) loadNotifications() tea.Cmd {
	ctx, c := m.ctx, m.core
	return func() tea.Msg {
		return notificationsLoadedMsg{err: c.LoadNotifications(ctx)}
	}
}

func (m *Model) moreNotifications() tea.Cmd {
	if !m.feed.HasMore {
		return nil
	}
	ctx, c := m.ctx, m.core
	return func() tea.Msg {
		_, err := c.MoreNotifications(ctx)
		return notificationsLoadedMsg{err: err}
	}
}

func refreshLater() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return ordersRefreshMsg{} })
}

// takeStatus moves the newest pending message to the status line.
func (m *Model) takeStatus() tea.Cmd {
	var (
		latest errors.Message
		found  bool
	)
	for {
		msg, ok := m.errs.Take()
		if !ok {
			break
		}
		latest, found = msg, true
	}
	if !found {
		return nil
	}
	m.status, m.hasStatus = latest, true
	at := latest.Timestamp
	return tea.Tick(errorClearDuration, func(time.Time) tea.Msg { return clearStatusMsg{at: at} })
}

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body []string
	switch m.ui.tab {
	case TabNotifications:
		for i, n := range m.feed.Items {
			body = append(body, render.NotificationRow(n, m.ui.width, i == m.ui.Cursor()))
		}
		if len(body) == 0 {
			body = append(body, render.Empty(m.feed.State == pagecache.Loading))
		}
	default:
		for i, o := range m.orders.Items {
			body = append(body, render.OrderRow(o, m.ui.width, i == m.ui.Cursor()))
		}
		if len(body) == 0 {
			body = append(body, render.Empty(m.orders.State == pagecache.Loading))
		}
	}
	m.ui.viewport.SetContent(strings.Join(body, "\n"))
	m.ui.EnsureVisible()

	var b strings.Builder
	b.WriteString(render.Header(render.HeaderState{
		Tabs:   tabNames,
		Active: int(m.ui.tab),
		Unread: m.unread,
		Shift:  m.shift,
	}))
	b.WriteString("\n")
	b.WriteString(m.ui.viewport.View())
	b.WriteString("\n")
	if m.hasStatus {
		b.WriteString(render.Status(m.status))
	}
	b.WriteString("\n")
	if m.ui.searchMode || m.ui.search.Value() != "" {
		b.WriteString(m.ui.search.View())
	}
	b.WriteString("\n")

	hasMore := m.orders.HasMore
	if m.ui.tab == TabNotifications {
		hasMore = m.feed.HasMore
	}
	b.WriteString(render.Footer(render.FooterState{
		SearchMode:    m.ui.searchMode,
		Notifications: m.ui.tab == TabNotifications,
		HasMore:       hasMore,
		OldestFirst:   m.core.Orders().Sort() == domain.SortOrderAsc,
	}))
	return b.String()
}
