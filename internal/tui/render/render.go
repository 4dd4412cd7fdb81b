// Package render draws the rows, header and footer of the TUI.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/errors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
)

const (
	idWidth     = 7
	timeWidth   = 24
	statusWidth = 10
	priceWidth  = 12
	unreadMark  = "●"
	readMark    = " "
	ellipsis    = "…"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	badgeStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	shiftStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	selectedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("0"))
	unreadStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusStyles = map[errors.MessageType]lipgloss.Style{
		errors.MessageTypeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		errors.MessageTypeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errors.MessageTypeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		errors.MessageTypeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)

// HeaderState defines the inputs of the tab bar.
type HeaderState struct {
	Tabs   []string
	Active int
	Unread int
	Shift  *domain.Shift
}

// Header renders the tab bar. The unread badge sits on the notifications
// tab, the last one.
func Header(h HeaderState) string {
	parts := make([]string, 0, len(h.Tabs)+1)
	for i, name := range h.Tabs {
		label := name
		if i == len(h.Tabs)-1 && h.Unread > 0 {
			label += " " + badgeStyle.Render(Badge(h.Unread))
		}
		if i == h.Active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	if h.Shift != nil {
		parts = append(parts, shiftStyle.Render(fmt.Sprintf("shift #%d · %s", h.Shift.ID, h.Shift.StartDate)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Badge formats the unread count, capped at 99+.
func Badge(n int) string {
	if n > 99 {
		return "99+"
	}
	return fmt.Sprintf("%d", n)
}

// OrderRow renders one order line.
func OrderRow(o domain.Order, width int, selected bool) string {
	customer := o.CustomerName
	if customer == "" {
		customer = "-"
	}
	fixed := idWidth + timeWidth + statusWidth + priceWidth + 4
	row := fmt.Sprintf("%-*s %-*s %-*s %*s %s",
		idWidth, fmt.Sprintf("#%d", o.ID),
		timeWidth, o.CreatedAt,
		statusWidth, truncate(o.Status, statusWidth),
		priceWidth, format.Price(o.TotalPrice),
		truncate(customer, width-fixed))
	return styleRow(row, selected, false)
}

// NotificationRow renders one notification line.
func NotificationRow(n domain.Notification, width int, selected bool) string {
	mark := readMark
	if !n.IsRead {
		mark = unreadMark
	}
	fixed := utf8.RuneCountInString(mark) + timeWidth + 2
	text := n.Title
	if n.Content != "" {
		text += ": " + n.Content
	}
	row := fmt.Sprintf("%s %-*s %s", mark, timeWidth, n.CreatedAt, truncate(text, width-fixed))
	return styleRow(row, selected, !n.IsRead)
}

func styleRow(row string, selected, emphasized bool) string {
	switch {
	case selected:
		return selectedStyle.Render(row)
	case emphasized:
		return unreadStyle.Render(row)
	default:
		return row
	}
}

// Empty renders the placeholder shown for an empty list.
func Empty(loading bool) string {
	if loading {
		return dimStyle.Render("Loading…")
	}
	return dimStyle.Render("Nothing to show")
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	SearchMode    bool
	Notifications bool
	HasMore       bool
	// OldestFirst is the current order sort; the hint offers the other one.
	OldestFirst   bool
}

// Footer renders the key help.
func Footer(f FooterState) string {
	var keys []string
	switch {
	case f.SearchMode:
		keys = []string{"enter: search now", "esc: close"}
	case f.Notifications:
		keys = []string{"enter: mark read", "a: mark all read", "r: refresh", "tab: orders", "q: quit"}
	default:
		keys = []string{"/: search id", "s: " + sortLabel(f.OldestFirst), "r: refresh", "tab: notifications", "q: quit"}
	}
	if f.HasMore && !f.SearchMode {
		keys = append([]string{"n: more"}, keys...)
	}
	return dimStyle.Render(strings.Join(keys, " · "))
}

func sortLabel(oldestFirst bool) string {
	if oldestFirst {
		return "newest first"
	}
	return "oldest first"
}

// Status renders a one-shot message.
func Status(msg errors.Message) string {
	style, ok := statusStyles[msg.Type]
	if !ok {
		style = dimStyle
	}
	return style.Render(msg.Text)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return ellipsis
	}
	runes := []rune(s)
	return string(runes[:width-1]) + ellipsis
}
