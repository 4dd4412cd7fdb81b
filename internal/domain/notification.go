package domain

// Notification is one entry of a user's notification feed.
type Notification struct {
	ID        int64
	Title     string
	Content   string
	Type      string
	CreatedAt string // display string, see package datetime
	IsRead    bool
}

// ItemID implements Item.
func (n Notification) ItemID() int64 { return n.ID }

// MarkRead returns a copy with the read flag set.
func (n Notification) MarkRead() Notification {
	n.IsRead = true
	return n
}

// MarkUnread returns a copy with the read flag cleared.
func (n Notification) MarkUnread() Notification {
	n.IsRead = false
	return n
}

// CountUnread returns how many notifications are unread.
func CountUnread(notifs []Notification) int {
	count := 0
	for _, n := range notifs {
		if !n.IsRead {
			count++
		}
	}
	return count
}
