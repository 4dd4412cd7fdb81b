// Package app holds the use cases behind the CLI commands.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
)

// NotificationsClient defines dependencies required to read the feed.
type NotificationsClient interface {
	LoadNotifications(ctx context.Context) error
	MoreNotifications(ctx context.Context) (bool, error)
	NotificationItems() []domain.Notification
}

// loadFeed loads up to pages pages of the feed.
func loadFeed(ctx context.Context, client NotificationsClient, pages int) error {
	if err := client.LoadNotifications(ctx); err != nil {
		return err
	}
	for i := 1; i < pages; i++ {
		more, err := client.MoreNotifications(ctx)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return nil
}

// NotificationsOptions selects what ListNotificationsUseCase prints.
type NotificationsOptions struct {
	Pages      int
	UnreadOnly bool
	Format     format.FormatterType
}

// ListNotificationsUseCase prints the feed.
type ListNotificationsUseCase struct {
	client NotificationsClient
}

// NewListNotificationsUseCase creates a new notifications listing use-case.
func NewListNotificationsUseCase(client NotificationsClient) *ListNotificationsUseCase {
	if client == nil {
		panic("NewListNotificationsUseCase: client dependency cannot be nil")
	}
	return &ListNotificationsUseCase{client: client}
}

// Execute loads opts.Pages pages (at least one) and writes them to w.
func (u *ListNotificationsUseCase) Execute(ctx context.Context, opts NotificationsOptions, w io.Writer) error {
	if err := loadFeed(ctx, u.client, max(opts.Pages, 1)); err != nil {
		return fmt.Errorf("notifications: %w", err)
	}

	items := u.client.NotificationItems()
	if opts.UnreadOnly {
		unread := items[:0:0]
		for _, n := range items {
			if !n.IsRead {
				unread = append(unread, n)
			}
		}
		items = unread
	}
	if len(items) == 0 && opts.Format != format.FormatterTypeJSON {
		colors.Info("No notifications")
		return nil
	}
	return format.NewFormatter(opts.Format).FormatNotifications(items, w)
}

// MarkReadClient defines dependencies required to mark notifications read.
type MarkReadClient interface {
	NotificationsClient
	MarkRead(id int64) bool
	MarkAllRead() int
	Wait()
}

// MarkReadUseCase coordinates mark-read behavior.
type MarkReadUseCase struct {
	client MarkReadClient
	// maxPages bounds how far the feed is paged looking for an id.
	maxPages int
}

// NewMarkReadUseCase creates a new mark-read use-case.
func NewMarkReadUseCase(client MarkReadClient) *MarkReadUseCase {
	if client == nil {
		panic("NewMarkReadUseCase: client dependency cannot be nil")
	}
	return &MarkReadUseCase{client: client, maxPages: 50}
}

// Execute finds id in the feed, marks it read and waits for the server
// call. Only notifications present in the feed can be marked.
func (u *MarkReadUseCase) Execute(ctx context.Context, id int64) error {
	n, found, err := u.find(ctx, id)
	if err != nil {
		return fmt.Errorf("mark-read: %w", err)
	}
	if !found {
		return fmt.Errorf("mark-read: notification %d: %w", id, domain.ErrNotFound)
	}
	if n.IsRead {
		colors.Info(fmt.Sprintf("Notification %d is already read", id))
		return nil
	}

	u.client.MarkRead(id)
	u.client.Wait()
	colors.Success(fmt.Sprintf("Notification %d marked as read", id))
	return nil
}

func (u *MarkReadUseCase) find(ctx context.Context, id int64) (domain.Notification, bool, error) {
	if err := u.client.LoadNotifications(ctx); err != nil {
		return domain.Notification{}, false, err
	}
	for page := 1; ; page++ {
		if n, ok := domain.FindByID(u.client.NotificationItems(), id); ok {
			return n, true, nil
		}
		if page >= u.maxPages {
			return domain.Notification{}, false, nil
		}
		more, err := u.client.MoreNotifications(ctx)
		if err != nil {
			return domain.Notification{}, false, err
		}
		if !more {
			return domain.Notification{}, false, nil
		}
	}
}

// ExecuteAll marks every notification read. The server is told even when
// the loaded pages hold nothing unread.
func (u *MarkReadUseCase) ExecuteAll(ctx context.Context) error {
	if err := u.client.LoadNotifications(ctx); err != nil {
		return fmt.Errorf("mark-all-read: %w", err)
	}
	n := u.client.MarkAllRead()
	u.client.Wait()
	colors.Success(fmt.Sprintf("Marked %d notifications as read", n))
	return nil
}
