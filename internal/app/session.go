package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/counter"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/session"
)

// LoginUseCase saves a session.
type LoginUseCase struct {
	store session.Store
}

// NewLoginUseCase creates a login use-case.
func NewLoginUseCase(store session.Store) *LoginUseCase {
	if store == nil {
		panic("NewLoginUseCase: store dependency cannot be nil")
	}
	return &LoginUseCase{store: store}
}

// Execute saves s, replacing any previous session.
func (u *LoginUseCase) Execute(ctx context.Context, s session.Session) error {
	if err := u.store.Save(ctx, s); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	name := s.UserName
	if name == "" {
		name = fmt.Sprintf("user %d", s.UserID)
	}
	colors.Success(fmt.Sprintf("Signed in as %s (shop %d)", name, s.ShopID))
	return nil
}

// ExecuteLogout removes the saved session.
func (u *LoginUseCase) ExecuteLogout(ctx context.Context) error {
	if err := u.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	colors.Success("Signed out")
	return nil
}

// StatusClient defines dependencies for the status summary.
type StatusClient interface {
	Start(ctx context.Context) (session.Session, error)
	LoadNotifications(ctx context.Context) error
	Counter() counter.Counter
	OpenShift(ctx context.Context) (domain.Shift, bool, error)
}

// StatusUseCase reports who is signed in, the unread count and the open
// shift.
type StatusUseCase struct {
	client StatusClient
}

// NewStatusUseCase creates a status use-case.
func NewStatusUseCase(client StatusClient) *StatusUseCase {
	if client == nil {
		panic("NewStatusUseCase: client dependency cannot be nil")
	}
	return &StatusUseCase{client: client}
}

// Execute writes the summary, as JSON when asJSON is set.
func (u *StatusUseCase) Execute(ctx context.Context, asJSON bool, w io.Writer) error {
	write := format.FormatSummary
	if asJSON {
		write = format.FormatJSON
	}

	sess, err := u.client.Start(ctx)
	if errors.Is(err, domain.ErrSessionMissing) {
		return write(w, format.NewStatusData(false, "", 0, 0, nil))
	}
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	if err := u.client.LoadNotifications(ctx); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	shift, open, err := u.client.OpenShift(ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	var openShift *domain.Shift
	if open {
		openShift = &shift
	}
	return write(w, format.NewStatusData(true, sess.UserName, sess.ShopID, u.client.Counter().Get(), openShift))
}
