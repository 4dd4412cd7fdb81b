package app

import (
	"context"
	"fmt"
	"io"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/format"
)

// ShiftsClient defines dependencies for reading shifts.
type ShiftsClient interface {
	LoadShifts(ctx context.Context) ([]domain.Shift, error)
}

// ListShiftsUseCase prints the shop's shifts.
type ListShiftsUseCase struct {
	client ShiftsClient
}

// NewListShiftsUseCase creates a shifts listing use-case.
func NewListShiftsUseCase(client ShiftsClient) *ListShiftsUseCase {
	if client == nil {
		panic("NewListShiftsUseCase: client dependency cannot be nil")
	}
	return &ListShiftsUseCase{client: client}
}

// Execute writes every shift, or only open ones.
func (u *ListShiftsUseCase) Execute(ctx context.Context, openOnly bool, ft format.FormatterType, w io.Writer) error {
	shifts, err := u.client.LoadShifts(ctx)
	if err != nil {
		return fmt.Errorf("shifts: %w", err)
	}
	if openOnly {
		open := shifts[:0:0]
		for _, s := range shifts {
			if s.IsOpen() {
				open = append(open, s)
			}
		}
		shifts = open
	}
	if len(shifts) == 0 && ft != format.FormatterTypeJSON {
		colors.Info("No shifts")
		return nil
	}
	return format.NewFormatter(ft).FormatShifts(shifts, w)
}

// CloseShiftClient defines dependencies for closing a shift.
type CloseShiftClient interface {
	ShiftsClient
	CloseShift(id int64) bool
	Wait()
}

// CloseShiftUseCase closes a shift.
type CloseShiftUseCase struct {
	client CloseShiftClient
}

// NewCloseShiftUseCase creates a close-shift use-case.
func NewCloseShiftUseCase(client CloseShiftClient) *CloseShiftUseCase {
	if client == nil {
		panic("NewCloseShiftUseCase: client dependency cannot be nil")
	}
	return &CloseShiftUseCase{client: client}
}

// Execute closes shift id, or the open shift when id is zero.
func (u *CloseShiftUseCase) Execute(ctx context.Context, id int64) error {
	shifts, err := u.client.LoadShifts(ctx)
	if err != nil {
		return fmt.Errorf("close-shift: %w", err)
	}

	var (
		target domain.Shift
		found  bool
	)
	if id == 0 {
		target, found = domain.OpenShift(shifts)
		if !found {
			return fmt.Errorf("close-shift: no open shift: %w", domain.ErrNotFound)
		}
	} else {
		target, found = domain.FindByID(shifts, id)
		if !found {
			return fmt.Errorf("close-shift: shift %d: %w", id, domain.ErrNotFound)
		}
	}
	if !target.IsOpen() {
		colors.Info(fmt.Sprintf("Shift %d is already closed", target.ID))
		return nil
	}

	u.client.CloseShift(target.ID)
	u.client.Wait()
	colors.Success(fmt.Sprintf("Shift %d closed", target.ID))
	return nil
}
