package domain

// Shift is a cashier work session. A shift is open until it has a closed date.
type Shift struct {
	ID          int64
	UserID      int64
	UserName    string
	StartDate   string  // display string
	ClosedDate  *string // nil while open
	OpeningCash float64
	Revenue     float64
}

// ItemID implements Item.
func (s Shift) ItemID() int64 { return s.ID }

// IsOpen reports whether the shift has not been closed.
func (s Shift) IsOpen() bool {
	return s.ClosedDate == nil
}

// Close returns a copy closed at the given display time.
func (s Shift) Close(at string) Shift {
	s.ClosedDate = &at
	return s
}

// Reopen returns a copy with the closed date removed.
func (s Shift) Reopen() Shift {
	s.ClosedDate = nil
	return s
}

// OpenShift returns the first open shift.
func OpenShift(shifts []Shift) (Shift, bool) {
	for _, s := range shifts {
		if s.IsOpen() {
			return s, true
		}
	}
	return Shift{}, false
}
