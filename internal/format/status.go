package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

// StatusData is what `asa status` reports.
type StatusData struct {
	SignedIn bool    `json:"signedIn"`
	UserName string  `json:"userName,omitempty"`
	ShopID   int64   `json:"shopId,omitempty"`
	Unread   int     `json:"unread"`
	Shift    *string `json:"openShift"`
}

// NewStatusData builds the report. open is nil when no shift is open.
func NewStatusData(signedIn bool, userName string, shopID int64, unread int, open *domain.Shift) StatusData {
	d := StatusData{SignedIn: signedIn, UserName: userName, ShopID: shopID, Unread: unread}
	if open != nil {
		label := fmt.Sprintf("#%d since %s", open.ID, open.StartDate)
		d.Shift = &label
	}
	return d
}

// FormatSummary writes the report for people.
func FormatSummary(w io.Writer, d StatusData) error {
	if !d.SignedIn {
		_, err := fmt.Fprintln(w, "Not signed in")
		return err
	}
	name := d.UserName
	if name == "" {
		name = "unknown user"
	}
	if _, err := fmt.Fprintf(w, "Signed in as %s (shop %d)\n", name, d.ShopID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Unread notifications: %d\n", d.Unread); err != nil {
		return err
	}
	shift := "none"
	if d.Shift != nil {
		shift = *d.Shift
	}
	_, err := fmt.Fprintf(w, "Open shift: %s\n", shift)
	return err
}

// FormatJSON writes the report as JSON.
func FormatJSON(w io.Writer, d StatusData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
