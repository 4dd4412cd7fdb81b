// Package format provides output formatting functionality for CLI commands.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

// Formatter writes listings.
type Formatter interface {
	FormatOrders(orders []domain.Order, w io.Writer) error
	FormatOrderLines(lines []domain.OrderLine, w io.Writer) error
	FormatNotifications(notifications []domain.Notification, w io.Writer) error
	FormatShifts(shifts []domain.Shift, w io.Writer) error
	FormatProducts(products []domain.Product, w io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple writes one line per item without headers.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable writes aligned columns under a header.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON writes an indented JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// FormatterTypes lists the accepted --format values.
var FormatterTypes = []FormatterType{FormatterTypeSimple, FormatterTypeTable, FormatterTypeJSON}

// ParseFormatterType parses a --format value. Empty means table.
func ParseFormatterType(s string) (FormatterType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatterTypeTable, nil
	}
	for _, ft := range FormatterTypes {
		if FormatterType(s) == ft {
			return ft, nil
		}
	}
	return "", fmt.Errorf("unknown format %q: expected simple, table or json", s)
}

// NewFormatter creates a new formatter of the specified type. Unknown types
// get the table formatter.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeSimple:
		return NewSimpleFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewTableFormatter()
	}
}
