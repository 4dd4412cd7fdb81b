// Package datetime converts instants to the localized display strings shown
// on order and notification rows, and parses those strings back into
// comparable instants for sorting.
package datetime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Epoch is returned by Parse when a display string cannot be understood.
var Epoch = time.Unix(0, 0).UTC()

// DefaultLocation is the shop's wall-clock zone (UTC+7, Indochina Time).
var DefaultLocation = time.FixedZone("ICT", 7*60*60)

const monthWord = "tháng"

var (
	clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	// "3 tháng 11, 2024" or "3/11/2024"
	longDatePattern  = regexp.MustCompile(`(\d{1,2})\s+` + monthWord + `\s+(\d{1,2}),?\s+(\d{4})`)
	shortDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
)

// Codec formats and parses display strings in a fixed location.
type Codec struct {
	loc *time.Location
}

// New creates a codec for loc. A nil location falls back to DefaultLocation.
func New(loc *time.Location) Codec {
	if loc == nil {
		loc = DefaultLocation
	}
	return Codec{loc: loc}
}

// NewForZone resolves an IANA zone name. An empty or unknown name yields the
// default codec together with the lookup error, if any.
func NewForZone(name string) (Codec, error) {
	if strings.TrimSpace(name) == "" {
		return New(nil), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return New(nil), fmt.Errorf("datetime: load location %q: %w", name, err)
	}
	return New(loc), nil
}

// Location returns the codec's location.
func (c Codec) Location() *time.Location {
	if c.loc == nil {
		return DefaultLocation
	}
	return c.loc
}

// Format returns the HH:MM clock part and the long-form date part.
func (c Codec) Format(t time.Time) (clock string, date string) {
	local := t.In(c.Location())
	clock = fmt.Sprintf("%02d:%02d", local.Hour(), local.Minute())
	date = fmt.Sprintf("%d %s %d, %d", local.Day(), monthWord, int(local.Month()), local.Year())
	return clock, date
}

// Display joins both parts as "HH:MM, D tháng M, YYYY".
func (c Codec) Display(t time.Time) string {
	clock, date := c.Format(t)
	return clock + ", " + date
}

// FromISO converts a server RFC3339 timestamp into a display string.
// Unparseable input yields an empty string.
func (c Codec) FromISO(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano || layout == time.RFC3339 {
			t, err = time.Parse(layout, s)
		} else {
			// Offsetless server timestamps are UTC.
			t, err = time.ParseInLocation(layout, s, time.UTC)
		}
		if err == nil {
			return c.Display(t)
		}
	}
	return ""
}

// Parse reads a display string back into an instant. Seconds are lost.
// Any missing or out-of-range component yields Epoch.
func (c Codec) Parse(s string) time.Time {
	cm := clockPattern.FindStringSubmatch(s)
	if cm == nil {
		return Epoch
	}
	dm := longDatePattern.FindStringSubmatch(s)
	if dm == nil {
		dm = shortDatePattern.FindStringSubmatch(s)
	}
	if dm == nil {
		return Epoch
	}

	hour, _ := strconv.Atoi(cm[1])
	minute, _ := strconv.Atoi(cm[2])
	day, _ := strconv.Atoi(dm[1])
	month, _ := strconv.Atoi(dm[2])
	year, _ := strconv.Atoi(dm[3])

	if hour > 23 || minute > 59 || month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return Epoch
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, c.Location())
}

// IsEpoch reports whether t is the parse sentinel.
func IsEpoch(t time.Time) bool {
	return t.Equal(Epoch)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var defaultCodec = New(nil)

// Format uses the default codec.
func Format(t time.Time) (string, string) { return defaultCodec.Format(t) }

// Display uses the default codec.
func Display(t time.Time) string { return defaultCodec.Display(t) }

// Parse uses the default codec.
func Parse(s string) time.Time { return defaultCodec.Parse(s) }

// FromISO uses the default codec.
func FromISO(s string) string { return defaultCodec.FromISO(s) }
