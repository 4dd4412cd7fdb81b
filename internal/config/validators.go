package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
)

// Checker normalizes a configuration value. ok is false when the value is
// unusable.
type Checker func(value string) (normalized string, ok bool)

// checkers maps keys to their checker. Keys without one are taken as is.
var checkers = map[string]Checker{
	"page_size":               positiveInt,
	"search_debounce_ms":      positiveInt,
	"request_timeout_seconds": positiveInt,
	"units_fanout_limit":      positiveInt,
	"logging_max_files":       positiveInt,
	"api_base_url":            httpURL,
	"timezone":                zone,
	"rollback_policy":         oneOf("keep", "revert"),
	"logging_level":           oneOf("debug", "info", "warn", "error"),
	"debug":                   boolean,
	"quiet":                   boolean,
	"logging_enabled":         boolean,
}

// check runs key's checker over value, falling back to def with a warning.
// Empty values take the default silently.
func check(key, value, def string) string {
	c := checkers[key]
	if c == nil {
		return value
	}
	if value == "" {
		return def
	}
	normalized, ok := c(value)
	if !ok {
		colors.Warning(fmt.Sprintf("invalid %s value %q, using default: %s", key, value, def))
		return def
	}
	return normalized
}

func positiveInt(v string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	return strconv.Itoa(n), err == nil && n > 0
}

func boolean(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return "true", true
	case "0", "false", "no", "off":
		return "false", true
	}
	return v, false
}

// httpURL accepts absolute http(s) URLs and drops a trailing slash.
func httpURL(v string) (string, bool) {
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return v, false
	}
	return strings.TrimRight(v, "/"), true
}

// zone accepts IANA zone names.
func zone(v string) (string, bool) {
	_, err := time.LoadLocation(v)
	return v, err == nil
}

func oneOf(allowed ...string) Checker {
	return func(v string) (string, bool) {
		v = strings.ToLower(strings.TrimSpace(v))
		return v, slices.Contains(allowed, v)
	}
}
