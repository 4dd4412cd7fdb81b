// Package normalize extracts homogeneous item lists and page metadata from
// server payloads whose envelope shape varies by endpoint.
package normalize

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Envelope names one probed payload shape.
type Envelope string

const (
	EnvelopeArray     Envelope = "array"      // [...]
	EnvelopeItems     Envelope = "items"      // {"items":[...]}
	EnvelopeDataItems Envelope = "data.items" // {"data":{"items":[...]}}
	EnvelopeData      Envelope = "data"       // {"data":[...]}
	EnvelopeNone      Envelope = ""
)

// Precedence is the fixed probe order. The first shape holding an array wins.
var Precedence = []Envelope{EnvelopeArray, EnvelopeItems, EnvelopeDataItems, EnvelopeData}

// Valid reports whether raw is well-formed JSON.
func Valid(raw []byte) bool {
	return gjson.ValidBytes(raw)
}

// Detect returns the first envelope in Precedence that matches raw.
func Detect(raw []byte) Envelope {
	if !gjson.ValidBytes(raw) {
		return EnvelopeNone
	}
	root := gjson.ParseBytes(raw)
	for _, env := range Precedence {
		if _, ok := probe(root, env); ok {
			return env
		}
	}
	return EnvelopeNone
}

// Items returns the records of the first matching envelope, or nil.
func Items(raw []byte) []gjson.Result {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	root := gjson.ParseBytes(raw)
	for _, env := range Precedence {
		if arr, ok := probe(root, env); ok {
			return arr.Array()
		}
	}
	return nil
}

func probe(root gjson.Result, env Envelope) (gjson.Result, bool) {
	var r gjson.Result
	switch env {
	case EnvelopeArray:
		r = root
	case EnvelopeItems:
		if !root.IsObject() {
			return r, false
		}
		r = root.Get("items")
	case EnvelopeDataItems:
		if !root.IsObject() {
			return r, false
		}
		r = root.Get("data.items")
	case EnvelopeData:
		if !root.IsObject() {
			return r, false
		}
		r = root.Get("data")
	default:
		return r, false
	}
	return r, r.IsArray()
}

// Decode maps every record through decode. Records for which decode reports
// false (no usable identifier) are dropped; order is preserved.
func Decode[T any](raw []byte, decode func(gjson.Result) (T, bool)) []T {
	records := Items(raw)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if v, ok := decode(rec); ok {
			out = append(out, v)
		}
	}
	return out
}

// Meta is the pagination metadata of one fetched page.
type Meta struct {
	PageNumber int
	TotalPages int
}

// HasMore reports whether pages remain after this one.
func (m Meta) HasMore() bool {
	return m.PageNumber < m.TotalPages
}

var (
	pageKeys  = []string{"pageNumber", "page", "currentPage", "pageIndex"}
	totalKeys = []string{"totalPages", "totalPage", "pageCount"}
)

// PageInfo reads page metadata from the top level or from "data". A missing
// page number falls back to requested; a missing total marks the page as the
// last one.
func PageInfo(raw []byte, requested int) Meta {
	m := Meta{PageNumber: requested}
	if !gjson.ValidBytes(raw) {
		m.TotalPages = m.PageNumber
		return m
	}
	root := gjson.ParseBytes(raw)
	scopes := []gjson.Result{root}
	if data := root.Get("data"); data.IsObject() {
		scopes = append(scopes, data)
	}

	pageFound, totalFound := false, false
	for _, scope := range scopes {
		if !scope.IsObject() {
			continue
		}
		if !pageFound {
			if n, ok := Int(scope, pageKeys...); ok && n > 0 {
				m.PageNumber = n
				pageFound = true
			}
		}
		if !totalFound {
			if n, ok := Int(scope, totalKeys...); ok && n >= 0 {
				m.TotalPages = n
				totalFound = true
			}
		}
	}
	if !totalFound {
		m.TotalPages = m.PageNumber
	}
	return m
}

// ID reads the first positive integer identifier found under keys.
// Numeric strings are accepted.
func ID(r gjson.Result, keys ...string) (int64, bool) {
	for _, k := range keys {
		v := r.Get(k)
		switch v.Type {
		case gjson.Number:
			if n := v.Int(); n > 0 && float64(n) == v.Num {
				return n, true
			}
		case gjson.String:
			if n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64); err == nil && n > 0 {
				return n, true
			}
		}
	}
	return 0, false
}

// Int reads the first integer found under keys.
func Int(r gjson.Result, keys ...string) (int, bool) {
	for _, k := range keys {
		v := r.Get(k)
		switch v.Type {
		case gjson.Number:
			return int(v.Int()), true
		case gjson.String:
			if n, err := strconv.Atoi(strings.TrimSpace(v.Str)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// String returns the first non-null value under keys as text, or "".
func String(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		v := r.Get(k)
		switch v.Type {
		case gjson.String:
			return v.Str
		case gjson.Number, gjson.True, gjson.False:
			return v.String()
		}
	}
	return ""
}

// Float returns the first number under keys, or 0.
func Float(r gjson.Result, keys ...string) float64 {
	for _, k := range keys {
		v := r.Get(k)
		switch v.Type {
		case gjson.Number:
			return v.Num
		case gjson.String:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// Bool returns the first boolean-like value under keys, or false.
func Bool(r gjson.Result, keys ...string) bool {
	for _, k := range keys {
		v := r.Get(k)
		switch v.Type {
		case gjson.True:
			return true
		case gjson.False:
			return false
		case gjson.Number:
			return v.Num != 0
		case gjson.String:
			if b, err := strconv.ParseBool(strings.TrimSpace(v.Str)); err == nil {
				return b
			}
		}
	}
	return false
}

// OptionalString returns nil when every key is absent or null.
func OptionalString(r gjson.Result, keys ...string) *string {
	for _, k := range keys {
		v := r.Get(k)
		if v.Exists() && v.Type != gjson.Null {
			s := v.String()
			return &s
		}
	}
	return nil
}
