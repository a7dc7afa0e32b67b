// Package coerce converts loosely typed JSON fields into typed column values.
//
// Every conversion returns a Result that records whether the value was taken
// from the input or replaced by a default, so callers can audit substitutions
// without changing what gets written.
package coerce

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format dates are rendered in.
const DateLayout = "2006-01-02"

// dateInputLayout also accepts months and days without a leading zero.
const dateInputLayout = "2006-1-2"

// Status describes how a field value was obtained.
type Status int

const (
	// OK means the input value was used.
	OK Status = iota
	// Defaulted means the input was absent or unusable and a default was substituted.
	Defaulted
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Defaulted:
		return "defaulted"
	default:
		return "unknown"
	}
}

// Result is the outcome of coercing a single field.
type Result[T any] struct {
	Value  T
	Status Status
	Reason string
}

// Failed reports whether the input value could not be used as given.
func (r Result[T]) Failed() bool {
	return r.Status == Defaulted
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: OK}
}

func defaulted[T any](v T, format string, args ...any) Result[T] {
	return Result[T]{Value: v, Status: Defaulted, Reason: fmt.Sprintf(format, args...)}
}

// Document is a decoded JSON object with its members left raw.
type Document map[string]json.RawMessage

// Parse decodes body as a JSON object. Anything else, including valid JSON
// that is not an object, is an error.
func Parse(body []byte) (Document, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("document is not a JSON object")
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// raw returns the member for key, treating JSON null as absent.
func (d Document) raw(key string) (json.RawMessage, bool) {
	v, exists := d[key]
	if !exists {
		return nil, false
	}
	if string(bytes.TrimSpace(v)) == "null" {
		return nil, false
	}
	return v, true
}

// String returns the member as a string. JSON strings are unquoted, numbers
// and booleans keep their literal text. Absent and null members yield nil.
func (d Document) String(key string) *string {
	v, exists := d.raw(key)
	if !exists {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return &s
	}
	trimmed := string(bytes.TrimSpace(v))
	if trimmed == "true" || trimmed == "false" {
		return &trimmed
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return &trimmed
	}
	return nil
}

// StringOr returns the member as a string, or def when it is absent or null.
// An explicit empty string is returned as is.
func (d Document) StringOr(key, def string) string {
	if s := d.String(key); s != nil {
		return *s
	}
	return def
}

// Decimal coerces the member to a decimal, defaulting to def.
func (d Document) Decimal(key string, def decimal.Decimal) Result[decimal.Decimal] {
	s := d.String(key)
	if s == nil {
		return defaulted(def, "%s is missing", key)
	}
	value, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return defaulted(def, "%s %q is not a decimal: %v", key, *s, err)
	}
	return ok(value)
}

// Int64 coerces the member to an integer, defaulting to def. JSON integers and
// integer strings are accepted, fractional values are not.
func (d Document) Int64(key string, def int64) Result[int64] {
	s := d.String(key)
	if s == nil {
		return defaulted(def, "%s is missing", key)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		return defaulted(def, "%s %q is not an integer", key, *s)
	}
	return ok(value)
}

// Int coerces the member to a 32-bit integer, defaulting to def.
func (d Document) Int(key string, def int) Result[int] {
	s := d.String(key)
	if s == nil {
		return defaulted(def, "%s is missing", key)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 32)
	if err != nil {
		return defaulted(def, "%s %q is not an integer", key, *s)
	}
	return ok(int(value))
}

// Date coerces the member to a calendar date. Unparsable or absent dates
// become nil.
func (d Document) Date(key string) Result[*time.Time] {
	s := d.String(key)
	if s == nil {
		return defaulted[*time.Time](nil, "%s is missing", key)
	}
	value, err := time.Parse(dateInputLayout, strings.TrimSpace(*s))
	if err != nil {
		return defaulted[*time.Time](nil, "%s %q is not a date: %v", key, *s, err)
	}
	return ok(&value)
}
