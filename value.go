package adscrape

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

// ValueKind constants. The zero Value is an empty string.
const (
	KindString ValueKind = iota
	KindBool
	KindNumber
	KindDate
)

// String returns the lowercase name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "string"
	}
}

// ParseValueKind is the inverse of ValueKind.String.
func ParseValueKind(s string) (ValueKind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "bool":
		return KindBool, nil
	case "number":
		return KindNumber, nil
	case "date":
		return KindDate, nil
	}
	return 0, Errorf(EINVALID, "unknown value kind %q", s)
}

// Value is an ad attribute value: exactly one of boolean, number, date or string.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	t    time.Time
	s    string
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value { return Value{kind: KindNumber, n: n} }

// DateValue returns a date Value.
func DateValue(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// Bool returns the boolean held by v. The bool result is false if v is not a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Number returns the number held by v. The bool result is false if v is not a number.
func (v Value) Number() (float64, bool) { return v.n, v.kind == KindNumber }

// Date returns the time held by v. The bool result is false if v is not a date.
func (v Value) Date() (time.Time, bool) { return v.t, v.kind == KindDate }

// String returns the string held by v, or a textual rendering of the other kinds.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindDate:
		return v.t.Format(time.RFC3339Nano)
	default:
		return v.s
	}
}

// Interface returns the held value as bool, float64, time.Time or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindDate:
		return v.t
	default:
		return v.s
	}
}

// MarshalJSON encodes v as a plain JSON scalar. Dates become RFC 3339 strings.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a plain JSON scalar. Strings in RFC 3339 form
// decode as dates, since that is how MarshalJSON writes them. null is the
// empty string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = StringValue("")
	case bool:
		*v = BoolValue(x)
	case float64:
		*v = NumberValue(x)
	case string:
		if t, err := time.Parse(time.RFC3339Nano, x); err == nil {
			*v = DateValue(t)
		} else {
			*v = StringValue(x)
		}
	default:
		return Errorf(EINVALID, "attribute value must be a scalar, got %s", data)
	}
	return nil
}

// numericPattern matches signed integer and decimal literals with an optional exponent.
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// CastAttributeValue converts a raw attribute string into a typed Value.
// Classification runs on the trimmed input: "true"/"false" (any case) become
// booleans, numeric literals become numbers, parseable dates become dates.
// Anything else is returned as the original, untrimmed string.
func CastAttributeValue(s string) Value {
	trimmed := strings.TrimSpace(s)

	switch strings.ToLower(trimmed) {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}

	if numericPattern.MatchString(trimmed) {
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return NumberValue(n)
		}
	}

	if t, ok := ParseDate(trimmed); ok {
		return DateValue(t)
	}

	return StringValue(s)
}

// ParseDate parses s as a calendar date or timestamp. Inputs without a zone
// are interpreted as UTC. The bool result is false if s is not a date,
// including inputs without a year such as "12:30" or "1/2".
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// dateparse can panic on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			t, ok = time.Time{}, false
		}
	}()

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || !InDateRange(t) {
		return time.Time{}, false
	}
	return t, true
}

// InDateRange reports whether t falls in years 1 through 9999, the range
// that RFC 3339 and JSON encoding can represent.
func InDateRange(t time.Time) bool {
	y := t.Year()
	return y >= 1 && y <= 9999
}
