package goquery

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fwojciec/adscrape"
)

// payload mirrors the parts of the page's window.__data object that are read.
// Only config, config.adInfo and config.VIP gate validity; every other field
// is optional and tolerates unexpected JSON types.
type payload struct {
	Config *configPayload `json:"config"`
}

type configPayload struct {
	AdInfo *adInfoPayload `json:"adInfo"`
	VIP    *vipPayload    `json:"VIP"`
}

type adInfoPayload struct {
	Title           optString `json:"title"`
	SharingImageURL optString `json:"sharingImageUrl"`
}

type vipPayload struct {
	Description  optString          `json:"description"`
	SortingDate  optScalar          `json:"sortingDate"`
	Media        optList[mediaPayload]     `json:"media"`
	AdAttributes optList[attributePayload] `json:"adAttributes"`
	Price        optObject[pricePayload]   `json:"price"`
	AdLocation   optScalar          `json:"adLocation"`
	AdType       optScalar          `json:"adType"`
	VisitCounter optScalar          `json:"visitCounter"`
}

type mediaPayload struct {
	Type optString `json:"type"`
	Href optString `json:"href"`
}

type attributePayload struct {
	MachineKey   optString `json:"machineKey"`
	MachineValue optString `json:"machineValue"`
}

type pricePayload struct {
	Amount optNumber `json:"amount"`
}

// optString holds a JSON string. Any other JSON type leaves it invalid.
type optString struct {
	Value string
	Valid bool
}

func (o *optString) UnmarshalJSON(data []byte) error {
	*o = optString{}
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return nil
	}
	o.Valid = true
	return nil
}

// optNumber holds a JSON number. Any other JSON type leaves it invalid.
type optNumber struct {
	Value float64
	Valid bool
}

func (o *optNumber) UnmarshalJSON(data []byte) error {
	*o = optNumber{}
	if len(data) == 0 || !(data[0] == '-' || (data[0] >= '0' && data[0] <= '9')) {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return nil
	}
	o.Valid = true
	return nil
}

// optObject holds a JSON object decoded into T. Any other JSON type leaves
// it invalid.
type optObject[T any] struct {
	Value T
	Valid bool
}

func (o *optObject[T]) UnmarshalJSON(data []byte) error {
	*o = optObject[T]{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return nil
	}
	o.Valid = true
	return nil
}

// optList holds the object elements of a JSON array decoded into T.
// Elements that are not objects are dropped, and a non-array leaves the
// list empty.
type optList[T any] []T

func (l *optList[T]) UnmarshalJSON(data []byte) error {
	*l = nil
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}
	for _, elem := range elems {
		var o optObject[T]
		if err := o.UnmarshalJSON(elem); err != nil || !o.Valid {
			continue
		}
		*l = append(*l, o.Value)
	}
	return nil
}

// optScalar holds any non-null JSON value as an attribute Value. Objects and
// arrays are kept as their compact JSON text.
type optScalar struct {
	Value adscrape.Value
	Valid bool
	// truthy follows the site's client-side presence checks: false, 0 and ""
	// count as absent.
	truthy bool
}

func (o *optScalar) UnmarshalJSON(data []byte) error {
	*o = optScalar{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case bool:
		o.Value, o.truthy = adscrape.BoolValue(v), v
	case float64:
		o.Value, o.truthy = adscrape.NumberValue(v), v != 0
	case string:
		o.Value, o.truthy = adscrape.StringValue(v), v != ""
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return nil
		}
		o.Value, o.truthy = adscrape.StringValue(buf.String()), true
	}
	o.Valid = true
	return nil
}

// Present reports whether the value is set and truthy.
func (o optScalar) Present() bool {
	return o.Valid && o.truthy
}

// Time interprets the value as a date string or a millisecond Unix timestamp.
// Returns the zero time if neither applies.
func (o optScalar) Time() time.Time {
	if !o.Valid {
		return time.Time{}
	}
	if n, ok := o.Value.Number(); ok {
		// Far outside 1..9999 anyway; keeps the int64 conversion in range.
		if n > 1e15 || n < -1e15 {
			return time.Time{}
		}
		t := time.UnixMilli(int64(n)).UTC()
		if !adscrape.InDateRange(t) {
			return time.Time{}
		}
		return t
	}
	if o.Value.Kind() != adscrape.KindString {
		return time.Time{}
	}
	t, ok := adscrape.ParseDate(o.Value.String())
	if !ok {
		return time.Time{}
	}
	return t
}
