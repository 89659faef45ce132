package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/adscrape"
)

// taggedValue is the stored form of an attribute. The kind is kept
// alongside the value so dates and strings stay distinguishable.
type taggedValue struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

func encodeAttributes(attrs map[string]adscrape.Value) (string, error) {
	tagged := make(map[string]taggedValue, len(attrs))
	for k, v := range attrs {
		raw, err := v.MarshalJSON()
		if err != nil {
			return "", fmt.Errorf("failed to encode attribute %q: %w", k, err)
		}
		tagged[k] = taggedValue{Kind: v.Kind().String(), Value: raw}
	}

	data, err := json.Marshal(tagged)
	if err != nil {
		return "", fmt.Errorf("failed to encode attributes: %w", err)
	}
	return string(data), nil
}

func decodeAttributes(s string) (map[string]adscrape.Value, error) {
	var tagged map[string]taggedValue
	if err := json.Unmarshal([]byte(s), &tagged); err != nil {
		return nil, fmt.Errorf("failed to decode attributes: %w", err)
	}

	attrs := make(map[string]adscrape.Value, len(tagged))
	for k, tv := range tagged {
		v, err := decodeValue(tv)
		if err != nil {
			return nil, fmt.Errorf("failed to decode attribute %q: %w", k, err)
		}
		attrs[k] = v
	}
	return attrs, nil
}

func decodeValue(tv taggedValue) (adscrape.Value, error) {
	kind, err := adscrape.ParseValueKind(tv.Kind)
	if err != nil {
		return adscrape.Value{}, err
	}

	switch kind {
	case adscrape.KindBool:
		var b bool
		err = json.Unmarshal(tv.Value, &b)
		return adscrape.BoolValue(b), err
	case adscrape.KindNumber:
		var n float64
		err = json.Unmarshal(tv.Value, &n)
		return adscrape.NumberValue(n), err
	case adscrape.KindDate:
		var t time.Time
		err = json.Unmarshal(tv.Value, &t)
		return adscrape.DateValue(t), err
	default:
		var s string
		err = json.Unmarshal(tv.Value, &s)
		return adscrape.StringValue(s), err
	}
}
