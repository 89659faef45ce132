package adscrape_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/adscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastAttributeValue(t *testing.T) {
	t.Parallel()

	t.Run("booleans ignore case and surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"true", "TRUE", "True", "  true\n", "\ttRuE "} {
			v := adscrape.CastAttributeValue(s)
			b, ok := v.Bool()
			require.True(t, ok, "input %q", s)
			assert.True(t, b, "input %q", s)
		}
		for _, s := range []string{"false", "FALSE", " False "} {
			v := adscrape.CastAttributeValue(s)
			b, ok := v.Bool()
			require.True(t, ok, "input %q", s)
			assert.False(t, b, "input %q", s)
		}
	})

	t.Run("numeric literals become numbers", func(t *testing.T) {
		t.Parallel()

		cases := map[string]float64{
			"42":    42,
			"-3.5":  -3.5,
			"0":     0,
			"+7":    7,
			" 12 ":  12,
			".5":    0.5,
			"1e3":   1000,
			"2599":  2599,
			"10.":   10,
			"-0.25": -0.25,
		}
		for s, want := range cases {
			v := adscrape.CastAttributeValue(s)
			n, ok := v.Number()
			require.True(t, ok, "input %q kind %s", s, v.Kind())
			assert.InDelta(t, want, n, 1e-9, "input %q", s)
		}
	})

	t.Run("numeric check runs before date check", func(t *testing.T) {
		t.Parallel()

		v := adscrape.CastAttributeValue("20230501")
		assert.Equal(t, adscrape.KindNumber, v.Kind())
	})

	t.Run("dates become dates", func(t *testing.T) {
		t.Parallel()

		v := adscrape.CastAttributeValue("2023-05-01T00:00:00Z")
		d, ok := v.Date()
		require.True(t, ok)
		assert.True(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC).Equal(d))
	})

	t.Run("dates without zone are UTC", func(t *testing.T) {
		t.Parallel()

		v := adscrape.CastAttributeValue(" 2021-11-30 ")
		d, ok := v.Date()
		require.True(t, ok)
		assert.True(t, time.Date(2021, 11, 30, 0, 0, 0, 0, time.UTC).Equal(d))
	})

	t.Run("other strings are returned unchanged", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"red", "N/A", "", "truthy", "Toronto", "12:30", "1/2", "12/31"} {
			v := adscrape.CastAttributeValue(s)
			assert.Equal(t, adscrape.KindString, v.Kind(), "input %q", s)
			assert.Equal(t, s, v.String(), "input %q", s)
		}
	})

	t.Run("fallback keeps surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		v := adscrape.CastAttributeValue("  red car ")
		assert.Equal(t, adscrape.StringValue("  red car "), v)
	})
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("rejects dates without a year", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"12:30", "1/2", "12/31"} {
			_, ok := adscrape.ParseDate(s)
			assert.False(t, ok, "input %q", s)
		}
	})

	t.Run("parses RFC 3339 timestamps", func(t *testing.T) {
		t.Parallel()

		d, ok := adscrape.ParseDate("2024-02-10T15:04:05.000Z")
		require.True(t, ok)
		assert.True(t, time.Date(2024, 2, 10, 15, 4, 5, 0, time.UTC).Equal(d))
	})

	t.Run("rejects empty and non-date input", func(t *testing.T) {
		t.Parallel()

		_, ok := adscrape.ParseDate("")
		assert.False(t, ok)
		_, ok = adscrape.ParseDate("hello world")
		assert.False(t, ok)
	})
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	attrs := map[string]adscrape.Value{
		"b": adscrape.BoolValue(true),
		"n": adscrape.NumberValue(25.99),
		"d": adscrape.DateValue(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)),
		"s": adscrape.StringValue("red"),
	}

	data, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":true,"n":25.99,"d":"2023-05-01T00:00:00Z","s":"red"}`, string(data))
}

func TestInDateRange(t *testing.T) {
	t.Parallel()

	assert.True(t, adscrape.InDateRange(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, adscrape.InDateRange(time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, adscrape.InDateRange(time.Time{}.AddDate(-1, 0, 0)))
	assert.False(t, adscrape.InDateRange(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValue_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes what MarshalJSON writes", func(t *testing.T) {
		t.Parallel()

		var attrs map[string]adscrape.Value
		err := json.Unmarshal([]byte(`{"b":true,"n":25.99,"d":"2023-05-01T00:00:00Z","s":"red","z":null}`), &attrs)
		require.NoError(t, err)

		b, ok := attrs["b"].Bool()
		require.True(t, ok)
		assert.True(t, b)

		n, ok := attrs["n"].Number()
		require.True(t, ok)
		assert.InDelta(t, 25.99, n, 1e-9)

		d, ok := attrs["d"].Date()
		require.True(t, ok)
		assert.True(t, d.Equal(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)))

		assert.Equal(t, adscrape.KindString, attrs["s"].Kind())
		assert.Equal(t, "red", attrs["s"].String())
		assert.Equal(t, adscrape.KindString, attrs["z"].Kind())
		assert.Empty(t, attrs["z"].String())
	})

	t.Run("rejects objects and arrays", func(t *testing.T) {
		t.Parallel()

		var v adscrape.Value
		err := json.Unmarshal([]byte(`{"a":1}`), &v)
		require.Error(t, err)
		assert.Equal(t, adscrape.EINVALID, adscrape.ErrorCode(err))

		err = json.Unmarshal([]byte(`[1]`), &v)
		require.Error(t, err)
	})
}

func TestParseValueKind(t *testing.T) {
	t.Parallel()

	for _, k := range []adscrape.ValueKind{adscrape.KindString, adscrape.KindBool, adscrape.KindNumber, adscrape.KindDate} {
		got, err := adscrape.ParseValueKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := adscrape.ParseValueKind("blob")
	require.Error(t, err)
	assert.Equal(t, adscrape.EINVALID, adscrape.ErrorCode(err))
}
