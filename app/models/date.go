package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date is a post date as written in the document. The raw value is kept so
// documents round-trip; Time reports whether it could be interpreted.
type Date struct {
	raw   string
	epoch bool
	t     time.Time
	ok    bool
}

// maxEpochMillis bounds the instants an epoch date may name, in either
// direction from 1970.
const maxEpochMillis = 8.64e15

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseDate interprets a date string. Unparseable input yields a Date whose
// Time reports false.
func ParseDate(s string) Date {
	d := Date{raw: s}
	v := strings.TrimSpace(s)
	if v == "" {
		return d
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			d.t, d.ok = t, true
			return d
		}
	}
	return d
}

// DateFromEpochMillis builds a Date from milliseconds since the Unix epoch.
// Values beyond ±8.64e15 are kept but never parse.
func DateFromEpochMillis(ms int64) Date {
	d := Date{raw: strconv.FormatInt(ms, 10), epoch: true}
	if ms > maxEpochMillis || ms < -maxEpochMillis {
		return d
	}
	d.t, d.ok = time.UnixMilli(ms).UTC(), true
	return d
}

// DateFromTime wraps t, formatted as RFC 3339.
func DateFromTime(t time.Time) Date {
	return Date{raw: t.Format(time.RFC3339), t: t, ok: true}
}

// Time returns the parsed instant and whether the date was usable.
func (d Date) Time() (time.Time, bool) {
	return d.t, d.ok
}

// IsZero reports whether the date was absent.
func (d Date) IsZero() bool {
	return d.raw == ""
}

// String returns the date as written.
func (d Date) String() string {
	return d.raw
}

// UnmarshalJSON accepts a string, an epoch-milliseconds number or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*d = Date{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = ParseDate(s)
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			// Objects, arrays and booleans are kept but never parse.
			*d = Date{raw: string(data)}
			return nil
		}
		if math.IsNaN(f) || math.Abs(f) > maxEpochMillis {
			*d = Date{raw: string(data), epoch: true}
			return nil
		}
		*d = DateFromEpochMillis(int64(f))
	}
	return nil
}

// MarshalJSON writes the date back in its original form.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.raw == "" {
		return []byte("null"), nil
	}
	if d.epoch {
		return []byte(d.raw), nil
	}
	return json.Marshal(d.raw)
}
