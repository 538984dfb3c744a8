// Package codec converts temporal values between their wire (string) and
// domain representations. The default profile is ISO-8601: timestamps carry
// seconds and a numeric UTC offset with fractional seconds omitted, dates are
// plain calendar dates. Callers may override either side with an explicit Go
// time layout.
package codec

import (
	"strings"
	"time"
)

const (
	// TimeLayout is the default timestamp wire format, for example
	// 2020-06-22T08:55:05+00:00.
	TimeLayout = "2006-01-02T15:04:05-07:00"
	// DateLayout is the default calendar-date wire format.
	DateLayout = "2006-01-02"
)

// FormatTime renders t using layout, or the ISO-8601 default when layout is
// empty. The default intentionally drops fractional seconds.
func FormatTime(t time.Time, layout string) string {
	if layout == "" {
		layout = TimeLayout
	}
	return t.Format(layout)
}

// ParseTime parses s using layout. With an empty layout it accepts ISO-8601,
// normalizing a trailing literal Z to an explicit +00:00 offset first;
// fractional seconds are accepted on input even though the default output
// omits them.
func ParseTime(s, layout string) (time.Time, error) {
	if layout == "" {
		layout = TimeLayout
		if strings.HasSuffix(s, "Z") {
			s = strings.TrimSuffix(s, "Z") + "+00:00"
		}
	}
	// time.Parse accepts a fractional second after the seconds field even
	// when the layout has none.
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeZone(t), nil
}

// NormalizeZone collapses any zero-offset location to the canonical time.UTC.
// Parsing a +00:00 offset can attach a fixed zone, nameless or named after
// the host's local zone, that is a distinct location from time.UTC even
// though it denotes the same instant.
func NormalizeZone(t time.Time) time.Time {
	if _, off := t.Zone(); off == 0 {
		return t.UTC()
	}
	return t
}

// FormatDate renders d using layout, or the ISO-8601 date default when layout
// is empty.
func FormatDate(d Date, layout string) string {
	if layout == "" {
		layout = DateLayout
	}
	return d.Time().Format(layout)
}

// ParseDate parses s using layout, or the ISO-8601 date default when layout
// is empty.
func ParseDate(s, layout string) (Date, error) {
	if layout == "" {
		layout = DateLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}
