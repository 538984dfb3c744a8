package codec

import (
	"testing"
	"time"
)

func TestParseTime_Default(t *testing.T) {
	want := time.Date(2020, 6, 22, 8, 55, 5, 0, time.UTC)

	got, err := ParseTime("2020-06-22T08:55:05+00:00", "")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("unexpected time: %v", got)
	}

	// A trailing Z is normalized to an explicit offset before parsing.
	got, err = ParseTime("2020-06-22T08:55:05Z", "")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("unexpected time: %v", got)
	}
}

func TestParseTime_FractionalSeconds(t *testing.T) {
	got, err := ParseTime("2020-06-22T08:55:05.250+00:00", "")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if got.Nanosecond() != 250_000_000 {
		t.Fatalf("expected fractional seconds to survive, got %v", got)
	}
}

func TestParseTime_NonZeroOffset(t *testing.T) {
	got, err := ParseTime("2020-06-22T08:55:05+02:00", "")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if _, off := got.Zone(); off != 2*60*60 {
		t.Fatalf("expected +02:00 offset, got %v", got)
	}
}

func TestNormalizeZone(t *testing.T) {
	// A named zero-offset zone, as time.Parse produces when the host zone
	// matches the parsed offset, still collapses to the canonical location.
	in := time.Date(2020, 6, 22, 8, 55, 5, 0, time.FixedZone("UTC", 0))
	if got := NormalizeZone(in); got.Location() != time.UTC {
		t.Fatalf("expected canonical UTC location, got %v", got.Location())
	}

	zone := time.FixedZone("", 2*60*60)
	in = time.Date(2020, 6, 22, 8, 55, 5, 0, zone)
	if got := NormalizeZone(in); got.Location() != zone {
		t.Fatalf("expected non-zero offset to be kept, got %v", got.Location())
	}
}

func TestFormatTime_DefaultOmitsFraction(t *testing.T) {
	in := time.Date(2020, 6, 22, 8, 55, 5, 123_000_000, time.UTC)
	if got := FormatTime(in, ""); got != "2020-06-22T08:55:05+00:00" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestTime_CustomLayout(t *testing.T) {
	layout := "2006/01/02 15:04"
	in := time.Date(2020, 6, 22, 8, 55, 0, 0, time.UTC)
	s := FormatTime(in, layout)
	if s != "2020/06/22 08:55" {
		t.Fatalf("unexpected rendering: %q", s)
	}
	got, err := ParseTime(s, layout)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !got.Equal(in) {
		t.Fatalf("round trip mismatch: %v != %v", got, in)
	}
}

func TestDate_DefaultAndCustom(t *testing.T) {
	d := NewDate(2020, time.June, 22)
	if got := FormatDate(d, ""); got != "2020-06-22" {
		t.Fatalf("unexpected rendering: %q", got)
	}
	got, err := ParseDate("2020-06-22", "")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if got != d {
		t.Fatalf("unexpected date: %v", got)
	}

	if got := FormatDate(d, "02.01.2006"); got != "22.06.2020" {
		t.Fatalf("unexpected rendering: %q", got)
	}
	got, err = ParseDate("22.06.2020", "02.01.2006")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if got != d {
		t.Fatalf("unexpected date: %v", got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := ParseDate("not-a-date", ""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDate_Accessors(t *testing.T) {
	d := DateOf(time.Date(2020, 6, 22, 23, 59, 0, 0, time.UTC))
	if d != NewDate(2020, time.June, 22) {
		t.Fatalf("unexpected date: %v", d)
	}
	if d.String() != "2020-06-22" {
		t.Fatalf("unexpected string: %q", d.String())
	}
	if d.IsZero() {
		t.Fatalf("date should not be zero")
	}
	if (Date{}).IsZero() != true {
		t.Fatalf("zero date should report zero")
	}
	if !NewDate(2020, time.May, 30).Before(d) || d.Before(d) {
		t.Fatalf("unexpected ordering")
	}
}
