package recwire

import (
	"time"

	"github.com/recwire/recwire/codec"
)

// Date is the calendar-date leaf type understood by both engines. It is an
// alias for codec.Date so that schema declarations only need this package.
type Date = codec.Date

// NewDate returns the date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return codec.NewDate(year, month, day)
}

// DateOf returns the date on which t falls, in t's location.
func DateOf(t time.Time) Date { return codec.DateOf(t) }
