// Package calendar implements date-only arithmetic for planning fields.
//
// A Date has no time of day and no zone. It is stored as UTC midnight so
// that day arithmetic never crosses a daylight-saving transition, and its
// text form is the fixed-width YYYY-MM-DD layout, which sorts lexically in
// chronological order.
package calendar

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical text form of a Date.
const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ErrMalformedDate is matched by every parse failure.
var ErrMalformedDate = errors.New("malformed date")

// MalformedDateError reports the input that failed to parse.
type MalformedDateError struct {
	Input string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date %q (expected YYYY-MM-DD)", e.Input)
}

func (e *MalformedDateError) Is(target error) bool {
	return target == ErrMalformedDate
}

// Date is a calendar date. The zero value means "unset"; every parsed or
// constructed date is set, including 0001-01-01.
type Date struct {
	t   time.Time
	set bool
}

// New builds a Date from its parts. Out-of-range parts normalize the way
// time.Date does; use Parse for untrusted input.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), set: true}
}

// Today returns the calendar date of now in now's own location.
func Today(now time.Time) Date {
	return New(now.Year(), now.Month(), now.Day())
}

// Parse reads a YYYY-MM-DD string. Anything that does not round-trip
// exactly (2024-02-30, 2024-1-5, trailing text) is rejected.
func Parse(s string) (Date, error) {
	if len(s) != len(Layout) {
		return Date{}, &MalformedDateError{Input: s}
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, &MalformedDateError{Input: s}
	}
	return Date{t: t, set: true}, nil
}

// MustParse is Parse for literals; it panics on bad input.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the YYYY-MM-DD form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

func (d Date) IsZero() bool { return !d.set }

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// Weekday of the date.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// Time returns UTC midnight of the date.
func (d Date) Time() time.Time { return d.t }

// AddDays shifts d by n calendar days. n may be negative or zero. An unset
// Date stays unset.
func AddDays(d Date, n int) Date {
	if !d.set {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n), set: true}
}

// AddDays is the method form of AddDays.
func (d Date) AddDays(n int) Date { return AddDays(d, n) }

// DaysBetween returns the signed number of days from start to end.
func DaysBetween(start, end Date) int {
	// Both operands are UTC midnights, so the difference in seconds is an
	// exact multiple of 86400. time.Duration would overflow past ~292 years.
	return int((end.t.Unix() - start.t.Unix()) / secondsPerDay)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// MarshalText implements encoding.TextMarshaler (JSON and YAML use it).
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the
// zero Date.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer. The zero Date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	case time.Time:
		*d = Today(v)
		return nil
	default:
		return fmt.Errorf("scanning date: unsupported type %T", src)
	}
}
