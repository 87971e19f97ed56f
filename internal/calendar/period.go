package calendar

import "time"

// Period is a closed date interval [From, To].
type Period struct {
	From Date
	To   Date
}

// NewPeriod returns the period [from, to] as given.
func NewPeriod(from, to Date) Period {
	return Period{From: from, To: to}
}

// Normalize swaps the endpoints when From is after To.
func (p Period) Normalize() Period {
	if p.From.After(p.To) {
		return Period{From: p.To, To: p.From}
	}
	return p
}

// IsZero reports whether either endpoint is unset.
func (p Period) IsZero() bool {
	return p.From.IsZero() || p.To.IsZero()
}

// Contains reports whether d lies within the period, endpoints included.
func (p Period) Contains(d Date) bool {
	n := p.Normalize()
	return !d.Before(n.From) && !d.After(n.To)
}

// Overlaps reports whether [start, end] intersects the period.
func (p Period) Overlaps(start, end Date) bool {
	n := p.Normalize()
	return !start.After(n.To) && !end.Before(n.From)
}

// Days is the inclusive length of the period.
func (p Period) Days() int {
	n := p.Normalize()
	return DaysBetween(n.From, n.To) + 1
}

// SingleDay reports whether the period covers exactly one date.
func (p Period) SingleDay() bool {
	return p.From.Equal(p.To)
}

func (p Period) String() string {
	return p.From.String() + ".." + p.To.String()
}

// Range lists every date from start to end inclusive. It returns nil when
// end is before start.
func Range(start, end Date) []Date {
	n := DaysBetween(start, end)
	if n < 0 {
		return nil
	}
	days := make([]Date, 0, n+1)
	for i := 0; i <= n; i++ {
		days = append(days, AddDays(start, i))
	}
	return days
}

// WeekRange returns the Monday..Sunday week containing d.
func WeekRange(d Date) Period {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	monday := AddDays(d, -offset)
	return Period{From: monday, To: AddDays(monday, 6)}
}

// MonthRange returns the first..last day of d's month.
func MonthRange(d Date) Period {
	first := New(d.Year(), d.Month(), 1)
	last := AddDays(New(d.Year(), d.Month()+1, 1), -1)
	return Period{From: first, To: last}
}

// DayRange returns the single-day period [d, d].
func DayRange(d Date) Period {
	return Period{From: d, To: d}
}
