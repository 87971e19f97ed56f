package calendar

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDays_CrossesBoundaries(t *testing.T) {
	assert.Equal(t, "2025-01-02", AddDays(MustParse("2025-01-01"), 1).String())
	assert.Equal(t, "2025-01-30", AddDays(MustParse("2025-01-31"), -1).String())
	assert.Equal(t, "2024-03-01", AddDays(MustParse("2024-02-28"), 2).String())
	assert.Equal(t, "2025-01-01", AddDays(MustParse("2024-12-31"), 1).String())
	assert.Equal(t, "2023-12-31", AddDays(MustParse("2024-01-01"), -1).String())
	assert.Equal(t, "2024-06-15", AddDays(MustParse("2024-06-15"), 0).String())
}

func TestAddDays_DSTTransitionDoesNotDrift(t *testing.T) {
	// US and EU spring-forward weekends.
	assert.Equal(t, "2024-03-11", AddDays(MustParse("2024-03-10"), 1).String())
	assert.Equal(t, "2024-03-31", AddDays(MustParse("2024-03-30"), 1).String())
	assert.Equal(t, "2024-10-28", AddDays(MustParse("2024-10-27"), 1).String())
}

func TestAddDays_RoundTrip(t *testing.T) {
	start := MustParse("2023-11-20")
	for n := -800; n <= 800; n += 7 {
		d := AddDays(start, n)
		assert.Equal(t, start, AddDays(d, -n), "n=%d", n)
	}
}

func TestDaysBetween(t *testing.T) {
	a := MustParse("2024-01-01")
	b := MustParse("2024-03-01")

	assert.Equal(t, 0, DaysBetween(a, a))
	assert.Equal(t, 60, DaysBetween(a, b))
	assert.Equal(t, -60, DaysBetween(b, a))
	assert.Equal(t, 366, DaysBetween(a, MustParse("2025-01-01")))
}

func TestDaysBetween_AgreesWithAddDays(t *testing.T) {
	base := MustParse("2024-02-10")
	for _, n := range []int{-400, -31, -1, 0, 1, 29, 365, 200_000, -700_000} {
		assert.Equal(t, n, DaysBetween(base, AddDays(base, n)), "n=%d", n)
	}
}

func TestDaysBetween_Centuries(t *testing.T) {
	a := MustParse("1600-01-01")
	b := MustParse("2024-01-01")

	n := DaysBetween(a, b)
	assert.Equal(t, 154863, n)
	assert.Equal(t, -n, DaysBetween(b, a))
	assert.Equal(t, b, AddDays(a, n))
	assert.Equal(t, 3652058, DaysBetween(MustParse("0001-01-01"), MustParse("9999-12-31")))
}

func TestParse_RoundTrip(t *testing.T) {
	for _, s := range []string{"2024-01-01", "2024-02-29", "1999-12-31", "2100-07-04", "0001-01-01", "9999-12-31"} {
		d, err := Parse(s)
		require.NoError(t, err)
		assert.False(t, d.IsZero(), s)
		assert.Equal(t, s, d.String())
	}
}

func TestFirstDayIsNotUnset(t *testing.T) {
	d := New(1, time.January, 1)
	assert.False(t, d.IsZero())
	assert.Equal(t, "0001-01-01", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "0001-01-01", v)

	out, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0001-01-01", string(out))
}

func TestAddDays_UnsetStaysUnset(t *testing.T) {
	assert.True(t, AddDays(Date{}, 5).IsZero())
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{"", "2024-02-30", "2023-02-29", "2024-1-5", "2024/01/05", "20240105", "2024-01-05T00:00", "garbage", "2024-13-01"}
	for _, s := range cases {
		_, err := Parse(s)
		require.Error(t, err, "input %q", s)
		assert.True(t, errors.Is(err, ErrMalformedDate), "input %q", s)

		var mde *MalformedDateError
		require.ErrorAs(t, err, &mde)
		assert.Equal(t, s, mde.Input)
	}
}

func TestToday_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	now := time.Date(2024, 5, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-05-01", Today(now).String())
}

func TestCompareHelpers(t *testing.T) {
	a := MustParse("2024-01-01")
	b := MustParse("2024-01-02")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, a, Min(a, b))
	assert.Equal(t, b, Max(a, b))
	assert.True(t, Date{}.IsZero())
	assert.Equal(t, "", Date{}.String())
}

func TestLexicalOrderMatchesChronological(t *testing.T) {
	dates := []Date{MustParse("2023-12-31"), MustParse("2024-01-09"), MustParse("2024-01-10"), MustParse("2024-10-01")}
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].String() < dates[i].String())
		assert.True(t, dates[i-1].Before(dates[i]))
	}
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		D Date `json:"d"`
	}
	out, err := json.Marshal(wrapper{D: MustParse("2024-07-08")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-07-08"}`, string(out))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-07-09"}`), &w))
	assert.Equal(t, "2024-07-09", w.D.String())

	err = json.Unmarshal([]byte(`{"d":"2024-07-32"}`), &w)
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-04-04"))
	assert.Equal(t, "2024-04-04", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-04-04", v)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	v, err = d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, d.Scan(42))
}
