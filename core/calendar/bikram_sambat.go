// ABOUTME: Gregorian and Bikram Sambat date conversion backed by go-nepali
// ABOUTME: Dates the converter does not cover surface as ErrOutOfRange

package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/opensource-nepal/go-nepali/dateConverter"
)

// ErrOutOfRange is returned for dates the converter cannot map
var ErrOutOfRange = errors.New("date outside supported Bikram Sambat range")

// Date is a Bikram Sambat calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromGregorian converts the calendar date of t, read in t's own location
func FromGregorian(t time.Time) (Date, error) {
	bs, err := dateConverter.EnglishToNepali(t.Year(), int(t.Month()), t.Day())
	if err != nil {
		return Date{}, fmt.Errorf("%w: %s: %v", ErrOutOfRange, t.Format("2006-01-02"), err)
	}
	return Date{Year: bs[0], Month: bs[1], Day: bs[2]}, nil
}

// ToGregorian converts a BS date to midnight UTC of the matching AD day
func ToGregorian(d Date) (time.Time, error) {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return time.Time{}, fmt.Errorf("%w: %+v", ErrOutOfRange, d)
	}

	ad, err := dateConverter.NepaliToEnglish(d.Year, d.Month, d.Day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %+v: %v", ErrOutOfRange, d, err)
	}
	t := time.Date(ad[0], time.Month(ad[1]), ad[2], 0, 0, 0, 0, time.UTC)

	// a day past the end of the month does not survive the round trip
	if back, err := FromGregorian(t); err != nil || back != d {
		return time.Time{}, fmt.Errorf("%w: %+v", ErrOutOfRange, d)
	}
	return t, nil
}

// DaysInMonth returns the length of a BS month, or 0 when out of range
func DaysInMonth(year, month int) int {
	start, err := ToGregorian(Date{Year: year, Month: month, Day: 1})
	if err != nil {
		return 0
	}
	next := Date{Year: year, Month: month + 1, Day: 1}
	if month == 12 {
		next = Date{Year: year + 1, Month: 1, Day: 1}
	}
	end, err := ToGregorian(next)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}
