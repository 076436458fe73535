// ABOUTME: Nepali header clock: BS date, weekday and time in Devanagari numerals
// ABOUTME: Times are shown in Asia/Kathmandu regardless of the server zone

package calendar

import (
	"fmt"
	"strings"
	"time"

	"nepalvoices-web/core/domain"
)

var devanagariDigits = [10]rune{'०', '१', '२', '३', '४', '५', '६', '७', '८', '९'}

// Weekdays are indexed by time.Weekday
var Weekdays = [7]string{
	"आइतवार",
	"सोमवार",
	"मङ्गलवार",
	"बुधवार",
	"बिहिवार",
	"शुक्रवार",
	"शनिवार",
}

// Months are indexed by BS month - 1
var Months = [12]string{
	"बैशाख",
	"जेठ",
	"असार",
	"श्रावण",
	"भदौ",
	"आश्विन",
	"कार्तिक",
	"मंसिर",
	"पौष",
	"माघ",
	"फाल्गुण",
	"चैत्र",
}

// ToDevanagari replaces ASCII digits with Devanagari digits
func ToDevanagari(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(devanagariDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Clock renders moments in a fixed location
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a clock for loc; nil means Asia/Kathmandu
func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = Kathmandu()
	}
	return &Clock{loc: loc, now: time.Now}
}

// Kathmandu returns Asia/Kathmandu, or a fixed +05:45 zone when the tz
// database is unavailable
func Kathmandu() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kathmandu"); err == nil {
		return loc
	}
	return time.FixedZone("NPT", 5*3600+45*60)
}

// Now renders the current moment
func (c *Clock) Now() (domain.NepaliDateTime, error) {
	return c.At(c.now())
}

// At renders t
func (c *Clock) At(t time.Time) (domain.NepaliDateTime, error) {
	local := t.In(c.loc)

	bs, err := FromGregorian(local)
	if err != nil {
		return domain.NepaliDateTime{}, err
	}

	dt := domain.NepaliDateTime{
		Year:      bs.Year,
		Month:     bs.Month,
		Day:       bs.Day,
		MonthName: Months[bs.Month-1],
		Weekday:   Weekdays[local.Weekday()],
		YearText:  ToDevanagari(fmt.Sprint(bs.Year)),
		DayText:   ToDevanagari(fmt.Sprint(bs.Day)),
		Hours:     ToDevanagari(fmt.Sprintf("%02d", local.Hour())),
		Minutes:   ToDevanagari(fmt.Sprintf("%02d", local.Minute())),
		Seconds:   ToDevanagari(fmt.Sprintf("%02d", local.Second())),
	}
	dt.Display = fmt.Sprintf("%s, %s %s %s, %s:%s:%s",
		dt.Weekday, dt.DayText, dt.MonthName, dt.YearText, dt.Hours, dt.Minutes, dt.Seconds)

	return dt, nil
}
