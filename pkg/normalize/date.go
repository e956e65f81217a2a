package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Placeholder is shown in place of an empty date.
const Placeholder = "-"

// Day is a calendar day as written in a sheet cell. Month-day forms such as
// "12.04" carry no year and have HasYear unset.
type Day struct {
	Year    int
	Month   int
	Day     int
	HasYear bool
}

var (
	ymdPattern = regexp.MustCompile(`^(\d{4}|\d{2})[./-](\d{1,2})[./-](\d{1,2})$`)
	mdPattern  = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})$`)
)

// ParseDate parses year-month-day with '.', '-' or '/' separators and a
// two- or four-digit year, or a bare month-day. Two-digit years are taken
// as 20YY.
func ParseDate(s string) (Day, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if m := ymdPattern.FindStringSubmatch(s); m != nil {
		year := atoi(m[1])
		if len(m[1]) == 2 {
			year += 2000
		}
		return newDay(year, atoi(m[2]), atoi(m[3]), true)
	}
	if m := mdPattern.FindStringSubmatch(s); m != nil {
		return newDay(0, atoi(m[1]), atoi(m[2]), false)
	}
	return Day{}, false
}

// leapYear stands in for the year of month-day values so 02.29 is valid.
const leapYear = 2000

func newDay(year, month, day int, hasYear bool) (Day, bool) {
	y := year
	if !hasYear {
		y = leapYear
	}
	t := time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != month || t.Day() != day {
		return Day{}, false
	}
	return Day{Year: year, Month: month, Day: day, HasYear: hasYear}, true
}

// DayOf returns the calendar day of t.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), HasYear: true}
}

// InYear fills in the year of a month-day value.
func (d Day) InYear(year int) Day {
	if !d.HasYear {
		d.Year, d.HasYear = year, true
	}
	return d
}

// Same reports whether d falls on t. A month-day value matches any year.
func (d Day) Same(t time.Time) bool {
	if d.HasYear && d.Year != t.Year() {
		return false
	}
	return d.Month == int(t.Month()) && d.Day == t.Day()
}

// Before orders days chronologically. Year-less values sort as year zero.
func (d Day) Before(o Day) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// String renders YY.MM.DD, or MM.DD when the year is unknown.
func (d Day) String() string {
	if !d.HasYear {
		return fmt.Sprintf("%02d.%02d", d.Month, d.Day)
	}
	return fmt.Sprintf("%02d.%02d.%02d", d.Year%100, d.Month, d.Day)
}

// Long renders YYYY.MM.DD.
func (d Day) Long() string {
	return fmt.Sprintf("%04d.%02d.%02d", d.Year, d.Month, d.Day)
}

// Compact renders YYYYMMDD, the form used in output file names.
func (d Day) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// Date normalizes a date cell to YY.MM.DD. Empty input yields [Placeholder];
// anything unparsable, year-less month-day values included, passes through.
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Placeholder
	}
	d, ok := ParseDate(s)
	if !ok || !d.HasYear {
		return s
	}
	return d.String()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
