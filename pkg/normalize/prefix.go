package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DateSource selects where the date of a commentary line comes from.
type DateSource int

const (
	// DateFromContent reads the date written at the start of the text.
	DateFromContent DateSource = iota
	// DateFromColumn reads the row's separate date column.
	DateFromColumn
)

func (s DateSource) String() string {
	if s == DateFromColumn {
		return "column"
	}
	return "content"
}

// ParseDateSource parses "content" or "column". The empty string selects
// [DateFromContent].
func ParseDateSource(s string) (DateSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "content":
		return DateFromContent, nil
	case "column":
		return DateFromColumn, nil
	}
	return DateFromContent, fmt.Errorf("unknown date source %q (want content or column)", s)
}

// leadingDates are tried in order against the start of a commentary line.
var leadingDates = []struct {
	re      *regexp.Regexp
	hasYear bool
}{
	{regexp.MustCompile(`^(?:20)?(\d{2})\.(\d{1,2})\.(\d{1,2})`), true},
	{regexp.MustCompile(`^(?:20)?(\d{2})-(\d{1,2})-(\d{1,2})`), true},
	{regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})`), false},
	{regexp.MustCompile(`^(\d{1,2})-(\d{1,2})`), false},
}

// SplitLeadingDate separates a date written at the start of text from the
// remainder. "3.5% 상승" is not a date: the match must end at a space, the
// end of the text, or a character that cannot continue a number.
func SplitLeadingDate(text string) (Day, string, bool) {
	for _, p := range leadingDates {
		m := p.re.FindStringSubmatchIndex(text)
		if m == nil || !dateBoundary(text[m[1]:]) {
			continue
		}
		group := func(i int) int { return atoi(text[m[2*i]:m[2*i+1]]) }
		var (
			d  Day
			ok bool
		)
		if p.hasYear {
			d, ok = newDay(2000+group(1), group(2), group(3), true)
		} else {
			d, ok = newDay(0, group(1), group(2), false)
		}
		if !ok {
			continue
		}
		return d, strings.TrimSpace(text[m[1]:]), true
	}
	return Day{}, text, false
}

func dateBoundary(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	switch {
	case r >= '0' && r <= '9', r == '.', r == '-', r == '%', r == ',':
		return false
	}
	return true
}

// Prefixer marks commentary that is not about today. Each line carries one
// date, taken from the configured Source; when it falls on another day the
// text becomes "[YY.MM.DD] text". A date written at the start of the text is
// removed from the body once a source date is known, so the two sources
// produce the same output whenever they agree. Without a source date the
// text is returned as written.
type Prefixer struct {
	Source DateSource
	Today  time.Time
}

// Prefix applies the rule to one line. column is the row's date column and is
// only consulted with [DateFromColumn]. Text consisting of nothing but a date
// is returned unchanged.
func (p Prefixer) Prefix(text, column string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	embedded, body, found := SplitLeadingDate(text)
	if found && body == "" {
		return text
	}

	var (
		d  Day
		ok bool
	)
	switch p.Source {
	case DateFromColumn:
		d, ok = ParseDate(column)
	default:
		d, ok = embedded, found
	}
	if !ok {
		return text
	}
	if d.Same(p.Today) {
		return body
	}
	return fmt.Sprintf("[%s] %s", d.InYear(p.Today.Year()), body)
}
