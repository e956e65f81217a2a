package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

var grouping = message.NewPrinter(language.Korean)

// Percent renders a change rate for display: "+29.98" becomes "29.98%".
// Empty input yields "0%". Percent(Percent(s)) == Percent(s).
func Percent(s string) string {
	s = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "+"))
	if s == "" {
		return "0%"
	}
	if !strings.HasSuffix(s, "%") {
		s += "%"
	}
	return s
}

// Number extracts the first signed decimal in s, ignoring thousands
// separators. It returns zero when s holds no number.
func Number(s string) decimal.Decimal {
	m := numberPattern.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Rate renders the number in s with two decimals, "0.00" when absent.
func Rate(s string) string {
	return Number(s).StringFixed(2)
}

// Volume renders the integer part of the number in s with thousands
// grouping: "1234567.8" becomes "1,234,567". Unparseable input yields "0".
func Volume(s string) string {
	n := Number(s).Truncate(0)
	if b := n.BigInt(); b.IsInt64() {
		return grouping.Sprintf("%d", b.Int64())
	}
	return groupDigits(n.String())
}

// groupDigits inserts thousands separators into an integer string.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
