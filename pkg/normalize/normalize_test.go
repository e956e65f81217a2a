package normalize

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-12-04", "25.12.04"},
		{"2025.12.4", "25.12.04"},
		{"2025/1/9", "25.01.09"},
		{"25.12.04", "25.12.04"},
		{"25-12-04", "25.12.04"},
		{" 2024-02-29 ", "24.02.29"},
		{"", "-"},
		{"   ", "-"},
		{"미정", "미정"},
		{"12.04", "12.04"},
		{"2025-13-01", "2025-13-01"},
		{"2025-02-31", "2025-02-31"},
		{"2025-02-29", "2025-02-29"},
		{"2025-04-31", "2025-04-31"},
	}
	for _, tt := range tests {
		if got := Date(tt.in); got != tt.want {
			t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2025.12.04")
	if !ok || d != (Day{2025, 12, 4, true}) {
		t.Errorf("ParseDate = %+v, %v", d, ok)
	}

	d, ok = ParseDate("12.04")
	if !ok || d.HasYear || d.Month != 12 || d.Day != 4 {
		t.Errorf("ParseDate(month-day) = %+v, %v", d, ok)
	}

	if _, ok := ParseDate("hello"); ok {
		t.Error("ParseDate(hello) should fail")
	}

	if _, ok := ParseDate("02.29"); !ok {
		t.Error("ParseDate(02.29) should accept a leap day without a year")
	}
	for _, in := range []string{"02.30", "04.31", "2025.02.29", "2025.06.31"} {
		if _, ok := ParseDate(in); ok {
			t.Errorf("ParseDate(%q) should reject a day past the end of the month", in)
		}
	}
}

func TestDayFormats(t *testing.T) {
	d := Day{2025, 3, 7, true}
	if got := d.String(); got != "25.03.07" {
		t.Errorf("String() = %q", got)
	}
	if got := d.Long(); got != "2025.03.07" {
		t.Errorf("Long() = %q", got)
	}
	if got := d.Compact(); got != "20250307" {
		t.Errorf("Compact() = %q", got)
	}
	if !(Day{2025, 3, 6, true}).Before(d) {
		t.Error("Before() = false, want true")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+29.98", "29.98%"},
		{"29.98%", "29.98%"},
		{"+5%", "5%"},
		{"-3.1", "-3.1%"},
		{"", "0%"},
		{"  ", "0%"},
		{"++7", "7%"},
		{"+ 7", "7%"},
	}
	for _, tt := range tests {
		got := Percent(tt.in)
		if got != tt.want {
			t.Errorf("Percent(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := Percent(got); again != got {
			t.Errorf("Percent not idempotent: Percent(%q) = %q", got, again)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"29.98", "29.98"},
		{"+29.98%", "29.98"},
		{"-3.5", "-3.5"},
		{"1,234,567", "1234567"},
		{"약 .5", "0.5"},
		{"", "0"},
		{"없음", "0"},
	}
	for _, tt := range tests {
		if got := Number(tt.in).String(); got != tt.want {
			t.Errorf("Number(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"29.978", "29.98"},
		{"+15", "15.00"},
		{"-2.5%", "-2.50"},
		{"", "0.00"},
	}
	for _, tt := range tests {
		if got := Rate(tt.in); got != tt.want {
			t.Errorf("Rate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234567.8", "1,234,567"},
		{"1,234", "1,234"},
		{"999", "999"},
		{"-1500.9", "-1,500"},
		{"", "0"},
		{"n/a", "0"},
		{"99999999999999999999", "99,999,999,999,999,999,999"},
		{"-12345678901234567890.5", "-12,345,678,901,234,567,890"},
		{"9223372036854775807", "9,223,372,036,854,775,807"},
	}
	for _, tt := range tests {
		if got := Volume(tt.in); got != tt.want {
			t.Errorf("Volume(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	decomposed := "\u1100\u1161" // 가 as jamo
	if got := Text("  " + decomposed + "   나 "); got != "가 나" {
		t.Errorf("Text() = %q, want %q", got, "가 나")
	}
	if got := Text("첫줄  끝\r\n 둘째줄 "); got != "첫줄 끝\n둘째줄" {
		t.Errorf("Text() = %q", got)
	}
	if got := Key(" 로봇 "); got != "로봇" {
		t.Errorf("Key() = %q", got)
	}
}

func TestSplitLeadingDate(t *testing.T) {
	tests := []struct {
		in      string
		day     Day
		rest    string
		matched bool
	}{
		{"2025.12.02 수주 공시", Day{2025, 12, 2, true}, "수주 공시", true},
		{"25.12.02 수주", Day{2025, 12, 2, true}, "수주", true},
		{"25-1-2 수주", Day{2025, 1, 2, true}, "수주", true},
		{"12.02 수주", Day{0, 12, 2, false}, "수주", true},
		{"12-2수주", Day{0, 12, 2, false}, "수주", true},
		{"3.5% 상승", Day{}, "3.5% 상승", false},
		{"수주 공시", Day{}, "수주 공시", false},
		{"13.45 급등", Day{}, "13.45 급등", false},
	}
	for _, tt := range tests {
		day, rest, ok := SplitLeadingDate(tt.in)
		if ok != tt.matched || day != tt.day || rest != tt.rest {
			t.Errorf("SplitLeadingDate(%q) = %+v, %q, %v; want %+v, %q, %v",
				tt.in, day, rest, ok, tt.day, tt.rest, tt.matched)
		}
	}
}

func TestPrefixer(t *testing.T) {
	today := time.Date(2025, 12, 4, 9, 0, 0, 0, time.UTC)

	content := Prefixer{Source: DateFromContent, Today: today}
	tests := []struct {
		in   string
		want string
	}{
		{"25.12.04 오늘 공시", "오늘 공시"},
		{"12.04 오늘 공시", "오늘 공시"},
		{"25.12.02 지난 공시", "[25.12.02] 지난 공시"},
		{"12.02 지난 공시", "[25.12.02] 지난 공시"},
		{"24.12.04 작년 공시", "[24.12.04] 작년 공시"},
		{"날짜 없음", "날짜 없음"},
		{"25.12.02", "25.12.02"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := content.Prefix(tt.in, ""); got != tt.want {
			t.Errorf("content Prefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	column := Prefixer{Source: DateFromColumn, Today: today}
	colTests := []struct {
		text, col string
		want      string
	}{
		{"지난 공시", "2025-12-02", "[25.12.02] 지난 공시"},
		{"오늘 공시", "2025.12.04", "오늘 공시"},
		{"오늘 공시", "", "오늘 공시"},
		{"12.02 지난 공시", "2025-12-02", "[25.12.02] 지난 공시"},
		{"오늘 공시", "엉망", "오늘 공시"},
		{"12.02 지난 공시", "", "12.02 지난 공시"},
		{"25.12.02 지난 공시", "엉망", "25.12.02 지난 공시"},
	}
	for _, tt := range colTests {
		if got := column.Prefix(tt.text, tt.col); got != tt.want {
			t.Errorf("column Prefix(%q, %q) = %q, want %q", tt.text, tt.col, got, tt.want)
		}
	}
}

func TestPrefixerSourcesAgree(t *testing.T) {
	today := time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC)
	content := Prefixer{Source: DateFromContent, Today: today}
	column := Prefixer{Source: DateFromColumn, Today: today}

	for _, tt := range []struct{ text, col string }{
		{"25.12.02 수주", "2025-12-02"},
		{"25.12.04 수주", "25.12.04"},
		{"12.01 실적", "2025.12.01"},
	} {
		a, b := content.Prefix(tt.text, ""), column.Prefix(tt.text, tt.col)
		if a != b {
			t.Errorf("sources disagree for %q: content %q, column %q", tt.text, a, b)
		}
	}
}

func TestParseDateSource(t *testing.T) {
	if s, err := ParseDateSource("column"); err != nil || s != DateFromColumn {
		t.Errorf("ParseDateSource(column) = %v, %v", s, err)
	}
	if s, err := ParseDateSource(""); err != nil || s != DateFromContent {
		t.Errorf("ParseDateSource(\"\") = %v, %v", s, err)
	}
	if _, err := ParseDateSource("header"); err == nil {
		t.Error("ParseDateSource(header) should fail")
	}
}
