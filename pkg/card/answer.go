package card

import (
	"slices"
	"strings"

	"github.com/matzehuels/stockcards/pkg/normalize"
	"github.com/matzehuels/stockcards/pkg/row"
)

// Answer-sheet types. A stock may carry several.
const (
	TypeTrend     = "시대흐름"
	TypeSuperPick = "슈퍼픽"
	TypeSchedule  = "일정매매"
)

// AnswerItem is one stock of the answer sheet.
type AnswerItem struct {
	Name        string
	Keyword     string
	AddedOn     string
	Types       []string
	Status      string
	Country     string
	Category    string
	Subcategory string
	Schedule    string
}

// HasType reports whether the item is listed under answer type t.
func (a AnswerItem) HasType(t string) bool {
	return slices.Contains(a.Types, t)
}

// CategoryGroup holds the items of one category within a country.
type CategoryGroup struct {
	Category string
	Items    []AnswerItem
}

// CountryGroup holds the categories of one country.
type CountryGroup struct {
	Country    string
	Categories []CategoryGroup
}

// Len returns the number of items across categories.
func (g CountryGroup) Len() int {
	n := 0
	for _, c := range g.Categories {
		n += len(c.Items)
	}
	return n
}

// AnswerSheet is the whole answer sheet: trend stocks grouped by country and
// category, plus the flat super-pick and schedule lists.
type AnswerSheet struct {
	Trends     []CountryGroup
	SuperPicks []AnswerItem
	Schedules  []AnswerItem
}

// Len returns the number of item slots on the sheet. An item listed under
// several types is counted once per type.
func (s AnswerSheet) Len() int {
	n := len(s.SuperPicks) + len(s.Schedules)
	for _, g := range s.Trends {
		n += g.Len()
	}
	return n
}

// NewAnswerItem projects an answer-sheet row. Rows without a stock name
// report false. The type cell holds a comma-separated multi-select.
func NewAnswerItem(r row.Row) (AnswerItem, bool) {
	name := normalize.Key(r.Name)
	if name == "" {
		return AnswerItem{}, false
	}
	return AnswerItem{
		Name:        name,
		Keyword:     normalize.Text(r.Keyword),
		AddedOn:     normalize.Date(r.Date),
		Types:       SplitTypes(r.Type),
		Status:      normalize.Key(r.Status),
		Country:     normalize.Key(r.Country),
		Category:    normalize.Key(r.Category),
		Subcategory: normalize.Key(r.Subcategory),
		Schedule:    normalize.Text(r.Schedule),
	}, true
}

// AnswerItems projects rows, dropping those NewAnswerItem rejects.
func AnswerItems(rows []row.Row) []AnswerItem {
	out := make([]AnswerItem, 0, len(rows))
	for _, r := range rows {
		if a, ok := NewAnswerItem(r); ok {
			out = append(out, a)
		}
	}
	return out
}

// SplitTypes splits a multi-select cell. Empty entries are dropped.
func SplitTypes(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = normalize.Key(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FilterByType returns the items listed under answer type t, in input order.
func FilterByType(items []AnswerItem, t string) []AnswerItem {
	var out []AnswerItem
	for _, a := range items {
		if a.HasType(t) {
			out = append(out, a)
		}
	}
	return out
}
