// Package card defines the display items and groups produced from sheet rows.
//
// Items are normalized, display-ready projections of a [row.Row]; they are
// created once and never mutated. Groups collect items sharing a key together
// with the group-level metadata the templates show: a headline issue, a
// country and category label, or a color and a singleton flag.
//
// Three families exist, one per pipeline:
//
//   - Surge: [StockItem] grouped into [Card] (theme or individual)
//   - Ranking: [RankingStock] grouped into [MaterialGroup]
//   - Answer sheet: [AnswerItem] grouped into [CountryGroup] and [CategoryGroup]
//
// The New* constructors apply the normalizer and report false for rows that
// must be dropped, such as rows without a stock name.
package card

import (
	"strings"

	"github.com/matzehuels/stockcards/pkg/normalize"
	"github.com/matzehuels/stockcards/pkg/row"
)

// Other is the bucket for rows missing a grouping key.
const Other = "기타"

// IndividualGroup is the group name shown on individual-issue cards.
const IndividualGroup = "개별이슈"

// Kind discriminates surge rows.
type Kind int

const (
	// KindTheme rows are grouped by their group name.
	KindTheme Kind = iota + 1
	// KindIndividual rows share one pool.
	KindIndividual
)

// ParseKind maps the sheet's type label to a Kind. Labels other than the
// known ones report false and the row is not a card row.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "테마", "theme":
		return KindTheme, true
	case "개별", "개별이슈", "individual":
		return KindIndividual, true
	}
	return 0, false
}

// String returns the identifier used by the templates.
func (k Kind) String() string {
	switch k {
	case KindTheme:
		return "theme"
	case KindIndividual:
		return "individual"
	}
	return "unknown"
}

// StockItem is one stock on a surge card.
type StockItem struct {
	Name       string
	ChangeRate string
	Issue      string
}

// Card is one surge card: a theme, or a slice of the individual pool.
type Card struct {
	Kind      Kind
	GroupName string
	MainIssue string
	Stocks    []StockItem
}

// SurgeEntry is a surge row after normalization, before grouping.
type SurgeEntry struct {
	Kind  Kind
	Group string
	Date  string
	Item  StockItem
}

// NewSurgeEntry projects a surge row. Rows with an unknown type or no stock
// name report false.
func NewSurgeEntry(r row.Row) (SurgeEntry, bool) {
	kind, ok := ParseKind(r.Type)
	if !ok {
		return SurgeEntry{}, false
	}
	name := normalize.Key(r.Name)
	if name == "" {
		return SurgeEntry{}, false
	}
	group := normalize.Key(r.Group)
	if group == "" {
		group = Other
	}
	return SurgeEntry{
		Kind:  kind,
		Group: group,
		Date:  r.Date,
		Item: StockItem{
			Name:       name,
			ChangeRate: normalize.Percent(r.Metric),
			Issue:      normalize.Text(r.Text),
		},
	}, true
}

// SurgeEntries projects rows, dropping those NewSurgeEntry rejects.
func SurgeEntries(rows []row.Row) []SurgeEntry {
	out := make([]SurgeEntry, 0, len(rows))
	for _, r := range rows {
		if e, ok := NewSurgeEntry(r); ok {
			out = append(out, e)
		}
	}
	return out
}

// StockCount returns the number of stocks across cards.
func StockCount(cards []Card) int {
	n := 0
	for _, c := range cards {
		n += len(c.Stocks)
	}
	return n
}
