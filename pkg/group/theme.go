package group

import (
	"github.com/matzehuels/stockcards/pkg/card"
	"github.com/matzehuels/stockcards/pkg/paginate"
)

// Theme is one theme bucket before it is cut into cards.
type Theme struct {
	Name   string
	Issue  string
	Stocks []card.StockItem
}

// ThemeBuckets is the result of splitting surge entries by kind.
type ThemeBuckets struct {
	Themes      []Theme
	Individuals []card.StockItem
}

// Themes buckets surge entries. Theme entries are grouped by group name in
// first-seen order, and the first entry's issue becomes the headline of its
// group. Individual entries form a single pool. Input order is kept inside
// every bucket.
func Themes(entries []card.SurgeEntry) ThemeBuckets {
	themes := newBuckets[string, card.StockItem]()
	issues := make(map[string]string)

	var out ThemeBuckets
	for _, e := range entries {
		switch e.Kind {
		case card.KindTheme:
			if !themes.has(e.Group) {
				issues[e.Group] = e.Item.Issue
			}
			themes.add(e.Group, e.Item)
		case card.KindIndividual:
			out.Individuals = append(out.Individuals, e.Item)
		}
	}

	for _, name := range themes.order() {
		out.Themes = append(out.Themes, Theme{
			Name:   name,
			Issue:  issues[name],
			Stocks: themes.get(name),
		})
	}
	return out
}

// Limits bounds the number of stocks on one card.
type Limits struct {
	StocksPerCard     int
	IndividualPerCard int
}

// DefaultLimits are the card sizes the surge template is laid out for.
var DefaultLimits = Limits{StocksPerCard: 5, IndividualPerCard: 3}

// Cards cuts buckets into cards. A theme larger than StocksPerCard becomes
// several cards that repeat its headline. Individual stocks are dealt onto
// cards of IndividualPerCard under the [card.IndividualGroup] name. Theme
// cards come first.
func Cards(b ThemeBuckets, l Limits) []card.Card {
	var cards []card.Card
	for _, th := range b.Themes {
		for _, chunk := range paginate.Chunk(th.Stocks, l.StocksPerCard) {
			cards = append(cards, card.Card{
				Kind:      card.KindTheme,
				GroupName: th.Name,
				MainIssue: th.Issue,
				Stocks:    chunk,
			})
		}
	}
	for _, chunk := range paginate.Chunk(b.Individuals, l.IndividualPerCard) {
		cards = append(cards, card.Card{
			Kind:      card.KindIndividual,
			GroupName: card.IndividualGroup,
			Stocks:    chunk,
		})
	}
	return cards
}
