package group

import (
	"slices"
	"sort"

	"github.com/matzehuels/stockcards/pkg/card"
)

// DefaultPriority lists the countries shown before all others.
var DefaultPriority = []string{"한국", "미국"}

// ByCountry buckets items by country, then by category within each country.
// Missing keys fall into [card.Other]. Countries in priority come first in
// the listed order; the rest follow sorted. Categories are sorted. Items
// keep input order.
func ByCountry(items []card.AnswerItem, priority []string) []card.CountryGroup {
	countries := newBuckets[string, card.AnswerItem]()
	for _, it := range items {
		countries.add(orOther(it.Country), it)
	}

	names := slices.Clone(countries.order())
	OrderCountries(names, priority)

	out := make([]card.CountryGroup, 0, len(names))
	for _, country := range names {
		categories := newBuckets[string, card.AnswerItem]()
		for _, it := range countries.get(country) {
			categories.add(orOther(it.Category), it)
		}
		keys := slices.Clone(categories.order())
		sort.Strings(keys)

		g := card.CountryGroup{Country: country}
		for _, k := range keys {
			g.Categories = append(g.Categories, card.CategoryGroup{
				Category: k,
				Items:    categories.get(k),
			})
		}
		out = append(out, g)
	}
	return out
}

// OrderCountries sorts names in place: names found in priority first, in
// priority order, then the rest in ascending order.
func OrderCountries(names, priority []string) {
	rank := func(s string) int {
		if i := slices.Index(priority, s); i >= 0 {
			return i
		}
		return len(priority)
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
}

// BuildAnswerSheet assembles the answer sheet: trend items grouped by
// country and category, super picks and schedule trades as flat lists.
func BuildAnswerSheet(items []card.AnswerItem, priority []string) card.AnswerSheet {
	return card.AnswerSheet{
		Trends:     ByCountry(card.FilterByType(items, card.TypeTrend), priority),
		SuperPicks: card.FilterByType(items, card.TypeSuperPick),
		Schedules:  card.FilterByType(items, card.TypeSchedule),
	}
}

func orOther(s string) string {
	if s == "" {
		return card.Other
	}
	return s
}
