package group

import (
	"slices"

	"github.com/matzehuels/stockcards/pkg/card"
)

// Palette supplies group colors for the ranking. Colors are dealt to
// multi-stock materials in first-seen order and cycle when exhausted.
type Palette struct {
	Colors []string
	Single string
}

// DefaultPalette is the pastel set the ranking template was designed with.
var DefaultPalette = Palette{
	Colors: []string{
		"#FFF9C4", // yellow
		"#C8E6C9", // green
		"#B2EBF2", // sky
		"#F8BBD0", // pink
		"#E1BEE7", // purple
		"#FFCCBC", // orange
		"#D7CCC8", // brown
		"#CFD8DC", // blue grey
		"#FFE0B2", // apricot
		"#C5CAE9", // indigo
	},
	Single: "#E0E0E0",
}

func (p Palette) color(i int) string {
	if len(p.Colors) == 0 {
		return p.Single
	}
	return p.Colors[i%len(p.Colors)]
}

// ByMaterial buckets ranking stocks by material.
//
// Stocks inside a bucket are ordered by change rate, highest first. Buckets
// with two or more stocks get a palette color and precede the single-stock
// buckets, which share the palette's single color. Within each of the two
// partitions buckets are ordered by the sum of their change rates, highest
// first; ties keep first-seen order.
func ByMaterial(stocks []card.RankingStock, p Palette) []card.MaterialGroup {
	materials := newBuckets[string, card.RankingStock]()
	for _, s := range stocks {
		materials.add(s.Material, s)
	}

	var multi, single []card.MaterialGroup
	next := 0
	for _, m := range materials.order() {
		g := card.MaterialGroup{Material: m, Stocks: slices.Clone(materials.get(m))}
		slices.SortStableFunc(g.Stocks, func(a, b card.RankingStock) int {
			return b.ChangeRate.Cmp(a.ChangeRate)
		})
		if len(g.Stocks) >= 2 {
			g.Color = p.color(next)
			next++
			multi = append(multi, g)
		} else {
			g.Color, g.Single = p.Single, true
			single = append(single, g)
		}
	}

	bySum := func(a, b card.MaterialGroup) int { return b.Sum().Cmp(a.Sum()) }
	slices.SortStableFunc(multi, bySum)
	slices.SortStableFunc(single, bySum)
	return append(multi, single...)
}

// Stocks flattens groups back into ranking order.
func Stocks(groups []card.MaterialGroup) []card.RankingStock {
	var out []card.RankingStock
	for _, g := range groups {
		out = append(out, g.Stocks...)
	}
	return out
}
