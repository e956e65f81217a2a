package card

import (
	"strings"

	"github.com/matzehuels/stockcards/pkg/normalize"
	"github.com/matzehuels/stockcards/pkg/row"
	"github.com/shopspring/decimal"
)

// RankingStock is one line of the change-rate ranking.
//
// ChangeRate is kept as a decimal for ordering; templates only see
// ChangeRateText.
type RankingStock struct {
	Material       string
	Name           string
	ChangeRate     decimal.Decimal
	ChangeRateText string
	Volume         string
	Content        string
}

// MaterialGroup is a bucket of ranking stocks sharing a material.
type MaterialGroup struct {
	Material string
	Stocks   []RankingStock
	Color    string
	Single   bool
}

// Sum returns the aggregate change rate of the group.
func (g MaterialGroup) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range g.Stocks {
		sum = sum.Add(s.ChangeRate)
	}
	return sum
}

// NewRankingStock projects a ranking row. Rows without a change rate or a
// stock name report false; a missing material goes to [Other]. The
// commentary is run through p.
func NewRankingStock(r row.Row, p normalize.Prefixer) (RankingStock, bool) {
	if strings.TrimSpace(r.Metric) == "" {
		return RankingStock{}, false
	}
	name := normalize.Key(r.Name)
	if name == "" {
		return RankingStock{}, false
	}
	material := normalize.Key(r.Group)
	if material == "" {
		material = Other
	}
	return RankingStock{
		Material:       material,
		Name:           name,
		ChangeRate:     normalize.Number(r.Metric),
		ChangeRateText: normalize.Rate(r.Metric),
		Volume:         normalize.Volume(r.Volume),
		Content:        p.Prefix(normalize.Text(r.Text), r.Date),
	}, true
}

// RankingStocks projects rows, dropping those NewRankingStock rejects.
func RankingStocks(rows []row.Row, p normalize.Prefixer) []RankingStock {
	out := make([]RankingStock, 0, len(rows))
	for _, r := range rows {
		if s, ok := NewRankingStock(r, p); ok {
			out = append(out, s)
		}
	}
	return out
}
