package pipeline

import (
	"context"

	"github.com/matzehuels/stockcards/pkg/card"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/group"
	"github.com/matzehuels/stockcards/pkg/normalize"
	"github.com/matzehuels/stockcards/pkg/observability"
	"github.com/matzehuels/stockcards/pkg/paginate"
	"github.com/matzehuels/stockcards/pkg/render"
	"github.com/matzehuels/stockcards/pkg/row"
	"github.com/matzehuels/stockcards/pkg/source/local"
)

var rankingJob = job{
	layout: render.RankingLayout,
	schema: row.RankingSchema,
	sample: local.SampleRanking,
}

func materialSize(g card.MaterialGroup) int { return len(g.Stocks) }

// Ranking renders the change-rate ranking.
//
// Every row of the sheet is used. Commentary dated on another day than the
// reference day is prefixed with its date, read from the place
// opts.DateSource names. Material groups are packed onto pages of
// opts.StocksPerPage stocks without being split.
func (r *Runner) Ranking(ctx context.Context, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}

	var stats Stats
	rows, sample, err := r.fetch(ctx, opts, rankingJob, &stats)
	if err != nil {
		return nil, err
	}

	today := opts.today()
	prefixer := normalize.Prefixer{Source: opts.DateSource, Today: today}
	stocks := card.RankingStocks(rows, prefixer)
	if len(stocks) == 0 && opts.Fallback && !sample {
		opts.Logger.Warn("no ranking rows, using sample data")
		if rows, err = r.sample(rankingJob); err != nil {
			return nil, err
		}
		stocks = card.RankingStocks(rows, prefixer)
		sample = true
	}
	if len(stocks) == 0 {
		return nil, serrors.New(serrors.ErrCodeNoData, "no ranking rows")
	}

	groups := group.ByMaterial(stocks, opts.Palette)
	pages := paginate.Pack(groups, opts.StocksPerPage, materialSize)

	result := newResult(normalize.DayOf(today))
	result.Sample = sample
	result.Stats = stats
	result.Stats.Rows = len(rows)
	result.Stats.Items = paginate.Count(groups, materialSize)
	result.Stats.Groups = len(groups)
	result.Stats.Pages = len(pages)

	views := make([]any, len(pages))
	for i, page := range pages {
		views[i] = render.RankingView(page)
		for _, g := range page {
			result.Groups = append(result.Groups, GroupSummary{Page: i + 1, Name: g.Material, Items: len(g.Stocks)})
		}
	}

	observability.Pipeline().OnGroupComplete(ctx, rankingJob.name(), result.Stats.Groups, result.Stats.Items, result.Stats.Pages)
	opts.Logger.Info("grouped materials",
		"date_source", opts.DateSource,
		"rows", result.Stats.Rows,
		"materials", result.Stats.Groups,
		"stocks", result.Stats.Items,
		"pages", result.Stats.Pages)

	if err := r.render(ctx, opts, rankingJob.layout, views, result); err != nil {
		return nil, err
	}
	return result, nil
}
