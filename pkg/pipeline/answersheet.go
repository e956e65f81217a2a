package pipeline

import (
	"context"

	"github.com/matzehuels/stockcards/pkg/card"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/group"
	"github.com/matzehuels/stockcards/pkg/normalize"
	"github.com/matzehuels/stockcards/pkg/observability"
	"github.com/matzehuels/stockcards/pkg/render"
	"github.com/matzehuels/stockcards/pkg/row"
	"github.com/matzehuels/stockcards/pkg/source/local"
)

var answerSheetJob = job{
	layout: render.AnswerSheetLayout,
	schema: row.AnswerSheetSchema,
	sample: local.SampleAnswerSheet,
}

// AnswerSheet renders the answer sheet as a single page. Trend items are
// grouped by country in opts.Priority order, then by category.
func (r *Runner) AnswerSheet(ctx context.Context, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}

	var stats Stats
	rows, sample, err := r.fetch(ctx, opts, answerSheetJob, &stats)
	if err != nil {
		return nil, err
	}

	sheet := group.BuildAnswerSheet(card.AnswerItems(rows), opts.Priority)
	if sheet.Len() == 0 && opts.Fallback && !sample {
		opts.Logger.Warn("no answer sheet items, using sample data")
		if rows, err = r.sample(answerSheetJob); err != nil {
			return nil, err
		}
		sheet = group.BuildAnswerSheet(card.AnswerItems(rows), opts.Priority)
		sample = true
	}
	if sheet.Len() == 0 {
		return nil, serrors.New(serrors.ErrCodeNoData, "no answer sheet items")
	}

	result := newResult(normalize.DayOf(opts.today()))
	result.Sample = sample
	result.Stats = stats
	result.Stats.Rows = len(rows)
	result.Stats.Items = sheet.Len()
	result.Stats.Pages = 1
	for _, country := range sheet.Trends {
		for _, cat := range country.Categories {
			result.Groups = append(result.Groups, GroupSummary{
				Page:  1,
				Name:  country.Country + " / " + cat.Category,
				Items: len(cat.Items),
			})
		}
	}
	for _, s := range []struct {
		name  string
		items []card.AnswerItem
	}{
		{card.TypeSuperPick, sheet.SuperPicks},
		{card.TypeSchedule, sheet.Schedules},
	} {
		if len(s.items) > 0 {
			result.Groups = append(result.Groups, GroupSummary{Page: 1, Name: s.name, Items: len(s.items)})
		}
	}
	result.Stats.Groups = len(result.Groups)

	observability.Pipeline().OnGroupComplete(ctx, answerSheetJob.name(), result.Stats.Groups, result.Stats.Items, result.Stats.Pages)
	opts.Logger.Info("grouped answer sheet",
		"countries", len(sheet.Trends),
		"super_picks", len(sheet.SuperPicks),
		"schedules", len(sheet.Schedules),
		"items", result.Stats.Items)

	views := []any{render.AnswerSheetView(sheet)}
	if err := r.render(ctx, opts, answerSheetJob.layout, views, result); err != nil {
		return nil, err
	}
	return result, nil
}
