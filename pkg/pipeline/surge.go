package pipeline

import (
	"context"
	"time"

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

var surgeJob = job{
	layout: render.SurgeLayout,
	schema: row.SurgeSchema,
	sample: local.SampleSurge,
}

// Surge renders the surge cards of one day.
//
// The day is opts.Date or, when empty, the latest date in the sheet. Theme
// rows are grouped by group name and individual rows share a pool; cards
// are laid out opts.CardsPerPage to a page.
func (r *Runner) Surge(ctx context.Context, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}

	var stats Stats
	rows, sample, err := r.fetch(ctx, opts, surgeJob, &stats)
	if err != nil {
		return nil, err
	}

	target := opts.Date
	if sample {
		target = local.SampleDate
	}
	now := opts.Now()
	day, selected := SelectDay(rows, target, now)
	if len(selected) == 0 && opts.Fallback && !sample {
		opts.Logger.Warn("no rows for date, using sample data", "date", day.Long())
		if rows, err = r.sample(surgeJob); err != nil {
			return nil, err
		}
		day, selected = SelectDay(rows, local.SampleDate, now)
		sample = true
	}
	if len(selected) == 0 {
		return nil, serrors.New(serrors.ErrCodeNoData, "no surge rows for %s", day.Long())
	}

	cards := group.Cards(group.Themes(card.SurgeEntries(selected)), opts.Limits)
	pages := paginate.Chunk(cards, opts.CardsPerPage)

	result := newResult(day)
	result.Sample = sample
	result.Stats = stats
	result.Stats.Rows = len(selected)
	result.Stats.Items = card.StockCount(cards)
	result.Stats.Groups = len(cards)
	result.Stats.Pages = len(pages)

	views := make([]any, len(pages))
	for i, page := range pages {
		views[i] = render.SurgeView(page)
		for _, c := range page {
			result.Groups = append(result.Groups, GroupSummary{Page: i + 1, Name: c.GroupName, Items: len(c.Stocks)})
		}
	}

	observability.Pipeline().OnGroupComplete(ctx, surgeJob.name(), result.Stats.Groups, result.Stats.Items, result.Stats.Pages)
	opts.Logger.Info("grouped cards",
		"date", day.Long(),
		"rows", result.Stats.Rows,
		"cards", result.Stats.Groups,
		"stocks", result.Stats.Items,
		"pages", result.Stats.Pages)

	if err := r.render(ctx, opts, surgeJob.layout, views, result); err != nil {
		return nil, err
	}
	return result, nil
}

// SelectDay picks the rows of one day.
//
// A non-empty target selects that day; a year-less target falls in the year
// of now. An empty target selects the latest date found in the rows, and the
// current day when no row has a readable date. Year-less cells match the
// selected day on month and day alone; cells with a year must match exactly.
func SelectDay(rows []row.Row, target string, now time.Time) (normalize.Day, []row.Row) {
	day, ok := normalize.ParseDate(target)
	if ok {
		day = day.InYear(now.Year())
	} else {
		day, ok = latestDay(rows, now.Year())
		if !ok {
			day = normalize.DayOf(now)
		}
	}

	var out []row.Row
	for _, r := range rows {
		if d, ok := normalize.ParseDate(r.Date); ok && sameDay(d, day) {
			out = append(out, r)
		}
	}
	return day, out
}

func latestDay(rows []row.Row, year int) (normalize.Day, bool) {
	var (
		latest normalize.Day
		found  bool
	)
	for _, r := range rows {
		d, ok := normalize.ParseDate(r.Date)
		if !ok {
			continue
		}
		d = d.InYear(year)
		if !found || latest.Before(d) {
			latest, found = d, true
		}
	}
	return latest, found
}

func sameDay(cell, day normalize.Day) bool {
	if cell.HasYear && cell.Year != day.Year {
		return false
	}
	return cell.Month == day.Month && cell.Day == day.Day
}
