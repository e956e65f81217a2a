// Package pkg provides the libraries behind the stockcards card generator.
//
// # Overview
//
// Stockcards reads the day's Korean market sheets and renders them as image
// cards. The pkg directory is organized into these areas:
//
//  1. [row], [normalize], [card] - Domain model (rows, cell cleanup, card items)
//  2. [group], [paginate] - Grouping and page layout
//  3. [render] - Views, HTML templates and screenshots
//  4. [source], [integrations] - Where rows come from (files, Sheets, Airtable)
//  5. [cache], [config], [errors], [observability] - Infrastructure
//  6. [pipeline] - Orchestration (fetch → group → paginate → render)
//
// # Architecture
//
// The data flow of every pipeline:
//
//	Google Sheets / Airtable / CSV / JSON
//	         ↓
//	    [source] package (row.Table)
//	         ↓
//	    [row] package (schema resolution)
//	         ↓
//	    [card] + [group] packages (surge cards, materials, countries)
//	         ↓
//	    [paginate] package (pages)
//	         ↓
//	    [render] package (HTML, JSON, PNG)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	src, _ := local.Sample(local.SampleSurge)
//	result, err := runner.Surge(ctx, pipeline.Options{
//	    Source:  src,
//	    Formats: []string{pipeline.FormatHTML},
//	})
//	for _, name := range result.Files {
//	    os.WriteFile(name, result.Artifacts[name], 0o644)
//	}
//
// [row]: github.com/matzehuels/stockcards/pkg/row
// [normalize]: github.com/matzehuels/stockcards/pkg/normalize
// [card]: github.com/matzehuels/stockcards/pkg/card
// [group]: github.com/matzehuels/stockcards/pkg/group
// [paginate]: github.com/matzehuels/stockcards/pkg/paginate
// [render]: github.com/matzehuels/stockcards/pkg/render
// [source]: github.com/matzehuels/stockcards/pkg/source
// [integrations]: github.com/matzehuels/stockcards/pkg/integrations
// [cache]: github.com/matzehuels/stockcards/pkg/cache
// [config]: github.com/matzehuels/stockcards/pkg/config
// [errors]: github.com/matzehuels/stockcards/pkg/errors
// [observability]: github.com/matzehuels/stockcards/pkg/observability
// [pipeline]: github.com/matzehuels/stockcards/pkg/pipeline
package pkg
