// Package pipeline runs the three stock-card pipelines.
//
// Every pipeline has the same shape:
//
//  1. Fetch: read a table from a [source.Source] and resolve it into rows
//  2. Group: normalize the rows into items and group them
//  3. Paginate: split the groups into pages
//  4. Render: inject each page into its HTML template and capture it
//
// The fetch and render stages are the only ones that can fail. Grouping and
// pagination are pure functions from the group and paginate packages.
//
// # Usage
//
// Create a Runner and run one of the pipelines:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  src,
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Surge(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, name := range result.Files {
//	    os.WriteFile(name, result.Artifacts[name], 0o644)
//	}
//
// PNG pages are cached by the hash of their HTML, so an unchanged sheet is
// captured only once.
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/group"
	"github.com/matzehuels/stockcards/pkg/normalize"
	"github.com/matzehuels/stockcards/pkg/paginate"
	"github.com/matzehuels/stockcards/pkg/render"
	"github.com/matzehuels/stockcards/pkg/source"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultWorkers is the number of pages captured at the same time.
const DefaultWorkers = 2

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatJSON: true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the configuration of one pipeline run. Fields a pipeline
// does not use are ignored.
type Options struct {
	// Source options
	Source     source.Source
	SourceName string // shown in logs and hooks
	Fallback   bool   // use the embedded sample when the source has nothing
	Date       string // surge: the day to select; others: the reference day
	Now        func() time.Time

	// Grouping options
	Limits        group.Limits         // surge card sizes
	CardsPerPage  int                  // surge
	StocksPerPage int                  // ranking page capacity
	Palette       group.Palette        // ranking colors
	DateSource    normalize.DateSource // ranking commentary dates
	Priority      []string             // answer sheet country order

	// Render options
	Formats     []string
	TemplateDir string
	Capturer    render.Capturer
	Workers     int
	Refresh     bool // ignore cached screenshots

	// Runtime options
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Day is the date shown on the pages and used in the file names.
	Day normalize.Day

	// Files lists the artifact names in output order: per format, page by page.
	Files []string

	// Artifacts contains rendered outputs keyed by file name.
	Artifacts map[string][]byte

	// Groups summarizes the groups in page order.
	Groups []GroupSummary

	// Sample reports that the embedded sample data was used.
	Sample bool

	// Stats contains counts and timings.
	Stats Stats

	// CacheInfo tracks screenshot cache use.
	CacheInfo CacheInfo
}

// GroupSummary describes one group of a result.
type GroupSummary struct {
	Page  int // 1-based
	Name  string
	Items int
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Items      int
	Groups     int
	Pages      int
	FetchTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo counts screenshot cache hits and misses.
type CacheInfo struct {
	ArtifactHits   int
	ArtifactMisses int
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return serrors.New(serrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: html, json, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == nil && !o.Fallback {
		return serrors.New(serrors.ErrCodeInvalidSource, "no source configured")
	}
	if o.Date != "" {
		if _, ok := normalize.ParseDate(o.Date); !ok {
			return serrors.New(serrors.ErrCodeInvalidDate, "invalid date: %q (want YYYY.MM.DD or MM.DD)", o.Date)
		}
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Limits.StocksPerCard <= 0 {
		o.Limits.StocksPerCard = group.DefaultLimits.StocksPerCard
	}
	if o.Limits.IndividualPerCard <= 0 {
		o.Limits.IndividualPerCard = group.DefaultLimits.IndividualPerCard
	}
	if o.CardsPerPage <= 0 {
		o.CardsPerPage = paginate.CardsPerPage
	}
	if o.StocksPerPage <= 0 {
		o.StocksPerPage = paginate.StocksPerPage
	}
	if len(o.Palette.Colors) == 0 {
		o.Palette.Colors = group.DefaultPalette.Colors
	}
	if o.Palette.Single == "" {
		o.Palette.Single = group.DefaultPalette.Single
	}
	if o.Priority == nil {
		o.Priority = group.DefaultPriority
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Capturer == nil && slices.Contains(o.Formats, FormatPNG) {
		o.Capturer = &render.Chrome{}
	}
	if o.SourceName == "" {
		o.SourceName = "source"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// today returns the reference day: Date when set, otherwise the current day.
// A year-less Date falls in the current year.
func (o *Options) today() time.Time {
	now := o.Now()
	d, ok := normalize.ParseDate(o.Date)
	if !ok {
		return now
	}
	d = d.InYear(now.Year())
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, now.Location())
}
