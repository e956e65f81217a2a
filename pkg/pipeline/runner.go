package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stockcards/pkg/cache"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/normalize"
	"github.com/matzehuels/stockcards/pkg/observability"
	"github.com/matzehuels/stockcards/pkg/render"
	"github.com/matzehuels/stockcards/pkg/row"
	"github.com/matzehuels/stockcards/pkg/source/local"
)

// Runner executes the pipelines with a screenshot cache.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// prepare applies the runner's logger and validates opts.
func (r *Runner) prepare(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// =============================================================================
// Fetch Stage
// =============================================================================

// job names what a pipeline reads.
type job struct {
	layout render.Layout
	schema row.Schema
	sample string
}

func (j job) name() string { return j.layout.Name }

// fetch reads the configured source and resolves it against the job's
// schema. When the fetch fails and opts.Fallback is set, the embedded sample
// is used instead and the second result reports it.
func (r *Runner) fetch(ctx context.Context, opts Options, j job, stats *Stats) ([]row.Row, bool, error) {
	start := time.Now()
	defer func() { stats.FetchTime = time.Since(start) }()

	if opts.Source == nil {
		opts.Logger.Warn("no source configured, using sample data", "pipeline", j.name())
		rows, err := r.sample(j)
		return rows, true, err
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, j.name(), opts.SourceName)
	t, err := opts.Source.Fetch(ctx)
	hooks.OnFetchComplete(ctx, j.name(), opts.SourceName, t.Len(), time.Since(start), err)

	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		if !opts.Fallback {
			return nil, false, serrors.Wrap(serrors.ErrCodeSourceFetch, err, "fetch %s", opts.SourceName)
		}
		opts.Logger.Warn("fetch failed, using sample data",
			"pipeline", j.name(),
			"source", opts.SourceName,
			"error", err)
		rows, err := r.sample(j)
		return rows, true, err
	}

	rows := row.Resolve(t, j.schema)
	opts.Logger.Info("fetched rows",
		"pipeline", j.name(),
		"source", opts.SourceName,
		"rows", len(rows),
		"duration", time.Since(start))
	return rows, false, nil
}

// sample loads the embedded sample table of j.
func (r *Runner) sample(j job) ([]row.Row, error) {
	src, err := local.Sample(j.sample)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInternal, err, "load sample")
	}
	t, err := src.Fetch(context.Background())
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInternal, err, "load sample")
	}
	return row.Resolve(t, j.schema), nil
}

// =============================================================================
// Render Stage
// =============================================================================

// render turns page views into artifacts for every requested format.
func (r *Runner) render(ctx context.Context, opts Options, l render.Layout, views []any, result *Result) error {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, l.Name, opts.Formats)

	err := r.renderFormats(ctx, opts, l, views, result)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, l.Name, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return err
	}

	opts.Logger.Info("rendered outputs",
		"pipeline", l.Name,
		"formats", opts.Formats,
		"files", len(result.Files),
		"duration", result.Stats.RenderTime)
	return nil
}

func (r *Runner) renderFormats(ctx context.Context, opts Options, l render.Layout, views []any, result *Result) error {
	tmpl, err := render.LoadTemplate(opts.TemplateDir, l)
	if err != nil {
		return serrors.Wrap(serrors.ErrCodeTemplate, err, "load %s template", l.Name)
	}

	pages := make([][]byte, len(views))
	for i, v := range views {
		if pages[i], err = tmpl.Render(v, result.Day); err != nil {
			return serrors.Wrap(serrors.ErrCodeTemplate, err, "render page %d", i+1)
		}
	}

	for _, format := range opts.Formats {
		var out [][]byte
		switch format {
		case FormatHTML:
			out = pages
		case FormatJSON:
			out = make([][]byte, len(views))
			for i, v := range views {
				if out[i], err = render.EncodeIndent(v); err != nil {
					return serrors.Wrap(serrors.ErrCodeRender, err, "encode page %d", i+1)
				}
			}
		case FormatPNG:
			if out, err = r.capture(ctx, opts, l, pages, &result.CacheInfo); err != nil {
				return err
			}
		default:
			return ValidateFormat(format)
		}
		r.addArtifacts(result, l, format, out)
	}
	return nil
}

func (r *Runner) addArtifacts(result *Result, l render.Layout, ext string, pages [][]byte) {
	for i, data := range pages {
		name := l.FileName(result.Day, i, len(pages), ext)
		result.Files = append(result.Files, name)
		result.Artifacts[name] = data
	}
}

// capture screenshots pages, reusing cached captures of identical HTML.
func (r *Runner) capture(ctx context.Context, opts Options, l render.Layout, pages [][]byte, info *CacheInfo) ([][]byte, error) {
	hooks := observability.Cache()
	keyOpts := cache.ArtifactKeyOpts{
		Layout: l.Name,
		Format: FormatPNG,
		Width:  l.Viewport.Width,
		Height: l.Viewport.Height,
	}

	out := make([][]byte, len(pages))
	keys := make([]string, len(pages))
	var missing []int
	for i, html := range pages {
		keys[i] = r.Keyer.ArtifactKey(cache.Hash(html), keyOpts)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, keys[i]); err == nil && hit {
				hooks.OnCacheHit(ctx, "artifact")
				out[i] = data
				info.ArtifactHits++
				continue
			}
			hooks.OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, i)
	}
	info.ArtifactMisses += len(missing)
	if len(missing) == 0 {
		opts.Logger.Debug("screenshots from cache", "pipeline", l.Name, "pages", len(pages))
		return out, nil
	}

	todo := make([][]byte, len(missing))
	for j, i := range missing {
		todo[j] = pages[i]
	}
	opts.Logger.Debug("capturing pages",
		"pipeline", l.Name,
		"pages", len(todo),
		"viewport", l.Viewport,
		"workers", opts.Workers)
	shots, err := render.CaptureAll(ctx, opts.Capturer, todo, l, opts.Workers)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, serrors.Wrap(serrors.ErrCodeRender, err, "capture %s", l.Name)
	}

	for j, i := range missing {
		out[i] = shots[j]
		if err := r.Cache.Set(ctx, keys[i], shots[j], cache.TTLArtifact); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(shots[j]))
		}
	}
	return out, nil
}

// newResult starts a result for day.
func newResult(day normalize.Day) *Result {
	return &Result{
		Day:       day,
		Artifacts: make(map[string][]byte),
	}
}
