package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stockcards/pkg/cache"
	"github.com/matzehuels/stockcards/pkg/config"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/pipeline"
	"github.com/matzehuels/stockcards/pkg/render"
)

// =============================================================================
// Flags
// =============================================================================

// runFlags are the flags shared by the pipeline commands. Values left unset
// keep the configuration.
type runFlags struct {
	source    string
	input     string
	worksheet string
	index     int
	formats   string
	output    string
	date      string
	fallback  bool
	refresh   bool
}

// bind registers the flags on cmd. Worksheet flags are only meaningful for
// the sheets backend and are skipped when worksheets is false.
func (f *runFlags) bind(cmd *cobra.Command, sources string, worksheets bool) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "row source: "+sources)
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input file for the csv and json sources")
	if worksheets {
		cmd.Flags().StringVar(&f.worksheet, "worksheet", "", "worksheet title (sheets)")
		cmd.Flags().IntVar(&f.index, "worksheet-index", 0, "worksheet position, used without --worksheet (sheets)")
	}
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): html, json, png (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output directory")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "trading day, e.g. 2025.12.03 or 12.03")
	cmd.Flags().BoolVar(&f.fallback, "fallback", false, "use the built-in sample rows when the source has none")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached tables and screenshots")
}

// applySource overrides sel with the source flags that were set.
func (f *runFlags) applySource(cmd *cobra.Command, sel *config.SheetSource) {
	if f.source != "" {
		sel.Source = strings.ToLower(f.source)
	}
	if f.input != "" {
		sel.Input = f.input
		if f.source == "" {
			sel.Source = kindFromPath(f.input, sel.Source)
		}
	}
	if f.worksheet != "" {
		sel.Worksheet = f.worksheet
	}
	if cmd.Flags().Changed("worksheet-index") {
		sel.Index = f.index
		sel.Worksheet = f.worksheet
	}
}

// applyOutput overrides out with the output flags that were set.
func (f *runFlags) applyOutput(out *config.OutputConfig) {
	if f.output != "" {
		out.Dir = f.output
	}
	if f.formats != "" {
		out.Formats = parseFormats(f.formats)
	}
}

// kindFromPath infers the file backend from the extension of path.
func kindFromPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	}
	return fallback
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Run Environment
// =============================================================================

// runEnv is everything a pipeline command needs once configuration is final.
type runEnv struct {
	cfg     config.Config
	secrets config.Secrets
	cache   cache.Cache
	keyer   cache.Keyer
	runner  *pipeline.Runner
}

// setup loads the configuration, lets override apply the command's flags,
// validates the result for the pipeline and opens the cache. The caller
// closes env.runner.
func (c *CLI) setup(ctx context.Context, pipelineName string, override func(*config.Config)) (*runEnv, error) {
	cfg, secrets, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	override(&cfg)
	if err := cfg.ValidatePipeline(pipelineName); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "invalid configuration")
	}

	backend, err := c.newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	keyer := newKeyer(cfg.Cache)
	installHooks(c.Logger)

	return &runEnv{
		cfg:     cfg,
		secrets: secrets,
		cache:   backend,
		keyer:   keyer,
		runner:  pipeline.NewRunner(backend, keyer, c.Logger),
	}, nil
}

// sourceParams returns the source parameters for a pipeline reading the
// named sample table.
func (e *runEnv) sourceParams(sample string, f *runFlags) sourceParams {
	return sourceParams{
		cfg:     e.cfg,
		secrets: e.secrets,
		cache:   e.cache,
		keyer:   e.keyer,
		sample:  sample,
		refresh: f.refresh,
	}
}

// options returns the pipeline options common to all commands.
func (e *runEnv) options(c *CLI, f *runFlags) pipeline.Options {
	return pipeline.Options{
		Fallback:    f.fallback,
		Date:        f.date,
		Formats:     e.cfg.Output.Formats,
		TemplateDir: e.cfg.Render.TemplateDir,
		Capturer: &render.Chrome{
			Binary:    e.cfg.Render.Browser,
			NoSandbox: e.cfg.Render.NoSandbox,
		},
		Workers: e.cfg.Render.Workers,
		Refresh: f.refresh,
		Logger:  c.Logger,
	}
}

// =============================================================================
// Execution
// =============================================================================

// execute runs one pipeline behind a spinner and writes its artifacts.
func (c *CLI) execute(ctx context.Context, what, dir string, run func(context.Context) (*pipeline.Result, error)) error {
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", what))
	spinner.Start()

	result, err := run(ctx)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError(fmt.Sprintf("Rendering %s failed", what))
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(dir, result)
	if err != nil {
		return err
	}
	prog.done("Rendered " + what)

	printResult(what, result, paths)
	return nil
}

// writeArtifacts writes the result's files into dir in result order.
func writeArtifacts(dir string, result *pipeline.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(result.Files))
	for _, name := range result.Files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, result.Artifacts[name], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
