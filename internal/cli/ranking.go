package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stockcards/pkg/config"
	"github.com/matzehuels/stockcards/pkg/group"
	"github.com/matzehuels/stockcards/pkg/normalize"
	"github.com/matzehuels/stockcards/pkg/pipeline"
	"github.com/matzehuels/stockcards/pkg/source/local"
)

// rankingCommand creates the ranking command for rendering the change-rate ranking.
func (c *CLI) rankingCommand() *cobra.Command {
	var (
		flags      runFlags
		dateSource string
	)

	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Render the change-rate ranking grouped by material",
		Long: `Render the change-rate ranking grouped by material.

Every row of the ranking sheet is used. Stocks sharing a material are grouped
and colored together; groups are packed onto pages without being split.
Commentary from another day than --date (default today) is prefixed with its
date, read from the text itself (content) or from the date column (column).

Examples:
  stockcards ranking
  stockcards ranking --date-source column --format json
  stockcards ranking --source sample --output out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRanking(cmd, &flags, dateSource)
		},
	}

	flags.bind(cmd, "sheets (default), csv, json, sample", true)
	cmd.Flags().StringVar(&dateSource, "date-source", "", "where commentary dates come from: content (default), column")

	return cmd
}

func (c *CLI) runRanking(cmd *cobra.Command, flags *runFlags, dateSource string) error {
	ctx := cmd.Context()
	env, err := c.setup(ctx, config.PipelineRanking, func(cfg *config.Config) {
		flags.applySource(cmd, &cfg.Ranking.SheetSource)
		flags.applyOutput(&cfg.Output)
		if dateSource != "" {
			cfg.Ranking.DateSource = dateSource
		}
	})
	if err != nil {
		return err
	}
	defer env.runner.Close()

	src, name, err := c.openSource(ctx, env.cfg.Ranking.SheetSource, env.sourceParams(local.SampleRanking, flags), flags.fallback)
	if err != nil {
		return err
	}

	// Validate has accepted the value.
	ds, _ := normalize.ParseDateSource(env.cfg.Ranking.DateSource)

	opts := env.options(c, flags)
	opts.Source = src
	opts.SourceName = name
	opts.StocksPerPage = env.cfg.Ranking.StocksPerPage
	opts.DateSource = ds
	opts.Palette = group.Palette{
		Colors: env.cfg.Ranking.Palette,
		Single: env.cfg.Ranking.SingleColor,
	}

	return c.execute(ctx, "ranking", env.cfg.Output.Dir, func(ctx context.Context) (*pipeline.Result, error) {
		return env.runner.Ranking(ctx, opts)
	})
}
