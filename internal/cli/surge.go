package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stockcards/pkg/config"
	"github.com/matzehuels/stockcards/pkg/group"
	"github.com/matzehuels/stockcards/pkg/pipeline"
	"github.com/matzehuels/stockcards/pkg/source/local"
)

// surgeCommand creates the surge command for rendering the surge cards.
func (c *CLI) surgeCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "surge",
		Short: "Render the day's surge cards grouped by theme",
		Long: `Render the day's surge cards grouped by theme.

Rows of one trading day are read from the surge sheet: --date selects the
day, otherwise the latest date in the sheet is used. Theme stocks are grouped
under their theme headline and individual stocks share cards of their own.
Cards are laid out six to a page by default.

Examples:
  stockcards surge
  stockcards surge --date 12.03 --format html,png
  stockcards surge --input surge.csv --output out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSurge(cmd, &flags)
		},
	}

	flags.bind(cmd, "sheets (default), csv, json, sample", true)

	return cmd
}

func (c *CLI) runSurge(cmd *cobra.Command, flags *runFlags) error {
	ctx := cmd.Context()
	env, err := c.setup(ctx, config.PipelineSurge, func(cfg *config.Config) {
		flags.applySource(cmd, &cfg.Surge.SheetSource)
		flags.applyOutput(&cfg.Output)
	})
	if err != nil {
		return err
	}
	defer env.runner.Close()

	src, name, err := c.openSource(ctx, env.cfg.Surge.SheetSource, env.sourceParams(local.SampleSurge, flags), flags.fallback)
	if err != nil {
		return err
	}

	opts := env.options(c, flags)
	opts.Source = src
	opts.SourceName = name
	opts.Limits = group.Limits{
		StocksPerCard:     env.cfg.Surge.StocksPerCard,
		IndividualPerCard: env.cfg.Surge.IndividualPerCard,
	}
	opts.CardsPerPage = env.cfg.Surge.CardsPerPage

	return c.execute(ctx, "surge cards", env.cfg.Output.Dir, func(ctx context.Context) (*pipeline.Result, error) {
		return env.runner.Surge(ctx, opts)
	})
}
