package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stockcards/pkg/config"
	"github.com/matzehuels/stockcards/pkg/pipeline"
	"github.com/matzehuels/stockcards/pkg/source/local"
)

// answerSheetCommand creates the answersheet command.
func (c *CLI) answerSheetCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:     "answersheet",
		Aliases: []string{"answer"},
		Short:   "Render the answer sheet grouped by country",
		Long: `Render the answer sheet grouped by country.

Trend items are grouped by country, in the configured priority order, and
then by category. Super picks and scheduled trades get sections of their own.
The sheet is always a single page.

Examples:
  stockcards answersheet
  stockcards answersheet --input answers.json --format html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnswerSheet(cmd, &flags)
		},
	}

	flags.bind(cmd, "airtable (default), csv, json, sample", false)

	return cmd
}

func (c *CLI) runAnswerSheet(cmd *cobra.Command, flags *runFlags) error {
	ctx := cmd.Context()
	env, err := c.setup(ctx, config.PipelineAnswerSheet, func(cfg *config.Config) {
		sel := config.SheetSource{Source: cfg.AnswerSheet.Source, Input: cfg.AnswerSheet.Input}
		flags.applySource(cmd, &sel)
		cfg.AnswerSheet.Source, cfg.AnswerSheet.Input = sel.Source, sel.Input
		flags.applyOutput(&cfg.Output)
	})
	if err != nil {
		return err
	}
	defer env.runner.Close()

	sel := config.SheetSource{Source: env.cfg.AnswerSheet.Source, Input: env.cfg.AnswerSheet.Input}
	src, name, err := c.openSource(ctx, sel, env.sourceParams(local.SampleAnswerSheet, flags), flags.fallback)
	if err != nil {
		return err
	}

	opts := env.options(c, flags)
	opts.Source = src
	opts.SourceName = name
	opts.Priority = env.cfg.AnswerSheet.CountryPriority

	return c.execute(ctx, "answer sheet", env.cfg.Output.Dir, func(ctx context.Context) (*pipeline.Result, error) {
		return env.runner.AnswerSheet(ctx, opts)
	})
}
