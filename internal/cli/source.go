package cli

import (
	"context"

	"github.com/matzehuels/stockcards/pkg/cache"
	"github.com/matzehuels/stockcards/pkg/config"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/integrations/airtable"
	"github.com/matzehuels/stockcards/pkg/integrations/sheets"
	"github.com/matzehuels/stockcards/pkg/row"
	"github.com/matzehuels/stockcards/pkg/source"
	"github.com/matzehuels/stockcards/pkg/source/local"
)

// sourceParams carries what newSource needs besides the selection itself.
type sourceParams struct {
	cfg     config.Config
	secrets config.Secrets
	cache   cache.Cache
	keyer   cache.Keyer
	sample  string // sample table used by the "sample" backend
	refresh bool
}

// newSource builds the source sel names and a label for logs.
func newSource(ctx context.Context, sel config.SheetSource, p sourceParams) (source.Source, string, error) {
	kind, err := source.ParseKind(sel.Source)
	if err != nil {
		return nil, "", serrors.Wrap(serrors.ErrCodeInvalidSource, err, "select source")
	}

	if kind.IsFile() {
		if err := serrors.ValidatePath(sel.Input); err != nil {
			return nil, "", err
		}
	}

	switch kind {
	case source.KindCSV:
		return local.CSV(sel.Input), sel.Input, nil
	case source.KindJSON:
		return local.JSON(sel.Input), sel.Input, nil
	case source.KindSample:
		src, err := local.Sample(p.sample)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrCodeInternal, err, "load sample")
		}
		return src, "sample", nil

	case source.KindSheets:
		creds := sheets.Credentials(p.cfg.Sheets.CredentialsFile, p.secrets.CredentialsJSON)
		client, err := sheets.NewClient(ctx, p.cache, cache.TTLTable, creds...)
		if err != nil {
			return nil, "", err
		}
		client.SetKeyer(p.keyer)
		id := p.cfg.Sheets.SpreadsheetID
		ws := sheets.Worksheet{Title: sel.Worksheet, Index: sel.Index}
		return source.Func(func(ctx context.Context) (row.Table, error) {
			return client.FetchTable(ctx, id, ws, p.refresh)
		}), "sheets " + ws.String(), nil

	case source.KindAirtable:
		if p.secrets.AirtableToken == "" {
			return nil, "", serrors.New(serrors.ErrCodeMissingCredentials,
				"airtable token missing: set %s", config.EnvAirtableToken)
		}
		client := airtable.NewClient(p.cache, p.secrets.AirtableToken, cache.TTLTable)
		client.SetKeyer(p.keyer)
		base, table := p.cfg.Airtable.BaseID, p.cfg.Airtable.Table
		return source.Func(func(ctx context.Context) (row.Table, error) {
			return client.FetchTable(ctx, base, table, p.refresh)
		}), "airtable " + table, nil
	}
	return nil, "", serrors.New(serrors.ErrCodeInvalidSource, "unsupported source %q", sel.Source)
}

// openSource is newSource that, with fallback set, degrades missing
// credentials to no source so the pipeline uses its sample rows.
func (c *CLI) openSource(ctx context.Context, sel config.SheetSource, p sourceParams, fallback bool) (source.Source, string, error) {
	src, name, err := newSource(ctx, sel, p)
	if err != nil && fallback && serrors.Is(err, serrors.ErrCodeMissingCredentials) {
		c.Logger.Debug("source unavailable", "source", sel.Source, "error", serrors.UserMessage(err))
		return nil, "sample", nil
	}
	return src, name, err
}
