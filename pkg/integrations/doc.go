// Package integrations provides HTTP clients for the table APIs that hold
// the daily stock sheets.
//
// Each service has its own subpackage:
//
//   - [airtable]: the answer sheet base (REST, offset pagination)
//   - [sheets]: the surge and ranking worksheets (Google Sheets API v4)
//
// Both return a [row.Table]: a header row plus string cells, which the
// pipelines resolve against a [row.Schema].
//
// # Shared Infrastructure
//
// [Client] provides JSON GET requests with default headers, status mapping
// ([ErrNotFound], [ErrUnauthorized], [ErrNetwork], rate limits), retry via
// [httputil.Retry], and response caching via [cache.Cache]:
//
//	client := airtable.NewClient(c, token, cache.TTLTable)
//	table, err := client.FetchTable(ctx, base, "답안지", false)  // false = use cache
//
// [airtable]: github.com/matzehuels/stockcards/pkg/integrations/airtable
// [sheets]: github.com/matzehuels/stockcards/pkg/integrations/sheets
// [row.Table]: github.com/matzehuels/stockcards/pkg/row.Table
// [row.Schema]: github.com/matzehuels/stockcards/pkg/row.Schema
// [httputil.Retry]: github.com/matzehuels/stockcards/pkg/httputil.Retry
// [cache.Cache]: github.com/matzehuels/stockcards/pkg/cache.Cache
package integrations
