// Package sheets reads worksheets through the Google Sheets API v4.
//
// A worksheet is addressed by title or, when the title is empty, by its
// position in the spreadsheet (0 is the first tab). The first row of the
// worksheet becomes the [row.Table] header; the remaining rows are returned
// as formatted cell strings, so dates and percentages arrive exactly as they
// are displayed in the sheet.
//
// Credentials come from a service account file or inline JSON:
//
//	opts := sheets.Credentials(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), "")
//	client, err := sheets.NewClient(ctx, c, cache.TTLTable, opts...)
//	table, err := client.FetchTable(ctx, spreadsheetID, sheets.Worksheet{Index: 1}, false)
//
// [row.Table]: github.com/matzehuels/stockcards/pkg/row.Table
package sheets
