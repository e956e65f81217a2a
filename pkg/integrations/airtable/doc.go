// Package airtable fetches the answer sheet table from the Airtable REST API.
//
// Records are listed page by page with the API's offset cursor and flattened
// into a [row.Table]. Field names become the header in first-seen order;
// multi-select and linked-record values are joined with ", ".
//
//	client := airtable.NewClient(c, os.Getenv("AIRTABLE_TOKEN"), cache.TTLTable)
//	table, err := client.FetchTable(ctx, "appA4t9o1QMTDZul7", "tbllRbqwpfEY8dV2O", false)
//
// [row.Table]: github.com/matzehuels/stockcards/pkg/row.Table
package airtable
