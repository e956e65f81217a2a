package airtable

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/matzehuels/stockcards/pkg/cache"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/integrations"
	"github.com/matzehuels/stockcards/pkg/row"
)

// DefaultBaseURL is the Airtable REST endpoint.
const DefaultBaseURL = "https://api.airtable.com/v0"

// maxPages caps the offset loop; at 100 records per page this is far above
// any answer sheet.
const maxPages = 100

// Client lists Airtable records.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an Airtable client authenticating with a personal
// access token. Fetched tables are cached for cacheTTL.
func NewClient(backend cache.Cache, token string, cacheTTL time.Duration) *Client {
	return &Client{
		Client: integrations.NewClient(backend, "airtable", cacheTTL, map[string]string{
			"Authorization": "Bearer " + token,
		}),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL points the client at another endpoint (a proxy or a test server).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// FetchTable lists every record of table in base.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - [integrations.ErrNotFound] if the base or table doesn't exist
//   - [integrations.ErrUnauthorized] if the token is rejected
//   - [integrations.ErrTimeout] if the request outlives its deadline
//   - [integrations.ErrNetwork] for other HTTP failures (5xx, connection errors)
func (c *Client) FetchTable(ctx context.Context, base, table string, refresh bool) (row.Table, error) {
	if err := serrors.ValidateAirtableBase(base); err != nil {
		return row.Table{}, err
	}
	if err := serrors.ValidateIdentifier("airtable table", table); err != nil {
		return row.Table{}, err
	}

	var t row.Table
	err := c.Cached(ctx, base+"/"+table, refresh, &t, func() error {
		return c.fetch(ctx, base, table, &t)
	})
	if err != nil {
		return row.Table{}, err
	}
	return t, nil
}

func (c *Client) fetch(ctx context.Context, base, table string, t *row.Table) error {
	var records []record
	offset := ""
	for range maxPages {
		endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(base), url.PathEscape(table))
		if offset != "" {
			endpoint += "?offset=" + url.QueryEscape(offset)
		}

		var page listResponse
		if err := c.Get(ctx, endpoint, &page); err != nil {
			return fmt.Errorf("airtable %s/%s: %w", base, table, err)
		}
		records = append(records, page.Records...)
		if page.Offset == "" {
			*t = toTable(records)
			return nil
		}
		offset = page.Offset
	}
	return fmt.Errorf("airtable %s/%s: more than %d pages", base, table, maxPages)
}

type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset"`
}

type record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// toTable flattens records into a table. Columns appear in the order their
// field names are first seen; the API omits empty fields, so a record may
// introduce a new column late.
func toTable(records []record) row.Table {
	var header []string
	index := make(map[string]int)
	for _, r := range records {
		// Map iteration order is random; sort the new names of each record so
		// the header is deterministic.
		var fresh []string
		for name := range r.Fields {
			if _, ok := index[name]; !ok {
				fresh = append(fresh, name)
			}
		}
		slices.Sort(fresh)
		for _, name := range fresh {
			index[name] = len(header)
			header = append(header, name)
		}
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		cells := make([]string, len(header))
		for name, v := range r.Fields {
			cells[index[name]] = integrations.JoinValues(v)
		}
		rows = append(rows, cells)
	}
	return row.Table{Header: header, Rows: rows}
}
