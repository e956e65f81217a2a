package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	api "google.golang.org/api/sheets/v4"

	"github.com/matzehuels/stockcards/pkg/cache"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/httputil"
	"github.com/matzehuels/stockcards/pkg/integrations"
	"github.com/matzehuels/stockcards/pkg/row"
)

// Worksheet selects a tab. A non-empty Title wins over Index.
type Worksheet struct {
	Title string
	Index int
}

// String returns the title, or "#<index>" for positional selection.
func (w Worksheet) String() string {
	if w.Title != "" {
		return w.Title
	}
	return "#" + strconv.Itoa(w.Index)
}

// Client reads worksheet values.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	svc *api.Service
}

// NewClient creates a Sheets client with read-only scope. Fetched tables
// are cached for cacheTTL. opts carry credentials and, in tests, an
// endpoint override.
func NewClient(ctx context.Context, backend cache.Cache, cacheTTL time.Duration, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithScopes(api.SpreadsheetsReadonlyScope)}, opts...)
	svc, err := api.NewService(ctx, opts...)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeMissingCredentials, err, "create sheets service")
	}
	return &Client{
		Client: integrations.NewClient(backend, "sheets", cacheTTL, nil),
		svc:    svc,
	}, nil
}

// Credentials returns the client options for a service account. Inline JSON
// wins over a file path; a path value that starts with "{" is treated as
// JSON. Both empty returns nil, leaving the library's default lookup.
func Credentials(file, inline string) []option.ClientOption {
	inline = strings.TrimSpace(inline)
	file = strings.TrimSpace(file)
	if inline == "" && strings.HasPrefix(file, "{") {
		inline, file = file, ""
	}
	switch {
	case inline != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(inline))}
	case file != "":
		return []option.ClientOption{option.WithCredentialsFile(file)}
	default:
		return nil
	}
}

// FetchTable reads a worksheet of the spreadsheet.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - [integrations.ErrNotFound] if the spreadsheet or worksheet doesn't exist
//   - [integrations.ErrUnauthorized] if the service account lacks access
//   - [integrations.ErrTimeout] if ctx expires first
//   - [integrations.ErrNetwork] for other HTTP failures (5xx, connection errors)
func (c *Client) FetchTable(ctx context.Context, spreadsheetID string, ws Worksheet, refresh bool) (row.Table, error) {
	if err := serrors.ValidateSpreadsheetID(spreadsheetID); err != nil {
		return row.Table{}, err
	}
	if ws.Index < 0 {
		return row.Table{}, serrors.New(serrors.ErrCodeInvalidInput, "worksheet index %d is negative", ws.Index)
	}

	var t row.Table
	err := c.Cached(ctx, spreadsheetID+"/"+ws.String(), refresh, &t, func() error {
		return c.fetch(ctx, spreadsheetID, ws, &t)
	})
	if err != nil {
		return row.Table{}, err
	}
	return t, nil
}

func (c *Client) fetch(ctx context.Context, id string, ws Worksheet, t *row.Table) error {
	title := ws.Title
	if title == "" {
		var err error
		if title, err = c.title(ctx, id, ws.Index); err != nil {
			return err
		}
	}

	resp, err := c.svc.Spreadsheets.Values.Get(id, quote(title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return classify(ctx, fmt.Sprintf("sheet %s/%s", id, title), err)
	}
	*t = toTable(resp.Values)
	return nil
}

// title resolves a worksheet index to its title.
func (c *Client) title(ctx context.Context, id string, index int) (string, error) {
	ss, err := c.svc.Spreadsheets.Get(id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return "", classify(ctx, "spreadsheet "+id, err)
	}
	if index >= len(ss.Sheets) {
		return "", fmt.Errorf("%w: spreadsheet %s has %d worksheets, want index %d",
			integrations.ErrNotFound, id, len(ss.Sheets), index)
	}
	return ss.Sheets[index].Properties.Title, nil
}

// quote makes a title usable as an A1 range.
func quote(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// classify maps API errors onto the integrations sentinels and marks the
// transient ones for retry.
func classify(ctx context.Context, what string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", integrations.ErrTimeout, what, ctx.Err())
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %s: %v", integrations.ErrNetwork, what, err)}
	}
	switch {
	case gerr.Code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", integrations.ErrNotFound, what)
	case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %s: %s", integrations.ErrUnauthorized, what, gerr.Message)
	case gerr.Code == http.StatusTooManyRequests:
		after := integrations.RetryAfter(gerr.Header.Get("Retry-After"))
		return &httputil.RetryableError{
			Err:   &serrors.RateLimitedError{RetryAfter: int(after / time.Second), Message: what},
			After: after,
		}
	case gerr.Code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %s: status %d", integrations.ErrNetwork, what, gerr.Code)}
	default:
		return fmt.Errorf("%w: %s: %v", integrations.ErrNetwork, what, gerr)
	}
}

// toTable splits worksheet values into header and rows. The API trims
// trailing empty cells, so rows may be shorter than the header.
func toTable(values [][]any) row.Table {
	if len(values) == 0 {
		return row.Table{}
	}
	t := row.Table{Header: cells(values[0]), Rows: make([][]string, 0, len(values)-1)}
	for _, v := range values[1:] {
		t.Rows = append(t.Rows, cells(v))
	}
	return t
}

func cells(v []any) []string {
	out := make([]string, len(v))
	for i, c := range v {
		out[i] = integrations.JoinValues(c)
	}
	return out
}
