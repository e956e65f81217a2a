package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/option"

	"github.com/matzehuels/stockcards/pkg/cache"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/integrations"
	"github.com/matzehuels/stockcards/pkg/row"
)

const testSheet = "1dX8Diej7AQixm7fBrnrdUybxW2Au9QzyATYRBKZN_jk"

// fakeSheets serves a two-tab spreadsheet.
func fakeSheets(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			*calls++
		}
		prefix := "/v4/spreadsheets/" + testSheet
		switch {
		case r.URL.Path == prefix:
			json.NewEncoder(w).Encode(map[string]any{
				"sheets": []any{
					map[string]any{"properties": map[string]any{"title": "급등", "index": 0}},
					map[string]any{"properties": map[string]any{"title": "시트2", "index": 1}},
				},
			})
		case r.URL.Path == prefix+"/values/'시트2'":
			json.NewEncoder(w).Encode(map[string]any{
				"range":          "'시트2'!A1:F3",
				"majorDimension": "ROWS",
				"values": [][]any{
					{"날짜", "재료", "종목명", "등락률(%)", "거래대금(백만)", "내용"},
					{"12.04", "로봇", "레인보우로보틱스", "29.97", "123,456", "수주"},
					{"12.04", "로봇", "두산로보틱스", "10.5"},
				},
			})
		case strings.HasPrefix(r.URL.Path, prefix+"/values/"):
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 400, "message": "Unable to parse range"}})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 404, "message": "Requested entity was not found."}})
		}
	}))
}

func testClient(t *testing.T, serverURL string, c cache.Cache) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), c, time.Hour,
		option.WithEndpoint(serverURL+"/"),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestClient_FetchTableByIndex(t *testing.T) {
	server := fakeSheets(t, nil)
	defer server.Close()

	c := testClient(t, server.URL, cache.NewNullCache())
	table, err := c.FetchTable(context.Background(), testSheet, Worksheet{Index: 1}, true)
	if err != nil {
		t.Fatalf("FetchTable failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("rows = %d, want 2", table.Len())
	}

	rows := row.Resolve(table, row.RankingSchema)
	want := []string{"레인보우로보틱스", "두산로보틱스"}
	var got []string
	for _, r := range rows {
		got = append(got, r.Name)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
	if rows[1].Volume != "" || rows[1].Text != "" {
		t.Errorf("short row should resolve missing cells to empty: %+v", rows[1])
	}
}

func TestClient_FetchTableByTitle(t *testing.T) {
	calls := 0
	server := fakeSheets(t, &calls)
	defer server.Close()

	c := testClient(t, server.URL, cache.NewNullCache())
	if _, err := c.FetchTable(context.Background(), testSheet, Worksheet{Title: "시트2"}, true); err != nil {
		t.Fatal(err)
	}
	// A title skips the metadata lookup.
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestClient_FetchTableCached(t *testing.T) {
	calls := 0
	server := fakeSheets(t, &calls)
	defer server.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := testClient(t, server.URL, fc)
	for range 2 {
		if _, err := c.FetchTable(context.Background(), testSheet, Worksheet{Title: "시트2"}, false); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestClient_FetchTableIndexOutOfRange(t *testing.T) {
	server := fakeSheets(t, nil)
	defer server.Close()

	c := testClient(t, server.URL, cache.NewNullCache())
	_, err := c.FetchTable(context.Background(), testSheet, Worksheet{Index: 5}, true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_FetchTableMissingSpreadsheet(t *testing.T) {
	server := fakeSheets(t, nil)
	defer server.Close()

	c := testClient(t, server.URL, cache.NewNullCache())
	_, err := c.FetchTable(context.Background(), "1zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", Worksheet{}, true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClassifyDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := classify(ctx, "values", errors.New("request aborted"))
	if !serrors.Is(err, serrors.ErrCodeTimeout) {
		t.Errorf("classify() = %v, want TIMEOUT", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("classify() = %v, want it to wrap context.DeadlineExceeded", err)
	}

	canceled, stop := context.WithCancel(context.Background())
	stop()
	if err := classify(canceled, "values", errors.New("request aborted")); !errors.Is(err, context.Canceled) {
		t.Errorf("classify(canceled) = %v, want context.Canceled", err)
	}
}

func TestClient_FetchTableInvalidInput(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:0", cache.NewNullCache())
	if _, err := c.FetchTable(context.Background(), "short", Worksheet{}, true); !serrors.Is(err, serrors.ErrCodeInvalidID) {
		t.Errorf("short id: err = %v", err)
	}
	if _, err := c.FetchTable(context.Background(), testSheet, Worksheet{Index: -1}, true); !serrors.Is(err, serrors.ErrCodeInvalidInput) {
		t.Errorf("negative index: err = %v", err)
	}
}

func TestCredentials(t *testing.T) {
	if got := Credentials("", ""); got != nil {
		t.Errorf("no credentials = %v, want nil", got)
	}
	if got := Credentials("/path/key.json", ""); len(got) != 1 {
		t.Errorf("file credentials = %v", got)
	}
	if got := Credentials(`{"type":"service_account"}`, ""); len(got) != 1 {
		t.Errorf("json in path = %v", got)
	}
	if got := Credentials("/path/key.json", `{"type":"service_account"}`); len(got) != 1 {
		t.Errorf("inline credentials = %v", got)
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"시트2":      "'시트2'",
		"Bob's tab": "'Bob''s tab'",
	}
	for in, want := range tests {
		if got := quote(in); got != want {
			t.Errorf("quote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToTable(t *testing.T) {
	table := toTable([][]any{{"a", "b"}, {"1"}, {}})
	if !reflect.DeepEqual(table.Header, []string{"a", "b"}) {
		t.Errorf("header = %v", table.Header)
	}
	if table.Len() != 2 {
		t.Errorf("rows = %d, want 2", table.Len())
	}
	if empty := toTable(nil); empty.Len() != 0 || empty.Header != nil {
		t.Errorf("toTable(nil) = %+v", empty)
	}
}

func TestWorksheetString(t *testing.T) {
	if got := (Worksheet{Title: "급등"}).String(); got != "급등" {
		t.Errorf("title = %q", got)
	}
	if got := (Worksheet{Index: 1}).String(); got != "#1" {
		t.Errorf("index = %q", got)
	}
}
