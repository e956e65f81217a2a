package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/stockcards/pkg/cache"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/integrations"
	"github.com/matzehuels/stockcards/pkg/row"
)

const testBase = "appA4t9o1QMTDZul7"

func TestClient_FetchTable(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/"+testBase+"/답안지" {
			http.NotFound(w, r)
			return
		}
		switch r.URL.Query().Get("offset") {
		case "":
			json.NewEncoder(w).Encode(listResponse{
				Records: []record{
					{ID: "rec1", Fields: map[string]any{"종목명": "삼성전자", "국가": "한국", "답안지유형": []any{"시대흐름", "슈퍼픽"}}},
				},
				Offset: "itr2",
			})
		case "itr2":
			json.NewEncoder(w).Encode(listResponse{
				Records: []record{
					{ID: "rec2", Fields: map[string]any{"종목명": "NVIDIA", "편입일": "2025-12-01"}},
				},
			})
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	table, err := c.FetchTable(context.Background(), testBase, "답안지", true)
	if err != nil {
		t.Fatalf("FetchTable failed: %v", err)
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q", auth)
	}

	wantHeader := []string{"국가", "답안지유형", "종목명", "편입일"}
	if !reflect.DeepEqual(table.Header, wantHeader) {
		t.Errorf("header = %v, want %v", table.Header, wantHeader)
	}
	if table.Len() != 2 {
		t.Fatalf("rows = %d, want 2", table.Len())
	}

	rows := row.Resolve(table, row.AnswerSheetSchema)
	if rows[0].Name != "삼성전자" || rows[0].Type != "시대흐름, 슈퍼픽" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Name != "NVIDIA" || rows[1].Country != "" || rows[1].Date != "2025-12-01" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestClient_FetchTable_Cached(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(listResponse{Records: []record{{Fields: map[string]any{"종목명": "a"}}}})
	}))
	defer server.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(fc, "secret", time.Hour).WithBaseURL(server.URL)

	for range 2 {
		if _, err := c.FetchTable(context.Background(), testBase, "tbl", false); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1", calls)
	}
}

func TestClient_FetchTable_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.FetchTable(context.Background(), testBase, "missing", true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchTable_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.FetchTable(context.Background(), testBase, "tbl", true)
	if !errors.Is(err, integrations.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_FetchTable_InvalidIDs(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:0")
	tests := []struct {
		name, base, table string
	}{
		{"bad base", "tbl123", "tbl"},
		{"table with slash", testBase, "a/b"},
		{"empty table", testBase, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.FetchTable(context.Background(), tt.base, tt.table, true)
			if !serrors.Is(err, serrors.ErrCodeInvalidID) {
				t.Errorf("err = %v, want INVALID_ID", err)
			}
		})
	}
}

func TestToTableEmpty(t *testing.T) {
	table := toTable(nil)
	if table.Len() != 0 || len(table.Header) != 0 {
		t.Errorf("toTable(nil) = %+v", table)
	}
}

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return NewClient(cache.NewNullCache(), "secret", time.Hour).WithBaseURL(serverURL)
}
