package source

import (
	"context"
	"testing"

	"github.com/matzehuels/stockcards/pkg/row"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"sheets", KindSheets, false},
		{" Airtable ", KindAirtable, false},
		{"CSV", KindCSV, false},
		{"json", KindJSON, false},
		{"sample", KindSample, false},
		{"excel", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatic(t *testing.T) {
	want := row.Table{Header: []string{"종목명"}, Rows: [][]string{{"삼성전자"}}}
	got, err := Static(want).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 || got.Rows[0][0] != "삼성전자" {
		t.Errorf("Fetch = %+v", got)
	}
}

func TestIsFile(t *testing.T) {
	for _, k := range Kinds {
		want := k == KindCSV || k == KindJSON
		if k.IsFile() != want {
			t.Errorf("%s.IsFile() = %v", k, k.IsFile())
		}
	}
}
