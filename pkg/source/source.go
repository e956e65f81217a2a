// Package source defines where the pipelines get their rows from.
//
// A [Source] delivers one [row.Table]. Network sources live in
// pkg/integrations; this package and its local subpackage cover files on
// disk and the embedded sample tables.
//
// [row.Table]: github.com/matzehuels/stockcards/pkg/row.Table
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/stockcards/pkg/row"
)

// Source fetches a table of rows.
type Source interface {
	Fetch(ctx context.Context) (row.Table, error)
}

// Func adapts a function to [Source].
type Func func(ctx context.Context) (row.Table, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context) (row.Table, error) { return f(ctx) }

// Static returns a source that always yields t.
func Static(t row.Table) Source {
	return Func(func(context.Context) (row.Table, error) { return t, nil })
}

// Kind names a source backend in configuration and flags.
type Kind string

const (
	KindSheets   Kind = "sheets"
	KindAirtable Kind = "airtable"
	KindCSV      Kind = "csv"
	KindJSON     Kind = "json"
	KindSample   Kind = "sample"
)

// Kinds lists the accepted backends.
var Kinds = []Kind{KindSheets, KindAirtable, KindCSV, KindJSON, KindSample}

// ParseKind validates a backend name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown source %q (want one of %s)", s, joinKinds())
}

// IsFile reports whether the backend reads a local file.
func (k Kind) IsFile() bool { return k == KindCSV || k == KindJSON }

func joinKinds() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
