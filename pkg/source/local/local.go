// Package local reads row tables from files and from the samples embedded
// in the binary.
//
// CSV files are read with the first record as the header; a UTF-8 byte
// order mark (as written by spreadsheet exports) is dropped. JSON files hold
// an array of objects; keys become the header in the order they are first
// seen, and array values are joined with ", ".
package local

import (
	"bytes"
	"context"
	"embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stockcards/pkg/integrations"
	"github.com/matzehuels/stockcards/pkg/row"
	"github.com/matzehuels/stockcards/pkg/source"
)

// Sample names.
const (
	SampleSurge       = "surge"
	SampleRanking     = "ranking"
	SampleAnswerSheet = "answersheet"
)

// SampleDate is the trading day the surge sample was taken on.
const SampleDate = "2025.12.03"

//go:embed samples/*.csv
var samples embed.FS

var bom = []byte("\xef\xbb\xbf")

// CSV returns a source reading the CSV file at path.
func CSV(path string) source.Source {
	return source.Func(func(ctx context.Context) (row.Table, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return row.Table{}, err
		}
		t, err := ParseCSV(data)
		if err != nil {
			return row.Table{}, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	})
}

// JSON returns a source reading the JSON file at path.
func JSON(path string) source.Source {
	return source.Func(func(ctx context.Context) (row.Table, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return row.Table{}, err
		}
		t, err := ParseJSON(data)
		if err != nil {
			return row.Table{}, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	})
}

// Sample returns a source for the named embedded sample table.
func Sample(name string) (source.Source, error) {
	data, err := samples.ReadFile("samples/" + name + ".csv")
	if err != nil {
		return nil, fmt.Errorf("unknown sample %q", name)
	}
	t, err := ParseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", name, err)
	}
	return source.Static(t), nil
}

// ParseCSV splits CSV data into header and rows. Records may have any
// number of fields.
func ParseCSV(data []byte) (row.Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, bom)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return row.Table{}, nil
	}
	if err != nil {
		return row.Table{}, err
	}
	t := row.Table{Header: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return row.Table{}, err
		}
		t.Rows = append(t.Rows, rec)
	}
}

// ParseJSON reads an array of flat objects, keeping key order.
func ParseJSON(data []byte) (row.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, bom)))
	dec.UseNumber()
	if err := expect(dec, json.Delim('[')); err != nil {
		return row.Table{}, err
	}

	var t row.Table
	index := make(map[string]int)
	var records []map[int]string
	for dec.More() {
		rec, err := readObject(dec, func(key string) int {
			i, ok := index[key]
			if !ok {
				i = len(t.Header)
				index[key] = i
				t.Header = append(t.Header, key)
			}
			return i
		})
		if err != nil {
			return row.Table{}, err
		}
		records = append(records, rec)
	}
	if err := expect(dec, json.Delim(']')); err != nil {
		return row.Table{}, err
	}

	for _, rec := range records {
		cells := make([]string, len(t.Header))
		for i, v := range rec {
			cells[i] = v
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

func readObject(dec *json.Decoder, column func(string) int) (map[int]string, error) {
	if err := expect(dec, json.Delim('{')); err != nil {
		return nil, err
	}
	rec := make(map[int]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is not a string", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		rec[column(key)] = cell(v)
	}
	return rec, expect(dec, json.Delim('}'))
}

func cell(v any) string {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	if list, ok := v.([]any); ok {
		for i, e := range list {
			if n, ok := e.(json.Number); ok {
				list[i] = n.String()
			}
		}
	}
	return integrations.JoinValues(v)
}

func expect(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
