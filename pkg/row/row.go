// Package row turns loosely shaped spreadsheet tables into fixed-schema rows.
//
// Fetchers deliver a [Table]: a header line plus string cells. Sources are
// edited by hand, so header names drift and columns move. A [Schema] lists, per
// [Field], the header names that are accepted for it, optionally ending with a
// spreadsheet column letter used as a positional fallback. [Resolve] matches
// the schema against the header once and then materializes every line as a
// [Row], so nothing downstream performs dictionary lookups.
//
//	rows := row.Resolve(table, row.SurgeSchema)
//	for _, r := range rows {
//	    fmt.Println(r.Name, r.Metric)
//	}
package row

import (
	"strings"
)

// Field identifies one column of the fixed row schema.
type Field int

// Fields known to the pipelines.
const (
	FieldDate Field = iota
	FieldType
	FieldGroup
	FieldName
	FieldMetric
	FieldVolume
	FieldText
	FieldKeyword
	FieldStatus
	FieldCountry
	FieldCategory
	FieldSubcategory
	FieldSchedule
)

var fieldNames = [...]string{
	FieldDate:        "date",
	FieldType:        "type",
	FieldGroup:       "group",
	FieldName:        "name",
	FieldMetric:      "metric",
	FieldVolume:      "volume",
	FieldText:        "text",
	FieldKeyword:     "keyword",
	FieldStatus:      "status",
	FieldCountry:     "country",
	FieldCategory:    "category",
	FieldSubcategory: "subcategory",
	FieldSchedule:    "schedule",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Row is one source line projected onto the fixed schema.
// Fields the schema does not bind, or cells the line lacks, are "".
type Row struct {
	Date        string
	Type        string
	Group       string
	Name        string
	Metric      string
	Volume      string
	Text        string
	Keyword     string
	Status      string
	Country     string
	Category    string
	Subcategory string
	Schedule    string
}

// Get returns the value of f.
func (r *Row) Get(f Field) string {
	if p := r.slot(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns the value of f. Unknown fields are ignored.
func (r *Row) Set(f Field, v string) {
	if p := r.slot(f); p != nil {
		*p = v
	}
}

func (r *Row) slot(f Field) *string {
	switch f {
	case FieldDate:
		return &r.Date
	case FieldType:
		return &r.Type
	case FieldGroup:
		return &r.Group
	case FieldName:
		return &r.Name
	case FieldMetric:
		return &r.Metric
	case FieldVolume:
		return &r.Volume
	case FieldText:
		return &r.Text
	case FieldKeyword:
		return &r.Keyword
	case FieldStatus:
		return &r.Status
	case FieldCountry:
		return &r.Country
	case FieldCategory:
		return &r.Category
	case FieldSubcategory:
		return &r.Subcategory
	case FieldSchedule:
		return &r.Schedule
	}
	return nil
}

// Table is the raw shape every fetcher returns: a header and data lines.
// Lines may be shorter or longer than the header.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Len returns the number of data lines.
func (t Table) Len() int { return len(t.Rows) }

// Binding declares the accepted header aliases for one field.
// Aliases are tried in order; a trailing column letter ("A", "B", ..., "AA")
// is used positionally when none of the names matched.
type Binding struct {
	Field   Field
	Aliases []string
}

// Schema is an ordered list of field bindings.
type Schema []Binding

// Standard schemas for the three sources.
var (
	// SurgeSchema reads the daily surge sheet (first worksheet).
	SurgeSchema = Schema{
		{FieldDate, []string{"날짜", "A"}},
		{FieldType, []string{"타입", "B"}},
		{FieldGroup, []string{"그룹명", "C"}},
		{FieldName, []string{"종목명", "D"}},
		{FieldMetric, []string{"등락률", "E"}},
		{FieldText, []string{"이슈내용", "F"}},
	}

	// RankingSchema reads the change-rate ranking sheet (second worksheet).
	RankingSchema = Schema{
		{FieldDate, []string{"날짜", "A"}},
		{FieldGroup, []string{"재료", "B"}},
		{FieldName, []string{"종목명", "C"}},
		{FieldMetric, []string{"등락률(%)", "등락률", "D"}},
		{FieldVolume, []string{"거래대금(백만)", "거래대금", "E"}},
		{FieldText, []string{"내용", "F"}},
	}

	// AnswerSheetSchema reads the answer-sheet table. It has no positional
	// fallbacks because the table is addressed by field names only.
	AnswerSheetSchema = Schema{
		{FieldName, []string{"종목명"}},
		{FieldKeyword, []string{"핵심키워드"}},
		{FieldDate, []string{"편입일"}},
		{FieldType, []string{"답안지유형"}},
		{FieldStatus, []string{"상태"}},
		{FieldCountry, []string{"국가"}},
		{FieldCategory, []string{"대분류"}},
		{FieldSubcategory, []string{"소분류"}},
		{FieldSchedule, []string{"핵심일정"}},
	}
)

// Columns maps each bound field to a column index, or -1 when unresolved.
type Columns map[Field]int

// Locate resolves s against header. Header names are compared after trimming.
func (s Schema) Locate(header []string) Columns {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	cols := make(Columns, len(s))
	for _, b := range s {
		cols[b.Field] = locate(b.Aliases, index)
	}
	return cols
}

func locate(aliases []string, index map[string]int) int {
	for _, a := range aliases {
		if i, ok := index[a]; ok {
			return i
		}
	}
	for _, a := range aliases {
		if i, ok := ColumnIndex(a); ok {
			return i
		}
	}
	return -1
}

// ColumnIndex converts a spreadsheet column letter ("A", "Z", "AA") into a
// zero-based index.
func ColumnIndex(letter string) (int, bool) {
	if letter == "" || len(letter) > 3 {
		return 0, false
	}
	n := 0
	for _, c := range letter {
		if c < 'A' || c > 'Z' {
			return 0, false
		}
		n = n*26 + int(c-'A'+1)
	}
	return n - 1, true
}

// Resolve projects every line of t onto the schema. Lines with no non-empty
// cell are skipped. The result preserves source order.
func Resolve(t Table, s Schema) []Row {
	cols := s.Locate(t.Header)
	out := make([]Row, 0, len(t.Rows))
	for _, line := range t.Rows {
		if blank(line) {
			continue
		}
		var r Row
		for _, b := range s {
			r.Set(b.Field, cell(line, cols[b.Field]))
		}
		out = append(out, r)
	}
	return out
}

func cell(line []string, i int) string {
	if i < 0 || i >= len(line) {
		return ""
	}
	return strings.TrimSpace(line[i])
}

func blank(line []string) bool {
	for _, c := range line {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
