package render

import (
	"bytes"
	"encoding/json"
)

// Encode marshals v as compact UTF-8 JSON for a page's script block.
// Non-ASCII text is written as-is; <, > and & are escaped so cell text
// cannot close the block.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeIndent marshals v with two-space indentation for the json output
// format. Nothing is HTML-escaped.
func EncodeIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
