package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateIdentifier validates an identifier that is interpolated into a
// request path, such as an Airtable table name or a worksheet title.
// It rejects values that could alter the path.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "%s cannot be empty", kind)
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidID, "%s too long (max 256 characters)", kind)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "%s contains invalid control characters", kind)
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "?", "#"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidID, "%s contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}

// airtableBaseRegex matches Airtable base ids ("app" followed by 14 characters).
var airtableBaseRegex = regexp.MustCompile(`^app[A-Za-z0-9]{14}$`)

// ValidateAirtableBase validates an Airtable base id.
func ValidateAirtableBase(id string) error {
	if err := ValidateIdentifier("airtable base", id); err != nil {
		return err
	}

	if !airtableBaseRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid Airtable base id: %q (want app...)", id)
	}

	return nil
}

// spreadsheetIDRegex matches Google spreadsheet ids as they appear in sheet URLs.
var spreadsheetIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`)

// ValidateSpreadsheetID validates a Google spreadsheet id.
func ValidateSpreadsheetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "spreadsheet id cannot be empty")
	}

	if !spreadsheetIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid spreadsheet id: %q", id)
	}

	return nil
}

// ValidatePath validates an output or input path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
