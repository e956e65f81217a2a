package integrations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	serrors "github.com/matzehuels/stockcards/pkg/errors"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a base, table, or spreadsheet doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned when the token or credentials are rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNetwork is returned for HTTP failures (connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrTimeout is returned when a request outlives its deadline. It carries
	// the TIMEOUT code.
	ErrTimeout = serrors.New(serrors.ErrCodeTimeout, "request timed out")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// RetryAfter parses a Retry-After header given in seconds.
// HTTP-date values and garbage report zero.
func RetryAfter(v string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

// JoinValues flattens a JSON field value into a cell string.
// Lists (multi-select, linked records) are joined with ", ".
func JoinValues(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			if s := JoinValues(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		// Attachments and collaborators carry a display name.
		for _, k := range []string{"name", "filename", "email", "text"} {
			if s, ok := x[k].(string); ok {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
