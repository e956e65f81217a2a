package render

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/stockcards/pkg/normalize"
)

//go:embed templates/*.html
var builtin embed.FS

// Template is an HTML page with a data placeholder and a date placeholder.
type Template struct {
	layout Layout
	body   string
}

// NewTemplate wraps body for layout l.
func NewTemplate(l Layout, body string) (*Template, error) {
	if !strings.Contains(body, l.Placeholder) {
		return nil, fmt.Errorf("template %s: missing placeholder %s", l.TemplateFile, l.Placeholder)
	}
	return &Template{layout: l, body: body}, nil
}

// LoadTemplate reads l.TemplateFile from dir. An empty dir selects the
// built-in template.
func LoadTemplate(dir string, l Layout) (*Template, error) {
	var (
		data []byte
		err  error
	)
	if dir == "" {
		data, err = builtin.ReadFile("templates/" + l.TemplateFile)
	} else {
		data, err = os.ReadFile(filepath.Join(dir, l.TemplateFile))
	}
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return NewTemplate(l, string(data))
}

// Layout returns the layout the template belongs to.
func (t *Template) Layout() Layout { return t.layout }

// Render encodes view and injects it together with the display date.
func (t *Template) Render(view any, day normalize.Day) ([]byte, error) {
	data, err := Encode(view)
	if err != nil {
		return nil, fmt.Errorf("encode %s view: %w", t.layout.Name, err)
	}
	return []byte(Inject(t.body, t.layout.Placeholder, data, day.Long())), nil
}

// Inject replaces every date placeholder with date and then the first
// occurrence of placeholder with data. Data is inserted last so text inside
// it is never treated as a placeholder.
func Inject(body, placeholder string, data []byte, date string) string {
	body = strings.ReplaceAll(body, DatePlaceholder, date)
	return strings.Replace(body, placeholder, string(data), 1)
}
