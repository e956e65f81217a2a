package render

import (
	"fmt"
	"time"

	"github.com/matzehuels/stockcards/pkg/normalize"
)

// Viewport is the browser window used for a capture, in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) String() string { return fmt.Sprintf("%dx%d", v.Width, v.Height) }

// Layout describes how one pipeline's pages are rendered.
type Layout struct {
	// Name identifies the layout in logs and cache keys.
	Name string
	// Prefix starts every output file name.
	Prefix string
	// TemplateFile is looked up in the template directory.
	TemplateFile string
	// Placeholder is replaced by the encoded page data.
	Placeholder string
	Viewport    Viewport
	// Settle is how long the page may load fonts before the capture.
	Settle time.Duration
}

// DatePlaceholder is replaced by the display date in every template.
const DatePlaceholder = "/*DATE_PLACEHOLDER*/"

// Layouts of the three pipelines.
var (
	SurgeLayout = Layout{
		Name:         "surge",
		Prefix:       "급등이슈",
		TemplateFile: "template.html",
		Placeholder:  "/*CARDS_DATA_PLACEHOLDER*/[]",
		Viewport:     Viewport{1320, 2000},
		Settle:       2 * time.Second,
	}
	RankingLayout = Layout{
		Name:         "ranking",
		Prefix:       "등락률상위",
		TemplateFile: "template_ranking.html",
		Placeholder:  "/*GROUPS_DATA_PLACEHOLDER*/[]",
		Viewport:     Viewport{1680, 3000},
		Settle:       2 * time.Second,
	}
	AnswerSheetLayout = Layout{
		Name:         "answersheet",
		Prefix:       "답안지",
		TemplateFile: "template_answersheet.html",
		Placeholder:  "/*DATA_PLACEHOLDER*/{}",
		Viewport:     Viewport{650, 8000},
		Settle:       2500 * time.Millisecond,
	}
)

// FileName returns the output name of page i (zero-based) out of total:
// "<prefix>_<YYYYMMDD>.<ext>" for a single page, with a 1-based "_<n>"
// suffix otherwise.
func (l Layout) FileName(day normalize.Day, i, total int, ext string) string {
	if total <= 1 {
		return fmt.Sprintf("%s_%s.%s", l.Prefix, day.Compact(), ext)
	}
	return fmt.Sprintf("%s_%s_%d.%s", l.Prefix, day.Compact(), i+1, ext)
}
