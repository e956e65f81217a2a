package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/stockcards/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Result Display
// =============================================================================

// printResult prints the outcome of a pipeline run.
func printResult(what string, r *pipeline.Result, paths []string) {
	printSuccess("Rendered %s for %s", what, StyleTitle.Render(r.Day.Long()))
	if r.Sample {
		printWarning("Built from the sample rows")
	}
	printStats(r.Stats, r.CacheInfo)
	for _, line := range groupTable(r.Groups) {
		fmt.Println("  " + line)
	}
	for _, p := range paths {
		printFile(p)
	}
}

// printStats prints run statistics on a single line. The cache status shows
// whether any screenshot came from the cache.
func printStats(s pipeline.Stats, c pipeline.CacheInfo) {
	parts := []string{
		fmt.Sprintf("%d rows", s.Rows),
		fmt.Sprintf("%d items", s.Items),
		fmt.Sprintf("%d groups", s.Groups),
		fmt.Sprintf("%d pages", s.Pages),
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	if c.ArtifactHits+c.ArtifactMisses > 0 {
		status, style := iconFresh, styleComputed
		if c.ArtifactHits > 0 {
			status, style = iconCached, styleCached
		}
		line += StyleDim.Render(" · ") + style.Render(status)
	}
	fmt.Println(line)
}

// groupTable lays out the group summaries as aligned rows. Widths are
// measured in terminal cells so Hangul names line up.
func groupTable(groups []pipeline.GroupSummary) []string {
	if len(groups) == 0 {
		return nil
	}
	const (
		pageHeader  = "page"
		groupHeader = "group"
		itemsHeader = "items"
	)
	nameWidth := runewidth.StringWidth(groupHeader)
	for _, g := range groups {
		nameWidth = max(nameWidth, runewidth.StringWidth(g.Name))
	}

	row := func(page, name, items string) string {
		return runewidth.FillLeft(page, len(pageHeader)) + "  " +
			runewidth.FillRight(name, nameWidth) + "  " +
			runewidth.FillLeft(items, len(itemsHeader))
	}

	lines := make([]string, 0, len(groups)+1)
	lines = append(lines, StyleDim.Render(row(pageHeader, groupHeader, itemsHeader)))
	for _, g := range groups {
		lines = append(lines, row(strconv.Itoa(g.Page), g.Name, strconv.Itoa(g.Items)))
	}
	return lines
}
