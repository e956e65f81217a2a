package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stockcards/pkg/config"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
	"github.com/matzehuels/stockcards/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"png", []string{"png"}},
		{"html, JSON,png", []string{"html", "json", "png"}},
		{",html,,", []string{"html"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKindFromPath(t *testing.T) {
	tests := []struct {
		path, fallback, want string
	}{
		{"rows.csv", "sheets", "csv"},
		{"ROWS.JSON", "sheets", "json"},
		{"rows.txt", "sheets", "sheets"},
	}
	for _, tt := range tests {
		if got := kindFromPath(tt.path, tt.fallback); got != tt.want {
			t.Errorf("kindFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRunFlagsApply(t *testing.T) {
	var f runFlags
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	f.bind(cmd, "any", true)
	if err := cmd.ParseFlags([]string{"--input", "today.csv", "--worksheet-index", "2", "-f", "html,json", "-o", "out"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	sel := config.SheetSource{Source: "sheets", Worksheet: "급등", Index: 0}
	f.applySource(cmd, &sel)
	want := config.SheetSource{Source: "csv", Input: "today.csv", Index: 2}
	if sel != want {
		t.Errorf("applySource() = %+v, want %+v", sel, want)
	}

	out := config.OutputConfig{Dir: "output", Formats: []string{"png"}}
	f.applyOutput(&out)
	if out.Dir != "out" || !reflect.DeepEqual(out.Formats, []string{"html", "json"}) {
		t.Errorf("applyOutput() = %+v", out)
	}
}

func TestRunFlagsKeepConfig(t *testing.T) {
	var f runFlags
	cmd := &cobra.Command{Use: "test"}
	f.bind(cmd, "any", true)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	sel := config.SheetSource{Source: "sheets", Worksheet: "급등", Index: 3}
	f.applySource(cmd, &sel)
	if sel.Source != "sheets" || sel.Worksheet != "급등" || sel.Index != 3 {
		t.Errorf("applySource() without flags changed selection: %+v", sel)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	result := &pipeline.Result{
		Files: []string{"b.html", "a.json"},
		Artifacts: map[string][]byte{
			"a.json": []byte(`{}`),
			"b.html": []byte("<html>"),
		},
	}

	paths, err := writeArtifacts(dir, result)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	want := []string{filepath.Join(dir, "b.html"), filepath.Join(dir, "a.json")}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(want[0])
	if err != nil || string(data) != "<html>" {
		t.Errorf("b.html = %q, %v", data, err)
	}
}

// runCLI executes the root command in an empty working directory so no
// config or .env file is picked up.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, k := range []string{config.EnvAirtableToken, config.EnvAirtableKey} {
		t.Setenv(k, "")
	}

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestSurgeCommandSample(t *testing.T) {
	out := t.TempDir()
	err := runCLI(t, "surge", "--source", "sample", "--format", "html,json", "--output", out, "--no-cache")
	if err != nil {
		t.Fatalf("surge: %v", err)
	}

	for _, name := range []string{
		"급등이슈_20251203_1.html",
		"급등이슈_20251203_2.html",
		"급등이슈_20251203_1.json",
		"급등이슈_20251203_2.json",
	} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRankingCommandSample(t *testing.T) {
	out := t.TempDir()
	err := runCLI(t, "ranking", "--source", "sample", "--format", "json", "--output", out,
		"--date", "2025.12.03", "--date-source", "column", "--no-cache")
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(out, "*.json"))
	if len(matches) == 0 {
		t.Fatal("ranking wrote no json files")
	}
	if !strings.Contains(filepath.Base(matches[0]), "20251203") {
		t.Errorf("ranking file %q not named for the reference day", matches[0])
	}
}

func TestAnswerSheetCommandFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "answers.json")
	data := `[
		{"종목명": "삼성전자", "핵심키워드": "HBM", "답안지유형": "시대흐름", "국가": "한국", "대분류": "반도체"},
		{"종목명": "엔비디아", "핵심키워드": "GPU", "답안지유형": "시대흐름", "국가": "미국", "대분류": "AI"}
	]`
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	err := runCLI(t, "answersheet", "--input", input, "--format", "json", "--output", out, "--date", "2025.12.04", "--no-cache")
	if err != nil {
		t.Fatalf("answersheet: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "답안지_20251204.json")); err != nil {
		t.Errorf("answer sheet not written: %v", err)
	}
}

func TestAnswerSheetMissingToken(t *testing.T) {
	t.Setenv(config.EnvAirtableToken, "")
	cfg := filepath.Join(t.TempDir(), "stockcards.toml")
	body := "[airtable]\nbase_id = \"appA4t9o1QMTDZul7\"\ntable = \"답안지\"\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runCLI(t, "--config", cfg, "answersheet", "--format", "json", "--output", t.TempDir(), "--no-cache")
	if !serrors.Is(err, serrors.ErrCodeMissingCredentials) {
		t.Fatalf("answersheet without token = %v, want MISSING_CREDENTIALS", err)
	}

	// With --fallback the sample rows stand in.
	out := t.TempDir()
	err = runCLI(t, "--config", cfg, "answersheet", "--fallback", "--format", "json", "--output", out, "--no-cache")
	if err != nil {
		t.Fatalf("answersheet --fallback: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(out, "답안지_*.json"))
	if len(matches) != 1 {
		t.Errorf("answer sheet files = %v, want one", matches)
	}
}

func TestCommandInvalidConfig(t *testing.T) {
	err := runCLI(t, "surge", "--source", "sample", "--format", "pdf", "--output", t.TempDir())
	if !serrors.Is(err, serrors.ErrCodeInvalidConfig) {
		t.Errorf("surge --format pdf = %v, want INVALID_CONFIG", err)
	}

	err = runCLI(t, "ranking", "--output", t.TempDir())
	if !serrors.Is(err, serrors.ErrCodeInvalidConfig) {
		t.Errorf("ranking without spreadsheet = %v, want INVALID_CONFIG", err)
	}
}

func TestSurgeCommandNoRowsForDate(t *testing.T) {
	err := runCLI(t, "surge", "--source", "sample", "--date", "2025.01.02", "--format", "json", "--output", t.TempDir(), "--no-cache")
	if !serrors.Is(err, serrors.ErrCodeNoData) {
		t.Errorf("surge on an empty day = %v, want NO_DATA", err)
	}
}

func TestRankingDateSourceFlag(t *testing.T) {
	err := runCLI(t, "ranking", "--source", "sample", "--date-source", "both", "--format", "json", "--output", t.TempDir())
	if !serrors.Is(err, serrors.ErrCodeInvalidConfig) {
		t.Errorf("ranking --date-source both = %v, want INVALID_CONFIG", err)
	}
}
