// Package config loads stockcards settings.
//
// Settings come from a TOML file (stockcards.toml) or, by extension, a YAML
// file. Values missing from the file keep their [Default]. Secrets never go
// in the file: the Airtable token and Google credentials are read from the
// environment, optionally seeded from a .env file by [LoadEnv].
//
//	cfg, err := config.Load("stockcards.toml")
//	secrets, err := config.LoadEnv(".env")
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stockcards/pkg/normalize"
	"github.com/matzehuels/stockcards/pkg/source"
)

// Configuration validation errors.
var (
	ErrInvalidFormat       = errors.New("output.formats must contain only html, json or png")
	ErrNoFormats           = errors.New("output.formats must not be empty")
	ErrMissingOutputDir    = errors.New("output.dir is required")
	ErrInvalidCacheBackend = errors.New("cache.backend must be one of: file, redis, none")
	ErrMissingRedisURL     = errors.New("cache.redis_url is required for the redis backend")
	ErrInvalidWorkers      = errors.New("render.workers must be non-negative")
	ErrInvalidSource       = errors.New("source must be one of: sheets, airtable, csv, json, sample")
	ErrMissingInput        = errors.New("input is required for csv and json sources")
	ErrMissingSpreadsheet  = errors.New("sheets.spreadsheet_id is required for the sheets source")
	ErrMissingAirtable     = errors.New("airtable.base_id and airtable.table are required for the airtable source")
	ErrInvalidLimit        = errors.New("per-card and per-page limits must be at least 1")
	ErrInvalidWorksheet    = errors.New("worksheet index must be non-negative")
	ErrInvalidDateSource   = errors.New("ranking.date_source must be content or column")
	ErrInvalidColor        = errors.New("palette colors must be #RRGGBB")
)

// Output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPNG  = "png"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// FileNames are searched, in order, by [Find].
var FileNames = []string{"stockcards.toml", "stockcards.yaml", "stockcards.yml"}

// Config is the complete stockcards configuration.
type Config struct {
	Output      OutputConfig      `toml:"output" yaml:"output"`
	Cache       CacheConfig       `toml:"cache" yaml:"cache"`
	Render      RenderConfig      `toml:"render" yaml:"render"`
	Sheets      SheetsConfig      `toml:"sheets" yaml:"sheets"`
	Airtable    AirtableConfig    `toml:"airtable" yaml:"airtable"`
	Surge       SurgeConfig       `toml:"surge" yaml:"surge"`
	Ranking     RankingConfig     `toml:"ranking" yaml:"ranking"`
	AnswerSheet AnswerSheetConfig `toml:"answersheet" yaml:"answersheet"`
}

// OutputConfig sets where and what the pipelines write.
type OutputConfig struct {
	Dir     string   `toml:"dir" yaml:"dir"`
	Formats []string `toml:"formats" yaml:"formats"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend" yaml:"backend"`
	Dir      string `toml:"dir" yaml:"dir"` // empty uses the user cache directory
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

// RenderConfig controls templates and screenshots.
type RenderConfig struct {
	TemplateDir string `toml:"template_dir" yaml:"template_dir"` // empty uses the built-in templates
	Browser     string `toml:"browser" yaml:"browser"`           // empty searches PATH
	NoSandbox   bool   `toml:"no_sandbox" yaml:"no_sandbox"`
	Workers     int    `toml:"workers" yaml:"workers"`
}

// SheetsConfig identifies the Google spreadsheet.
type SheetsConfig struct {
	SpreadsheetID   string `toml:"spreadsheet_id" yaml:"spreadsheet_id"`
	CredentialsFile string `toml:"credentials_file" yaml:"credentials_file"`
}

// AirtableConfig identifies the Airtable table.
type AirtableConfig struct {
	BaseID string `toml:"base_id" yaml:"base_id"`
	Table  string `toml:"table" yaml:"table"`
}

// SheetSource selects and addresses a pipeline's rows.
type SheetSource struct {
	Source    string `toml:"source" yaml:"source"`
	Input     string `toml:"input" yaml:"input"`
	Worksheet string `toml:"worksheet" yaml:"worksheet"`
	Index     int    `toml:"worksheet_index" yaml:"worksheet_index"`
}

// SurgeConfig configures the surge card pipeline.
type SurgeConfig struct {
	SheetSource       `toml:",inline" yaml:",inline"`
	StocksPerCard     int `toml:"stocks_per_card" yaml:"stocks_per_card"`
	IndividualPerCard int `toml:"individual_per_card" yaml:"individual_per_card"`
	CardsPerPage      int `toml:"cards_per_page" yaml:"cards_per_page"`
}

// RankingConfig configures the change-rate ranking pipeline.
type RankingConfig struct {
	SheetSource   `toml:",inline" yaml:",inline"`
	StocksPerPage int      `toml:"stocks_per_page" yaml:"stocks_per_page"`
	DateSource    string   `toml:"date_source" yaml:"date_source"`
	Palette       []string `toml:"palette" yaml:"palette"`
	SingleColor   string   `toml:"single_color" yaml:"single_color"`
}

// AnswerSheetConfig configures the answer sheet pipeline.
type AnswerSheetConfig struct {
	Source          string   `toml:"source" yaml:"source"`
	Input           string   `toml:"input" yaml:"input"`
	CountryPriority []string `toml:"country_priority" yaml:"country_priority"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output: OutputConfig{
			Dir:     "output",
			Formats: []string{FormatPNG},
		},
		Cache:  CacheConfig{Backend: CacheFile},
		Render: RenderConfig{Workers: 2},
		Surge: SurgeConfig{
			SheetSource:       SheetSource{Source: string(source.KindSheets), Index: 0},
			StocksPerCard:     5,
			IndividualPerCard: 3,
			CardsPerPage:      6,
		},
		Ranking: RankingConfig{
			SheetSource:   SheetSource{Source: string(source.KindSheets), Index: 1},
			StocksPerPage: 20,
			DateSource:    normalize.DateFromContent.String(),
		},
		AnswerSheet: AnswerSheetConfig{
			Source:          string(source.KindAirtable),
			CountryPriority: []string{"한국", "미국"},
		},
	}
}

// Load reads the file at path over [Default]. The format follows the
// extension: .yaml and .yml are YAML, anything else TOML. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Find returns the first of [FileNames] present in dir, or "".
func Find(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Pipeline names accepted by [Config.ValidatePipeline].
const (
	PipelineSurge       = "surge"
	PipelineRanking     = "ranking"
	PipelineAnswerSheet = "answersheet"
)

// Validate checks the whole configuration and returns the first problem
// found.
func (c *Config) Validate() error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	for _, p := range []string{PipelineSurge, PipelineRanking, PipelineAnswerSheet} {
		if err := c.validatePipeline(p); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePipeline checks the shared sections and the section of one
// pipeline, so a run does not fail on settings it never reads.
func (c *Config) ValidatePipeline(name string) error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	return c.validatePipeline(name)
}

func (c *Config) validateCommon() error {
	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}
	if len(c.Output.Formats) == 0 {
		return ErrNoFormats
	}
	for _, f := range c.Output.Formats {
		if !slices.Contains([]string{FormatHTML, FormatJSON, FormatPNG}, f) {
			return fmt.Errorf("%w: %q", ErrInvalidFormat, f)
		}
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return ErrMissingRedisURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCacheBackend, c.Cache.Backend)
	}
	if c.Render.Workers < 0 {
		return ErrInvalidWorkers
	}
	return nil
}

func (c *Config) validatePipeline(name string) error {
	switch name {
	case PipelineSurge:
		if err := c.validateSource(name, c.Surge.SheetSource); err != nil {
			return err
		}
		if c.Surge.StocksPerCard < 1 || c.Surge.IndividualPerCard < 1 || c.Surge.CardsPerPage < 1 {
			return fmt.Errorf("surge: %w", ErrInvalidLimit)
		}
	case PipelineRanking:
		if err := c.validateSource(name, c.Ranking.SheetSource); err != nil {
			return err
		}
		if c.Ranking.StocksPerPage < 1 {
			return fmt.Errorf("ranking: %w", ErrInvalidLimit)
		}
		if _, err := normalize.ParseDateSource(c.Ranking.DateSource); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDateSource, c.Ranking.DateSource)
		}
		for _, color := range append(slices.Clone(c.Ranking.Palette), c.Ranking.SingleColor) {
			if color != "" && !hexColor.MatchString(color) {
				return fmt.Errorf("%w: %q", ErrInvalidColor, color)
			}
		}
	case PipelineAnswerSheet:
		return c.validateSource(name, SheetSource{
			Source: c.AnswerSheet.Source,
			Input:  c.AnswerSheet.Input,
		})
	default:
		return fmt.Errorf("unknown pipeline %q", name)
	}
	return nil
}

func (c *Config) validateSource(pipeline string, s SheetSource) error {
	kind, err := source.ParseKind(s.Source)
	if err != nil {
		return fmt.Errorf("%s: %w: %q", pipeline, ErrInvalidSource, s.Source)
	}
	switch {
	case kind.IsFile() && s.Input == "":
		return fmt.Errorf("%s: %w", pipeline, ErrMissingInput)
	case kind == source.KindSheets && c.Sheets.SpreadsheetID == "":
		return fmt.Errorf("%s: %w", pipeline, ErrMissingSpreadsheet)
	case kind == source.KindSheets && s.Index < 0:
		return fmt.Errorf("%s: %w", pipeline, ErrInvalidWorksheet)
	case kind == source.KindAirtable && (c.Airtable.BaseID == "" || c.Airtable.Table == ""):
		return fmt.Errorf("%s: %w", pipeline, ErrMissingAirtable)
	}
	return nil
}

// Environment variables holding secrets.
const (
	EnvAirtableToken   = "AIRTABLE_TOKEN"
	EnvAirtableKey     = "AIRTABLE_API_KEY" // older name, still honored
	EnvCredentials     = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvCredentialsJSON = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	EnvRedisURL        = "STOCKCARDS_REDIS_URL"
)

// Secrets are credentials read from the environment.
type Secrets struct {
	AirtableToken   string
	CredentialsFile string
	CredentialsJSON string
	RedisURL        string
}

// LoadEnv seeds the environment from the given .env files, skipping files
// that do not exist, and reads the secrets. Variables already set in the
// environment win over the files.
func LoadEnv(files ...string) (Secrets, error) {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return Secrets{}, fmt.Errorf("load env: %w", err)
		}
	}
	return SecretsFromEnv(), nil
}

// SecretsFromEnv reads the secrets from the process environment.
func SecretsFromEnv() Secrets {
	token := strings.TrimSpace(os.Getenv(EnvAirtableToken))
	if token == "" {
		token = strings.TrimSpace(os.Getenv(EnvAirtableKey))
	}
	return Secrets{
		AirtableToken:   token,
		CredentialsFile: strings.TrimSpace(os.Getenv(EnvCredentials)),
		CredentialsJSON: strings.TrimSpace(os.Getenv(EnvCredentialsJSON)),
		RedisURL:        strings.TrimSpace(os.Getenv(EnvRedisURL)),
	}
}

// Apply fills configuration values that may come from the environment.
// Values set in the file win.
func (s Secrets) Apply(c *Config) {
	if c.Sheets.CredentialsFile == "" {
		c.Sheets.CredentialsFile = s.CredentialsFile
	}
	if c.Cache.RedisURL == "" {
		c.Cache.RedisURL = s.RedisURL
	}
}
