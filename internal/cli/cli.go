// Package cli implements the stockcards command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stockcards/pkg/buildinfo"
	"github.com/matzehuels/stockcards/pkg/cache"
	"github.com/matzehuels/stockcards/pkg/config"
	serrors "github.com/matzehuels/stockcards/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stockcards"

	// redisPrefix namespaces every key written to a shared redis.
	redisPrefix = appName + ":"

	// envFile is read from the working directory when present.
	envFile = ".env"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stockcards renders the daily Korean stock market cards",
		Long: `Stockcards reads the day's market sheets and renders them as cards:
surge cards grouped by theme, the change-rate ranking grouped by material,
and the answer sheet grouped by country.

Each command writes HTML, JSON or PNG files to the output directory.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: stockcards.toml in the working directory)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	// Register all subcommands
	root.AddCommand(c.surgeCommand())
	root.AddCommand(c.rankingCommand())
	root.AddCommand(c.answerSheetCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and the environment secrets. The file is
// --config when given, otherwise the first of config.FileNames in the
// working directory, otherwise the defaults.
func (c *CLI) loadConfig() (config.Config, config.Secrets, error) {
	path := c.configPath
	if path == "" {
		path = config.Find(".")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, config.Secrets{}, serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "load config")
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	secrets, err := config.LoadEnv(envFile)
	if err != nil {
		return cfg, secrets, serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "load environment")
	}
	secrets.Apply(&cfg)
	return cfg, secrets, nil
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache opens the configured cache backend. --no-cache and the "none"
// backend disable caching. An unusable file cache directory falls back to
// no cache with a warning.
func (c *CLI) newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, redisPrefix)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "connect redis cache")
		}
		return rc, nil
	}

	dir, err := fileCacheDir(cfg)
	if err != nil {
		c.Logger.Warn("cache directory unavailable, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newKeyer scopes cache keys by the configured prefix.
func newKeyer(cfg config.CacheConfig) cache.Keyer {
	if cfg.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	prefix := cfg.Prefix
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return cache.NewScopedKeyer(nil, prefix)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stockcards/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// fileCacheDir returns cache.dir when configured, otherwise cacheDir.
func fileCacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cacheDir()
}
