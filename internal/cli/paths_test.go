package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stockcards/pkg/cache"
	"github.com/matzehuels/stockcards/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestFileCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	tests := []struct {
		name string
		cfg  config.CacheConfig
		want string
	}{
		{"configured", config.CacheConfig{Dir: "/var/cache/cards"}, "/var/cache/cards"},
		{"default", config.CacheConfig{}, filepath.Join("/tmp/xdg", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fileCacheDir(tt.cfg)
			if err != nil {
				t.Fatalf("fileCacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("fileCacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	dir := t.TempDir()
	c := New(os.Stderr, LogInfo)

	tests := []struct {
		name    string
		noCache bool
		cfg     config.CacheConfig
		file    bool
	}{
		{"file", false, config.CacheConfig{Backend: config.CacheFile, Dir: dir}, true},
		{"none", false, config.CacheConfig{Backend: config.CacheNone}, false},
		{"no-cache flag", true, config.CacheConfig{Backend: config.CacheFile, Dir: dir}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.noCache = tt.noCache
			got, err := c.newCache(t.Context(), tt.cfg)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer got.Close()

			fc, isFile := got.(*cache.FileCache)
			if isFile != tt.file {
				t.Fatalf("newCache() = %T, file cache = %v, want %v", got, isFile, tt.file)
			}
			if isFile && fc.Dir() != dir {
				t.Errorf("file cache dir = %q, want %q", fc.Dir(), dir)
			}
		})
	}
}

func TestNewKeyer(t *testing.T) {
	opts := cache.ArtifactKeyOpts{Layout: "surge", Format: "png", Width: 1320, Height: 2000}

	plain := newKeyer(config.CacheConfig{})
	if key := plain.HTTPKey("sheets", "id"); strings.Contains(key, "desk") {
		t.Errorf("unscoped key = %q", key)
	}

	for _, prefix := range []string{"desk", "desk:"} {
		k := newKeyer(config.CacheConfig{Prefix: prefix})
		if key := k.HTTPKey("sheets", "id"); !strings.HasPrefix(key, "desk:http:") {
			t.Errorf("prefix %q: HTTPKey = %q, want desk:http: prefix", prefix, key)
		}
		if key := k.ArtifactKey("abc", opts); !strings.HasPrefix(key, "desk:") {
			t.Errorf("prefix %q: ArtifactKey = %q, want desk: prefix", prefix, key)
		}
	}
}
