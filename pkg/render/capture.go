package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrNoBrowser is returned when no Chrome or Chromium binary can be found.
var ErrNoBrowser = errors.New("png export requires Chrome or Chromium. Install with:\n  macOS:  brew install --cask google-chrome\n  Linux:  apt install chromium")

// Capturer renders an HTML document to PNG bytes.
type Capturer interface {
	Capture(ctx context.Context, html []byte, l Layout) ([]byte, error)
}

// CaptureFunc adapts a function to [Capturer].
type CaptureFunc func(ctx context.Context, html []byte, l Layout) ([]byte, error)

// Capture calls f.
func (f CaptureFunc) Capture(ctx context.Context, html []byte, l Layout) ([]byte, error) {
	return f(ctx, html, l)
}

// browsers are tried in order when Chrome.Binary is empty.
var browsers = []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome"}

// Chrome captures pages with a headless Chrome binary.
type Chrome struct {
	// Binary is the browser executable. Empty searches PATH.
	Binary string
	// TempDir holds the intermediate HTML files. Empty uses os.TempDir.
	TempDir string
	// NoSandbox passes --no-sandbox, needed when running as root in containers.
	NoSandbox bool
}

// Capture writes html to a temporary file, loads it at the layout's
// viewport, and returns the screenshot.
func (c *Chrome) Capture(ctx context.Context, html []byte, l Layout) ([]byte, error) {
	bin, err := c.binary()
	if err != nil {
		return nil, err
	}

	base := c.TempDir
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "stockcards-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	page := filepath.Join(dir, l.Name+".html")
	shot := filepath.Join(dir, l.Name+".png")
	if err := os.WriteFile(page, html, 0o644); err != nil {
		return nil, err
	}

	args := []string{
		"--headless=new",
		"--disable-gpu",
		"--hide-scrollbars",
		"--force-device-scale-factor=1",
		"--window-size=" + strconv.Itoa(l.Viewport.Width) + "," + strconv.Itoa(l.Viewport.Height),
		"--virtual-time-budget=" + strconv.FormatInt(l.Settle.Milliseconds(), 10),
		"--screenshot=" + shot,
	}
	if c.NoSandbox {
		args = append(args, "--no-sandbox")
	}
	args = append(args, "file://"+filepath.ToSlash(page))

	cmd := exec.CommandContext(ctx, bin, args...)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %v: %s", filepath.Base(bin), err, errBuf.String())
	}

	png, err := os.ReadFile(shot)
	if err != nil {
		return nil, fmt.Errorf("%s produced no screenshot: %w", filepath.Base(bin), err)
	}
	return png, nil
}

func (c *Chrome) binary() (string, error) {
	if c.Binary != "" {
		path, err := exec.LookPath(c.Binary)
		if err != nil {
			return "", fmt.Errorf("%w (%s: %v)", ErrNoBrowser, c.Binary, err)
		}
		return path, nil
	}
	for _, name := range browsers {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoBrowser
}

// CaptureAll captures pages concurrently with at most workers in flight.
// Results keep page order. The first failure cancels the remaining captures.
func CaptureAll(ctx context.Context, c Capturer, pages [][]byte, l Layout, workers int) ([][]byte, error) {
	out := make([][]byte, len(pages))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, html := range pages {
		g.Go(func() error {
			png, err := c.Capture(ctx, html, l)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			out[i] = png
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
