package socialimages

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/root4loot/goutils/log"
)

const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// Selectors of the elements mutated for every page.
const (
	TitleSelector       = "h1"
	MainSelector        = "main"
	FeatureGridSelector = ".flexgrid"
)

// PageMutator rewrites the per-page parts of the loaded document.
type PageMutator interface {
	SetTitle(ctx context.Context, html string) error
	SetBackground(ctx context.Context, cover string) error
	// SetFeatureList replaces the children of the feature grid. It is a no-op
	// when the document has no feature grid.
	SetFeatureList(ctx context.Context, features []Feature) error
}

// Document is a single browser page holding the assembled template. It is
// loaded once and mutated for every page before capture.
type Document interface {
	PageMutator
	Load(ctx context.Context, html string) error
	// Capture returns a PNG of the (0,0,width,height) clip at the viewport's
	// device scale factor.
	Capture(ctx context.Context) ([]byte, error)
	Close() error
}

// OpenDocument launches a headless browser with the engine named in cfg and
// returns a blank page sized to the configured viewport.
func OpenDocument(ctx context.Context, cfg Config) (Document, error) {
	bin := browserBin(cfg.BrowserBin)

	switch cfg.Engine {
	case EngineRod, "":
		return openRodDocument(ctx, cfg, bin)
	case EngineChromedp:
		return openChromedpDocument(ctx, cfg, bin)
	default:
		return nil, fmt.Errorf("unknown engine %q (expected %s or %s)", cfg.Engine, EngineRod, EngineChromedp)
	}
}

// browserBin returns the configured binary. Under WSL the bundled Chromium
// does not start, so google-chrome is used instead.
func browserBin(configured string) string {
	if configured != "" {
		return configured
	}
	if isWSL() {
		log.Debug("WSL detected, using google-chrome")
		return "google-chrome"
	}
	return ""
}

func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}
