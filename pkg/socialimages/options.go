package socialimages

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/root4loot/goutils/log"
)

var (
	ErrInvalidOutputDir    = errors.New("invalid outputDir provided")
	ErrInvalidDataFile     = errors.New("invalid dataFile location or file name provided")
	ErrInvalidTemplatePath = errors.New("invalid templatePath provided")
	ErrInvalidStylesPath   = errors.New("invalid stylesPath provided")
)

// Themes lists the theme classes shipped with the bundled stylesheet.
var Themes = []string{"blue", "green", "minimal", "sunset", "pop"}

// Options contains the user facing options, before any path is resolved.
type Options struct {
	SiteName           string        `mapstructure:"siteName"`           // Site name injected into the template
	OutputDir          string        `mapstructure:"outputDir"`          // Build output root (must exist)
	ImageDir           string        `mapstructure:"imageDir"`           // Preview folder relative to OutputDir
	DataFile           string        `mapstructure:"dataFile"`           // JSON (or YAML) list of pages
	TemplatePath       string        `mapstructure:"templatePath"`       // Custom HTML template, empty for bundled
	StylesPath         string        `mapstructure:"stylesPath"`         // Custom stylesheet, empty for bundled
	Theme              string        `mapstructure:"theme"`              // blue | green | minimal | sunset | pop
	Width              int           `mapstructure:"width"`              // Width of the capture
	Height             int           `mapstructure:"height"`             // Height of the capture
	DeviceScaleFactor  float64       `mapstructure:"deviceScaleFactor"`  // Device scale factor of the capture
	SettleDelay        time.Duration `mapstructure:"settleDelay"`        // Wait after mutating the page, before capture
	Engine             string        `mapstructure:"engine"`             // rod | chromedp
	BrowserBin         string        `mapstructure:"browserBin"`         // Chrome binary, empty to auto-detect
	ContinueOnError    bool          `mapstructure:"continueOnError"`    // Keep going when a page fails
	Imprint            string        `mapstructure:"imprint"`            // Text drawn over the bottom of each image
	DuplicateThreshold int           `mapstructure:"duplicateThreshold"` // Warn on similar images (1-100), 0 disables
}

// Config is the resolved, read-only configuration handed to every stage.
// It is passed by value.
type Config struct {
	SiteName           string
	BuildRoot          string // absolute real path of OutputDir
	PreviewPath        string // BuildRoot/ImageDir
	DataPath           string // absolute real path of DataFile
	TemplatePath       string // empty means the bundled template
	StylesPath         string // empty means the bundled stylesheet
	Theme              string
	Width              int
	Height             int
	DeviceScaleFactor  float64
	SettleDelay        time.Duration
	Engine             string
	BrowserBin         string
	ContinueOnError    bool
	Imprint            string
	DuplicateThreshold int
}

// NewOptions returns Options initialized with default values.
func NewOptions() Options {
	return Options{
		SiteName:          "11ty Rocks!",
		OutputDir:         "_site",
		ImageDir:          "previews",
		DataFile:          "pages.json",
		TemplatePath:      "",
		StylesPath:        "",
		Theme:             "blue",
		Width:             600,
		Height:            315,
		DeviceScaleFactor: 2,
		SettleDelay:       10 * time.Second,
		Engine:            EngineRod,
	}
}

// Resolve turns options into a Config. OutputDir and DataFile must exist;
// TemplatePath and StylesPath are only resolved when set.
func Resolve(o Options) (Config, error) {
	buildRoot, err := realPath(o.OutputDir)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidOutputDir, err)
	}

	var templatePath, stylesPath string
	if o.TemplatePath != "" {
		if templatePath, err = realPath(o.TemplatePath); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidTemplatePath, err)
		}
	}
	if o.StylesPath != "" {
		if stylesPath, err = realPath(o.StylesPath); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidStylesPath, err)
		}
	}

	dataPath, err := realPath(o.DataFile)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidDataFile, err)
	}

	if !slices.Contains(Themes, o.Theme) {
		log.Warnf("Unknown theme %q, the bundled stylesheet only knows %v", o.Theme, Themes)
	}

	cfg := Config{
		SiteName:           o.SiteName,
		BuildRoot:          buildRoot,
		PreviewPath:        filepath.Join(buildRoot, o.ImageDir),
		DataPath:           dataPath,
		TemplatePath:       templatePath,
		StylesPath:         stylesPath,
		Theme:              o.Theme,
		Width:              o.Width,
		Height:             o.Height,
		DeviceScaleFactor:  o.DeviceScaleFactor,
		SettleDelay:        o.SettleDelay,
		Engine:             o.Engine,
		BrowserBin:         o.BrowserBin,
		ContinueOnError:    o.ContinueOnError,
		Imprint:            o.Imprint,
		DuplicateThreshold: o.DuplicateThreshold,
	}

	log.Debugf("Resolved config: %+v", cfg)
	return cfg, nil
}

// realPath returns the absolute path of p with symlinks evaluated.
// It fails when p does not exist.
func realPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}
