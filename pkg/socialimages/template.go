package socialimages

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/root4loot/goutils/log"
)

const (
	siteNamePlaceholder = "{{ siteName }}"
	stylePlaceholder    = "{{ style }}"
	defaultThemeClass   = `class="blue"`
)

//go:embed assets/template.html assets/style.css
var bundledAssets embed.FS

// AssembleTemplate reads the template and stylesheet named by cfg and returns
// the HTML document to load in the browser. Each placeholder is replaced once.
func AssembleTemplate(cfg Config) (string, error) {
	tmpl, err := readAsset(cfg.TemplatePath, "assets/template.html")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTemplatePath, err)
	}

	css, err := readAsset(cfg.StylesPath, "assets/style.css")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidStylesPath, err)
	}

	return Render(string(tmpl), string(css), cfg.SiteName, cfg.Theme), nil
}

// Render applies the site name, style block and theme class substitutions,
// in that order, to tmpl.
func Render(tmpl, css, siteName, theme string) string {
	html := strings.Replace(tmpl, siteNamePlaceholder, siteName, 1)
	html = strings.Replace(html, stylePlaceholder, css, 1)
	return strings.Replace(html, defaultThemeClass, fmt.Sprintf(`class="%s"`, theme), 1)
}

// readAsset reads path from disk, or the bundled asset when path is empty.
func readAsset(path, bundled string) ([]byte, error) {
	if path == "" {
		log.Debugf("Using bundled %s", bundled)
		return bundledAssets.ReadFile(bundled)
	}

	log.Debugf("Reading %s", path)
	return os.ReadFile(path)
}
