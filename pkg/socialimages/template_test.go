package socialimages

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tmpl := `<title>{{ siteName }}</title><style>{{ style }}</style><main class="blue"><h1></h1></main>`

	html := Render(tmpl, "h1 { color: red; }", "Acme", "sunset")

	assert.Equal(t, `<title>Acme</title><style>h1 { color: red; }</style><main class="sunset"><h1></h1></main>`, html)
}

func TestRenderReplacesFirstOccurrenceOnly(t *testing.T) {
	tmpl, err := os.ReadFile("testdata/template.html")
	require.NoError(t, err)

	html := Render(string(tmpl), "CSS", "Acme", "green")

	assert.Contains(t, html, "<h1>Acme</h1>")
	assert.Contains(t, html, "<style>CSS</style>")
	assert.Contains(t, html, `<main class="green">`)
	assert.Contains(t, html, `<footer class="blue">{{ siteName }} {{ style }}</footer>`)
	assert.Equal(t, 1, strings.Count(html, "Acme"))
}

func TestRenderWithoutPlaceholders(t *testing.T) {
	tmpl := `<main class="red"><h1>static</h1></main>`
	assert.Equal(t, tmpl, Render(tmpl, "CSS", "Acme", "pop"))
}

func TestAssembleTemplateBundled(t *testing.T) {
	cfg := Config{SiteName: "Acme", Theme: "sunset"}

	html, err := AssembleTemplate(cfg)
	require.NoError(t, err)

	css, err := bundledAssets.ReadFile("assets/style.css")
	require.NoError(t, err)

	assert.Contains(t, html, "Acme")
	assert.NotContains(t, html, siteNamePlaceholder)
	assert.NotContains(t, html, stylePlaceholder)
	assert.Contains(t, html, string(css))
	assert.Contains(t, html, `class="sunset"`)
	assert.NotContains(t, html, `class="blue"`)
	assert.Contains(t, html, "<h1>")
	assert.Contains(t, html, `class="flexgrid"`)
}

func TestAssembleTemplateCustom(t *testing.T) {
	cfg := Config{
		SiteName:     "Acme",
		Theme:        "minimal",
		TemplatePath: "testdata/template.html",
		StylesPath:   "testdata/style.css",
	}

	html, err := AssembleTemplate(cfg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<html><head><style>h1 { color: red; }"))
	assert.Contains(t, html, "<h1>Acme</h1>")
	assert.Contains(t, html, `<main class="minimal">`)
	assert.NotContains(t, html, "Inter", "bundled template must not be used")
}

func TestAssembleTemplateMissingAtReadTime(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "template.html")
	css := filepath.Join(dir, "style.css")
	require.NoError(t, os.WriteFile(css, []byte("body {}"), 0o644))

	_, err := AssembleTemplate(Config{TemplatePath: tmpl})
	assert.ErrorIs(t, err, ErrInvalidTemplatePath)

	_, err = AssembleTemplate(Config{StylesPath: filepath.Join(dir, "gone.css")})
	assert.ErrorIs(t, err, ErrInvalidStylesPath)

	_, err = AssembleTemplate(Config{StylesPath: css})
	assert.NoError(t, err)
}
