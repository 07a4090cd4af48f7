package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/root4loot/socialimages/pkg/socialimages"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSite creates a build folder and a data file with one page.
func testSite(t *testing.T) (site, data string) {
	t.Helper()

	dir := t.TempDir()
	site = filepath.Join(dir, "_site")
	require.NoError(t, os.Mkdir(site, 0o755))

	data = filepath.Join(dir, "pages.json")
	require.NoError(t, os.WriteFile(data, []byte(`[{"title": "Hello", "cover": "/c.png", "imgName": "hello"}]`), 0o644))
	return site, data
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseFlags(t *testing.T) {
	v := viper.New()
	cmd := &cobra.Command{Use: "socialimages"}
	require.NoError(t, bindFlags(cmd, v))
	require.NoError(t, cmd.ParseFlags([]string{
		"--siteName", "Acme",
		"--theme", "sunset",
		"--width", "1200",
		"--height", "630",
		"--deviceScaleFactor", "1.5",
		"--settleDelay", "2s",
		"--engine", "chromedp",
		"--continueOnError",
	}))

	opts, err := loadOptions(v)
	require.NoError(t, err)

	assert.Equal(t, "Acme", opts.SiteName)
	assert.Equal(t, "sunset", opts.Theme)
	assert.Equal(t, 1200, opts.Width)
	assert.Equal(t, 630, opts.Height)
	assert.Equal(t, 1.5, opts.DeviceScaleFactor)
	assert.Equal(t, 2*time.Second, opts.SettleDelay)
	assert.Equal(t, "chromedp", opts.Engine)
	assert.True(t, opts.ContinueOnError)

	defaults := socialimages.NewOptions()
	assert.Equal(t, defaults.OutputDir, opts.OutputDir)
	assert.Equal(t, defaults.ImageDir, opts.ImageDir)
	assert.Equal(t, defaults.DataFile, opts.DataFile)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "social.yaml")
	require.NoError(t, os.WriteFile(path, []byte("siteName: From File\ntheme: pop\nwidth: 800\n"), 0o644))

	v := viper.New()
	cmd := &cobra.Command{Use: "socialimages"}
	require.NoError(t, bindFlags(cmd, v))
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--width", "900"}))

	opts, err := loadOptions(v)
	require.NoError(t, err)
	assert.Equal(t, "From File", opts.SiteName)
	assert.Equal(t, "pop", opts.Theme)
	assert.Equal(t, 900, opts.Width, "flags override the config file")
}

func TestRunOutsideProduction(t *testing.T) {
	t.Setenv("CONTEXT", "deploy-preview")
	site, data := testSite(t)

	_, err := execute(t, "--outputDir", site, "--dataFile", data, "--silence")
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(site, "previews"))
}

func TestRunWithoutContext(t *testing.T) {
	t.Setenv("CONTEXT", "")
	site, data := testSite(t)

	_, err := execute(t, "--outputDir", site, "--dataFile", data, "--silence")
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(site, "previews"))
}

func TestRunMissingDataFile(t *testing.T) {
	t.Setenv("CONTEXT", "production")
	site, _ := testSite(t)

	_, err := execute(t, "--outputDir", site, "--dataFile", filepath.Join(site, "missing.json"), "--silence")
	assert.ErrorIs(t, err, socialimages.ErrInvalidDataFile)

	assert.NoDirExists(t, filepath.Join(site, "previews"))
}

func TestRunMissingTemplate(t *testing.T) {
	t.Setenv("CONTEXT", "")
	site, data := testSite(t)

	_, err := execute(t, "--outputDir", site, "--dataFile", data, "--templatePath", "missing.html", "--silence")
	assert.ErrorIs(t, err, socialimages.ErrInvalidTemplatePath)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--dataFile")
}
