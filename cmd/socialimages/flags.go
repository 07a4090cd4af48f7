package main

import (
	"fmt"
	"strings"

	"github.com/root4loot/socialimages/pkg/socialimages"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const usage = `USAGE:
  socialimages [options]

  Images are only generated when CONTEXT=production.

INPUT:
  --dataFile            JSON or YAML list of pages                         (Default: pages.json)
  --templatePath        custom HTML template                               (Default: bundled)
  --stylesPath          custom stylesheet                                  (Default: bundled)
  --config              YAML config file with any of these options

CONFIGURATIONS:
  --siteName            site name shown on every image                     (Default: 11ty Rocks!)
  --theme               blue | green | minimal | sunset | pop              (Default: blue)
  --width               image width                                        (Default: 600)
  --height              image height                                       (Default: 315)
  --deviceScaleFactor   device scale factor                                (Default: 2)
  --settleDelay         wait before each capture                           (Default: 10s)
  --engine              rod | chromedp                                     (Default: rod)
  --browserBin          path to Chrome                                     (Default: auto-detect)
  --continueOnError     keep going when a page fails                       (Default: false)
  --duplicateThreshold  warn on similar images (1-100, 0 disables)         (Default: 0)
  --context             build context, overrides $CONTEXT

OUTPUT:
  --outputDir           site build folder (must exist)                     (Default: _site)
  --imageDir            image folder inside outputDir                      (Default: previews)
  --imprint             text drawn over the bottom of each image
  -s, --silence         silence output
      --debug           enable debug mode
      --version         display version
`

// bindFlags registers every option flag on cmd and binds it, the environment
// and the optional config file to v.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	defaults := socialimages.NewOptions()
	f := cmd.Flags()

	f.String("siteName", defaults.SiteName, "")
	f.String("outputDir", defaults.OutputDir, "")
	f.String("imageDir", defaults.ImageDir, "")
	f.String("dataFile", defaults.DataFile, "")
	f.String("templatePath", defaults.TemplatePath, "")
	f.String("stylesPath", defaults.StylesPath, "")
	f.String("theme", defaults.Theme, "")
	f.Int("width", defaults.Width, "")
	f.Int("height", defaults.Height, "")
	f.Float64("deviceScaleFactor", defaults.DeviceScaleFactor, "")
	f.Duration("settleDelay", defaults.SettleDelay, "")
	f.String("engine", defaults.Engine, "")
	f.String("browserBin", defaults.BrowserBin, "")
	f.Bool("continueOnError", defaults.ContinueOnError, "")
	f.String("imprint", defaults.Imprint, "")
	f.Int("duplicateThreshold", defaults.DuplicateThreshold, "")

	f.String("context", "", "")
	f.String("config", "", "")
	f.BoolP("silence", "s", false, "")
	f.Bool("debug", false, "")
	f.Bool("version", false, "")

	if err := v.BindPFlags(f); err != nil {
		return err
	}

	v.SetEnvPrefix("SOCIALIMAGES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v.BindEnv("context", socialimages.ContextEnv)
}

// loadOptions reads the config file, if any, and decodes the merged
// defaults, file, environment and flags into Options.
func loadOptions(v *viper.Viper) (socialimages.Options, error) {
	opts := socialimages.NewOptions()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return opts, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}

	if err := v.Unmarshal(&opts); err != nil {
		return opts, fmt.Errorf("unable to decode options: %w", err)
	}
	return opts, nil
}
