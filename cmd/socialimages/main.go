package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/root4loot/goutils/log"
	"github.com/root4loot/socialimages/pkg/socialimages"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	author  = "@danielantonsen"
	version = "0.1.0"
)

func init() {
	log.Init("socialimages")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "socialimages",
		Short:         "Generate social preview images for the pages of a site build",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v)
		},
	}

	if err := bindFlags(cmd, v); err != nil {
		panic(err)
	}

	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), usage)
	})
	cmd.SetUsageFunc(func(cmd *cobra.Command) error {
		fmt.Fprint(cmd.OutOrStderr(), usage)
		return nil
	})

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	if v.GetBool("version") {
		fmt.Fprintln(cmd.OutOrStdout(), "socialimages", version, "by", author)
		return nil
	}

	socialimages.SetLogLevel(v.GetBool("debug"), v.GetBool("silence"))

	opts, err := loadOptions(v)
	if err != nil {
		return err
	}

	cfg, err := socialimages.Resolve(opts)
	if err != nil {
		return err
	}

	log.Info("Starting custom social images...")

	if socialimages.IsProduction(v.GetString("context")) {
		log.Info("Social Images being processed as this is the production branch")

		results, err := socialimages.Generate(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		log.Debugf("%d images written to %s", len(results), cfg.PreviewPath)
	} else {
		log.Debugf("Skipping image generation, %s is not %q", socialimages.ContextEnv, socialimages.ProductionContext)
	}

	log.Info("Social images complete!")
	return nil
}
