package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pyxelate/pkg/config"
	"github.com/walteh/pyxelate/pkg/imageio"
	"github.com/walteh/pyxelate/pkg/log"
	"github.com/walteh/pyxelate/pkg/operation"
	"github.com/walteh/pyxelate/pkg/pixelate"
	"github.com/walteh/pyxelate/pkg/resolve"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootCmd builds the single pyxelate command. Flag defaults come from the
// optional config file; explicit flags win over file values.
func newRootCmd() *cobra.Command {
	var flags config.Config

	cmd := &cobra.Command{
		Use:           "pyxelate",
		Short:         "Batch-convert images into pixel-art renditions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			cfg, err := config.Load(configFile, true)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}
			applyFlagOverrides(cmd, cfg, &flags)
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating options: %w", err)
			}

			logger := log.New(cmd.OutOrStdout(), *zerolog.DefaultContextLogger)

			runner := operation.NewRunner(operation.Options{
				Config: cfg,
				Converter: &pixelate.Converter{
					Factor:            cfg.Factor,
					Colors:            cfg.Colors,
					Dither:            cfg.Dither,
					Alpha:             cfg.Alpha,
					RegeneratePalette: cfg.RegeneratePalette,
					Seed:              cfg.Seed,
				},
				Store: imageio.Store{},
				Resolver: &resolve.Resolver{
					OutputDir: cfg.Output,
					Exclude:   cfg.Exclude,
				},
				Logger: logger,
			})
			return runner.Run(cmd.Context())
		},
	}

	defaults := config.Defaults()
	cmd.Flags().IntVarP(&flags.Factor, "factor", "f", defaults.Factor, "factor by which the image is downscaled")
	cmd.Flags().IntVarP(&flags.Scaling, "scaling", "s", defaults.Scaling, "factor by which the result is upscaled")
	cmd.Flags().IntVarP(&flags.Colors, "colors", "c", defaults.Colors, "amount of colors in the pixelated image")
	cmd.Flags().BoolVarP(&flags.Dither, "dither", "d", defaults.Dither, "allow dithering")
	cmd.Flags().Float64VarP(&flags.Alpha, "alpha", "a", defaults.Alpha, "visibility threshold for alpha-channel pixels")
	cmd.Flags().BoolVarP(&flags.RegeneratePalette, "regenerate-palette", "r", defaults.RegeneratePalette, "regenerate the palette for each image")
	cmd.Flags().Int64VarP(&flags.Seed, "seed", "t", defaults.Seed, "random seed for palette refinement")
	cmd.Flags().StringVarP(&flags.Input, "input", "i", defaults.Input, "path to a single image or directory to process")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", defaults.Output, "directory where pixelated images are stored")
	cmd.Flags().BoolVarP(&flags.Warnings, "warnings", "w", defaults.Warnings, "display non-critical conversion warnings")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", nil, "glob patterns excluded during file resolution")

	cmd.PersistentFlags().StringVar(&configFile, "config", ".pyxelate.yaml", "config file path")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}

// applyFlagOverrides copies every flag the user set explicitly over the
// file-provided config.
func applyFlagOverrides(cmd *cobra.Command, cfg, flags *config.Config) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("factor", func() { cfg.Factor = flags.Factor })
	set("scaling", func() { cfg.Scaling = flags.Scaling })
	set("colors", func() { cfg.Colors = flags.Colors })
	set("dither", func() { cfg.Dither = flags.Dither })
	set("alpha", func() { cfg.Alpha = flags.Alpha })
	set("regenerate-palette", func() { cfg.RegeneratePalette = flags.RegeneratePalette })
	set("seed", func() { cfg.Seed = flags.Seed })
	set("input", func() { cfg.Input = flags.Input })
	set("output", func() { cfg.Output = flags.Output })
	set("warnings", func() { cfg.Warnings = flags.Warnings })
	set("exclude", func() { cfg.Exclude = flags.Exclude })

	if cfg.Output == "" {
		cfg.Output = filepath.Join(".", "pyxelated")
	}
}

// setupLogging configures zerolog based on flags.
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		// Keep stderr quiet during normal runs so structured events never
		// interleave with the status bar on the same terminal.
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}
