// Package cli provides the command-line interface for swatch.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/version"
)

// envPrefix prefixes the environment variables that mirror command-line flags.
const envPrefix = "SWATCH_"

var (
	// logger is shared by all commands and configured in PersistentPreRunE.
	logger = hclog.NewNullLogger()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "swatch",
		Short: "Extract prominent colour swatches from images",
		Long: `Swatch extracts a small set of representative colours from an image using
median-cut quantization and picks the swatches that best match six perceptual
targets: light, normal and dark variants of vibrant and muted.

Every flag can also be set through an environment variable named after the
flag, for example SWATCH_COLOURS=8 or SWATCH_FILTER_PLUGIN=/path/to/plugin.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: setupCommand,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(watchCmd)
}

// setupCommand applies environment fallbacks and builds the logger.
func setupCommand(cmd *cobra.Command, _ []string) error {
	if err := applyEnv(cmd.Flags(), os.LookupEnv); err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	logger = newLogger(cmd.ErrOrStderr(), verbose, quiet)
	return nil
}

// newLogger returns the "swatch" logger writing to w.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: w,
		Level:  level,
	})
}

// applyEnv sets every flag that was not given on the command line from its
// SWATCH_<FLAG> variable, if present. Dashes in flag names become
// underscores. List flags accept comma separated values.
func applyEnv(flags *pflag.FlagSet, lookup func(string) (string, bool)) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" || f.Name == "version" {
			return
		}
		value, ok := lookup(envName(f.Name))
		if !ok {
			return
		}

		values := []string{value}
		if f.Value.Type() == "stringArray" {
			values = strings.Split(value, ",")
		}
		for _, v := range values {
			if err := flags.Set(f.Name, strings.TrimSpace(v)); err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", envName(f.Name), err))
				return
			}
		}
	})
	return errors.Join(errs...)
}

// envName returns the environment variable that mirrors flag.
func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
