// Package cli provides the command-line interface for blox.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/blox/internal/config"
	"github.com/jmylchreest/blox/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
}

// NewRootCmd builds the blox command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "blox",
		Short: "Build a colour catalog of Minecraft blocks",
		Long: `blox derives a representative colour for every Minecraft block texture,
tags each block from keyword tables, finds an illustration on the wiki and
writes the result as a catalog that can be searched by colour.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (YAML)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newMatchCmd(opts))
	rootCmd.AddCommand(newStageCmd(opts))

	return rootCmd
}

// logger returns the logger for a command, writing to its error stream.
func (o *globalOptions) logger(cmd *cobra.Command) hclog.Logger {
	return newLogger(cmd.ErrOrStderr(), o.level())
}

func (o *globalOptions) level() hclog.Level {
	switch {
	case o.quiet:
		return hclog.Error
	case o.verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

func newLogger(w io.Writer, level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "blox",
		Output: w,
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

// loadConfig reads the configuration file and environment.
func (o *globalOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
