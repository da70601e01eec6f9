package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blox/internal/compression"
	"github.com/jmylchreest/blox/internal/security"
	"github.com/jmylchreest/blox/internal/util/filecache"
)

// blockTextureDir is where block textures live inside an asset archive.
const blockTextureDir = "assets/minecraft/textures/block/"

type stageOptions struct {
	archive  string
	cacheDir string
	refresh  bool
	timeout  time.Duration
}

func newStageCmd(global *globalOptions) *cobra.Command {
	opts := &stageOptions{}

	cmd := &cobra.Command{
		Use:   "stage <dir>",
		Short: "Download block textures for offline builds",
		Long: `Download the asset archive for the configured version and extract its
block textures into a local directory. The archive is cached, so staging
the same version again does not download it twice.

Examples:
  blox stage ./textures
  blox build --textures ./textures`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.archive, "archive", "", "archive URL (default from config)")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "download cache directory")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "download even when a cached copy exists")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "download timeout")

	return cmd
}

func runStage(cmd *cobra.Command, global *globalOptions, opts *stageOptions, dest string) error {
	logger := global.logger(cmd).Named("stage")

	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	url := cfg.Expand().ArchiveURL
	if opts.archive != "" {
		url = opts.archive
	}
	if err := security.ValidateDownloadURL(url); err != nil {
		return fmt.Errorf("refusing archive URL: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("fetching archive", "url", url)
	res, err := filecache.Fetch(ctx, url, filecache.Options{
		Dir:     opts.cacheDir,
		Refresh: opts.refresh,
		Timeout: opts.timeout,
	})
	if err != nil {
		return err
	}
	logger.Debug("archive ready", "path", res.Path, "cached", res.Hit)

	data, err := os.ReadFile(res.Path)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	format, err := compression.DetectFormat(url, data)
	if err != nil {
		return err
	}

	result, err := compression.Extract(data, format, dest, compression.Options{
		Prefix: blockTextureDir,
		Ext:    ".png",
	})
	if err != nil {
		return fmt.Errorf("failed to extract textures: %w", err)
	}
	if len(result.Files) == 0 {
		return fmt.Errorf("no textures found under %s in %s", blockTextureDir, url)
	}

	logger.Info("textures staged", "dir", dest, "files", len(result.Files), "bytes", result.Bytes)
	if !global.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d textures -> %s\n", len(result.Files), dest)
	}
	return nil
}
