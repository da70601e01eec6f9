package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/blox/internal/catalog"
	"github.com/jmylchreest/blox/internal/colour"
	"github.com/jmylchreest/blox/internal/config"
	"github.com/jmylchreest/blox/internal/image"
	"github.com/jmylchreest/blox/internal/manifest"
	"github.com/jmylchreest/blox/internal/wiki"
)

type buildOptions struct {
	output        string
	sqlite        string
	assetsVersion string
	textures      string
	noImages      bool
	palette       int
	paletteMethod string
}

func newBuildCmd(global *globalOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the block colour catalog",
		Long: `Build the block colour catalog from the asset manifests.

Every block texture is resolved to a canonical block id, averaged into a
single colour, tagged and matched to a wiki illustration. Entries whose
colour or illustration cannot be found are kept with that field omitted.
A manifest that cannot be loaded aborts the build.

Examples:
  # Build from the default remote assets
  blox build -o catalog.json

  # Build from textures staged locally, without illustrations
  blox stage ./textures
  blox build --textures ./textures --no-images

  # Also write a SQLite database and a 4-colour palette per entry
  blox build --sqlite catalog.db --palette 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "catalog.json", "catalog JSON output path")
	cmd.Flags().StringVar(&opts.sqlite, "sqlite", "", "also write the catalog to this SQLite database")
	cmd.Flags().StringVar(&opts.assetsVersion, "assets-version", "", "asset version to build (default from config)")
	cmd.Flags().StringVar(&opts.textures, "textures", "", "texture directory or base URL (default from config)")
	cmd.Flags().BoolVar(&opts.noImages, "no-images", false, "skip illustration lookup")
	cmd.Flags().IntVar(&opts.palette, "palette", 0, "number of palette colours per entry (0 disables)")
	cmd.Flags().StringVar(&opts.paletteMethod, "palette-method", string(colour.PaletteDominant), "palette method (dominant, kmeans)")

	return cmd
}

// apply overlays the command flags on cfg.
func (o *buildOptions) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if o.assetsVersion != "" {
		cfg.Version = o.assetsVersion
	}
	if o.textures != "" {
		cfg.TextureSource = o.textures
		// Local textures double as the texture list.
		if !image.IsURL(o.textures) {
			cfg.Manifests.Textures = o.textures
		}
	}
	if o.noImages {
		cfg.Images = false
	}
	if flags.Changed("palette") {
		cfg.Palette.Size = o.palette
	}
	if flags.Changed("palette-method") {
		cfg.Palette.Method = o.paletteMethod
	}
}

func runBuild(cmd *cobra.Command, global *globalOptions, opts *buildOptions) error {
	logger := global.logger(cmd)

	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	opts.apply(cmd.Flags(), &cfg)
	cfg = cfg.Expand()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	set, err := manifest.NewLoader(cfg.Timeout, logger.Named("manifest")).Load(ctx, cfg.Manifests)
	if err != nil {
		if errors.Is(err, manifest.ErrUnavailable) {
			return fmt.Errorf("cannot build catalog: %w", err)
		}
		return err
	}

	var finder catalog.ImageFinder
	if cfg.Images {
		finder = wiki.NewFinder(
			wiki.NewClient(cfg.WikiAPI, cfg.Timeout),
			wiki.DefaultRanker(),
			wiki.NewCache(),
			logger.Named("wiki"),
		)
	}

	builder := catalog.NewBuilder(catalog.Options{
		Version:       cfg.Version,
		TextureSource: cfg.TextureSource,
		RawTextureURL: cfg.RawTextureURL,
		Images:        cfg.Images,
		PaletteSize:   cfg.Palette.Size,
		PaletteMethod: colour.PaletteMethod(cfg.Palette.Method),
		Taxonomy:      cfg.Tags(),
	}, image.NewSmartLoader(cfg.Timeout), finder, logger.Named("catalog"))

	cat, err := builder.Build(ctx, set)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if err := catalog.SaveJSON(opts.output, cat); err != nil {
		return err
	}
	logger.Info("catalog written", "path", opts.output, "entries", cat.Len())

	if opts.sqlite != "" {
		if err := catalog.WriteSQLite(ctx, opts.sqlite, cat); err != nil {
			return err
		}
		logger.Info("database written", "path", opts.sqlite)
	}

	if !global.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d blocks, %d decorations -> %s\n",
			len(cat.Blocks), len(cat.Decorations), opts.output)
	}
	return nil
}
