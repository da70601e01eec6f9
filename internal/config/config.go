// Package config holds the run configuration for a catalog build.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/blox/internal/colour"
	"github.com/jmylchreest/blox/internal/manifest"
	"github.com/jmylchreest/blox/internal/taxonomy"
)

// VersionPlaceholder is replaced by the asset version in every URL or path.
const VersionPlaceholder = "{version}"

const (
	assetsRaw = "https://raw.githubusercontent.com/InventivetalentDev/minecraft-assets/" + VersionPlaceholder + "/assets/minecraft"

	// DefaultVersion is the asset version built when none is configured.
	DefaultVersion = "1.21.11"

	// DefaultTimeout bounds every remote fetch.
	DefaultTimeout = 10 * time.Second
)

// Environment variables that override the configuration file.
const (
	EnvVersion  = "BLOX_VERSION"
	EnvTextures = "BLOX_TEXTURES"
	EnvWikiAPI  = "BLOX_WIKI_API"
	EnvTimeout  = "BLOX_TIMEOUT"
)

// Palette configures the optional per-entry palette.
type Palette struct {
	Size   int    `yaml:"size"`
	Method string `yaml:"method"`
}

// Config is the complete run configuration.
type Config struct {
	// Version is the asset version tag written to the catalog metadata.
	Version string `yaml:"version"`

	Manifests manifest.Sources `yaml:"manifests"`

	// TextureSource is a directory or base URL holding <texture>.png files.
	TextureSource string `yaml:"texture_source"`

	// RawTextureURL is the base URL used for fallback illustrations.
	RawTextureURL string `yaml:"raw_texture_url"`

	// WikiAPI is the MediaWiki API endpoint used to find illustrations.
	WikiAPI string `yaml:"wiki_api"`

	// ArchiveURL is the asset archive downloaded by the stage command.
	ArchiveURL string `yaml:"archive_url"`

	Timeout time.Duration `yaml:"timeout"`
	Images  bool          `yaml:"images"`
	Palette Palette       `yaml:"palette"`

	// Taxonomy replaces the built-in tag rules when set.
	Taxonomy *taxonomy.Taxonomy `yaml:"taxonomy"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Version: DefaultVersion,
		Manifests: manifest.Sources{
			Textures:    assetsRaw + "/textures/block/_list.json",
			Models:      assetsRaw + "/models/block/_all.json",
			BlockStates: assetsRaw + "/blockstates/_list.json",
		},
		TextureSource: assetsRaw + "/textures/block",
		RawTextureURL: assetsRaw + "/textures/block",
		WikiAPI:       "https://minecraft.wiki/api.php",
		ArchiveURL:    "https://github.com/InventivetalentDev/minecraft-assets/archive/refs/tags/" + VersionPlaceholder + ".zip",
		Timeout:       DefaultTimeout,
		Images:        true,
		Palette:       Palette{Size: 0, Method: string(colour.PaletteDominant)},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - Config path is user-specified
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from BLOX_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvTextures); v != "" {
		c.TextureSource = v
	}
	if v := os.Getenv(EnvWikiAPI); v != "" {
		c.WikiAPI = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// Expand returns a copy with the version placeholder substituted everywhere.
func (c Config) Expand() Config {
	sub := func(s string) string {
		return strings.ReplaceAll(s, VersionPlaceholder, c.Version)
	}
	c.Manifests.Textures = sub(c.Manifests.Textures)
	c.Manifests.Models = sub(c.Manifests.Models)
	c.Manifests.BlockStates = sub(c.Manifests.BlockStates)
	c.TextureSource = sub(c.TextureSource)
	c.RawTextureURL = sub(c.RawTextureURL)
	c.ArchiveURL = sub(c.ArchiveURL)
	return c
}

// Tags returns the configured taxonomy, or the built-in one.
func (c Config) Tags() taxonomy.Taxonomy {
	if c.Taxonomy != nil {
		return *c.Taxonomy
	}
	return taxonomy.Default()
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	if c.Manifests.Textures == "" || c.Manifests.Models == "" || c.Manifests.BlockStates == "" {
		return fmt.Errorf("all three manifests (textures, models, block_states) are required")
	}
	if c.TextureSource == "" {
		return fmt.Errorf("texture_source cannot be empty")
	}
	if c.Images && c.WikiAPI == "" {
		return fmt.Errorf("wiki_api is required when images are enabled")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Palette.Size < 0 || c.Palette.Size > 16 {
		return fmt.Errorf("palette size must be between 0 and 16, got %d", c.Palette.Size)
	}
	if c.Palette.Size > 0 {
		if _, err := colour.ParsePaletteMethod(c.Palette.Method); err != nil {
			return err
		}
	}
	if err := c.Tags().Validate(); err != nil {
		return fmt.Errorf("invalid taxonomy: %w", err)
	}
	return nil
}
