package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/dokumd/internal/convert"
)

// Conversion engines
const (
	EngineBuiltin = "builtin"
	EnginePandoc  = "pandoc"
)

// TimestampNow makes every page use the time the run started
const TimestampNow = "now"

// PandocConfig configures the external pandoc engine
type PandocConfig struct {
	Binary string   `yaml:"binary"`
	Args   []string `yaml:"args,omitempty"`
}

// Config represents the dokumd configuration
type Config struct {
	SrcDir       string                `yaml:"src_dir"`
	DestDir      string                `yaml:"dest_dir"`
	SrcExt       string                `yaml:"src_ext"`
	DestExt      string                `yaml:"dest_ext"`
	RootPage     string                `yaml:"root_page"`
	RootTitle    string                `yaml:"root_title"`
	Timestamp    string                `yaml:"timestamp"`
	Editor       string                `yaml:"editor"`
	LogFile      string                `yaml:"log_file,omitempty"`
	Workers      int                   `yaml:"workers"`
	Engine       string                `yaml:"engine"`
	FailFast     bool                  `yaml:"fail_fast"`
	Pandoc       PandocConfig          `yaml:"pandoc"`
	Replacements []convert.Replacement `yaml:"replacements"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		SrcDir:       filepath.Join(home, "dokuwiki", "data", "pages"),
		DestDir:      filepath.Join(home, "wikijs-pages"),
		SrcExt:       ".txt",
		DestExt:      ".md",
		RootPage:     "start",
		RootTitle:    convert.DefaultRootTitle,
		Timestamp:    TimestampNow,
		Editor:       convert.DefaultEditor,
		Workers:      4,
		Engine:       EngineBuiltin,
		Pandoc:       PandocConfig{Binary: "pandoc", Args: []string{"--markdown-headings=atx"}},
		Replacements: convert.DefaultReplacements(),
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.ConfigHome, "dokumd", "config.yaml")
	}
	return filepath.Join(home, ".config", "dokumd", "config.yaml")
}

// Load reads configuration from the default config path
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads configuration from path. Keys missing from the file keep
// their default values; a missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the default config path
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes configuration to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SrcDir == "" {
		return fmt.Errorf("src_dir cannot be empty")
	}
	if c.DestDir == "" {
		return fmt.Errorf("dest_dir cannot be empty")
	}
	if c.SrcExt == "" || c.SrcExt[0] != '.' {
		return fmt.Errorf("src_ext must start with a dot, got '%s'", c.SrcExt)
	}
	if c.DestExt == "" || c.DestExt[0] != '.' {
		return fmt.Errorf("dest_ext must start with a dot, got '%s'", c.DestExt)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	switch c.Engine {
	case EngineBuiltin:
	case EnginePandoc:
		if c.Pandoc.Binary == "" {
			return fmt.Errorf("pandoc.binary cannot be empty when engine is pandoc")
		}
	default:
		return fmt.Errorf("invalid engine '%s': must be one of: builtin, pandoc", c.Engine)
	}

	if _, err := c.ParseTimestamp(time.Now); err != nil {
		return err
	}

	return nil
}

// ParseTimestamp returns the instant written into front matter: now() for
// "now" or an empty value, otherwise the configured RFC 3339 time
func (c *Config) ParseTimestamp(now func() time.Time) (time.Time, error) {
	if c.Timestamp == "" || c.Timestamp == TimestampNow {
		return now(), nil
	}
	ts, err := time.Parse(time.RFC3339, c.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp format '%s': %w", c.Timestamp, err)
	}
	return ts, nil
}

// ConverterOptions builds the page converter options for one run
func (c *Config) ConverterOptions(now func() time.Time) (convert.Options, error) {
	ts, err := c.ParseTimestamp(now)
	if err != nil {
		return convert.Options{}, err
	}
	return convert.Options{
		Timestamp:    ts,
		RootTitle:    c.RootTitle,
		Editor:       c.Editor,
		Replacements: c.Replacements,
	}, nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.SrcDir, err = expandPath(c.SrcDir)
	if err != nil {
		return fmt.Errorf("failed to expand src_dir: %w", err)
	}

	c.DestDir, err = expandPath(c.DestDir)
	if err != nil {
		return fmt.Errorf("failed to expand dest_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
