// Package config loads minic settings from a TOML or YAML file.
//
//	requires = ">= 0.4"
//
//	[log]
//	level  = "info"   # debug, info, warn, error
//	format = "text"   # text, json
//
//	[output]
//	color   = "auto"  # auto, always, never
//	symbols = true
//
//	[language.aliases]
//	if   = ["si"]
//	else = ["sino"]
//
//	[sources]
//	max_file_bytes = 1048576
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"minic/pkg/compiler"
	"minic/pkg/sources"
	"minic/pkg/version"
)

// EnvVar names the environment variable consulted when no --config is given.
const EnvVar = "MINIC_CONFIG"

// Config holds the complete tool configuration.
type Config struct {
	Requires string         `toml:"requires" yaml:"requires"`
	Log      LogConfig      `toml:"log" yaml:"log"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
	Language LanguageConfig `toml:"language" yaml:"language"`
	Sources  SourcesConfig  `toml:"sources" yaml:"sources"`

	path string
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

type OutputConfig struct {
	Color   string `toml:"color" yaml:"color"`
	Symbols *bool  `toml:"symbols" yaml:"symbols"`
}

// LanguageConfig maps a keyword ("if", "else", "while", ...) to extra
// spellings accepted for it.
type LanguageConfig struct {
	Aliases map[string][]string `toml:"aliases" yaml:"aliases"`
}

type SourcesConfig struct {
	MaxFileBytes int `toml:"max_file_bytes" yaml:"max_file_bytes"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads path; the format follows the file extension.
func Load(path string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}

	cfg.path = path
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Find returns the config file to use: $MINIC_CONFIG, then ./minic.toml,
// ./minic.yaml and ./minic.yml. It returns "" when none exists.
func Find() string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	for _, p := range []string{"minic.toml", "minic.yaml", "minic.yml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadOrDefault loads path, or the file Find locates when path is empty, or
// falls back to Default.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = Find()
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Path returns the file the configuration came from, or "" for defaults.
func (c *Config) Path() string { return c.path }

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.Symbols == nil {
		show := true
		c.Output.Symbols = &show
	}
	if c.Sources.MaxFileBytes <= 0 {
		c.Sources.MaxFileBytes = sources.DefaultMaxFileBytes
	}
}

func (c *Config) validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	if _, err := c.Keywords(); err != nil {
		return err
	}
	return version.Check(c.Requires)
}

// ShowSymbols reports whether a successful check prints the symbol table.
func (c *Config) ShowSymbols() bool {
	return c.Output.Symbols == nil || *c.Output.Symbols
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Keywords returns the built-in keyword set extended with the configured aliases.
func (c *Config) Keywords() (compiler.Keywords, error) {
	kw := compiler.DefaultKeywords()
	builtin := compiler.DefaultKeywords()

	canonicals := make([]string, 0, len(c.Language.Aliases))
	for name := range c.Language.Aliases {
		canonicals = append(canonicals, name)
	}
	sort.Strings(canonicals)

	for _, name := range canonicals {
		tt, ok := builtin[name]
		if !ok {
			return nil, fmt.Errorf("language.aliases: %q is not a keyword", name)
		}
		for _, alias := range c.Language.Aliases[name] {
			if err := kw.AddAlias(alias, tt); err != nil {
				return nil, fmt.Errorf("language.aliases.%s: %w", name, err)
			}
		}
	}
	return kw, nil
}
