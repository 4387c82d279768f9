// Package config loads asparse settings from a TOML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"

	"asparse/internal/parser"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "asparse.toml"

type Config struct {
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

type ParserConfig struct {
	TemplateTypes []string `toml:"template_types"`
	NamedArgs     string   `toml:"named_args"`
}

type OutputConfig struct {
	// Color is auto, always or never.
	Color string `toml:"color"`
	// Format is text, yaml or json.
	Format string `toml:"format"`
}

type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file at path and applies defaults and environment
// overrides.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve finds the config file to use: the explicit path, then
// ASPARSE_CONFIG, then ./asparse.toml. Without any file the defaults are
// returned with environment overrides applied.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if path := env.Str("ASPARSE_CONFIG"); path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}

	cfg := Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Parser.TemplateTypes == nil {
		c.Parser.TemplateTypes = parser.DefaultOptions().TemplateTypes
	}
	if c.Parser.NamedArgs == "" {
		c.Parser.NamedArgs = parser.NamedArgsAccept.String()
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
}

func (c *Config) applyEnv() {
	c.Output.Color = env.Str("ASPARSE_COLOR", c.Output.Color)
	c.Output.Format = env.Str("ASPARSE_FORMAT", c.Output.Format)
	c.Log.Verbosity = env.Int("ASPARSE_LOG_VERBOSITY", c.Log.Verbosity)

	// https://no-color.org
	if env.Has("NO_COLOR") {
		c.Output.Color = "never"
	}
}

func (c *Config) Validate() error {
	if _, err := parser.ParseNamedArgMode(c.Parser.NamedArgs); err != nil {
		return err
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q", c.Output.Color)
	}
	switch c.Output.Format {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	for _, name := range c.Parser.TemplateTypes {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("empty template type name")
		}
	}
	return nil
}

// ParserOptions converts the parser section. The config must be valid.
func (c *Config) ParserOptions() parser.Options {
	mode, _ := parser.ParseNamedArgMode(c.Parser.NamedArgs)
	return parser.Options{
		TemplateTypes: c.Parser.TemplateTypes,
		NamedArgs:     mode,
	}
}

// UseColor reports whether output should be colored. Auto leaves the
// decision to the terminal detection of the color package.
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isTerminal
}
