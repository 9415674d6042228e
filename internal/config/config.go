// Package config loads zbind's YAML configuration. Every setting has a
// safe default; a missing config file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"zbind/pkg/types"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It selects default sort/group modes, the widgets to hide from the
// table, and how the zsh listing subprocess is invoked.
type Config struct {
	Sort struct {
		Field     string `yaml:"field"`     // widget, key, or keymap
		Secondary string `yaml:"secondary"` // secondary field when sorting by keymap
		Group     string `yaml:"group"`     // none, widget, keymap, or prefix
	} `yaml:"sort"`
	// Widgets hidden from output; glob patterns. These default to zsh's
	// bookkeeping widgets that are bound on nearly every key.
	IgnoreWidgets []string `yaml:"ignore_widgets"`
	Zsh           struct {
		Command string   `yaml:"command"` // zsh binary to invoke
		Args    []string `yaml:"args"`    // arguments producing the listing
	} `yaml:"zsh"`
	Display struct {
		Plain bool `yaml:"plain"` // skip table borders and styling
		Theme struct {
			Header string `yaml:"header"` // group/table header color
			Key    string `yaml:"key"`    // key column color
			Macro  string `yaml:"macro"`  // macro target color
			Border string `yaml:"border"` // table border color
		} `yaml:"theme"`
	} `yaml:"display"`
}

// LoadConfig loads configuration from the default location
// (~/.config/zbind/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "zbind", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.Sort.Field != "" {
		cfg.Sort.Field = tempCfg.Sort.Field
	}
	if tempCfg.Sort.Secondary != "" {
		cfg.Sort.Secondary = tempCfg.Sort.Secondary
	}
	if tempCfg.Sort.Group != "" {
		cfg.Sort.Group = tempCfg.Sort.Group
	}
	if tempCfg.IgnoreWidgets != nil {
		cfg.IgnoreWidgets = tempCfg.IgnoreWidgets
	}
	if tempCfg.Zsh.Command != "" {
		cfg.Zsh.Command = tempCfg.Zsh.Command
	}
	if len(tempCfg.Zsh.Args) > 0 {
		cfg.Zsh.Args = tempCfg.Zsh.Args
	}
	cfg.Display.Plain = tempCfg.Display.Plain
	if tempCfg.Display.Theme.Header != "" {
		cfg.Display.Theme.Header = tempCfg.Display.Theme.Header
	}
	if tempCfg.Display.Theme.Key != "" {
		cfg.Display.Theme.Key = tempCfg.Display.Theme.Key
	}
	if tempCfg.Display.Theme.Macro != "" {
		cfg.Display.Theme.Macro = tempCfg.Display.Theme.Macro
	}
	if tempCfg.Display.Theme.Border != "" {
		cfg.Display.Theme.Border = tempCfg.Display.Theme.Border
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// New returns the default configuration.
func New() *Config {
	cfg := &Config{}

	cfg.Sort.Field = "widget"
	cfg.Sort.Secondary = "widget"
	cfg.Sort.Group = "none"

	// Bookkeeping widgets zsh binds on whole character ranges; listing
	// them drowns out the bindings a user actually cares about.
	cfg.IgnoreWidgets = []string{
		"bracketed-paste",
		"digit-argument",
		"neg-argument",
		"self-insert-unmeta",
	}

	cfg.Zsh.Command = "zsh"
	cfg.Zsh.Args = []string{"--login", "--interactive", "-c", "bindkey -L"}

	cfg.Display.Theme.Header = "12"
	cfg.Display.Theme.Key = "10"
	cfg.Display.Theme.Macro = "11"
	cfg.Display.Theme.Border = "8"

	return cfg
}

// Validate checks that the configured mode names are recognized.
func (c *Config) Validate() error {
	if _, err := c.SortOptions(); err != nil {
		return err
	}
	return nil
}

// SortOptions translates the configured mode names into the aggregator's
// selectors.
func (c *Config) SortOptions() (types.SortOptions, error) {
	var opts types.SortOptions

	field, err := parseSortField(c.Sort.Field)
	if err != nil {
		return opts, err
	}
	secondary, err := parseSortField(c.Sort.Secondary)
	if err != nil {
		return opts, err
	}

	var group types.GroupField
	switch c.Sort.Group {
	case "", "none":
		group = types.GroupNone
	case "widget":
		group = types.GroupByWidget
	case "keymap":
		group = types.GroupByKeymap
	case "prefix":
		group = types.GroupByPrefix
	default:
		return opts, fmt.Errorf("unknown group mode %q", c.Sort.Group)
	}

	opts.Field = field
	opts.Secondary = secondary
	opts.GroupBy = group
	return opts, nil
}

func parseSortField(name string) (types.SortField, error) {
	switch name {
	case "", "widget":
		return types.ByWidget, nil
	case "key", "in-string":
		return types.ByKey, nil
	case "keymap":
		return types.ByKeymap, nil
	default:
		return types.ByWidget, fmt.Errorf("unknown sort field %q", name)
	}
}
