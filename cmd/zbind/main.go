// Command zbind displays zsh key bindings in human-readable form.
// It parses the output of `bindkey -L` (from a live shell, a file, or
// stdin), decodes the key notation, and prints an ordered table.
package main

import (
	"fmt"
	"os"

	"zbind/internal/aggregate"
	"zbind/internal/config"
	"zbind/internal/log"
	"zbind/internal/parse"
	"zbind/internal/render"
	"zbind/internal/zsh"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var (
		cfgFile   string
		file      string
		keymap    string
		sortBy    string
		secondary string
		groupBy   string
		inString  bool
		byWidget  bool
		byPrefix  bool
		showAll   bool
		plain     bool
		debug     bool
	)

	rootCmd := &cobra.Command{
		Use:   "zbind",
		Short: "Display zsh key bindings in more human-readable formats",
		Long: `zbind runs zsh's 'bindkey -L' (or reads a saved listing) and prints
the bindings as a table: decoded key notation, the bound widget or
macro text, and the keymap each binding lives in.

Sorting and grouping modes make the listing navigable: sort by widget
name to see what a command is bound to, by key to see what a key does,
or group by keymap or escape prefix to compare contexts.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetDebug(debug)

			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}

			// Flags override the configured modes.
			if sortBy != "" {
				cfg.Sort.Field = sortBy
			}
			if secondary != "" {
				cfg.Sort.Secondary = secondary
			}
			if groupBy != "" {
				cfg.Sort.Group = groupBy
			}
			if inString {
				cfg.Sort.Field = "key"
			}
			if byWidget {
				cfg.Sort.Group = "widget"
			}
			if byPrefix {
				cfg.Sort.Group = "prefix"
			}
			if plain {
				cfg.Display.Plain = true
			}

			opts, err := cfg.SortOptions()
			if err != nil {
				return err
			}
			engine, err := aggregate.New(opts)
			if err != nil {
				return err
			}

			lines, err := listing(cfg, file, keymap)
			if err != nil {
				return err
			}

			ignored := cfg.IgnoreWidgets
			if showAll {
				ignored = nil
			}
			parser, err := parse.NewWithIgnored(ignored)
			if err != nil {
				return err
			}

			res := parser.Parse(lines)
			for _, lineErr := range res.Errors {
				log.Warnf("%v", lineErr)
			}
			if len(res.Bindings) == 0 && len(res.Errors) > 0 {
				return fmt.Errorf("no bindings parsed (%d malformed lines)", len(res.Errors))
			}

			rows := engine.Rows(res.Bindings)
			fmt.Fprint(cmd.OutOrStdout(), render.New(cfg).Render(rows))
			return nil
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/zbind/config.yaml)")
	rootCmd.Flags().StringVarP(&file, "file", "f", "", "read listing lines from file ('-' for stdin) instead of running zsh")
	rootCmd.Flags().StringVar(&keymap, "keymap", "", "list a specific keymap (bindkey -M)")
	rootCmd.Flags().StringVar(&sortBy, "sort", "", "sort field: widget, key, or keymap")
	rootCmd.Flags().StringVar(&secondary, "secondary", "", "secondary sort field when sorting by keymap")
	rootCmd.Flags().StringVar(&groupBy, "group", "", "group rows: none, widget, keymap, or prefix")
	rootCmd.Flags().BoolVarP(&inString, "in-string", "i", false, "sort by key sequence instead of widget")
	rootCmd.Flags().BoolVarP(&byWidget, "widget", "w", false, "group by widget")
	rootCmd.Flags().BoolVarP(&byPrefix, "prefix", "p", false, "group by key prefix")
	rootCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include widgets hidden by ignore_widgets")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "plain aligned output without table borders")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.MarkFlagsMutuallyExclusive("in-string", "widget", "prefix")
	rootCmd.MarkFlagsMutuallyExclusive("sort", "in-string")
	rootCmd.MarkFlagsMutuallyExclusive("group", "widget", "prefix")

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Warnf("could not load config: %v; using defaults", err)
		return config.New(), nil
	}
	return cfg, nil
}

// listing obtains the raw lines: from a file, stdin, or a zsh subprocess.
func listing(cfg *config.Config, file, keymap string) ([]string, error) {
	switch {
	case file == "-":
		return readLines(os.Stdin)
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readLines(f)
	case keymap != "":
		return zsh.ListingKeymap(cfg, keymap)
	default:
		return zsh.Listing(cfg)
	}
}
