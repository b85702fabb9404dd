package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"monoforce/internal/config"
	"monoforce/internal/diag"
	"monoforce/internal/diagfmt"
	"monoforce/internal/source"
)

// loadManifest reads --config or discovers monoforce.toml upwards from the
// working directory. Without a manifest the defaults apply.
func loadManifest(cmd *cobra.Command) (*config.Manifest, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		m, _, err := config.Open(configPath)
		return m, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, _, err := config.Discover(wd)
	return m, err
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

// renderDiagnostics prints bag: pretty and short to stderr, json to stdout.
func renderDiagnostics(cmd *cobra.Command, format string, bag *diag.Bag, fs *source.FileSet) error {
	switch format {
	case "json":
		return diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
			IncludeFixes:     true,
			IncludePreviews:  true,
		})
	case "short":
		_, err := fmt.Fprint(os.Stderr, diag.FormatShort(bag.Items(), fs, false))
		return err
	case "pretty", "":
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stderr),
			Context:     2,
			PathMode:    diagfmt.PathModeRelative,
			ShowNotes:   true,
			ShowFixes:   true,
			ShowPreview: true,
		})
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
