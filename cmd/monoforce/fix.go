package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"monoforce/internal/driver"
	"monoforce/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [paths...]",
	Short: "Apply suggested fixes to Rust sources",
	Long: `Fix expands the given files and directories without writing output, collects
the fixes attached to warnings (such as removing a duplicate or unused
argument) and applies them to the sources.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all available fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with this identifier")
	fixCmd.Flags().Bool("dry-run", false, "show what would change without writing")
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	opts, err := manifest.Config.ExpandOptions()
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		paths = []string{manifest.Root}
	}
	files, err := driver.ListFiles(paths)
	if err != nil {
		return err
	}
	res, err := driver.Expand(cmd.Context(), &driver.Request{
		Files:   files,
		BaseDir: manifest.Root,
		Options: opts,
		Jobs:    manifest.Config.Jobs(),
	})
	if err != nil {
		return fmt.Errorf("fix: expand failed: %w", err)
	}

	bag := res.Bag(0)
	bag.Sort()
	applied, applyErr := fix.Apply(res.FileSet, bag.Items(), fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	return handleApplyResult(cmd.OutOrStdout(), applied, applyErr, dryRun)
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] %s: %s (%d edits)\n", item.Title, item.ID, location, item.Code.ID(), item.EditCount)
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(out, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(out, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
