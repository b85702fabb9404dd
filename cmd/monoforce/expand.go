package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"monoforce/internal/driver"
	"monoforce/internal/observ"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] [paths...]",
	Short: "Expand mono attributes and macros in Rust sources",
	Long: `Expand rewrites every #[mono(...)] attribute and mono!(...) invocation in the
given .rs files and directories (default: the manifest root). Files with errors
are reported and left alone; the rest are written to the output directory, in
place, or to stdout.`,
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().String("out-dir", "", "directory for expanded files (default: output.dir from monoforce.toml)")
	expandCmd.Flags().Bool("in-place", false, "rewrite the source files")
	expandCmd.Flags().Bool("stdout", false, "print expanded files to stdout")
	expandCmd.Flags().Bool("dry-run", false, "expand and report without writing")
	expandCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	expandCmd.Flags().Int("jobs", 0, "parallel workers (default: run.jobs, 0 = GOMAXPROCS)")
	expandCmd.Flags().Var(new(uiMode), "ui", "progress view")
	expandCmd.Flags().Bool("cache", false, "reuse cached expansions (default: run.cache)")
	expandCmd.Flags().Bool("clear-cache", false, "drop the expansion cache before running")
}

var errExpandFailed = errors.New("expansion failed")

type expandFlags struct {
	outDir     string
	inPlace    bool
	stdout     bool
	dryRun     bool
	format     string
	jobs       int
	ui         uiMode
	cache      bool
	clearCache bool
}

func readExpandFlags(cmd *cobra.Command) (expandFlags, error) {
	var f expandFlags
	var err error
	flags := cmd.Flags()
	if f.outDir, err = flags.GetString("out-dir"); err != nil {
		return f, err
	}
	if f.inPlace, err = flags.GetBool("in-place"); err != nil {
		return f, err
	}
	if f.stdout, err = flags.GetBool("stdout"); err != nil {
		return f, err
	}
	if f.dryRun, err = flags.GetBool("dry-run"); err != nil {
		return f, err
	}
	if f.format, err = flags.GetString("format"); err != nil {
		return f, err
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, err
	}
	if fl := flags.Lookup("ui"); fl != nil {
		if v, ok := fl.Value.(*uiMode); ok {
			f.ui = *v
		}
	}
	if f.cache, err = flags.GetBool("cache"); err != nil {
		return f, err
	}
	if f.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return f, err
	}

	switch {
	case f.format != "pretty" && f.format != "short" && f.format != "json":
		return f, fmt.Errorf("unknown format: %s", f.format)
	case f.stdout && f.inPlace:
		return f, fmt.Errorf("--stdout and --in-place are mutually exclusive")
	case f.stdout && f.outDir != "":
		return f, fmt.Errorf("--stdout and --out-dir are mutually exclusive")
	case f.inPlace && f.outDir != "":
		return f, fmt.Errorf("--in-place and --out-dir are mutually exclusive")
	case f.stdout && f.format == "json":
		return f, fmt.Errorf("--stdout cannot be combined with --format json")
	case f.jobs < 0:
		return f, fmt.Errorf("--jobs must not be negative")
	}
	return f, nil
}

func runExpand(cmd *cobra.Command, args []string) error {
	flags, err := readExpandFlags(cmd)
	if err != nil {
		return err
	}

	cleanupProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanupProf()
	cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanupTrace()

	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	cfg := manifest.Config
	if flags.inPlace {
		cfg.Output.InPlace = true
	}
	if flags.outDir != "" {
		cfg.Output.InPlace = false
		cfg.Output.Dir = flags.outDir
	}
	if flags.jobs > 0 {
		cfg.Run.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("cache") {
		cfg.Run.Cache = flags.cache
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts, err := cfg.ExpandOptions()
	if err != nil {
		return err
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{manifest.Root}
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	var discoverDone func(string)
	if timer != nil {
		discoverDone = timer.Track("discover")
	}
	files, err := driver.ListFiles(paths)
	if err != nil {
		return err
	}
	if discoverDone != nil {
		discoverDone(fmt.Sprintf("%d files", len(files)))
	}
	if len(files) == 0 {
		if !quiet(cmd) {
			fmt.Fprintln(os.Stderr, "no .rs files found")
		}
		return nil
	}

	var cache *driver.DiskCache
	if cfg.Run.Cache || flags.clearCache {
		cache, err = driver.OpenDiskCache(manifest.CacheDir())
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if flags.clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if !cfg.Run.Cache {
			cache = nil
		}
	}

	outDir := cfg.Output.Dir
	if flags.outDir == "" {
		outDir = manifest.OutDir()
	}
	wopts := driver.WriteOptions{
		Mode:    driver.WriteOutDir,
		OutDir:  outDir,
		BaseDir: manifest.Root,
		Stdout:  os.Stdout,
		DryRun:  flags.dryRun,
	}
	switch {
	case flags.stdout:
		wopts.Mode = driver.WriteStdout
	case cfg.Output.InPlace:
		wopts.Mode = driver.WriteInPlace
	}

	req := &driver.Request{
		Files:          files,
		BaseDir:        manifest.Root,
		Options:        opts,
		Jobs:           cfg.Jobs(),
		MaxDiagnostics: maxDiags,
		Cache:          cache,
		Timer:          timer,
	}

	var (
		res     *driver.Result
		summary driver.WriteSummary
	)
	if flags.ui.progressView(flags.stdout) && flags.format == "pretty" {
		res, summary, err = runExpandWithUI(cmd.Context(), "expand", driver.DisplayNames(files, manifest.Root), req, wopts)
	} else {
		res, err = driver.Expand(cmd.Context(), req)
		if err == nil {
			var writeDone func(string)
			if timer != nil {
				writeDone = timer.Track("write")
			}
			summary, err = driver.Write(cmd.Context(), res, wopts)
			if writeDone != nil {
				writeDone(fmt.Sprintf("%d written", summary.Written))
			}
		}
	}
	if err != nil {
		return err
	}

	bag := res.Bag(0)
	if timer != nil && flags.format == "json" {
		if d, err := driver.TimingDiagnostic("expand", timer.Report()); err == nil {
			bag.Add(d)
		}
	}
	bag.Sort()
	if err := renderDiagnostics(cmd, flags.format, bag, res.FileSet); err != nil {
		return err
	}
	if timer != nil && flags.format != "json" {
		printTimings(os.Stderr, timer)
	}

	decls, sites, failed, cached := res.Stats()
	if !quiet(cmd) && flags.format != "json" {
		verb := "wrote"
		if flags.dryRun {
			verb = "would write"
		}
		fmt.Fprintf(os.Stderr, "expanded %d file(s): %d decl(s) from %d site(s), %d failed, %d cached; %s %d, %d unchanged\n",
			len(res.Files), decls, sites, failed, cached, verb, summary.Written, summary.Unchanged)
	}
	if res.HasErrors() {
		return fmt.Errorf("%w: %d file(s) with errors", errExpandFailed, failed)
	}
	return nil
}
