package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"monoforce/internal/diag"
	"monoforce/internal/expand"
	"monoforce/internal/source"
)

var attrCmd = &cobra.Command{
	Use:   "attr [flags] ARGS [file.rs]",
	Short: "Run the attribute transform on one function item",
	Long: `Attr expands #[mono(ARGS)] applied to the fn item read from file.rs (or stdin)
and prints the result: the instantiation constant followed by the item.`,
	Example: `  echo 'fn id<T>(t: T) -> T { t }' | monoforce attr 'T = i32'`,
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runAttr,
}

var pathCmd = &cobra.Command{
	Use:     "path [flags] PATH",
	Short:   "Run the path transform on one function path",
	Example: `  monoforce path '<Foo as Tr<i32>>::foo'`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPath,
}

func init() {
	attrCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	pathCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
}

func runAttr(cmd *cobra.Command, args []string) error {
	var (
		item []byte
		err  error
	)
	if len(args) == 2 {
		item, err = os.ReadFile(args[1])
	} else {
		item, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read item: %w", err)
	}
	return runTransform(cmd, "<attr>", attrSource(args[0], item))
}

func runPath(cmd *cobra.Command, args []string) error {
	return runTransform(cmd, "<path>", pathSource(args[0]))
}

// attrSource prefixes item with the attribute, keeping the item untouched.
func attrSource(args string, item []byte) []byte {
	var sb strings.Builder
	sb.WriteString("#[mono(")
	sb.WriteString(args)
	sb.WriteString(")]\n")
	sb.Write(item)
	return []byte(sb.String())
}

func pathSource(path string) []byte {
	return []byte("mono!(" + strings.TrimSpace(path) + ");\n")
}

// transformOne expands a synthesized snippet with the default surface names
// and the manifest's entry policies.
func transformOne(cmd *cobra.Command, name string, src []byte) (expand.Result, *diag.Bag, *source.FileSet, error) {
	manifest, err := loadManifest(cmd)
	if err != nil {
		return expand.Result{}, nil, nil, err
	}
	opts, err := manifest.Config.ExpandOptions()
	if err != nil {
		return expand.Result{}, nil, nil, err
	}
	opts.Attributes = nil
	opts.PathMacros = nil

	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return expand.Result{}, nil, nil, err
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	bag := diag.NewBag(maxDiags)
	res := expand.File(fs.Get(id), opts, diag.BagReporter{Bag: bag})
	return res, bag, fs, nil
}

func runTransform(cmd *cobra.Command, name string, src []byte) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	res, bag, fs, err := transformOne(cmd, name, src)
	if err != nil {
		return err
	}
	if err := renderDiagnostics(cmd, format, bag, fs); err != nil {
		return err
	}
	if res.Output == nil {
		return errExpandFailed
	}
	if format != "json" {
		_, err = cmd.OutOrStdout().Write(res.Output)
	}
	return err
}
