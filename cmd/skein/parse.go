package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"skein/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] path",
	Short: "Parse a file or directory and print the resulting tree",
	Long:  `Parse runs the selected grammar over the input and prints the parsed value`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("grammar", "", "input grammar (json|sexpr); inferred from the extension when empty")
	parseCmd.Flags().String("format", "", "output format (pretty|json|msgpack)")
	parseCmd.Flags().Int("max-depth", 0, "JSON nesting limit (0 = grammar default)")
	parseCmd.Flags().Bool("nfc", false, "normalize input to NFC before parsing")
	parseCmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	opts, manifest, err := collectRunOptions(cmd, path)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, manifest)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if info.IsDir() {
		results, err := parseDirectory(cmd, path, opts)
		if err != nil {
			return err
		}
		return reportDirectory(cmd, results, true, format)
	}

	res, err := driver.ParseFile(path, opts)
	if err != nil {
		return err
	}
	if res.Failed() {
		fmt.Fprintln(os.Stderr, res.Render(useColor(cmd, os.Stderr)))
		return fmt.Errorf("%s: parse failed", path)
	}
	return emitValue(cmd.OutOrStdout(), res.Value, format)
}

// collectRunOptions merges flags with skein.toml defaults. An explicitly
// set flag always wins over the manifest. The manifest is returned (nil
// when none was found) so callers can pick up output settings too.
func collectRunOptions(cmd *cobra.Command, path string) (driver.Options, *manifest, error) {
	grammarName, err := cmd.Flags().GetString("grammar")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get grammar flag: %w", err)
	}
	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	nfc, err := cmd.Flags().GetBool("nfc")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get nfc flag: %w", err)
	}

	man, ok, err := loadManifest(manifestStartDir(path))
	if err != nil {
		return driver.Options{}, nil, err
	}
	if ok {
		if grammarName == "" {
			grammarName = man.Config.Grammar.Name
		}
		if !cmd.Flags().Changed("max-depth") && man.Config.Grammar.MaxDepth > 0 {
			maxDepth = man.Config.Grammar.MaxDepth
		}
		if !cmd.Flags().Changed("nfc") && man.Config.Input.NFC {
			nfc = true
		}
	} else {
		man = nil
	}

	grammar, err := resolveGrammar(grammarName, path)
	if err != nil {
		return driver.Options{}, nil, err
	}
	return driver.Options{Grammar: grammar, MaxDepth: maxDepth, NFC: nfc}, man, nil
}

func resolveFormat(cmd *cobra.Command, man *manifest) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" && man != nil {
		format = man.Config.Output.Format
	}
	if format == "" {
		format = "pretty"
	}
	switch format {
	case "pretty", "json", "msgpack":
		return format, nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// resolveGrammar falls back to the file extension when the user did not
// name a grammar. Directories default to JSON.
func resolveGrammar(name, path string) (driver.Grammar, error) {
	if name != "" {
		return driver.ParseGrammar(name)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sexpr", ".lisp", ".scm":
		return driver.GrammarSexpr, nil
	default:
		return driver.GrammarJSON, nil
	}
}

func parseDirectory(cmd *cobra.Command, root string, opts driver.Options) ([]*driver.Result, error) {
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return nil, err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	if !quiet && shouldUseTUI(mode) {
		files, err := driver.ListFiles(root, opts.Grammar)
		if err != nil {
			return nil, err
		}
		return runParseDirWithUI(cmd.Context(), "Parsing "+root, files, root, opts)
	}
	return driver.ParseDir(cmd.Context(), root, opts, nil)
}

// reportDirectory prints failures to stderr and, when emit is set, the
// parsed values to stdout keyed by path.
func reportDirectory(cmd *cobra.Command, results []*driver.Result, emit bool, format string) error {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	color := useColor(cmd, os.Stderr)

	failed := 0
	trees := make(map[string]any, len(results))
	for _, res := range results {
		if res.Failed() {
			failed++
			fmt.Fprintln(os.Stderr, res.Render(color))
			fmt.Fprintln(os.Stderr)
			continue
		}
		trees[res.Path] = res.Value
	}

	if emit && len(trees) > 0 {
		if err := emitValue(cmd.OutOrStdout(), trees, format); err != nil {
			return err
		}
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "parsed %d files, %d failed\n", len(results), failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
	}
	return nil
}

func emitValue(w io.Writer, value any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		return enc.Encode(value)
	case "msgpack":
		data, err := msgpack.Marshal(value)
		if err != nil {
			return fmt.Errorf("msgpack encoding failed: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}
}

func manifestStartDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
