package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skein/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path",
	Short: "Parse without printing the tree, reporting diagnostics only",
	Long:  `Check parses the input and exits non-zero when any file fails`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("grammar", "", "input grammar (json|sexpr); inferred from the extension when empty")
	checkCmd.Flags().Int("max-depth", 0, "JSON nesting limit (0 = grammar default)")
	checkCmd.Flags().Bool("nfc", false, "normalize input to NFC before parsing")
	checkCmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	opts, _, err := collectRunOptions(cmd, path)
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
		return reportDirectory(cmd, results, false, "")
	}

	res, err := driver.ParseFile(path, opts)
	if err != nil {
		return err
	}
	if res.Failed() {
		fmt.Fprintln(os.Stderr, res.Render(useColor(cmd, os.Stderr)))
		return fmt.Errorf("%s: parse failed", path)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}
	return nil
}
