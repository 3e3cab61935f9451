package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// NewRootCmd builds the gstctl command tree.
func NewRootCmd() *cobra.Command {
	var outputFormat string

	root := &cobra.Command{
		Use:   "gstctl",
		Short: "Indian GST calculations from the command line",
		Long: `gstctl runs the gstbook tax engine offline.

Examples:
  # Tax two widgets shipped from Maharashtra to Karnataka
  gstctl calc --from Maharashtra --to Karnataka --item "Widget,2,1000,18"

  # Spell out an invoice total
  gstctl words 2360.50

  # Inspect a GSTIN
  gstctl gstin 27AAPFU0939F1ZV`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table, json)")

	root.AddCommand(
		newCalcCmd(&outputFormat),
		newWordsCmd(),
		newGSTINCmd(&outputFormat),
		newStatesCmd(&outputFormat),
		newNumberCmd(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkFormat(format string) error {
	switch format {
	case "table", "json":
		return nil
	}
	return fmt.Errorf("unsupported output format: %s", format)
}
