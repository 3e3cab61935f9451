package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"gstbook/internal/gst"
)

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words AMOUNT",
		Short: "Spell out a rupee amount in Indian numbering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			if !gst.WithinLimit(amount) {
				return fmt.Errorf("amount %s exceeds %s", args[0], gst.MaxAmount.StringFixed(gst.MoneyPlaces))
			}
			fmt.Fprintln(cmd.OutOrStdout(), gst.AmountInWords(amount))
			return nil
		},
	}
}

type gstinInfo struct {
	GSTIN     string `json:"gstin"`
	Valid     bool   `json:"valid"`
	State     string `json:"state,omitempty"`
	StateCode string `json:"state_code,omitempty"`
	PAN       string `json:"pan,omitempty"`
}

func newGSTINCmd(outputFormat *string) *cobra.Command {
	return &cobra.Command{
		Use:   "gstin GSTIN",
		Short: "Validate a GSTIN and show its state and PAN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(*outputFormat); err != nil {
				return err
			}
			value := strings.ToUpper(strings.TrimSpace(args[0]))
			info := gstinInfo{GSTIN: value, Valid: gst.ValidateGSTIN(value)}
			if info.Valid {
				info.State, _ = gst.StateFromGSTIN(value)
				info.StateCode = value[:2]
				info.PAN, _ = gst.PANFromGSTIN(value)
			}

			if *outputFormat == "json" {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			if !info.Valid {
				return fmt.Errorf("%s is not a well-formed GSTIN", value)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "GSTIN\t%s\n", info.GSTIN)
			fmt.Fprintf(w, "STATE\t%s (%s)\n", info.State, info.StateCode)
			fmt.Fprintf(w, "PAN\t%s\n", info.PAN)
			return w.Flush()
		},
	}
}

func newStatesCmd(outputFormat *string) *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List GST state codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(*outputFormat); err != nil {
				return err
			}
			states := gst.States()
			if *outputFormat == "json" {
				return writeJSON(cmd.OutOrStdout(), states)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tSTATE")
			for _, s := range states {
				fmt.Fprintf(w, "%s\t%s\n", s.Code, s.Name)
			}
			return w.Flush()
		},
	}
}

func newNumberCmd() *cobra.Command {
	var prefix string
	c := &cobra.Command{
		Use:   "number COUNTER",
		Short: "Format an invoice number from a prefix and counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("counter must be a positive integer, got %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), gst.FormatInvoiceNumber(prefix, n))
			return nil
		},
	}
	c.Flags().StringVar(&prefix, "prefix", "INV", "Invoice number prefix")
	return c
}
