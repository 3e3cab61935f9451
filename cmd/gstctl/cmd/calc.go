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

func newCalcCmd(outputFormat *string) *cobra.Command {
	var (
		from, to      string
		items         []string
		reverseCharge bool
	)

	c := &cobra.Command{
		Use:   "calc",
		Short: "Calculate GST for a set of line items",
		Long: `Calculate CGST/SGST or IGST for line items supplied between two states.

Each --item is "description,quantity,rate,gst_rate[,discount_percent]".

Examples:
  gstctl calc --from Maharashtra --to Maharashtra --item "Widget,2,1000,18"
  gstctl calc --from Maharashtra --to Karnataka --item "Kurta,1,1049,5,10" -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(*outputFormat); err != nil {
				return err
			}
			lines := make([]gst.LineItem, 0, len(items))
			for i, raw := range items {
				li, err := parseItem(raw)
				if err != nil {
					return fmt.Errorf("item %d: %w", i+1, err)
				}
				lines = append(lines, li)
			}

			calc, err := gst.Calculate(lines, from, to, reverseCharge)
			if err != nil {
				return err
			}
			if !gst.WithinLimit(calc.TotalAmount) {
				return fmt.Errorf("total %s exceeds %s", calc.TotalAmount.StringFixed(gst.MoneyPlaces),
					gst.MaxAmount.StringFixed(gst.MoneyPlaces))
			}
			words := gst.AmountInWords(calc.TotalAmount)

			if *outputFormat == "json" {
				return writeJSON(cmd.OutOrStdout(), struct {
					*gst.Calculation
					AmountInWords string `json:"amount_in_words"`
				}{calc, words})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tDESCRIPTION\tTAXABLE\tCGST\tSGST\tIGST\tTOTAL")
			for i, line := range calc.Lines {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1, lines[i].Description,
					line.TaxableAmount.StringFixed(2), line.CGSTAmount.StringFixed(2),
					line.SGSTAmount.StringFixed(2), line.IGSTAmount.StringFixed(2), line.Total.StringFixed(2))
			}
			fmt.Fprintf(w, "\tTOTAL\t%s\t%s\t%s\t%s\t%s\n",
				calc.Subtotal.StringFixed(2), calc.CGSTAmount.StringFixed(2),
				calc.SGSTAmount.StringFixed(2), calc.IGSTAmount.StringFixed(2), calc.TotalAmount.StringFixed(2))
			if err := w.Flush(); err != nil {
				return err
			}
			supply := "Intra-state"
			if calc.IsInterState {
				supply = "Inter-state"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s supply. %s\n", supply, words)
			return nil
		},
	}

	c.Flags().StringVar(&from, "from", gst.DefaultState, "Supplier state name")
	c.Flags().StringVar(&to, "to", "", "Recipient state name")
	c.Flags().StringArrayVar(&items, "item", nil, `Line item "description,quantity,rate,gst_rate[,discount_percent]"`)
	c.Flags().BoolVar(&reverseCharge, "reverse-charge", false, "Mark the supply as reverse charge")
	_ = c.MarkFlagRequired("to")
	_ = c.MarkFlagRequired("item")
	return c
}

// parseItem reads "description,quantity,rate,gst_rate[,discount_percent]".
func parseItem(raw string) (gst.LineItem, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 4 || len(parts) > 5 {
		return gst.LineItem{}, fmt.Errorf("expected description,quantity,rate,gst_rate[,discount_percent], got %q", raw)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	qty, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return gst.LineItem{}, fmt.Errorf("quantity %q: %w", parts[1], err)
	}
	rate, err := decimal.NewFromString(parts[2])
	if err != nil {
		return gst.LineItem{}, fmt.Errorf("rate %q: %w", parts[2], err)
	}
	gstRate, err := decimal.NewFromString(parts[3])
	if err != nil {
		return gst.LineItem{}, fmt.Errorf("gst rate %q: %w", parts[3], err)
	}
	li := gst.LineItem{Description: parts[0], Quantity: qty, Rate: rate, GSTRatePercent: gstRate}
	if len(parts) == 5 {
		if li.DiscountPercent, err = decimal.NewFromString(parts[4]); err != nil {
			return gst.LineItem{}, fmt.Errorf("discount %q: %w", parts[4], err)
		}
	}
	return li, nil
}
