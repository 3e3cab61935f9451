// Package report renders the GST sales register: one row per invoice with
// its tax split, in CSV or XLSX.
package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gstbook/internal/domain"
	"gstbook/internal/gst"
)

// columns is the register header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Status",
	"Order ID",
	"Customer Name",
	"Customer GSTIN",
	"Supplier State",
	"Place of Supply",
	"Place of Supply Code",
	"Supply Type",
	"Reverse Charge",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
	"Invoice Value",
	"Line Item Count",
}

// Columns returns a copy of the register header row.
func Columns() []string {
	return append([]string(nil), columns...)
}

// row converts an invoice to register cells. Money cells are strings with
// exactly two fraction digits.
func row(inv *domain.Invoice) []string {
	code, _ := gst.StateCode(inv.PlaceOfSupply)
	return []string{
		inv.InvoiceNumber,
		inv.CreatedAt.Format("2006-01-02"),
		string(inv.Status),
		inv.OrderID,
		inv.CustomerName,
		inv.CustomerGSTIN,
		inv.SupplierState,
		inv.PlaceOfSupply,
		code,
		supplyType(inv.IsInterState),
		formatBool(inv.ReverseCharge),
		inv.Subtotal.StringFixed(gst.MoneyPlaces),
		inv.CGST.StringFixed(gst.MoneyPlaces),
		inv.SGST.StringFixed(gst.MoneyPlaces),
		inv.IGST.StringFixed(gst.MoneyPlaces),
		inv.TotalTax.StringFixed(gst.MoneyPlaces),
		inv.TotalAmount.StringFixed(gst.MoneyPlaces),
		strconv.Itoa(len(inv.Items)),
	}
}

func supplyType(interState bool) string {
	if interState {
		return "Inter-State"
	}
	return "Intra-State"
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters outside [a-zA-Z0-9_-] with "_",
// collapses runs of underscores and truncates to 100 characters.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the Content-Disposition filename for a shop's
// register: {shop}_gst_register_{YYYY-MM-DD}.{ext}.
func BuildFilename(shop string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_gst_register_%s.%s", SanitizeFilename(shop), now.Format("2006-01-02"), format)
}

// ContentType returns the MIME type for an export format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
