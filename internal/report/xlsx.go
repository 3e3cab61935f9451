package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstbook/internal/domain"
)

const sheetName = "GST Register"

// moneyColumns are the zero-based register columns written as numbers.
var moneyColumns = map[int]bool{11: true, 12: true, 13: true, 14: true, 15: true, 16: true}

// WriteXLSX renders invoices as a single-sheet workbook with a totals row.
func WriteXLSX(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	totals := make([]decimal.Decimal, len(columns))
	for i := range invoices {
		cells := row(&invoices[i])
		values := make([]interface{}, len(cells))
		for c, v := range cells {
			if !moneyColumns[c] {
				values[c] = v
				continue
			}
			d, err := decimal.NewFromString(v)
			if err != nil {
				return fmt.Errorf("row %d column %d: %w", i+2, c+1, err)
			}
			totals[c] = totals[c].Add(d)
			values[c] = d.InexactFloat64()
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	footer := make([]interface{}, len(columns))
	footer[0] = "Total"
	for c := range moneyColumns {
		footer[c] = totals[c].InexactFloat64()
	}
	cell, _ := excelize.CoordinatesToCellName(1, len(invoices)+2)
	if err := sw.SetRow(cell, footer); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	return f.Write(w)
}
