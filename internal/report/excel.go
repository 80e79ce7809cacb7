package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/brandazine/stock-nudge/internal/stock"
)

const sheetName = "High Demand Stock"

const (
	headerFillColor   = "CFE1F3"
	adequateFillColor = "FBBB03"
	accentBorderColor = "FF0000"
)

// Options controls the rendering variant.
type Options struct {
	// ForMail widens the name and manager-page columns so brand recipients
	// can read the sheet without resizing anything.
	ForMail bool
}

// Renderer produces styled xlsx artifacts from report tables.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the table to a workbook: bold colored header, red left and
// right borders down the adequate-stock column and a red bottom border under
// its last cell, so the one number the brand must act on stands out.
func (r *Renderer) Render(table stock.Table, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	adequateCol := -1
	for i, name := range table.Columns {
		if name == stock.ColAdequateStock {
			adequateCol = i
		}
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to locate header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, row := range table.Rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to locate cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(value)); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if err := r.applyStyles(f, table, adequateCol); err != nil {
		return nil, err
	}

	if opts.ForMail {
		if err := f.SetColWidth(sheetName, "A", "B", 25); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
		if err := f.SetColWidth(sheetName, "C", "C", 50); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyStyles(f *excelize.File, table stock.Table, adequateCol int) error {
	thinBorder := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Border: thinBorder,
	})
	if err != nil {
		return fmt.Errorf("failed to build header style: %w", err)
	}

	first, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if adequateCol < 0 {
		return nil
	}

	adequateHeaderStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{adequateFillColor}},
		Border: thinBorder,
	})
	if err != nil {
		return fmt.Errorf("failed to build adequate header style: %w", err)
	}
	headerCell, err := excelize.CoordinatesToCellName(adequateCol+1, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, headerCell, headerCell, adequateHeaderStyle); err != nil {
		return fmt.Errorf("failed to style adequate header: %w", err)
	}

	if len(table.Rows) == 0 {
		return nil
	}

	sideBorders := []excelize.Border{
		{Type: "left", Color: accentBorderColor, Style: 2},
		{Type: "right", Color: accentBorderColor, Style: 2},
	}
	columnStyle, err := f.NewStyle(&excelize.Style{Border: sideBorders})
	if err != nil {
		return fmt.Errorf("failed to build column style: %w", err)
	}
	closingStyle, err := f.NewStyle(&excelize.Style{
		Border: append(sideBorders, excelize.Border{Type: "bottom", Color: accentBorderColor, Style: 2}),
	})
	if err != nil {
		return fmt.Errorf("failed to build closing style: %w", err)
	}

	top, err := excelize.CoordinatesToCellName(adequateCol+1, 2)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(adequateCol+1, len(table.Rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, top, bottom, columnStyle); err != nil {
		return fmt.Errorf("failed to style adequate column: %w", err)
	}
	if err := f.SetCellStyle(sheetName, bottom, bottom, closingStyle); err != nil {
		return fmt.Errorf("failed to style closing cell: %w", err)
	}
	return nil
}

// cellValue stores numeric cells as numbers so spreadsheet sorting works.
func cellValue(raw string) interface{} {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}
