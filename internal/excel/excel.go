// Package excel renders raw upstream payloads as styled xlsx workbooks for
// direct download.
package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
	"github.com/ndtduy/commodity-data-backend/internal/lme"
	"github.com/ndtduy/commodity-data-backend/internal/model"
	"github.com/ndtduy/commodity-data-backend/internal/oilprice"
)

const (
	lmeSheetName = "Official Prices"
	oilSheetName = "Oil Prices"

	// headerFillColor is the solid header fill both layouts share.
	headerFillColor = "366092"

	// maxColumnWidth caps the auto-sized LME columns.
	maxColumnWidth = 50

	// widthScanRows bounds how many data rows feed the width heuristic.
	widthScanRows = 98
)

// BuildLMEWorkbook renders a raw LME chart response as a spreadsheet: one
// date column from the label axis plus one column per dataset, in payload
// order. A response without labels reports ErrNoUpstreamData.
func BuildLMEWorkbook(resp lme.Response, sourceName string) (model.Workbook, error) {
	if len(resp.Labels) == 0 {
		return model.Workbook{}, apperrors.ErrNoUpstreamData
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", lmeSheetName)

	headers := make([]string, 0, len(resp.Datasets)+1)
	headers = append(headers, "Date")
	for _, ds := range resp.Datasets {
		name := ds.RowTitle
		if ds.Label != "" {
			name = fmt.Sprintf("%s - %s", ds.RowTitle, ds.Label)
		}
		headers = append(headers, name)
	}

	if err := writeHeaderRow(f, lmeSheetName, headers); err != nil {
		return model.Workbook{}, err
	}

	for i, label := range resp.Labels {
		row := i + 2
		if err := setCell(f, lmeSheetName, 1, row, label); err != nil {
			return model.Workbook{}, err
		}
		for j, ds := range resp.Datasets {
			if i >= len(ds.Data) || ds.Data[i] == nil {
				continue
			}
			if err := setCell(f, lmeSheetName, j+2, row, *ds.Data[i]); err != nil {
				return model.Workbook{}, err
			}
		}
	}

	if err := autoSizeColumns(f, lmeSheetName, headers, resp); err != nil {
		return model.Workbook{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return model.Workbook{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	return model.Workbook{
		Filename: fmt.Sprintf("LME_%s_Official_Prices_%s.xlsx", sourceName, time.Now().Format("2006_01_02")),
		Content:  buf.Bytes(),
	}, nil
}

// BuildOilWorkbook renders a raw oilprice.com response as a three-column
// spreadsheet. A response without price entries reports ErrNoUpstreamData.
func BuildOilWorkbook(resp oilprice.Response) (model.Workbook, error) {
	if len(resp.Prices) == 0 {
		return model.Workbook{}, apperrors.ErrNoUpstreamData
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", oilSheetName)

	headers := []string{"Date", "Price (USD)", "Change"}
	if err := writeHeaderRow(f, oilSheetName, headers); err != nil {
		return model.Workbook{}, err
	}

	for i, entry := range resp.Prices {
		row := i + 2
		if err := setCell(f, oilSheetName, 1, row, entry.Date); err != nil {
			return model.Workbook{}, err
		}
		if price, ok := entry.Price.Float64(); ok {
			if err := setCell(f, oilSheetName, 2, row, price); err != nil {
				return model.Workbook{}, err
			}
		}
		if change, ok := entry.Change.Float64(); ok {
			if err := setCell(f, oilSheetName, 3, row, change); err != nil {
				return model.Workbook{}, err
			}
		}
	}

	for col := 1; col <= len(headers); col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return model.Workbook{}, fmt.Errorf("failed to name column %d: %w", col, err)
		}
		if err := f.SetColWidth(oilSheetName, name, name, 20); err != nil {
			return model.Workbook{}, fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return model.Workbook{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	return model.Workbook{
		Filename: fmt.Sprintf("Oil_Price_WTI_%s.xlsx", time.Now().Format("2006_01_02")),
		Content:  buf.Bytes(),
	}, nil
}

// writeHeaderRow writes the first row with the shared header styling.
func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to name header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", header, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style header %q: %w", header, err)
		}
	}

	return nil
}

// autoSizeColumns widens each column to its longest rendered value among
// the headers and the first widthScanRows data rows, capped at
// maxColumnWidth.
func autoSizeColumns(f *excelize.File, sheet string, headers []string, resp lme.Response) error {
	scan := len(resp.Labels)
	if scan > widthScanRows {
		scan = widthScanRows
	}

	for col := 1; col <= len(headers); col++ {
		maxLen := len(headers[col-1])
		for i := 0; i < scan; i++ {
			var rendered string
			if col == 1 {
				rendered = resp.Labels[i]
			} else {
				ds := resp.Datasets[col-2]
				if i >= len(ds.Data) || ds.Data[i] == nil {
					continue
				}
				rendered = fmt.Sprintf("%v", *ds.Data[i])
			}
			if len(rendered) > maxLen {
				maxLen = len(rendered)
			}
		}

		width := float64(maxLen + 2)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return fmt.Errorf("failed to name column %d: %w", col, err)
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	return nil
}

// setCell writes one value by 1-based coordinates.
func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to name cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cell, err)
	}
	return nil
}
