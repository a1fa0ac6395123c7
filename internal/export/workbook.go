package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02 15:04"

// sheet: один лист: шапка и строки. Значения пишутся как есть, числа остаются числами.
type sheet struct {
	Title  string
	Header []string
	Rows   [][]any
}

func writeWorkbook(w io.Writer, sheets ...sheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Title); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Title); err != nil {
			return fmt.Errorf("new sheet: %w", err)
		}

		header := make([]any, len(s.Header))
		for i, h := range s.Header {
			header[i] = h
		}
		if err := f.SetSheetRow(s.Title, "A1", &header); err != nil {
			return fmt.Errorf("header: %w", err)
		}
		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.Title, cell, &row); err != nil {
				return fmt.Errorf("row %d: %w", r+1, err)
			}
		}
		if err := ApplyDefaultExcelFormatting(f, s.Title); err != nil {
			return fmt.Errorf("format %s: %w", s.Title, err)
		}
	}
	return f.Write(w)
}
