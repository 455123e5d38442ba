package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/skv/csm-reporter/internal/model"
)

// Prepare inserts the two review columns (Actions, Account) after the
// subject block, carrying over values, styles, and widths from columns 5–6
// so the new columns match the sheet's formatting, then writes the column
// headers. The workbook is saved before returning.
func Prepare(w *Workbook, cfg model.SheetConfig) error {
	insertAfter := cfg.SubjectCol // new columns go right after the subject block

	colName, err := excelize.ColumnNumberToName(insertAfter + 1)
	if err != nil {
		return fmt.Errorf("resolving insert column: %w", err)
	}
	if err := w.f.InsertCols(w.sheet, colName, 2); err != nil {
		return fmt.Errorf("inserting review columns: %w", err)
	}

	srcCols := []int{cfg.ResponsibleCol, cfg.ResponsibleCol + 1}
	dstCols := []int{insertAfter + 1, insertAfter + 2}

	maxRow := w.MaxRow()
	for row := 1; row <= maxRow; row++ {
		for i := range srcCols {
			src, err := excelize.CoordinatesToCellName(srcCols[i], row)
			if err != nil {
				return err
			}
			dst, err := excelize.CoordinatesToCellName(dstCols[i], row)
			if err != nil {
				return err
			}

			value, err := w.f.GetCellValue(w.sheet, src)
			if err != nil {
				return fmt.Errorf("reading %s: %w", src, err)
			}
			if err := w.f.SetCellValue(w.sheet, dst, value); err != nil {
				return fmt.Errorf("writing %s: %w", dst, err)
			}

			styleID, err := w.f.GetCellStyle(w.sheet, src)
			if err == nil && styleID != 0 {
				if err := w.f.SetCellStyle(w.sheet, dst, dst, styleID); err != nil {
					return fmt.Errorf("styling %s: %w", dst, err)
				}
			}
		}
	}

	for i := range srcCols {
		srcName, err := excelize.ColumnNumberToName(srcCols[i])
		if err != nil {
			return err
		}
		dstName, err := excelize.ColumnNumberToName(dstCols[i])
		if err != nil {
			return err
		}
		width, err := w.f.GetColWidth(w.sheet, srcName)
		if err == nil {
			if err := w.f.SetColWidth(w.sheet, dstName, dstName, width); err != nil {
				return fmt.Errorf("setting width of column %s: %w", dstName, err)
			}
		}
	}

	if err := w.SetCell(cfg.HeaderRow, cfg.ActionCol, "Actions"); err != nil {
		return err
	}
	if err := w.SetCell(cfg.HeaderRow, cfg.AccountCol, "Account"); err != nil {
		return err
	}

	return w.Save()
}
