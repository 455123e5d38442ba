// Package sheet wraps workbook access for the ticket report and the DaaS
// queue export. It is the only package that talks to excelize directly.
package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ErrSourceUnavailable marks a workbook that is missing, locked, or
// unreadable. Callers decide the fallback: the queue aggregator substitutes
// sample data, the review session aborts.
var ErrSourceUnavailable = errors.New("source workbook unavailable")

// Workbook is an open xlsx file pinned to one worksheet.
type Workbook struct {
	f     *excelize.File
	sheet string
	path  string
}

// Load opens the workbook at path and selects the named worksheet, falling
// back to the file's first sheet when the name is absent.
func Load(path, sheetName string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrSourceUnavailable, path, err)
	}

	name := ""
	for _, s := range f.GetSheetList() {
		if s == sheetName {
			name = s
			break
		}
	}
	if name == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			f.Close()
			return nil, fmt.Errorf("%w: %s has no worksheets", ErrSourceUnavailable, path)
		}
		name = list[0]
	}

	return &Workbook{f: f, sheet: name, path: path}, nil
}

// Path returns the on-disk location the workbook saves to.
func (w *Workbook) Path() string { return w.path }

// SheetName returns the selected worksheet name.
func (w *Workbook) SheetName() string { return w.sheet }

// Cell returns the trimmed display value at the 1-indexed coordinates, or
// the empty string when the cell is absent or unreadable.
func (w *Workbook) Cell(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	v, err := w.f.GetCellValue(w.sheet, name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// CellByRef returns the trimmed value at an A1-style reference such as "B7".
func (w *Workbook) CellByRef(ref string) string {
	v, err := w.f.GetCellValue(w.sheet, ref)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// SetCell writes a value at the 1-indexed coordinates.
func (w *Workbook) SetCell(row, col int, value any) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", row, col, err)
	}
	if err := w.f.SetCellValue(w.sheet, name, value); err != nil {
		return fmt.Errorf("writing cell %s: %w", name, err)
	}
	return nil
}

// RemoveRow deletes the 1-indexed row; rows below shift up by one.
func (w *Workbook) RemoveRow(row int) error {
	if err := w.f.RemoveRow(w.sheet, row); err != nil {
		return fmt.Errorf("removing row %d: %w", row, err)
	}
	return nil
}

// MaxRow returns the index of the last populated row.
func (w *Workbook) MaxRow() int {
	rows, err := w.f.GetRows(w.sheet)
	if err != nil {
		return 0
	}
	return len(rows)
}

// Rows returns every row of the worksheet as display strings.
func (w *Workbook) Rows() ([][]string, error) {
	rows, err := w.f.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("reading rows of %s: %w", w.path, err)
	}
	return rows, nil
}

// Save writes the workbook back to its path. Saving happens at the end of
// every mutating walker operation; a failure here leaves the in-memory and
// on-disk state diverged, so callers must treat it as fatal for the session.
func (w *Workbook) Save() error {
	if err := w.f.Save(); err != nil {
		return fmt.Errorf("saving %s: %w", w.path, err)
	}
	return nil
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// CopyToWorking copies the source file next to itself under a uuid-suffixed
// working name and returns the copy's path. Review mutations are applied to
// the working copy so the uploaded original stays pristine.
func CopyToWorking(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrSourceUnavailable, path, err)
	}

	suffix := uuid.NewString()[:8]
	ext := filepath.Ext(path)
	working := strings.TrimSuffix(path, ext) + "_working_" + suffix + ext
	if err := os.WriteFile(working, data, 0o644); err != nil {
		return "", fmt.Errorf("writing working copy %s: %w", working, err)
	}
	return working, nil
}
