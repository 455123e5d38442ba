// Package walker implements the section-tracking walk over the ticket sheet.
// The sheet is a run of sections (ticket rows terminated by a Subtotal row)
// followed by a single Total row; every mutation re-derives the subtotal and
// grand-total cells from live row content so the derived rows can never
// drift from the tickets they describe.
package walker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skv/csm-reporter/internal/model"
)

// Grid is the mutable row grid the walker operates on. Rows and columns are
// 1-indexed. internal/sheet.Workbook is the production implementation; tests
// use an in-memory grid.
type Grid interface {
	Cell(row, col int) string
	SetCell(row, col int, value any) error
	RemoveRow(row int) error
	MaxRow() int
	Save() error
}

// TicketSink receives the reviewed ticket's fields on every update. The
// report aggregation model implements it.
type TicketSink interface {
	Record(status, priority, account, user string)
}

// State is the review-session lifecycle state.
type State int

const (
	// Walking means ticket rows remain to be reviewed.
	Walking State = iota
	// Complete means the Total row (or the end of the sheet) was reached.
	Complete
	// Corrupted means a save failed after an in-memory mutation; the
	// on-disk and in-memory sheets may diverge and the session must be
	// abandoned.
	Corrupted
)

// StepKind is the outcome of a Current call.
type StepKind int

const (
	// StepTicket exposes the row under review; the cursor does not move.
	StepTicket StepKind = iota
	// StepSubtotal records a section boundary and advances past it.
	StepSubtotal
	// StepTotal is terminal: the grand total has been written.
	StepTotal
	// StepEnd is terminal: the cursor ran past the last row without
	// finding a Total marker.
	StepEnd
)

// Step is the result of advancing the walk by one row.
type Step struct {
	Kind   StepKind
	Ticket model.Ticket
}

var (
	// ErrValidationRejected rejects an update with blank action text.
	// The sheet is untouched and the session stays in Walking.
	ErrValidationRejected = errors.New("action text is required")

	// ErrSessionComplete rejects operations after the walk terminated.
	ErrSessionComplete = errors.New("review session is complete")

	// ErrSessionCorrupted rejects operations after a failed save.
	ErrSessionCorrupted = errors.New("review session is corrupted")

	// ErrStructuralMismatch means an expected Subtotal/Total marker was
	// not found where the sheet contract requires one.
	ErrStructuralMismatch = errors.New("sheet structure mismatch")
)

// Walker owns the cursor and section bookkeeping for one review session.
// The sections slice is an index over live content, rebuilt after every
// mutation; row content is always the source of truth.
type Walker struct {
	grid     Grid
	cfg      model.SheetConfig
	sink     TicketSink
	cur      int
	sections []int
	deleted  int
	total    int
	state    State
}

// New creates a walker positioned at the sheet's first ticket row.
func New(grid Grid, cfg model.SheetConfig, sink TicketSink) *Walker {
	w := &Walker{grid: grid, cfg: cfg, sink: sink, cur: cfg.FirstTicketRow}
	w.reindexSections()
	return w
}

// Resume creates a walker positioned at a previously persisted cursor.
func Resume(grid Grid, cfg model.SheetConfig, sink TicketSink, currentRow, deletedRows int) *Walker {
	w := New(grid, cfg, sink)
	w.cur = currentRow
	w.deleted = deletedRows
	return w
}

// CurrentRow returns the row index under review.
func (w *Walker) CurrentRow() int { return w.cur }

// Sections returns the row indices of the live Subtotal rows.
func (w *Walker) Sections() []int { return append([]int(nil), w.sections...) }

// DeletedRows returns how many ticket rows this session removed.
func (w *Walker) DeletedRows() int { return w.deleted }

// GrandTotal returns the ticket count last written to the Total row.
func (w *Walker) GrandTotal() int { return w.total }

// State returns the session lifecycle state.
func (w *Walker) State() State { return w.state }

// SectionProgress returns the 1-based index of the section the cursor is in
// and the total number of sections.
func (w *Walker) SectionProgress() (current, total int) {
	total = len(w.sections)
	current = 1
	for _, s := range w.sections {
		if w.cur > s {
			current++
		}
	}
	if current > total && total > 0 {
		current = total
	}
	return current, total
}

// Classify reports what kind of row sits at the given index, judged solely
// by the status column's value.
func (w *Walker) Classify(row int) model.RowKind {
	switch w.grid.Cell(row, w.cfg.StatusCol) {
	case model.MarkerSubtotal:
		return model.RowSubtotal
	case model.MarkerTotal:
		return model.RowTotal
	default:
		return model.RowTicket
	}
}

// Current inspects the row under the cursor. Subtotal rows are skipped over
// (recording the boundary); the Total row finalizes the grand total and
// completes the session; anything else is returned as the ticket payload
// without moving the cursor.
func (w *Walker) Current() (Step, error) {
	if err := w.guard(); err != nil {
		return Step{}, err
	}

	if w.cur > w.grid.MaxRow() {
		w.state = Complete
		return Step{Kind: StepEnd}, nil
	}

	switch w.Classify(w.cur) {
	case model.RowSubtotal:
		w.cur++
		return Step{Kind: StepSubtotal}, nil

	case model.RowTotal:
		if err := w.recountAll(); err != nil {
			return Step{}, err
		}
		if err := w.persist(); err != nil {
			return Step{}, err
		}
		w.state = Complete
		return Step{Kind: StepTotal}, nil

	default:
		return Step{
			Kind: StepTicket,
			Ticket: model.Ticket{
				Row:      w.cur,
				CaseID:   w.grid.Cell(w.cur, w.cfg.CaseIDCol),
				Status:   w.grid.Cell(w.cur, w.cfg.StatusCol),
				User:     w.grid.Cell(w.cur, w.cfg.ResponsibleCol),
				Subject:  w.grid.Cell(w.cur, w.cfg.SubjectCol),
				Priority: w.grid.Cell(w.cur, w.cfg.PriorityCol),
			},
		}, nil
	}
}

// DeleteCurrent removes the row under review. When the deletion empties its
// section, the section's Subtotal row is removed as well and the section
// collapses. All remaining subtotal counts and the grand total are
// re-derived, the sheet is saved, and the cursor stays put (the next row
// shifts up into its place). Returns whether the section collapsed.
func (w *Walker) DeleteCurrent() (collapsed bool, err error) {
	if err := w.guard(); err != nil {
		return false, err
	}
	if w.Classify(w.cur) != model.RowTicket {
		return false, fmt.Errorf("%w: delete on marker row %d", ErrStructuralMismatch, w.cur)
	}

	start, end := w.sectionBounds(w.cur)
	if end == 0 {
		return false, fmt.Errorf("%w: no Subtotal or Total row below row %d", ErrStructuralMismatch, w.cur)
	}

	// Decide on collapse before touching the sheet: does the section
	// hold any ticket besides the one being deleted?
	remaining := w.countTickets(start, end, w.cur)
	collapsed = remaining == 0 && w.Classify(end) == model.RowSubtotal

	if collapsed {
		// Remove the terminating Subtotal row first; it sits below the
		// ticket row, so the ticket's index is still valid afterwards.
		if err := w.grid.RemoveRow(end); err != nil {
			return false, err
		}
	}
	if err := w.grid.RemoveRow(w.cur); err != nil {
		return false, err
	}

	if err := w.recountAll(); err != nil {
		return false, err
	}

	w.deleted++
	if err := w.persist(); err != nil {
		return false, err
	}
	return collapsed, nil
}

// UpdateCurrent writes the analyst's action text and account into the row
// under review, folds the row into the report statistics, re-derives the
// aggregate rows, saves, and advances the cursor. Blank action text is
// rejected before any state changes.
func (w *Walker) UpdateCurrent(actionText, account string) error {
	if err := w.guard(); err != nil {
		return err
	}
	if strings.TrimSpace(actionText) == "" {
		return ErrValidationRejected
	}
	if w.Classify(w.cur) != model.RowTicket {
		return fmt.Errorf("%w: update on marker row %d", ErrStructuralMismatch, w.cur)
	}

	if err := w.grid.SetCell(w.cur, w.cfg.ActionCol, actionText); err != nil {
		return err
	}
	if err := w.grid.SetCell(w.cur, w.cfg.AccountCol, account); err != nil {
		return err
	}

	if w.sink != nil {
		w.sink.Record(
			w.grid.Cell(w.cur, w.cfg.StatusCol),
			w.grid.Cell(w.cur, w.cfg.PriorityCol),
			account,
			w.grid.Cell(w.cur, w.cfg.ResponsibleCol),
		)
	}

	if err := w.recountAll(); err != nil {
		return err
	}
	if err := w.persist(); err != nil {
		return err
	}

	w.cur++
	return nil
}

func (w *Walker) guard() error {
	switch w.state {
	case Complete:
		return ErrSessionComplete
	case Corrupted:
		return ErrSessionCorrupted
	}
	return nil
}

// persist saves the grid. A failure is fatal for the session: the in-memory
// mutation already happened, so on-disk state can no longer be trusted.
func (w *Walker) persist() error {
	if err := w.grid.Save(); err != nil {
		w.state = Corrupted
		return fmt.Errorf("persisting sheet after mutation: %w", err)
	}
	return nil
}

// sectionBounds finds the enclosing section of row by scanning live content:
// backward to the row after the previous Subtotal (or the first ticket row),
// forward to the next Subtotal or Total row. end is 0 when no terminator
// exists below row.
func (w *Walker) sectionBounds(row int) (start, end int) {
	start = w.cfg.FirstTicketRow
	for r := row - 1; r >= w.cfg.FirstTicketRow; r-- {
		if w.grid.Cell(r, w.cfg.StatusCol) == model.MarkerSubtotal {
			start = r + 1
			break
		}
	}

	maxRow := w.grid.MaxRow()
	for r := row; r <= maxRow; r++ {
		switch w.grid.Cell(r, w.cfg.StatusCol) {
		case model.MarkerSubtotal, model.MarkerTotal:
			return start, r
		}
	}
	return start, 0
}

// countTickets counts ticket rows in [start, end), skipping skipRow, marker
// rows, and the "Count" label row. A row is a ticket when any of the
// case-id, responsible, or subject cells is non-blank.
func (w *Walker) countTickets(start, end, skipRow int) int {
	n := 0
	for r := start; r < end; r++ {
		if r == skipRow {
			continue
		}
		switch w.grid.Cell(r, w.cfg.StatusCol) {
		case model.MarkerSubtotal, model.MarkerTotal, model.MarkerCount:
			continue
		}
		if w.grid.Cell(r, w.cfg.CountLabelCol) == model.MarkerCount {
			continue
		}
		if w.grid.Cell(r, w.cfg.CaseIDCol) != "" ||
			w.grid.Cell(r, w.cfg.ResponsibleCol) != "" ||
			w.grid.Cell(r, w.cfg.SubjectCol) != "" {
			n++
		}
	}
	return n
}

// reindexSections rebuilds the section boundary index from live content.
func (w *Walker) reindexSections() {
	w.sections = w.sections[:0]
	maxRow := w.grid.MaxRow()
	for r := w.cfg.FirstTicketRow; r <= maxRow; r++ {
		if w.grid.Cell(r, w.cfg.StatusCol) == model.MarkerSubtotal {
			w.sections = append(w.sections, r)
		}
	}
}

// recountAll re-derives every subtotal count and the grand total by
// recounting ticket rows per section. Rebuilding from scratch is cheap and
// is the primary defense against boundary bookkeeping drift.
func (w *Walker) recountAll() error {
	w.reindexSections()

	total := 0
	sectionStart := w.cfg.FirstTicketRow
	for _, subtotalRow := range w.sections {
		n := w.countTickets(sectionStart, subtotalRow, 0)
		if err := w.writeSubtotalCount(subtotalRow, n); err != nil {
			return err
		}
		total += n
		sectionStart = subtotalRow + 1
	}

	maxRow := w.grid.MaxRow()
	for r := w.cfg.FirstTicketRow; r <= maxRow; r++ {
		if w.grid.Cell(r, w.cfg.StatusCol) == model.MarkerTotal {
			if err := w.grid.SetCell(r, w.cfg.CaseIDCol, total); err != nil {
				return err
			}
			break
		}
	}

	w.total = total
	return nil
}

// writeSubtotalCount stores a section's ticket count. The count cell is the
// case-id column of the row whose count-label column reads "Count", looked
// for within two rows above the Subtotal row; the Subtotal row itself is the
// fallback.
func (w *Walker) writeSubtotalCount(subtotalRow, count int) error {
	for r := subtotalRow - 2; r <= subtotalRow; r++ {
		if r < 1 {
			continue
		}
		if w.grid.Cell(r, w.cfg.CountLabelCol) == model.MarkerCount {
			return w.grid.SetCell(r, w.cfg.CaseIDCol, count)
		}
	}
	return w.grid.SetCell(subtotalRow, w.cfg.CaseIDCol, count)
}
