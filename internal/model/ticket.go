package model

// Marker values recognized in the status column of the ticket sheet.
const (
	MarkerSubtotal = "Subtotal"
	MarkerTotal    = "Total"
	MarkerCount    = "Count"
)

// RowKind classifies a ticket-sheet row by its status-column value.
type RowKind int

const (
	// RowTicket is a row carrying (possibly partial) ticket data.
	RowTicket RowKind = iota
	// RowSubtotal terminates a section and stores its ticket count.
	RowSubtotal
	// RowTotal is the single terminal row storing the grand total.
	RowTotal
)

// String returns the display name of a RowKind.
func (k RowKind) String() string {
	switch k {
	case RowTicket:
		return "ticket"
	case RowSubtotal:
		return "subtotal"
	case RowTotal:
		return "total"
	default:
		return "unknown"
	}
}

// Ticket is the payload of the row currently under review, as shown to the
// analyst. Status may be blank when the sheet merges the status cell across
// a run of rows; the statistics layer carries the last seen status forward.
type Ticket struct {
	Row      int
	CaseID   string
	Status   string
	User     string
	Subject  string
	Priority string
}
