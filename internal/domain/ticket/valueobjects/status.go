package valueobjects

// TicketStatus is the workflow state of a ticket. Any status may follow any
// other; there is no enforced transition graph.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusPending    TicketStatus = "pending"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// Statuses lists every status in workflow order.
var Statuses = []TicketStatus{StatusOpen, StatusInProgress, StatusPending, StatusResolved, StatusClosed}

func NewTicketStatus(s string) (TicketStatus, error) {
	return parseEnum("ticket status", s, Statuses)
}

func (ts TicketStatus) String() string { return string(ts) }

func (ts TicketStatus) IsValid() bool {
	_, err := NewTicketStatus(string(ts))
	return err == nil
}

// Label is the human readable form, e.g. "In Progress".
func (ts TicketStatus) Label() string { return Label(string(ts)) }
