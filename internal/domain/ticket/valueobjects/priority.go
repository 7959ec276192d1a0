package valueobjects

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func NewPriority(s string) (Priority, error) {
	return parseEnum("priority", s, Priorities)
}

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	_, err := NewPriority(string(p))
	return err == nil
}

func (p Priority) Label() string { return Label(string(p)) }
