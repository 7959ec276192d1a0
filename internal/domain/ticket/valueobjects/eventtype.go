package valueobjects

// EventType classifies a history entry.
type EventType string

const (
	EventCreated      EventType = "created"
	EventUpdated      EventType = "updated"
	EventStatusChange EventType = "status_change"
	EventResolved     EventType = "resolved"
	EventClosed       EventType = "closed"
	EventComment      EventType = "comment"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) Label() string {
	return Label(string(et))
}

// EventForStatus picks the event type for a status transition.
func EventForStatus(to TicketStatus) EventType {
	switch to {
	case StatusClosed:
		return EventClosed
	case StatusResolved:
		return EventResolved
	default:
		return EventStatusChange
	}
}
