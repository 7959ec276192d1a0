package valueobjects

type TicketType string

const (
	TypeServiceRequest TicketType = "service_request"
	TypeChangeRequest  TicketType = "change_request"
	TypeIncident       TicketType = "incident"
)

var TicketTypes = []TicketType{TypeServiceRequest, TypeChangeRequest, TypeIncident}

func NewTicketType(s string) (TicketType, error) {
	return parseEnum("ticket type", s, TicketTypes)
}

func (tt TicketType) String() string { return string(tt) }

func (tt TicketType) IsValid() bool {
	_, err := NewTicketType(string(tt))
	return err == nil
}

func (tt TicketType) Label() string { return Label(string(tt)) }
