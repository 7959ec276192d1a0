package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/tenantdesk/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/biztime"
	"github.com/tenantdesk/helpdesk/internal/shared/id"
)

const maxTitleLength = 200

// Ticket is a support request owned by exactly one company.
type Ticket struct {
	id          uint
	sid         string
	title       string
	description string
	priority    vo.Priority
	ticketType  vo.TicketType
	status      vo.TicketStatus
	assigneeID  *uint
	createdByID uint
	companyID   uint
	reference   string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTicket builds an open ticket. Empty priority and type fall back to
// medium and service_request.
func NewTicket(
	title string,
	description string,
	priority vo.Priority,
	ticketType vo.TicketType,
	assigneeID *uint,
	createdByID uint,
	companyID uint,
) (*Ticket, error) {
	if priority == "" {
		priority = vo.PriorityMedium
	}
	if ticketType == "" {
		ticketType = vo.TypeServiceRequest
	}
	if createdByID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}

	sid, err := id.NewSID(id.PrefixTicket)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket ID: %w", err)
	}

	now := biztime.NowUTC()
	t := &Ticket{
		sid:         sid,
		description: description,
		status:      vo.StatusOpen,
		assigneeID:  assigneeID,
		createdByID: createdByID,
		companyID:   companyID,
		createdAt:   now,
		updatedAt:   now,
	}
	if err := t.setTitle(title); err != nil {
		return nil, err
	}
	if err := t.setPriority(priority); err != nil {
		return nil, err
	}
	if err := t.setType(ticketType); err != nil {
		return nil, err
	}
	return t, nil
}

// ReconstructTicket rebuilds a ticket from persistence.
func ReconstructTicket(
	id uint,
	sid string,
	title string,
	description string,
	priority vo.Priority,
	ticketType vo.TicketType,
	status vo.TicketStatus,
	assigneeID *uint,
	createdByID uint,
	companyID uint,
	reference string,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !ticketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Ticket{
		id:          id,
		sid:         sid,
		title:       title,
		description: description,
		priority:    priority,
		ticketType:  ticketType,
		status:      status,
		assigneeID:  assigneeID,
		createdByID: createdByID,
		companyID:   companyID,
		reference:   reference,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) SID() string {
	return t.sid
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Type() vo.TicketType {
	return t.ticketType
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) CreatedByID() uint {
	return t.createdByID
}

func (t *Ticket) CompanyID() uint {
	return t.companyID
}

// Reference is the human facing INITIALS-NNNN identifier.
func (t *Ticket) Reference() string {
	return t.reference
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// AssignReference sets the reference once; it never changes afterwards.
func (t *Ticket) AssignReference(reference string) error {
	if t.reference != "" {
		return fmt.Errorf("ticket reference is already set")
	}
	if !IsValidReference(reference) {
		return fmt.Errorf("invalid ticket reference: %s", reference)
	}
	t.reference = reference
	return nil
}

// Update lists the fields to change. Nil pointers are left untouched.
// ClearAssignee wins over AssigneeID.
type Update struct {
	Title         *string
	Description   *string
	Priority      *vo.Priority
	Type          *vo.TicketType
	Status        *vo.TicketStatus
	AssigneeID    *uint
	ClearAssignee bool
	CompanyID     *uint
}

// Keys of the change map that hold record IDs rather than plain values.
const (
	FieldAssignee = "assignee"
	FieldCompany  = "company"
)

// FieldChange is one entry of the history changes map.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// ChangeSet describes what Apply actually changed.
type ChangeSet struct {
	Fields         map[string]FieldChange
	PreviousStatus vo.TicketStatus
	NewStatus      vo.TicketStatus
}

func (cs ChangeSet) StatusChanged() bool {
	return cs.PreviousStatus != cs.NewStatus
}

func (cs ChangeSet) AssigneeChanged() bool {
	_, ok := cs.Fields[FieldAssignee]
	return ok
}

func (cs ChangeSet) IsEmpty() bool {
	return len(cs.Fields) == 0
}

// Apply validates and applies u, returning the resulting change set. On
// error the ticket is left unchanged.
func (t *Ticket) Apply(u Update) (ChangeSet, error) {
	next := *t
	cs := ChangeSet{Fields: map[string]FieldChange{}, PreviousStatus: t.status}

	if u.Title != nil && *u.Title != t.title {
		if err := next.setTitle(*u.Title); err != nil {
			return ChangeSet{}, err
		}
		if next.title != t.title {
			cs.Fields["title"] = FieldChange{From: t.title, To: next.title}
		}
	}
	if u.Description != nil && *u.Description != t.description {
		next.description = *u.Description
		cs.Fields["description"] = FieldChange{From: t.description, To: next.description}
	}
	if u.Priority != nil && *u.Priority != t.priority {
		if err := next.setPriority(*u.Priority); err != nil {
			return ChangeSet{}, err
		}
		cs.Fields["priority"] = FieldChange{From: t.priority.String(), To: next.priority.String()}
	}
	if u.Type != nil && *u.Type != t.ticketType {
		if err := next.setType(*u.Type); err != nil {
			return ChangeSet{}, err
		}
		cs.Fields["type"] = FieldChange{From: t.ticketType.String(), To: next.ticketType.String()}
	}
	if u.Status != nil && *u.Status != t.status {
		if !u.Status.IsValid() {
			return ChangeSet{}, fmt.Errorf("invalid status: %s", *u.Status)
		}
		next.status = *u.Status
		cs.Fields["status"] = FieldChange{From: t.status.String(), To: next.status.String()}
	}

	switch {
	case u.ClearAssignee:
		next.assigneeID = nil
	case u.AssigneeID != nil:
		v := *u.AssigneeID
		next.assigneeID = &v
	}
	if !sameID(t.assigneeID, next.assigneeID) {
		cs.Fields[FieldAssignee] = FieldChange{From: idOrNil(t.assigneeID), To: idOrNil(next.assigneeID)}
	}

	if u.CompanyID != nil && *u.CompanyID != t.companyID {
		if *u.CompanyID == 0 {
			return ChangeSet{}, fmt.Errorf("company ID is required")
		}
		next.companyID = *u.CompanyID
		cs.Fields[FieldCompany] = FieldChange{From: t.companyID, To: next.companyID}
	}

	cs.NewStatus = next.status
	if !cs.IsEmpty() {
		next.updatedAt = biztime.NowUTC()
	}
	*t = next
	return cs, nil
}

func (t *Ticket) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	t.title = title
	return nil
}

func (t *Ticket) setPriority(p vo.Priority) error {
	if !p.IsValid() {
		return fmt.Errorf("invalid priority: %s", p)
	}
	t.priority = p
	return nil
}

func (t *Ticket) setType(tt vo.TicketType) error {
	if !tt.IsValid() {
		return fmt.Errorf("invalid ticket type: %s", tt)
	}
	t.ticketType = tt
	return nil
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func idOrNil(v *uint) any {
	if v == nil {
		return nil
	}
	return *v
}
