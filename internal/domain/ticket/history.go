package ticket

import (
	"fmt"
	"time"

	vo "github.com/tenantdesk/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/biztime"
)

// HistoryEntry is one immutable audit row of a ticket.
type HistoryEntry struct {
	id             uint
	ticketID       uint
	eventType      vo.EventType
	message        string
	previousStatus *vo.TicketStatus
	newStatus      *vo.TicketStatus
	userID         *uint
	changes        map[string]FieldChange
	changedAt      time.Time
}

func newEntry(ticketID, userID uint, eventType vo.EventType, message string) (*HistoryEntry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	e := &HistoryEntry{
		ticketID:  ticketID,
		eventType: eventType,
		message:   message,
		changedAt: biztime.NowUTC(),
	}
	if userID != 0 {
		e.userID = &userID
	}
	return e, nil
}

func NewCreatedEntry(ticketID, creatorID uint) (*HistoryEntry, error) {
	return newEntry(ticketID, creatorID, vo.EventCreated, "Ticket created")
}

// NewUpdateEntry derives the entry for an applied update: closed, resolved
// or status_change when the status moved, updated otherwise. Only status
// events carry previous and new status.
func NewUpdateEntry(ticketID, updaterID uint, cs ChangeSet) (*HistoryEntry, error) {
	if !cs.StatusChanged() {
		e, err := newEntry(ticketID, updaterID, vo.EventUpdated, "Ticket updated")
		if err != nil {
			return nil, err
		}
		e.changes = copyChanges(cs.Fields)
		return e, nil
	}

	eventType := vo.EventForStatus(cs.NewStatus)
	var message string
	switch eventType {
	case vo.EventClosed:
		message = "Ticket closed"
	case vo.EventResolved:
		message = "Ticket resolved"
	default:
		message = "Status changed"
	}

	e, err := newEntry(ticketID, updaterID, eventType, message)
	if err != nil {
		return nil, err
	}
	prev, next := cs.PreviousStatus, cs.NewStatus
	e.previousStatus = &prev
	e.newStatus = &next
	e.changes = copyChanges(cs.Fields)
	return e, nil
}

// NewCommentEntry records a comment by authorName, which is the author's
// display name or email.
func NewCommentEntry(ticketID, authorID uint, authorName string) (*HistoryEntry, error) {
	return newEntry(ticketID, authorID, vo.EventComment, fmt.Sprintf("%s commented on the ticket.", authorName))
}

func ReconstructHistoryEntry(
	id, ticketID uint,
	eventType vo.EventType,
	message string,
	previousStatus, newStatus *vo.TicketStatus,
	userID *uint,
	changes map[string]FieldChange,
	changedAt time.Time,
) *HistoryEntry {
	return &HistoryEntry{
		id:             id,
		ticketID:       ticketID,
		eventType:      eventType,
		message:        message,
		previousStatus: previousStatus,
		newStatus:      newStatus,
		userID:         userID,
		changes:        changes,
		changedAt:      changedAt,
	}
}

func (h *HistoryEntry) ID() uint {
	return h.id
}

func (h *HistoryEntry) TicketID() uint {
	return h.ticketID
}

func (h *HistoryEntry) EventType() vo.EventType {
	return h.eventType
}

func (h *HistoryEntry) Message() string {
	return h.message
}

func (h *HistoryEntry) PreviousStatus() *vo.TicketStatus {
	return h.previousStatus
}

func (h *HistoryEntry) NewStatus() *vo.TicketStatus {
	return h.newStatus
}

// UserID is nil when the acting user has been deleted.
func (h *HistoryEntry) UserID() *uint {
	return h.userID
}

func (h *HistoryEntry) Changes() map[string]FieldChange {
	return copyChanges(h.changes)
}

func (h *HistoryEntry) ChangedAt() time.Time {
	return h.changedAt
}

func (h *HistoryEntry) SetID(id uint) {
	h.id = id
}

func copyChanges(in map[string]FieldChange) map[string]FieldChange {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]FieldChange, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
