package ticket

import (
	"fmt"
	"time"

	"github.com/tenantdesk/helpdesk/internal/shared/biztime"
)

// TimeEntry records minutes an operator spent on a ticket.
type TimeEntry struct {
	id         uint
	ticketID   uint
	operatorID uint
	minutes    int
	createdAt  time.Time
	updatedAt  time.Time
}

func NewTimeEntry(ticketID, operatorID uint, minutes int) (*TimeEntry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if operatorID == 0 {
		return nil, fmt.Errorf("operator ID is required")
	}
	if minutes < 0 {
		return nil, fmt.Errorf("minutes cannot be negative")
	}

	now := biztime.NowUTC()
	return &TimeEntry{
		ticketID:   ticketID,
		operatorID: operatorID,
		minutes:    minutes,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructTimeEntry(id, ticketID, operatorID uint, minutes int, createdAt, updatedAt time.Time) *TimeEntry {
	return &TimeEntry{
		id:         id,
		ticketID:   ticketID,
		operatorID: operatorID,
		minutes:    minutes,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (e *TimeEntry) ID() uint { return e.id }
func (e *TimeEntry) TicketID() uint { return e.ticketID }
func (e *TimeEntry) OperatorID() uint { return e.operatorID }
func (e *TimeEntry) Minutes() int { return e.minutes }
func (e *TimeEntry) CreatedAt() time.Time { return e.createdAt }
func (e *TimeEntry) UpdatedAt() time.Time { return e.updatedAt }

func (e *TimeEntry) SetID(id uint) {
	e.id = id
}

func (e *TimeEntry) UpdateMinutes(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("minutes cannot be negative")
	}
	e.minutes = minutes
	e.updatedAt = biztime.NowUTC()
	return nil
}

// TotalMinutes sums the entries; no entries is zero.
func TotalMinutes(entries []*TimeEntry) int {
	total := 0
	for _, e := range entries {
		total += e.minutes
	}
	return total
}
