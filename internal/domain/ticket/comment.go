package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/tenantdesk/helpdesk/internal/shared/biztime"
)

const maxMessageLength = 10000

type Comment struct {
	id        uint
	ticketID  uint
	authorID  uint
	message   string
	createdAt time.Time
	updatedAt time.Time
}

func NewComment(ticketID, authorID uint, message string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	now := biztime.NowUTC()
	c := &Comment{
		ticketID:  ticketID,
		authorID:  authorID,
		createdAt: now,
		updatedAt: now,
	}
	if err := c.setMessage(message); err != nil {
		return nil, err
	}
	return c, nil
}

func ReconstructComment(id, ticketID, authorID uint, message string, createdAt, updatedAt time.Time) *Comment {
	return &Comment{
		id:        id,
		ticketID:  ticketID,
		authorID:  authorID,
		message:   message,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) AuthorID() uint {
	return c.authorID
}

func (c *Comment) Message() string {
	return c.message
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Comment) SetID(id uint) {
	c.id = id
}

func (c *Comment) UpdateMessage(message string) error {
	if err := c.setMessage(message); err != nil {
		return err
	}
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Comment) setMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(message) > maxMessageLength {
		return fmt.Errorf("message exceeds maximum length of %d characters", maxMessageLength)
	}
	c.message = message
	return nil
}
