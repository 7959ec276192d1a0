package services

import (
	"context"
	"time"

	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/goroutine"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

const notifyTimeout = 30 * time.Second

// AssignmentNotice tells a user a ticket was assigned to them.
type AssignmentNotice struct {
	TicketSID     string
	Reference     string
	Title         string
	AssigneeEmail string
	AssigneeName  string
	AssignedBy    string
}

type AssignmentNotifier interface {
	NotifyAssigned(ctx context.Context, notice AssignmentNotice) error
}

// NopNotifier is used when e-mail delivery is disabled.
type NopNotifier struct{}

func (NopNotifier) NotifyAssigned(context.Context, AssignmentNotice) error { return nil }

// NotifyAssignedAsync delivers the notice in the background after the
// request's transaction has committed. Failures are only logged.
func NotifyAssignedAsync(ctx context.Context, log logger.Interface, n AssignmentNotifier, t *ticket.Ticket, assignee *user.User, assignedBy string) {
	if n == nil || assignee == nil {
		return
	}
	notice := AssignmentNotice{
		TicketSID:     t.SID(),
		Reference:     t.Reference(),
		Title:         t.Title(),
		AssigneeEmail: assignee.Email(),
		AssigneeName:  assignee.DisplayName(),
		AssignedBy:    assignedBy,
	}
	goroutine.Detach(ctx, log, "notify-assignee", notifyTimeout, func(ctx context.Context) error {
		return n.NotifyAssigned(ctx, notice)
	})
}
