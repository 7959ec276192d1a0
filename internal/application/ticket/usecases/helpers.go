package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	vo "github.com/tenantdesk/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
)

// loadVisibleTicket fetches the ticket through the caller's scope, so a
// ticket in another tenant is indistinguishable from a missing one.
func loadVisibleTicket(ctx context.Context, repo ticket.TicketRepository, caller access.Caller, sid string) (*ticket.Ticket, error) {
	return repo.GetBySID(ctx, sid, access.ScopeFor(caller))
}

// resolveUser maps a user SID from a request to the user, reporting unknown
// users as a validation error on field.
func resolveUser(ctx context.Context, users user.Repository, sid, field string) (*user.User, error) {
	u, err := users.GetBySID(ctx, sid)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError(field+" does not exist", sid)
		}
		return nil, err
	}
	return u, nil
}

func parsePriority(s *string) (*vo.Priority, error) {
	if s == nil {
		return nil, nil
	}
	p, err := vo.NewPriority(*s)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return &p, nil
}

func parseType(s *string) (*vo.TicketType, error) {
	if s == nil {
		return nil, nil
	}
	tt, err := vo.NewTicketType(*s)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return &tt, nil
}

func parseStatus(s *string) (*vo.TicketStatus, error) {
	if s == nil {
		return nil, nil
	}
	st, err := vo.NewTicketStatus(*s)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return &st, nil
}

func callerName(c access.Caller) string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Email
}
