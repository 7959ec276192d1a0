// Package services holds ticket application services shared by several use
// cases.
package services

import (
	"context"
	"fmt"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/mapper"
)

// HistoryRecorder appends audit rows. Call it with the transaction context of
// the mutation it describes so both commit or roll back together.
type HistoryRecorder struct {
	history   ticket.HistoryRepository
	users     user.Repository
	companies company.Repository
}

func NewHistoryRecorder(
	history ticket.HistoryRepository,
	users user.Repository,
	companies company.Repository,
) *HistoryRecorder {
	return &HistoryRecorder{
		history:   history,
		users:     users,
		companies: companies,
	}
}

func (r *HistoryRecorder) TicketCreated(ctx context.Context, t *ticket.Ticket, by access.Caller) error {
	entry, err := ticket.NewCreatedEntry(t.ID(), by.UserID)
	if err != nil {
		return fmt.Errorf("failed to build history entry: %w", err)
	}
	return r.append(ctx, entry)
}

// TicketUpdated records cs. Assignee and company changes are stored as SIDs.
func (r *HistoryRecorder) TicketUpdated(ctx context.Context, t *ticket.Ticket, cs ticket.ChangeSet, by access.Caller) error {
	fields, err := r.publicRefs(ctx, cs.Fields)
	if err != nil {
		return err
	}
	cs.Fields = fields

	entry, err := ticket.NewUpdateEntry(t.ID(), by.UserID, cs)
	if err != nil {
		return fmt.Errorf("failed to build history entry: %w", err)
	}
	return r.append(ctx, entry)
}

func (r *HistoryRecorder) CommentAdded(ctx context.Context, t *ticket.Ticket, by access.Caller) error {
	name := by.DisplayName
	if name == "" {
		name = by.Email
	}
	entry, err := ticket.NewCommentEntry(t.ID(), by.UserID, name)
	if err != nil {
		return fmt.Errorf("failed to build history entry: %w", err)
	}
	return r.append(ctx, entry)
}

func (r *HistoryRecorder) append(ctx context.Context, entry *ticket.HistoryEntry) error {
	if err := r.history.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func (r *HistoryRecorder) publicRefs(ctx context.Context, fields map[string]ticket.FieldChange) (map[string]ticket.FieldChange, error) {
	assignee, hasAssignee := fields[ticket.FieldAssignee]
	moved, hasCompany := fields[ticket.FieldCompany]
	if !hasAssignee && !hasCompany {
		return fields, nil
	}

	out := make(map[string]ticket.FieldChange, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	if hasAssignee {
		users, err := r.users.ListByIDs(ctx, refIDs(assignee))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve assignee references: %w", err)
		}
		out[ticket.FieldAssignee] = toSIDs(assignee, mapper.KeyBy(users, (*user.User).ID))
	}
	if hasCompany {
		companies, err := r.companies.ListByIDs(ctx, refIDs(moved))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve company references: %w", err)
		}
		out[ticket.FieldCompany] = toSIDs(moved, mapper.KeyBy(companies, (*company.Company).ID))
	}
	return out, nil
}

func refIDs(fc ticket.FieldChange) []uint {
	ids := make([]uint, 0, 2)
	for _, v := range []any{fc.From, fc.To} {
		if id, ok := v.(uint); ok {
			ids = append(ids, id)
		}
	}
	return mapper.Unique(ids)
}

func toSIDs[T interface{ SID() string }](fc ticket.FieldChange, index map[uint]T) ticket.FieldChange {
	sid := func(v any) any {
		id, ok := v.(uint)
		if !ok {
			return nil
		}
		ref, found := index[id]
		if !found {
			return nil
		}
		return ref.SID()
	}
	return ticket.FieldChange{From: sid(fc.From), To: sid(fc.To)}
}
