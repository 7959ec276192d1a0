package services

import (
	"context"
	"fmt"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/mapper"
	"github.com/tenantdesk/helpdesk/internal/shared/services/markdown"
)

// Assembler loads the users, companies and time totals that ticket views
// reference, batching lookups per call.
type Assembler struct {
	users     user.Repository
	companies company.Repository
	entries   ticket.TimeEntryRepository
	markdown  markdown.Renderer
}

func NewAssembler(
	users user.Repository,
	companies company.Repository,
	entries ticket.TimeEntryRepository,
	renderer markdown.Renderer,
) *Assembler {
	return &Assembler{
		users:     users,
		companies: companies,
		entries:   entries,
		markdown:  renderer,
	}
}

func (a *Assembler) Ticket(ctx context.Context, t *ticket.Ticket) (*dto.TicketRecord, error) {
	records, err := a.Tickets(ctx, []*ticket.Ticket{t})
	if err != nil {
		return nil, err
	}
	return records[0], nil
}

func (a *Assembler) Tickets(ctx context.Context, tickets []*ticket.Ticket) ([]*dto.TicketRecord, error) {
	records := make([]*dto.TicketRecord, 0, len(tickets))
	if len(tickets) == 0 {
		return records, nil
	}

	ticketIDs := make([]uint, 0, len(tickets))
	userIDs := make([]uint, 0, len(tickets)*2)
	companyIDs := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		ticketIDs = append(ticketIDs, t.ID())
		userIDs = append(userIDs, t.CreatedByID())
		if t.AssigneeID() != nil {
			userIDs = append(userIDs, *t.AssigneeID())
		}
		companyIDs = append(companyIDs, t.CompanyID())
	}

	users, err := a.userIndex(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	companies, err := a.companies.ListByIDs(ctx, mapper.Unique(companyIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}
	companyByID := mapper.KeyBy(companies, (*company.Company).ID)
	minutes, err := a.entries.SumMinutes(ctx, ticketIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum time entries: %w", err)
	}

	for _, t := range tickets {
		r := &dto.TicketRecord{
			Ticket:       t,
			Company:      companyByID[t.CompanyID()],
			CreatedBy:    users[t.CreatedByID()],
			TotalMinutes: minutes[t.ID()],
		}
		if t.AssigneeID() != nil {
			r.Assignee = users[*t.AssigneeID()]
		}
		records = append(records, r)
	}
	return records, nil
}

func (a *Assembler) Comments(ctx context.Context, comments []*ticket.Comment) ([]dto.CommentView, error) {
	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID())
	}
	users, err := a.userIndex(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, dto.CommentView{
			ID:          c.ID(),
			Author:      dto.ToUserRef(users[c.AuthorID()]),
			Message:     c.Message(),
			MessageHTML: a.markdown.Render(c.Message()),
			CreatedAt:   c.CreatedAt(),
			UpdatedAt:   c.UpdatedAt(),
		})
	}
	return views, nil
}

func (a *Assembler) Comment(ctx context.Context, c *ticket.Comment) (*dto.CommentView, error) {
	views, err := a.Comments(ctx, []*ticket.Comment{c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (a *Assembler) TimeEntries(ctx context.Context, entries []*ticket.TimeEntry) ([]dto.TimeEntryView, error) {
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.OperatorID())
	}
	users, err := a.userIndex(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]dto.TimeEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, dto.ToTimeEntryView(e, users[e.OperatorID()]))
	}
	return views, nil
}

func (a *Assembler) TimeEntry(ctx context.Context, e *ticket.TimeEntry) (*dto.TimeEntryView, error) {
	views, err := a.TimeEntries(ctx, []*ticket.TimeEntry{e})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (a *Assembler) History(ctx context.Context, entries []*ticket.HistoryEntry, privileged bool) ([]dto.HistoryView, error) {
	ids := make([]uint, 0, len(entries))
	for _, h := range entries {
		if h.UserID() != nil {
			ids = append(ids, *h.UserID())
		}
	}
	users, err := a.userIndex(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]dto.HistoryView, 0, len(entries))
	for _, h := range entries {
		var actor *user.User
		if h.UserID() != nil {
			actor = users[*h.UserID()]
		}
		views = append(views, dto.ToHistoryView(h, actor, privileged))
	}
	return views, nil
}

func (a *Assembler) userIndex(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	ids = mapper.Unique(ids)
	if len(ids) == 0 {
		return map[uint]*user.User{}, nil
	}
	users, err := a.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return mapper.KeyBy(users, (*user.User).ID), nil
}
