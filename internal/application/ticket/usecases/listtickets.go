package usecases

import (
	"context"
	"strings"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

type ListTicketsQuery struct {
	Caller   access.Caller
	Priority *string
	Status   *string
	Type     *string
	Title    string
	Page     int
	PageSize int
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketRecord
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	tickets   ticket.TicketRepository
	assembler *services.Assembler
	logger    logger.Interface
}

func NewListTicketsUseCase(
	tickets ticket.TicketRepository,
	assembler *services.Assembler,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		tickets:   tickets,
		assembler: assembler,
		logger:    logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	filter := ticket.TicketFilter{
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		Title:      strings.TrimSpace(q.Title),
	}

	var err error
	if filter.Priority, err = parsePriority(q.Priority); err != nil {
		return nil, err
	}
	if filter.Status, err = parseStatus(q.Status); err != nil {
		return nil, err
	}
	if filter.Type, err = parseType(q.Type); err != nil {
		return nil, err
	}

	tickets, total, err := uc.tickets.List(ctx, filter, access.ScopeFor(q.Caller))
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "caller_id", q.Caller.UserID, "error", err)
		return nil, err
	}

	records, err := uc.assembler.Tickets(ctx, tickets)
	if err != nil {
		return nil, err
	}

	return &ListTicketsResult{
		Tickets:  records,
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}
