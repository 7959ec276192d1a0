package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type ListHistoryQuery struct {
	Caller    access.Caller
	TicketSID string
}

type ListHistoryUseCase struct {
	tickets   ticket.TicketRepository
	history   ticket.HistoryRepository
	assembler *services.Assembler
	logger    logger.Interface
}

func NewListHistoryUseCase(
	tickets ticket.TicketRepository,
	history ticket.HistoryRepository,
	assembler *services.Assembler,
	logger logger.Interface,
) *ListHistoryUseCase {
	return &ListHistoryUseCase{
		tickets:   tickets,
		history:   history,
		assembler: assembler,
		logger:    logger,
	}
}

// Execute returns the ticket's history newest first.
func (uc *ListHistoryUseCase) Execute(ctx context.Context, q ListHistoryQuery) ([]dto.HistoryView, error) {
	t, err := loadVisibleTicket(ctx, uc.tickets, q.Caller, q.TicketSID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.history.ListByTicket(ctx, t.ID(), access.ScopeFor(q.Caller))
	if err != nil {
		uc.logger.Errorw("failed to list ticket history", "ticket_sid", q.TicketSID, "error", err)
		return nil, err
	}
	return uc.assembler.History(ctx, entries, q.Caller.IsPrivileged())
}
