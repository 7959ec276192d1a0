package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	Caller    access.Caller
	TicketSID string
}

type GetTicketUseCase struct {
	tickets   ticket.TicketRepository
	assembler *services.Assembler
	logger    logger.Interface
}

func NewGetTicketUseCase(
	tickets ticket.TicketRepository,
	assembler *services.Assembler,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		tickets:   tickets,
		assembler: assembler,
		logger:    logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketRecord, error) {
	t, err := loadVisibleTicket(ctx, uc.tickets, query.Caller, query.TicketSID)
	if err != nil {
		uc.logger.Debugw("ticket lookup failed", "ticket_sid", query.TicketSID, "caller_id", query.Caller.UserID, "error", err)
		return nil, err
	}
	return uc.assembler.Ticket(ctx, t)
}
