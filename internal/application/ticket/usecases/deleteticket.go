package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Caller    access.Caller
	TicketSID string
}

type DeleteTicketUseCase struct {
	tickets ticket.TicketRepository
	guard   *access.Guard
	txMgr   db.Transactor
	logger  logger.Interface
}

func NewDeleteTicketUseCase(
	tickets ticket.TicketRepository,
	guard *access.Guard,
	txMgr db.Transactor,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		tickets: tickets,
		guard:   guard,
		txMgr:   txMgr,
		logger:  logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_sid", cmd.TicketSID, "caller_id", cmd.Caller.UserID)

	t, err := loadVisibleTicket(ctx, uc.tickets, cmd.Caller, cmd.TicketSID)
	if err != nil {
		return err
	}
	if err := uc.guard.CanDeleteTicket(cmd.Caller); err != nil {
		uc.logger.Warnw("ticket delete denied", "ticket_sid", cmd.TicketSID, "caller_id", cmd.Caller.UserID)
		return err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.tickets.Delete(txCtx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_sid", cmd.TicketSID, "error", err)
		return err
	}

	uc.logger.Infow("ticket deleted successfully", "ticket_sid", cmd.TicketSID, "reference", t.Reference())
	return nil
}
