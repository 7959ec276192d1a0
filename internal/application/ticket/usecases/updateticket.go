package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

// UpdateTicketCommand carries a partial update; nil fields are unchanged.
type UpdateTicketCommand struct {
	Caller        access.Caller
	TicketSID     string
	Title         *string
	Description   *string
	Priority      *string
	Type          *string
	Status        *string
	AssigneeSID   *string
	ClearAssignee bool
	CompanySID    *string
}

type UpdateTicketUseCase struct {
	tickets   ticket.TicketRepository
	companies company.Repository
	users     user.Repository
	recorder  *services.HistoryRecorder
	assembler *services.Assembler
	notifier  services.AssignmentNotifier
	guard     *access.Guard
	txMgr     db.Transactor
	logger    logger.Interface
}

func NewUpdateTicketUseCase(
	tickets ticket.TicketRepository,
	companies company.Repository,
	users user.Repository,
	recorder *services.HistoryRecorder,
	assembler *services.Assembler,
	notifier services.AssignmentNotifier,
	guard *access.Guard,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		tickets:   tickets,
		companies: companies,
		users:     users,
		recorder:  recorder,
		assembler: assembler,
		notifier:  notifier,
		guard:     guard,
		txMgr:     txMgr,
		logger:    logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketRecord, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_sid", cmd.TicketSID, "caller_id", cmd.Caller.UserID)

	t, err := loadVisibleTicket(ctx, uc.tickets, cmd.Caller, cmd.TicketSID)
	if err != nil {
		uc.logger.Warnw("ticket not available for update", "ticket_sid", cmd.TicketSID, "error", err)
		return nil, err
	}

	update, assignee, err := uc.buildUpdate(ctx, cmd, t)
	if err != nil {
		return nil, err
	}

	cs, err := t.Apply(update)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if !cs.IsEmpty() {
			if err := uc.tickets.Update(txCtx, t); err != nil {
				return err
			}
		}
		return uc.recorder.TicketUpdated(txCtx, t, cs, cmd.Caller)
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_sid", cmd.TicketSID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket updated successfully",
		"ticket_sid", t.SID(),
		"status_changed", cs.StatusChanged(),
		"changed_fields", len(cs.Fields),
	)

	if cs.AssigneeChanged() && assignee != nil && assignee.ID() != cmd.Caller.UserID {
		services.NotifyAssignedAsync(ctx, uc.logger, uc.notifier, t, assignee, callerName(cmd.Caller))
	}

	return uc.assembler.Ticket(ctx, t)
}

func (uc *UpdateTicketUseCase) buildUpdate(ctx context.Context, cmd UpdateTicketCommand, t *ticket.Ticket) (ticket.Update, *user.User, error) {
	u := ticket.Update{
		Title:         cmd.Title,
		Description:   cmd.Description,
		ClearAssignee: cmd.ClearAssignee,
	}

	var err error
	if u.Priority, err = parsePriority(cmd.Priority); err != nil {
		return u, nil, err
	}
	if u.Type, err = parseType(cmd.Type); err != nil {
		return u, nil, err
	}
	if u.Status, err = parseStatus(cmd.Status); err != nil {
		return u, nil, err
	}

	var assignee *user.User
	if !cmd.ClearAssignee && cmd.AssigneeSID != nil && *cmd.AssigneeSID != "" {
		if assignee, err = resolveUser(ctx, uc.users, *cmd.AssigneeSID, "assignee"); err != nil {
			return u, nil, err
		}
		id := assignee.ID()
		u.AssigneeID = &id
	}

	companyID, err := uc.resolveCompany(ctx, cmd, t)
	if err != nil {
		return u, nil, err
	}
	u.CompanyID = &companyID
	return u, assignee, nil
}

func (uc *UpdateTicketUseCase) resolveCompany(ctx context.Context, cmd UpdateTicketCommand, t *ticket.Ticket) (uint, error) {
	canSet, err := uc.guard.CanSetTicketCompany(cmd.Caller)
	if err != nil {
		return 0, err
	}

	var requested *uint
	if canSet && cmd.CompanySID != nil && *cmd.CompanySID != "" {
		c, err := uc.companies.GetBySID(ctx, *cmd.CompanySID, access.Unrestricted())
		if err != nil {
			if errors.IsNotFoundError(err) {
				return 0, errors.NewValidationError("company does not exist", *cmd.CompanySID)
			}
			return 0, err
		}
		id := c.ID()
		requested = &id
	}
	return uc.guard.TicketCompanyForUpdate(cmd.Caller, t.CompanyID(), requested)
}
