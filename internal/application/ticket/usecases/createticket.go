package usecases

import (
	"context"
	"fmt"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	vo "github.com/tenantdesk/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

const defaultReferenceAttempts = 5

type CreateTicketCommand struct {
	Caller      access.Caller
	Title       string
	Description string
	Priority    *string
	Type        *string
	AssigneeSID *string
	// CompanySID is honoured only for callers allowed to pick the company.
	CompanySID *string
}

type CreateTicketUseCase struct {
	tickets   ticket.TicketRepository
	sequence  ticket.ReferenceSequence
	companies company.Repository
	users     user.Repository
	recorder  *services.HistoryRecorder
	assembler *services.Assembler
	notifier  services.AssignmentNotifier
	guard     *access.Guard
	txMgr     db.Transactor
	attempts  int
	logger    logger.Interface
}

func NewCreateTicketUseCase(
	tickets ticket.TicketRepository,
	sequence ticket.ReferenceSequence,
	companies company.Repository,
	users user.Repository,
	recorder *services.HistoryRecorder,
	assembler *services.Assembler,
	notifier services.AssignmentNotifier,
	guard *access.Guard,
	txMgr db.Transactor,
	attempts int,
	logger logger.Interface,
) *CreateTicketUseCase {
	if attempts <= 0 {
		attempts = defaultReferenceAttempts
	}
	return &CreateTicketUseCase{
		tickets:   tickets,
		sequence:  sequence,
		companies: companies,
		users:     users,
		recorder:  recorder,
		assembler: assembler,
		notifier:  notifier,
		guard:     guard,
		txMgr:     txMgr,
		attempts:  attempts,
		logger:    logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketRecord, error) {
	uc.logger.Infow("executing create ticket use case", "caller_id", cmd.Caller.UserID, "title", cmd.Title)

	owner, err := uc.resolveCompany(ctx, cmd)
	if err != nil {
		uc.logger.Warnw("ticket company rejected", "caller_id", cmd.Caller.UserID, "error", err)
		return nil, err
	}

	priority, err := parsePriority(cmd.Priority)
	if err != nil {
		return nil, err
	}
	ticketType, err := parseType(cmd.Type)
	if err != nil {
		return nil, err
	}

	var assignee *user.User
	if cmd.AssigneeSID != nil && *cmd.AssigneeSID != "" {
		if assignee, err = resolveUser(ctx, uc.users, *cmd.AssigneeSID, "assignee"); err != nil {
			return nil, err
		}
	}

	var created *ticket.Ticket
	for attempt := 1; ; attempt++ {
		created, err = uc.createOnce(ctx, cmd, owner, priority, ticketType, assignee)
		if err == nil {
			break
		}
		if !errors.IsConflictError(err) || attempt >= uc.attempts {
			uc.logger.Errorw("failed to create ticket", "company_id", owner.ID(), "attempt", attempt, "error", err)
			return nil, err
		}
		uc.logger.Warnw("ticket reference collided, retrying", "company_id", owner.ID(), "attempt", attempt)
	}

	uc.logger.Infow("ticket created successfully", "ticket_sid", created.SID(), "reference", created.Reference())

	if assignee != nil && assignee.ID() != cmd.Caller.UserID {
		services.NotifyAssignedAsync(ctx, uc.logger, uc.notifier, created, assignee, callerName(cmd.Caller))
	}

	return uc.assembler.Ticket(ctx, created)
}

func (uc *CreateTicketUseCase) resolveCompany(ctx context.Context, cmd CreateTicketCommand) (*company.Company, error) {
	canSet, err := uc.guard.CanSetTicketCompany(cmd.Caller)
	if err != nil {
		return nil, err
	}

	var requested *uint
	if canSet && cmd.CompanySID != nil && *cmd.CompanySID != "" {
		c, err := uc.companies.GetBySID(ctx, *cmd.CompanySID, access.Unrestricted())
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil, errors.NewValidationError("company does not exist", *cmd.CompanySID)
			}
			return nil, err
		}
		id := c.ID()
		requested = &id
	}

	companyID, err := uc.guard.TicketCompanyForCreate(cmd.Caller, requested)
	if err != nil {
		return nil, err
	}
	c, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	return c, nil
}

func (uc *CreateTicketUseCase) createOnce(
	ctx context.Context,
	cmd CreateTicketCommand,
	owner *company.Company,
	priority *vo.Priority,
	ticketType *vo.TicketType,
	assignee *user.User,
) (*ticket.Ticket, error) {
	var p vo.Priority
	if priority != nil {
		p = *priority
	}
	var tt vo.TicketType
	if ticketType != nil {
		tt = *ticketType
	}
	var assigneeID *uint
	if assignee != nil {
		id := assignee.ID()
		assigneeID = &id
	}

	t, err := ticket.NewTicket(cmd.Title, cmd.Description, p, tt, assigneeID, cmd.Caller.UserID, owner.ID())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		seq, err := uc.sequence.Next(txCtx, owner.ID())
		if err != nil {
			return err
		}
		if err := t.AssignReference(ticket.FormatReference(owner.Initials(), seq)); err != nil {
			return fmt.Errorf("failed to assign reference: %w", err)
		}
		if err := uc.tickets.Create(txCtx, t); err != nil {
			return err
		}
		return uc.recorder.TicketCreated(txCtx, t, cmd.Caller)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
