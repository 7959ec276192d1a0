package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type TimeEntryCommand struct {
	Caller    access.Caller
	TicketSID string
	EntryID   uint
	Minutes   int
}

// TimeEntryUseCase covers time tracking on a ticket. Reads follow ticket
// visibility; writes additionally need the time entry policy.
type TimeEntryUseCase struct {
	tickets   ticket.TicketRepository
	entries   ticket.TimeEntryRepository
	assembler *services.Assembler
	guard     *access.Guard
	logger    logger.Interface
}

func NewTimeEntryUseCase(
	tickets ticket.TicketRepository,
	entries ticket.TimeEntryRepository,
	assembler *services.Assembler,
	guard *access.Guard,
	logger logger.Interface,
) *TimeEntryUseCase {
	return &TimeEntryUseCase{
		tickets:   tickets,
		entries:   entries,
		assembler: assembler,
		guard:     guard,
		logger:    logger,
	}
}

func (uc *TimeEntryUseCase) List(ctx context.Context, cmd TimeEntryCommand) ([]dto.TimeEntryView, error) {
	t, err := loadVisibleTicket(ctx, uc.tickets, cmd.Caller, cmd.TicketSID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.entries.ListByTicket(ctx, t.ID(), access.ScopeFor(cmd.Caller))
	if err != nil {
		return nil, err
	}
	return uc.assembler.TimeEntries(ctx, entries)
}

func (uc *TimeEntryUseCase) Get(ctx context.Context, cmd TimeEntryCommand) (*dto.TimeEntryView, error) {
	e, err := uc.load(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return uc.assembler.TimeEntry(ctx, e)
}

// Create logs minutes against the ticket with the caller as operator.
func (uc *TimeEntryUseCase) Create(ctx context.Context, cmd TimeEntryCommand) (*dto.TimeEntryView, error) {
	uc.logger.Infow("executing create time entry use case", "ticket_sid", cmd.TicketSID, "caller_id", cmd.Caller.UserID)

	t, err := loadVisibleTicket(ctx, uc.tickets, cmd.Caller, cmd.TicketSID)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.CanMutateTimeEntry(cmd.Caller, access.ActionCreate); err != nil {
		uc.logger.Warnw("time entry create denied", "ticket_sid", cmd.TicketSID, "caller_id", cmd.Caller.UserID)
		return nil, err
	}

	e, err := ticket.NewTimeEntry(t.ID(), cmd.Caller.UserID, cmd.Minutes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.entries.Create(ctx, e); err != nil {
		uc.logger.Errorw("failed to create time entry", "ticket_sid", cmd.TicketSID, "error", err)
		return nil, err
	}

	uc.logger.Infow("time entry created successfully", "ticket_sid", cmd.TicketSID, "entry_id", e.ID(), "minutes", e.Minutes())
	return uc.assembler.TimeEntry(ctx, e)
}

func (uc *TimeEntryUseCase) Update(ctx context.Context, cmd TimeEntryCommand) (*dto.TimeEntryView, error) {
	e, err := uc.load(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.CanMutateTimeEntry(cmd.Caller, access.ActionUpdate); err != nil {
		uc.logger.Warnw("time entry update denied", "entry_id", cmd.EntryID, "caller_id", cmd.Caller.UserID)
		return nil, err
	}
	if err := e.UpdateMinutes(cmd.Minutes); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.entries.Update(ctx, e); err != nil {
		uc.logger.Errorw("failed to update time entry", "entry_id", cmd.EntryID, "error", err)
		return nil, err
	}
	return uc.assembler.TimeEntry(ctx, e)
}

func (uc *TimeEntryUseCase) Delete(ctx context.Context, cmd TimeEntryCommand) error {
	e, err := uc.load(ctx, cmd)
	if err != nil {
		return err
	}
	if err := uc.guard.CanMutateTimeEntry(cmd.Caller, access.ActionDelete); err != nil {
		uc.logger.Warnw("time entry delete denied", "entry_id", cmd.EntryID, "caller_id", cmd.Caller.UserID)
		return err
	}
	if err := uc.entries.Delete(ctx, e.ID()); err != nil {
		uc.logger.Errorw("failed to delete time entry", "entry_id", cmd.EntryID, "error", err)
		return err
	}
	return nil
}

func (uc *TimeEntryUseCase) load(ctx context.Context, cmd TimeEntryCommand) (*ticket.TimeEntry, error) {
	t, err := loadVisibleTicket(ctx, uc.tickets, cmd.Caller, cmd.TicketSID)
	if err != nil {
		return nil, err
	}
	return uc.entries.GetByID(ctx, t.ID(), cmd.EntryID, access.ScopeFor(cmd.Caller))
}
