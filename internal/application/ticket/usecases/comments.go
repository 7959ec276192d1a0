package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/shared/db"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type CommentCommand struct {
	Caller    access.Caller
	TicketSID string
	CommentID uint
	Message   string
}

// CommentUseCase covers the comment endpoints of a ticket. Every operation
// resolves the ticket through the caller's scope first.
type CommentUseCase struct {
	tickets   ticket.TicketRepository
	comments  ticket.CommentRepository
	recorder  *services.HistoryRecorder
	assembler *services.Assembler
	guard     *access.Guard
	txMgr     db.Transactor
	logger    logger.Interface
}

func NewCommentUseCase(
	tickets ticket.TicketRepository,
	comments ticket.CommentRepository,
	recorder *services.HistoryRecorder,
	assembler *services.Assembler,
	guard *access.Guard,
	txMgr db.Transactor,
	logger logger.Interface,
) *CommentUseCase {
	return &CommentUseCase{
		tickets:   tickets,
		comments:  comments,
		recorder:  recorder,
		assembler: assembler,
		guard:     guard,
		txMgr:     txMgr,
		logger:    logger,
	}
}

func (uc *CommentUseCase) List(ctx context.Context, cmd CommentCommand) ([]dto.CommentView, error) {
	t, err := loadVisibleTicket(ctx, uc.tickets, cmd.Caller, cmd.TicketSID)
	if err != nil {
		return nil, err
	}
	comments, err := uc.comments.ListByTicket(ctx, t.ID(), access.ScopeFor(cmd.Caller))
	if err != nil {
		return nil, err
	}
	return uc.assembler.Comments(ctx, comments)
}

func (uc *CommentUseCase) Get(ctx context.Context, cmd CommentCommand) (*dto.CommentView, error) {
	_, c, err := uc.load(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return uc.assembler.Comment(ctx, c)
}

// Create adds a comment attributed to the caller and records it in the
// ticket history within the same transaction.
func (uc *CommentUseCase) Create(ctx context.Context, cmd CommentCommand) (*dto.CommentView, error) {
	uc.logger.Infow("executing add comment use case", "ticket_sid", cmd.TicketSID, "caller_id", cmd.Caller.UserID)

	t, err := loadVisibleTicket(ctx, uc.tickets, cmd.Caller, cmd.TicketSID)
	if err != nil {
		return nil, err
	}

	c, err := ticket.NewComment(t.ID(), cmd.Caller.UserID, cmd.Message)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.comments.Create(txCtx, c); err != nil {
			return err
		}
		return uc.recorder.CommentAdded(txCtx, t, cmd.Caller)
	})
	if err != nil {
		uc.logger.Errorw("failed to add comment", "ticket_sid", cmd.TicketSID, "error", err)
		return nil, err
	}

	uc.logger.Infow("comment added successfully", "ticket_sid", cmd.TicketSID, "comment_id", c.ID())
	return uc.assembler.Comment(ctx, c)
}

func (uc *CommentUseCase) Update(ctx context.Context, cmd CommentCommand) (*dto.CommentView, error) {
	_, c, err := uc.load(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.CanModifyComment(cmd.Caller, c.AuthorID(), access.ActionUpdate); err != nil {
		uc.logger.Warnw("comment update denied", "comment_id", cmd.CommentID, "caller_id", cmd.Caller.UserID)
		return nil, err
	}
	if err := c.UpdateMessage(cmd.Message); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.comments.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update comment", "comment_id", cmd.CommentID, "error", err)
		return nil, err
	}
	return uc.assembler.Comment(ctx, c)
}

func (uc *CommentUseCase) Delete(ctx context.Context, cmd CommentCommand) error {
	_, c, err := uc.load(ctx, cmd)
	if err != nil {
		return err
	}
	if err := uc.guard.CanModifyComment(cmd.Caller, c.AuthorID(), access.ActionDelete); err != nil {
		uc.logger.Warnw("comment delete denied", "comment_id", cmd.CommentID, "caller_id", cmd.Caller.UserID)
		return err
	}
	if err := uc.comments.Delete(ctx, c.ID()); err != nil {
		uc.logger.Errorw("failed to delete comment", "comment_id", cmd.CommentID, "error", err)
		return err
	}
	return nil
}

func (uc *CommentUseCase) load(ctx context.Context, cmd CommentCommand) (*ticket.Ticket, *ticket.Comment, error) {
	t, err := loadVisibleTicket(ctx, uc.tickets, cmd.Caller, cmd.TicketSID)
	if err != nil {
		return nil, nil, err
	}
	c, err := uc.comments.GetByID(ctx, t.ID(), cmd.CommentID, access.ScopeFor(cmd.Caller))
	if err != nil {
		return nil, nil, err
	}
	return t, c, nil
}
