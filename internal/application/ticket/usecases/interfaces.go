package usecases

import (
	"context"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketRecord, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketRecord, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketRecord, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type ListHistoryExecutor interface {
	Execute(ctx context.Context, query ListHistoryQuery) ([]dto.HistoryView, error)
}

type CommentExecutor interface {
	List(ctx context.Context, cmd CommentCommand) ([]dto.CommentView, error)
	Get(ctx context.Context, cmd CommentCommand) (*dto.CommentView, error)
	Create(ctx context.Context, cmd CommentCommand) (*dto.CommentView, error)
	Update(ctx context.Context, cmd CommentCommand) (*dto.CommentView, error)
	Delete(ctx context.Context, cmd CommentCommand) error
}

type TimeEntryExecutor interface {
	List(ctx context.Context, cmd TimeEntryCommand) ([]dto.TimeEntryView, error)
	Get(ctx context.Context, cmd TimeEntryCommand) (*dto.TimeEntryView, error)
	Create(ctx context.Context, cmd TimeEntryCommand) (*dto.TimeEntryView, error)
	Update(ctx context.Context, cmd TimeEntryCommand) (*dto.TimeEntryView, error)
	Delete(ctx context.Context, cmd TimeEntryCommand) error
}
