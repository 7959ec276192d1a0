package http

import (
	companyUsecases "github.com/tenantdesk/helpdesk/internal/application/company/usecases"
	ticketUsecases "github.com/tenantdesk/helpdesk/internal/application/ticket/usecases"
	"github.com/tenantdesk/helpdesk/internal/application/user/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User / Auth
	loginUC        *usecases.LoginUseCase
	refreshTokenUC *usecases.RefreshTokenUseCase
	profileUC      *usecases.ProfileUseCase
	manageUsersUC  *usecases.ManageUsersUseCase

	// Company
	companyUC *companyUsecases.CompanyUseCase

	// Ticket
	createTicketUC *ticketUsecases.CreateTicketUseCase
	updateTicketUC *ticketUsecases.UpdateTicketUseCase
	getTicketUC    *ticketUsecases.GetTicketUseCase
	listTicketsUC  *ticketUsecases.ListTicketsUseCase
	deleteTicketUC *ticketUsecases.DeleteTicketUseCase
	listHistoryUC  *ticketUsecases.ListHistoryUseCase
	commentUC      *ticketUsecases.CommentUseCase
	timeEntryUC    *ticketUsecases.TimeEntryUseCase
}

func (c *Container) initUseCases() *allUseCases {
	r := c.repos
	return &allUseCases{
		loginUC:        usecases.NewLoginUseCase(r.userRepo, c.hasher, c.jwtSvc, c.log),
		refreshTokenUC: usecases.NewRefreshTokenUseCase(r.userRepo, c.jwtSvc, c.log),
		profileUC:      usecases.NewProfileUseCase(r.userRepo, r.companyRepo, c.log),
		manageUsersUC:  usecases.NewManageUsersUseCase(r.userRepo, r.companyRepo, c.hasher, c.guard, c.log),

		companyUC: companyUsecases.NewCompanyUseCase(r.companyRepo, r.ticketRepo, c.guard, c.log),

		createTicketUC: ticketUsecases.NewCreateTicketUseCase(
			r.ticketRepo,
			r.referenceSeq,
			r.companyRepo,
			r.userRepo,
			c.recorder,
			c.assembler,
			c.notifier,
			c.guard,
			c.txMgr,
			c.cfg.Tickets.ReferenceRetries,
			c.log,
		),
		updateTicketUC: ticketUsecases.NewUpdateTicketUseCase(
			r.ticketRepo,
			r.companyRepo,
			r.userRepo,
			c.recorder,
			c.assembler,
			c.notifier,
			c.guard,
			c.txMgr,
			c.log,
		),
		getTicketUC:    ticketUsecases.NewGetTicketUseCase(r.ticketRepo, c.assembler, c.log),
		listTicketsUC:  ticketUsecases.NewListTicketsUseCase(r.ticketRepo, c.assembler, c.log),
		deleteTicketUC: ticketUsecases.NewDeleteTicketUseCase(r.ticketRepo, c.guard, c.txMgr, c.log),
		listHistoryUC:  ticketUsecases.NewListHistoryUseCase(r.ticketRepo, r.historyRepo, c.assembler, c.log),
		commentUC: ticketUsecases.NewCommentUseCase(
			r.ticketRepo,
			r.commentRepo,
			c.recorder,
			c.assembler,
			c.guard,
			c.txMgr,
			c.log,
		),
		timeEntryUC: ticketUsecases.NewTimeEntryUseCase(r.ticketRepo, r.timeEntryRepo, c.assembler, c.guard, c.log),
	}
}
