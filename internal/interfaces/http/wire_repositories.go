package http

import (
	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/repository"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the domain interfaces the use cases depend on.
type repositories struct {
	companyRepo   company.Repository
	userRepo      user.Repository
	ticketRepo    ticket.TicketRepository
	commentRepo   ticket.CommentRepository
	timeEntryRepo ticket.TimeEntryRepository
	historyRepo   ticket.HistoryRepository
	referenceSeq  ticket.ReferenceSequence
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		companyRepo:   repository.NewCompanyRepository(db, log),
		userRepo:      repository.NewUserRepository(db, log),
		ticketRepo:    repository.NewTicketRepository(db),
		commentRepo:   repository.NewCommentRepository(db),
		timeEntryRepo: repository.NewTimeEntryRepository(db),
		historyRepo:   repository.NewHistoryRepository(db),
		referenceSeq:  repository.NewReferenceSequence(db),
	}
}
