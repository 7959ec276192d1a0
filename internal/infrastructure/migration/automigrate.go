package migration

import (
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.CompanyModel{},
		&models.UserModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.TimeEntryModel{},
		&models.HistoryModel{},
		&models.TicketSequenceModel{},
	}
}
