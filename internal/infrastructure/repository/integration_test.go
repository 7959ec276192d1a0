package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	uservo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/models"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

var dbCounter atomic.Int64

// setupTestDB opens a private in-memory database. One connection keeps the
// shared cache alive and serializes transactions the way row locks would.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:helpdesk_%d?mode=memory&cache=shared&_foreign_keys=on", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.CompanyModel{},
		&models.UserModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.TimeEntryModel{},
		&models.HistoryModel{},
		&models.TicketSequenceModel{},
	))
	return db
}

type seeded struct {
	acme   *company.Company
	globex *company.Company
	admin  *user.User
	u1     *user.User
	g1     *user.User
}

func seed(t *testing.T, db *gorm.DB) seeded {
	t.Helper()
	ctx := context.Background()
	companies := NewCompanyRepository(db, logger.NewNopLogger())
	users := NewUserRepository(db, logger.NewNopLogger())

	newCompany := func(name, initials string) *company.Company {
		c, err := company.NewCompany(name, initials, "", "")
		require.NoError(t, err)
		require.NoError(t, companies.Create(ctx, c))
		return c
	}
	newUser := func(email, username string, role uservo.Role, c *company.Company, first string) *user.User {
		var companyID *uint
		if c != nil {
			id := c.ID()
			companyID = &id
		}
		u, err := user.NewUser(email, username, role, companyID, false, user.Profile{FirstName: first})
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, u))
		return u
	}

	s := seeded{
		acme:   newCompany("ACME", "ACM"),
		globex: newCompany("Globex", "GLX"),
	}
	s.admin = newUser("admin@desk.io", "admin", uservo.RoleAdmin, nil, "Ada")
	s.u1 = newUser("u1@acme.io", "u1", uservo.RoleCustomer, s.acme, "Una")
	s.g1 = newUser("g1@globex.io", "g1", uservo.RoleCustomer, s.globex, "Gus")
	return s
}
