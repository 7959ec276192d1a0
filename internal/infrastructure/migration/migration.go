package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/shared/config"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

// Manager handles database migrations with the strategy matching the driver
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for mysql and postgres, AutoMigrate for sqlite.
func NewManager(driver string) (*Manager, error) {
	var strategy Strategy
	switch driver {
	case config.DriverSQLite:
		strategy = NewGormAutoMigrateStrategy()
	default:
		goose, err := NewGooseStrategy(driver)
		if err != nil {
			return nil, err
		}
		strategy = goose
	}
	return NewManagerWithStrategy(strategy), nil
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Versioned returns the goose strategy, or an error when the driver uses
// AutoMigrate and has no version history.
func (m *Manager) Versioned() (*GooseStrategy, error) {
	goose, ok := m.strategy.(*GooseStrategy)
	if !ok {
		return nil, fmt.Errorf("strategy %s has no versioned migrations", m.strategy.GetName())
	}
	return goose, nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
