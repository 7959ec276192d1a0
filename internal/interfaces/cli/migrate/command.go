package migrate

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tenantdesk/helpdesk/internal/infrastructure/config"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/database"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/migration"
	"github.com/tenantdesk/helpdesk/internal/shared/constants"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

var (
	env        string
	configPath string
)

// session is what every subcommand gets once config, logging and (when
// asked for) the database are up.
type session struct {
	cfg     *config.Config
	manager *migration.Manager
	log     logger.Interface
	db      *gorm.DB
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply, roll back and inspect schema migrations. MySQL and PostgreSQL use
versioned goose scripts; sqlite is brought up to date with AutoMigrate and has
no version history.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: withSession(true, func(s *session) error {
			goose, err := s.manager.Versioned()
			if err != nil {
				return err
			}
			s.log.Infow("rolling back migrations", "environment", env, "steps", steps)
			if err := goose.MigrateDown(s.db, steps); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			return nil
		}),
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Scaffold a new SQL migration for the configured driver",
		RunE: withSession(false, func(s *session) error {
			goose, err := s.manager.Versioned()
			if err != nil {
				return err
			}
			if err := goose.Create(name); err != nil {
				return err
			}
			s.log.Infow("migration scaffolded", "name", name, "driver", s.cfg.Database.Driver)
			return nil
		}),
	}
	create.Flags().StringVarP(&name, "name", "n", "", "Migration name (required)")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withSession(true, func(s *session) error {
				s.log.Infow("applying migrations", "environment", env, "driver", s.cfg.Database.Driver)
				return s.manager.Migrate(s.db)
			}),
		},
		down,
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			RunE:  withSession(true, printStatus),
		},
		create,
	)

	return cmd
}

func withSession(connect bool, fn func(*session) error) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		cfg, err := config.Load(env, configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := logger.Init(&cfg.Logger, false); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		manager, err := migration.NewManager(cfg.Database.Driver)
		if err != nil {
			return err
		}
		s := &session{cfg: cfg, manager: manager, log: logger.NewLogger()}

		if connect {
			if err := database.Init(&cfg.Database); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer func() { _ = database.Close() }()
			s.db = database.Get()
		}
		return fn(s)
	}
}

func printStatus(s *session) error {
	goose, err := s.manager.Versioned()
	if err != nil {
		return err
	}
	current, err := goose.Version(s.db)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "environment\t%s\n", env)
	fmt.Fprintf(w, "driver\t%s\n", s.cfg.Database.Driver)
	fmt.Fprintf(w, "version\t%d\n", current)
	if err := w.Flush(); err != nil {
		return err
	}
	return goose.Status(s.db)
}
