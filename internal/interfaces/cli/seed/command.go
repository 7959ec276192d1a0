package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tenantdesk/helpdesk/internal/infrastructure/auth"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/config"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/database"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/permission"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/seeds"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/repository"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

var (
	env        string
	configPath string
	file       string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load companies and users from a fixture file",
		Long: `Create the companies and users listed in a YAML fixture. Existing companies
(by initials) and users (by email) are skipped. Default access policies are
seeded as well.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&file, "file", "f", "configs/seeds.yaml", "Path to the seed fixture")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.NewLogger()

	fixture, err := seeds.LoadFile(file)
	if err != nil {
		return err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()
	db := database.Get()

	enforcer, err := permission.NewEnforcer(db, cfg.Auth.PolicyModelPath, log)
	if err != nil {
		return err
	}
	policies, err := enforcer.SeedDefaults()
	if err != nil {
		return err
	}

	seeder := seeds.NewSeeder(
		repository.NewCompanyRepository(db, log),
		repository.NewUserRepository(db, log),
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		log,
	)
	res, err := seeder.Apply(context.Background(), fixture)
	if err != nil {
		return err
	}

	fmt.Printf("\nSeed complete:\n")
	fmt.Printf("  Policies added:    %d\n", policies)
	fmt.Printf("  Companies created: %d (skipped %d)\n", res.CompaniesCreated, res.CompaniesSkipped)
	fmt.Printf("  Users created:     %d (skipped %d)\n", res.UsersCreated, res.UsersSkipped)
	return nil
}
