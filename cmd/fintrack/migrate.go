package main

import (
	"fmt"
	"os"

	"fintrack/internal/config"
	"fintrack/internal/database"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var migrateSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Apply all pending SQL migrations, optionally loading seed data afterwards.`,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "Load seed data after migrating")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	runner := database.NewMigrationRunner(sqlDB)
	if err := runner.WaitForDatabase(); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	if err := runner.RunMigrations(); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	if migrateSeed {
		if err := runner.LoadSeeds(); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		if err := seedAdminFromEnv(cfg, db); err != nil {
			return err
		}
	}

	version, dirty, err := runner.GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	fmt.Printf("Migrations applied. Version: %d, dirty: %t\n", version, dirty)
	return nil
}

// seedAdminFromEnv bootstraps an admin account when ADMIN_USERNAME,
// ADMIN_EMAIL, and ADMIN_PASSWORD are all set.
func seedAdminFromEnv(cfg *config.Config, db *database.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if _, err := db.SeedAdminUser(username, email, string(hash)); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	fmt.Printf("Admin user %q is present.\n", username)
	return nil
}
