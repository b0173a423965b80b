package main

import (
	"fmt"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/repositories"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var auditRetention time.Duration

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Prune expired tokens and old audit logs",
	RunE:  runCleanup,
}

func init() {
	cleanupCmd.Flags().DurationVar(&auditRetention, "audit-retention", 90*24*time.Hour,
		"Delete audit logs older than this")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	refreshTokenRepo := repositories.NewRefreshTokenRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)
	auditRepo := repositories.NewAuditLogRepository(db.DB)

	expiredRefresh, err := refreshTokenRepo.DeleteExpired()
	if err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}

	// Revoked tokens are kept for a week so recent logouts stay visible
	revoked, err := refreshTokenRepo.DeleteRevokedOlderThan(7 * 24 * time.Hour)
	if err != nil {
		return fmt.Errorf("failed to delete revoked refresh tokens: %w", err)
	}

	expiredBlacklist, err := blacklistedTokenRepo.DeleteExpired()
	if err != nil {
		return fmt.Errorf("failed to delete expired blacklisted tokens: %w", err)
	}

	auditLogs, err := auditRepo.DeleteOlderThan(auditRetention)
	if err != nil {
		return fmt.Errorf("failed to delete old audit logs: %w", err)
	}

	fmt.Printf("Cleanup done. Refresh tokens: %d expired, %d revoked. Blacklist: %d. Audit logs: %d.\n",
		expiredRefresh, revoked, expiredBlacklist, auditLogs)
	return nil
}
