package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shrinx/shrinx/config"
	"github.com/shrinx/shrinx/database"
)

var resetAdminCmd = &cobra.Command{
	Use:   "reset-admin",
	Short: "Restore the default admin credentials",
	Long:  `This command resets the admin account to the default credentials (admin / changeme). Use it to recover from a lockout after losing the admin password.`,
	Run:   resetAdmin,
}

func init() {
	rootCmd.AddCommand(resetAdminCmd)
}

func resetAdmin(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path, cfg.InitialDomains())
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := db.ResetAdminUser(ctx); err != nil {
		log.Fatalf("failed to reset admin credentials: %v", err)
	}

	log.Info("admin credentials restored", "username", database.DefaultAdminUsername)
	log.Warn("log in and change the password immediately")
}
