package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/audit-atlas/pkg/server"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/de-tools/audit-atlas/pkg/services/directory"
	"github.com/de-tools/audit-atlas/pkg/services/lifecycle"
	"github.com/de-tools/audit-atlas/pkg/services/notify"
	"github.com/de-tools/audit-atlas/pkg/store/memory/actionplans"
	"github.com/de-tools/audit-atlas/pkg/store/memory/auditplans"
	"github.com/de-tools/audit-atlas/pkg/store/memory/findings"
	"github.com/de-tools/audit-atlas/pkg/store/memory/seed"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Audit Atlas web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml", "Path to the config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	dir, err := directory.LoadFile(cfg.DirectoryPath)
	if err != nil {
		return fmt.Errorf("failed to load user directory: %w", err)
	}
	logger.Info().
		Int("users", len(dir.Users())).
		Int("managers", len(dir.Managers())).
		Msg("user directory loaded")

	data, err := seed.LoadFile(cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}
	if cfg.SeedPath != "" {
		logger.Info().
			Int("findings", len(data.Findings)).
			Int("audit_plans", len(data.AuditPlans)).
			Int("action_plans", len(data.ActionPlans)).
			Msg("seed working set loaded")
	}

	findingsStore := findings.NewStore(data.Findings)
	actionPlansStore := actionplans.NewStore(data.ActionPlans)
	auditPlansStore := auditplans.NewStore(data.AuditPlans)
	feed := notify.NewFeed(logger, 0)

	engine := lifecycle.NewEngine(lifecycle.Config{
		Findings:    findingsStore,
		ActionPlans: actionPlansStore,
		Sink:        feed,
		Strict:      cfg.Strict,
	})
	planEngine := lifecycle.NewPlanEngine(lifecycle.PlanConfig{
		Plans:  auditPlansStore,
		Sink:   feed,
		Strict: cfg.Strict,
	})

	api := server.NewWebAPI(server.Config{
		Addr:             cfg.Addr,
		ShutdownTimeout:  cfg.ShutdownTimeout,
		TATThresholdDays: cfg.TATThresholdDays,
		Dependencies: server.Dependencies{
			Engine:      engine,
			PlanEngine:  planEngine,
			Findings:    findingsStore,
			ActionPlans: actionPlansStore,
			AuditPlans:  auditPlansStore,
			Directory:   dir,
			Feed:        feed,
			Logger:      logger,
		},
	})

	return api.Start()
}
