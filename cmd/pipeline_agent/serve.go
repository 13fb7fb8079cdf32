package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-pipeline/internal/config"
	"github.com/jonathan/talent-pipeline/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveActor      string
	serveDemoChecks bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for candidate lifecycle management, agent check evaluation, and momentum analytics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveActor, "actor", "", "Default actor recorded on mutations")
	serveCmd.Flags().BoolVar(&serveDemoChecks, "demo-checks", false, "Generate placeholder agent results when none exist (never in production)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	flagCfg := config.Config{Actor: serveActor, DemoChecks: serveDemoChecks}
	if cmd.Flags().Changed("port") {
		flagCfg.Port = servePort
	}

	var fileCfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg = *loaded
	}

	// Flags win over the config file, which wins over env/defaults
	cfg := flagCfg.MergeWithDefaults(fileCfg)
	cfg = cfg.MergeWithDefaults(config.Config{Port: servePort, DatabaseURL: os.Getenv("DATABASE_URL")})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		Actor:       cfg.Actor,
		DemoChecks:  cfg.DemoChecks,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
