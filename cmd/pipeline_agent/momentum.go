package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-pipeline/internal/config"
	"github.com/jonathan/talent-pipeline/internal/db"
	"github.com/jonathan/talent-pipeline/internal/momentum"
	"github.com/jonathan/talent-pipeline/internal/observability"
	"github.com/jonathan/talent-pipeline/internal/types"
)

var (
	momentumConfigPath  string
	momentumOpportunity string
	momentumDatabaseURL string
	momentumMaxDays     int
	momentumVerbose     bool
)

var momentumCmd = &cobra.Command{
	Use:   "momentum",
	Short: "Report pipeline momentum for an opportunity",
	Long:  `Loads the opportunity's daily snapshot series from the database and computes the momentum score, velocity deltas, and recommendation milestones.`,
	RunE:  runMomentum,
}

func init() {
	momentumCmd.Flags().StringVar(&momentumConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	momentumCmd.Flags().StringVarP(&momentumOpportunity, "opportunity", "o", "", "Opportunity UUID (required)")
	momentumCmd.Flags().StringVar(&momentumDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	momentumCmd.Flags().IntVar(&momentumMaxDays, "max-days", 0, "Only consider snapshots from the trailing N days (0 = all, defaults to max_series_days from config)")
	momentumCmd.Flags().BoolVarP(&momentumVerbose, "verbose", "v", false, "Print a formatted report instead of JSON")
	_ = momentumCmd.MarkFlagRequired("opportunity")
	rootCmd.AddCommand(momentumCmd)
}

func runMomentum(cmd *cobra.Command, _ []string) error {
	opportunityID, err := uuid.Parse(momentumOpportunity)
	if err != nil {
		return fmt.Errorf("invalid opportunity ID: %w", err)
	}

	var cfg config.Config
	if momentumConfigPath != "" {
		loaded, err := config.LoadConfig(momentumConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	if !cmd.Flags().Changed("max-days") {
		momentumMaxDays = cfg.MaxSeriesDays
	}

	databaseURL := momentumDatabaseURL
	if databaseURL == "" {
		databaseURL = cfg.DatabaseURL
	}
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	series, err := database.ListSnapshots(ctx, opportunityID)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}
	if momentumMaxDays > 0 {
		series = trimSeries(series, momentumMaxDays)
	}

	report := momentum.Compute(series)

	if momentumVerbose {
		observability.NewPrinter(os.Stdout).PrintMomentumReport(&report)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// trimSeries keeps only observations within the trailing window,
// anchored to the latest observation date
func trimSeries(series []types.TimelinePipelineDataPoint, maxDays int) []types.TimelinePipelineDataPoint {
	if len(series) == 0 {
		return series
	}

	latest := series[0].Date
	for _, p := range series[1:] {
		if p.Date.After(latest) {
			latest = p.Date
		}
	}
	cutoff := latest.AddDate(0, 0, -maxDays)

	out := make([]types.TimelinePipelineDataPoint, 0, len(series))
	for _, p := range series {
		if !p.Date.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}
