package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-pipeline/internal/agents"
	"github.com/jonathan/talent-pipeline/internal/db"
	"github.com/jonathan/talent-pipeline/internal/observability"
	"github.com/jonathan/talent-pipeline/internal/scoring"
	"github.com/jonathan/talent-pipeline/internal/types"
)

// scoresConcurrency bounds parallel per-candidate result fetches
const scoresConcurrency = 4

var (
	scoresOpportunity string
	scoresDatabaseURL string
	scoresVerbose     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Report derived scores for an opportunity's candidates",
	Long:  `Derives deployability, suitability, and readiness for every candidate of an opportunity and reports them alongside each candidate's agent check completion. Scores are computed on read and never written back.`,
	RunE:  runScores,
}

func init() {
	scoresCmd.Flags().StringVarP(&scoresOpportunity, "opportunity", "o", "", "Opportunity UUID (required)")
	scoresCmd.Flags().StringVar(&scoresDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	scoresCmd.Flags().BoolVarP(&scoresVerbose, "verbose", "v", false, "Print boxed per-candidate summaries")
	_ = scoresCmd.MarkFlagRequired("opportunity")
	rootCmd.AddCommand(scoresCmd)
}

// scoreRow pairs a candidate with its derived scores and check state
type scoreRow struct {
	candidate *types.Candidate
	scores    scoring.Result
	checks    agents.Evaluation
}

func runScores(_ *cobra.Command, _ []string) error {
	opportunityID, err := uuid.Parse(scoresOpportunity)
	if err != nil {
		return fmt.Errorf("invalid opportunity ID: %w", err)
	}

	databaseURL := scoresDatabaseURL
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

	candidates, err := database.ListCandidates(ctx, opportunityID)
	if err != nil {
		return fmt.Errorf("failed to list candidates: %w", err)
	}

	rows := make([]scoreRow, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoresConcurrency)
	for i, c := range candidates {
		g.Go(func() error {
			existing, err := database.GetAgentResults(gctx, c.ID, string(c.State))
			if err != nil {
				return fmt.Errorf("failed to load agent results for %s: %w", c.ID, err)
			}
			rows[i] = scoreRow{
				candidate: c,
				scores:    scoring.Aggregate(c),
				checks:    agents.EvaluateAgentJobs(string(c.State), nil, existing),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	for _, row := range rows {
		if scoresVerbose {
			printer.PrintCandidate(row.candidate)
			printer.PrintScores(&row.scores)
			printer.PrintEvaluation(&row.checks)
			continue
		}
		fmt.Printf("%s  %-24s %-18s d=%d s=%d r=%d checks=%d/%d\n",
			row.candidate.ID, row.candidate.Name, row.candidate.State,
			row.scores.Deployability, row.scores.Suitability, row.scores.Readiness,
			row.checks.CompletedCount, row.checks.TotalCount)
	}

	fmt.Printf("Scored %d candidates\n", len(rows))
	return nil
}
