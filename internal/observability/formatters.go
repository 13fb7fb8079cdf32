// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-pipeline/internal/agents"
	"github.com/jonathan/talent-pipeline/internal/momentum"
	"github.com/jonathan/talent-pipeline/internal/scoring"
	"github.com/jonathan/talent-pipeline/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidate outputs a human-readable summary of a candidate.
func (p *Printer) PrintCandidate(c *types.Candidate) {
	if c == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", c.Name))
	sb.WriteString(fmt.Sprintf("Stage:    %s\n", c.State))
	if c.State == types.StageSourced {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", c.ContactStatus))
	}
	if c.Archived {
		sb.WriteString(fmt.Sprintf("Archived: %s\n", c.ArchiveReason))
	}

	flags := []string{}
	if c.IsPotentialPrincipal {
		flags = append(flags, "principal")
	}
	if c.AwaitingRecommendation {
		flags = append(flags, "awaiting recommendation")
	}
	if len(flags) > 0 {
		sb.WriteString(fmt.Sprintf("Flags:    %s\n", strings.Join(flags, ", ")))
	}

	if c.LastAction != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Last action: %s (%s)\n", c.LastAction.Action, c.LastAction.By))
	}

	p.printBox("CANDIDATE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScores outputs the aggregated score set with bands.
func (p *Printer) PrintScores(result *scoring.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Deployability: %3d  [%s]\n", result.Deployability, result.DeployabilityBand))
	sb.WriteString(fmt.Sprintf("Suitability:   %3d  [%s]\n", result.Suitability, result.SuitabilityBand))
	sb.WriteString(fmt.Sprintf("Readiness:     %3d  [%s]", result.Readiness, result.ReadinessBand))

	for _, bundle := range []struct {
		label    string
		evidence *types.EvidenceBundle
	}{
		{"Suitability evidence", result.SuitabilityEvidence},
		{"Readiness evidence", result.ReadinessEvidence},
	} {
		if bundle.evidence == nil || bundle.evidence.IsEmpty() {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n\n%s:\n", bundle.label))
		sources := bundle.evidence.Sources()
		count := min(len(sources), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", sources[i]))
		}
		if len(sources) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(sources)-maxItemsToShow))
		}
	}

	p.printBox("SCORES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMomentumReport outputs a momentum report with deltas and milestones.
func (p *Printer) PrintMomentumReport(report *momentum.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Momentum: %d (%s)\n", report.Score, report.Descriptor))
	if report.Degenerate {
		sb.WriteString("\nNot enough observations for trend analysis")
		p.printBox("PIPELINE MOMENTUM", sb.String())
		return
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Today:     %+d\n", report.TodayDelta))
	sb.WriteString(fmt.Sprintf("7 days:    %+d\n", report.SevenDayDelta))
	sb.WriteString(fmt.Sprintf("15 days:   %+d\n", report.FifteenDayDelta))
	sb.WriteString(fmt.Sprintf("Baseline:  %d (%+d)\n", report.HistoricalBaseline, report.HistoricalDelta))

	if len(report.Milestones) > 0 {
		sb.WriteString("\nMilestones:\n")
		for _, m := range report.Milestones {
			noun := "days"
			if m.DaysElapsed == 1 {
				noun = "day"
			}
			sb.WriteString(fmt.Sprintf("  %d recommended in %d %s\n", m.Count, m.DaysElapsed, noun))
		}
	}

	p.printBox("PIPELINE MOMENTUM", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the agent check evaluation for a stage.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEvaluation(eval *agents.Evaluation) {
	if eval == nil {
		return
	}
	if eval.NoChecksConfigured {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO CHECKS CONFIGURED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Completed %d of %d checks", eval.CompletedCount, eval.TotalCount))
	if eval.Placeholder {
		sb.WriteString(" (demo data)")
	}
	sb.WriteString("\n\n")

	count := min(len(eval.Results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := eval.Results[i]
		switch {
		case !r.Completed:
			sb.WriteString(fmt.Sprintf("… %s (pending)\n", r.Name))
		case r.Passed:
			sb.WriteString(fmt.Sprintf("✓ %s  %.0f\n", r.Name, r.Score))
		default:
			sb.WriteString(fmt.Sprintf("✗ %s  %.0f\n", r.Name, r.Score))
		}
	}
	if len(eval.Results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more checks", len(eval.Results)-maxItemsToShow))
	}

	p.printBox("AGENT CHECKS", strings.TrimSuffix(sb.String(), "\n"))
}
