package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-pipeline/internal/types"
)

// -----------------------------------------------------------------------------
// Snapshot Series Methods
// -----------------------------------------------------------------------------
//
// Snapshot rows are append-only, one per opportunity per observation
// day. A conflicting day is ignored rather than updated: the series is
// never retroactively edited.

// AppendSnapshot stores one daily stage-count observation
func (db *DB) AppendSnapshot(ctx context.Context, p *types.TimelinePipelineDataPoint) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pipeline_snapshots
		   (opportunity_id, observed_on, sourcing, matching, deployability,
		    verifications, recommendation, putting, deployment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (opportunity_id, observed_on) DO NOTHING`,
		p.OpportunityID, p.Date, p.Sourcing, p.Matching, p.Deployability,
		p.Verifications, p.Recommendation, p.Putting, p.Deployment,
	)
	if err != nil {
		return fmt.Errorf("failed to append snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns an opportunity's snapshot series ordered by
// observation date ascending
func (db *DB) ListSnapshots(ctx context.Context, opportunityID uuid.UUID) ([]types.TimelinePipelineDataPoint, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT opportunity_id, observed_on, sourcing, matching, deployability,
		        verifications, recommendation, putting, deployment
		 FROM pipeline_snapshots
		 WHERE opportunity_id = $1
		 ORDER BY observed_on ASC`,
		opportunityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var series []types.TimelinePipelineDataPoint
	for rows.Next() {
		var p types.TimelinePipelineDataPoint
		if err := rows.Scan(&p.OpportunityID, &p.Date, &p.Sourcing, &p.Matching,
			&p.Deployability, &p.Verifications, &p.Recommendation, &p.Putting, &p.Deployment); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		series = append(series, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	return series, nil
}
