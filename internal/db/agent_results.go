package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-pipeline/internal/types"
)

// -----------------------------------------------------------------------------
// Agent Result Methods
// -----------------------------------------------------------------------------
//
// Agent results arrive from the external evaluation process as
// immutable bundles, keyed by candidate and stage. A later delivery
// for the same key replaces the whole bundle.

// SaveAgentResults stores the raw result bundle for a candidate stage
func (db *DB) SaveAgentResults(ctx context.Context, candidateID uuid.UUID, stage string, results []types.RawAgentJobResult) error {
	doc, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal agent results: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO agent_results (candidate_id, stage, results, created_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (candidate_id, stage) DO UPDATE SET results = $3, created_at = NOW()`,
		candidateID, stage, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save agent results for %s/%s: %w", candidateID, stage, err)
	}
	return nil
}

// GetAgentResults retrieves the raw result bundle for a candidate
// stage. Returns nil when none have been delivered.
func (db *DB) GetAgentResults(ctx context.Context, candidateID uuid.UUID, stage string) ([]types.RawAgentJobResult, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT results FROM agent_results WHERE candidate_id = $1 AND stage = $2`,
		candidateID, stage,
	).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agent results: %w", err)
	}

	var results []types.RawAgentJobResult
	if err := json.Unmarshal(doc, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agent results: %w", err)
	}
	return results, nil
}
