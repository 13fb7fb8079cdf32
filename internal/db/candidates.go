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
// Candidate Methods
// -----------------------------------------------------------------------------
//
// Candidates are stored as a JSONB document alongside the columns the
// list queries filter and sort on. The state machine produces whole
// replacement records, so writes are full-document upserts.

// SaveCandidate inserts or replaces a candidate record
func (db *DB) SaveCandidate(ctx context.Context, c *types.Candidate) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal candidate: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidates (id, opportunity_id, name, state, archived, doc, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE
		 SET name = $3, state = $4, archived = $5, doc = $6, updated_at = $8`,
		c.ID, c.OpportunityID, c.Name, string(c.State), c.Archived, doc, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate %s: %w", c.ID, err)
	}
	return nil
}

// GetCandidate retrieves a candidate by ID. Returns nil when absent.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT doc FROM candidates WHERE id = $1`, id,
	).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	var c types.Candidate
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidate %s: %w", id, err)
	}
	return &c, nil
}

// ListCandidates returns all candidates for an opportunity, newest
// update first. Archived candidates are included; callers filter.
func (db *DB) ListCandidates(ctx context.Context, opportunityID uuid.UUID) ([]*types.Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT doc FROM candidates WHERE opportunity_id = $1 ORDER BY updated_at DESC`,
		opportunityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*types.Candidate
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		var c types.Candidate
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal candidate: %w", err)
		}
		candidates = append(candidates, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}
