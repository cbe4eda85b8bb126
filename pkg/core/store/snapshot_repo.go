package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"dealdesk/pkg/core/analysis"
	"dealdesk/pkg/models"
)

// SnapshotRepo persists point-in-time snapshots of a workbook together with
// the analysis derived from it, keyed by company slug. Snapshots are what the
// deal team shares and compares across revisions of the same target.
type SnapshotRepo struct{}

// NewSnapshotRepo creates a new snapshot repository
func NewSnapshotRepo() *SnapshotRepo {
	return &SnapshotRepo{}
}

// snapshotPayload is the JSONB document stored per company.
type snapshotPayload struct {
	Workbook *models.CompanyWorkbook   `json:"workbook"`
	Analysis *analysis.CompanyAnalysis `json:"analysis"`
}

// SnapshotInfo is a listing row: which companies have snapshots, and how fresh.
type SnapshotInfo struct {
	CompanySlug string    `json:"company_slug"`
	Company     string    `json:"company"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Save upserts the snapshot for a company.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS deal_snapshots (
//	    company_slug  TEXT PRIMARY KEY,
//	    company       TEXT,
//	    snapshot_json JSONB,
//	    updated_at    TIMESTAMPTZ
//	);
func (r *SnapshotRepo) Save(ctx context.Context, wb *models.CompanyWorkbook, result *analysis.CompanyAnalysis) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if wb == nil {
		return fmt.Errorf("workbook is nil")
	}

	jsonData, err := json.Marshal(snapshotPayload{
		Workbook: wb,
		Analysis: result,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO deal_snapshots (company_slug, company, snapshot_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_slug)
		DO UPDATE SET
			company = EXCLUDED.company,
			snapshot_json = EXCLUDED.snapshot_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, models.Slug(wb.Company), wb.Company, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load retrieves the stored snapshot for a company slug.
func (r *SnapshotRepo) Load(ctx context.Context, slug string) (*models.CompanyWorkbook, *analysis.CompanyAnalysis, error) {
	pool := GetPool()
	if pool == nil {
		return nil, nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT snapshot_json FROM deal_snapshots WHERE company_slug = $1;`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, slug).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, fmt.Errorf("no snapshot found for company %s", slug)
		}
		return nil, nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var payload snapshotPayload
	if err := json.Unmarshal(jsonData, &payload); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return payload.Workbook, payload.Analysis, nil
}

// List returns all stored snapshots, newest first.
func (r *SnapshotRepo) List(ctx context.Context) ([]SnapshotInfo, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT company_slug, company, updated_at FROM deal_snapshots ORDER BY updated_at DESC;`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.CompanySlug, &info.Company, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}
