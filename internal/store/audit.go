package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one persisted audit result.
type AuditRecord struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	URL        string    `json:"url"`
	Score      int       `json:"score"`
	ResultJSON string    `json:"result_json"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditService persists audit results.
type AuditService struct {
	db *DB
}

// NewAuditService creates an AuditService.
func NewAuditService(db *DB) *AuditService {
	return &AuditService{db: db}
}

// SaveAudit stores an immutable audit record and returns its generated ID.
// payload is the serialized checks and analysis snapshot.
func (s *AuditService) SaveAudit(ctx context.Context, projectID, url string, score int, payload string) (string, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audits (id, project_id, url, score, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, projectID, url, score, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}

	return id, nil
}

// ListAudits returns the most recent audit records for a project, newest
// first.
func (s *AuditService) ListAudits(ctx context.Context, projectID string, limit int) ([]*AuditRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, url, score, result_json, created_at
		FROM audits
		WHERE project_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*AuditRecord

	for rows.Next() {
		var rec AuditRecord
		var createdAt string

		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.URL, &rec.Score, &rec.ResultJSON, &createdAt); err != nil {
			return nil, err
		}

		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}
