package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// RankingRecord is one persisted keyword ranking snapshot. Rank and URL are
// nil when the tracked domain was not found in the ranked window.
type RankingRecord struct {
	ID        string    `json:"id"`
	KeywordID string    `json:"keyword_id"`
	Keyword   string    `json:"keyword"`
	Rank      *int      `json:"rank"`
	URL       *string   `json:"url"`
	CheckedAt time.Time `json:"checked_at"`
}

// KeywordService persists keyword ranking history.
type KeywordService struct {
	db *DB
}

// NewKeywordService creates a KeywordService.
func NewKeywordService(db *DB) *KeywordService {
	return &KeywordService{db: db}
}

// SaveRanking appends one ranking snapshot. Callers must not invoke this
// when the upstream lookup failed; a lookup failure never touches history.
func (s *KeywordService) SaveRanking(ctx context.Context, keywordID, keyword string, rank *int, url *string) (string, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO keyword_rankings (id, keyword_id, keyword, position, url, checked_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, keywordID, keyword, rank, url, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}

	return id, nil
}

// ListRankings returns the most recent ranking snapshots for a keyword,
// newest first.
func (s *KeywordService) ListRankings(ctx context.Context, keywordID string, limit int) ([]*RankingRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, keyword_id, keyword, position, url, checked_at
		FROM keyword_rankings
		WHERE keyword_id = ?
		ORDER BY checked_at DESC
		LIMIT ?
	`, keywordID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*RankingRecord

	for rows.Next() {
		var rec RankingRecord
		var rank sql.NullInt64
		var url sql.NullString
		var checkedAt string

		if err := rows.Scan(&rec.ID, &rec.KeywordID, &rec.Keyword, &rank, &url, &checkedAt); err != nil {
			return nil, err
		}

		if rank.Valid {
			v := int(rank.Int64)
			rec.Rank = &v
		}
		if url.Valid {
			v := url.String
			rec.URL = &v
		}

		rec.CheckedAt, err = time.Parse(time.RFC3339, checkedAt)
		if err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}
