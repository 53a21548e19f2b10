package postgresql

import (
	"context"
	"fmt"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/session"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) session.Repository {
	return &sessionRepository{db: db}
}

// FindRange implements session.Repository.
func (r *sessionRepository) FindRange(ctx context.Context, filter session.Filter) ([]session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.agent_id, s.client_group_id, s.activity_id,
			   s.start_time_utc, s.end_time_utc, s.duration_minutes, s.is_complete,
			   s.created_at,
			   a.name, a.email, g.name, t.name
		FROM sessions s
		LEFT JOIN agents a ON a.id = s.agent_id
		LEFT JOIN client_groups g ON g.id = s.client_group_id
		LEFT JOIN activity_types t ON t.id = s.activity_id
		WHERE s.start_time_utc >= $1::date
		  AND s.start_time_utc < $2::date + INTERVAL '1 day'
	`
	args := []any{filter.StartDate, filter.EndDate}

	if filter.OnlyIncomplete {
		query += " AND s.is_complete = FALSE"
	}

	query += " ORDER BY s.start_time_utc ASC, s.agent_id ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		var s session.Session
		if err := rows.Scan(
			&s.ID, &s.AgentID, &s.GroupID, &s.ActivityID,
			&s.StartTimeUTC, &s.EndTimeUTC, &s.DurationMinutes, &s.IsComplete,
			&s.CreatedAt,
			&s.AgentName, &s.AgentEmail, &s.GroupName, &s.ActivityName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

// InsertBatch implements session.Repository.
func (r *sessionRepository) InsertBatch(ctx context.Context, sessions []session.Session) (int64, error) {
	if len(sessions) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO sessions (
			id, agent_id, client_group_id, activity_id,
			start_time_utc, end_time_utc, duration_minutes, is_complete
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (agent_id, client_group_id, start_time_utc) DO NOTHING
	`

	var inserted int64
	insert := func(q database.Querier) error {
		for _, s := range sessions {
			tag, err := q.Exec(ctx, query,
				s.ID, s.AgentID, s.GroupID, s.ActivityID,
				s.StartTimeUTC, s.EndTimeUTC, s.DurationMinutes, s.IsComplete,
			)
			if err != nil {
				return fmt.Errorf("failed to insert session: %w", err)
			}
			inserted += tag.RowsAffected()
		}
		return nil
	}

	// Join an ambient transaction if one is running; otherwise the batch
	// gets its own so a derivation run lands all-or-nothing.
	if _, ok := TxFromContext(ctx); ok {
		err := insert(GetQuerier(ctx, r.db))
		return inserted, err
	}
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		return insert(GetQuerier(txCtx, r.db))
	})
	return inserted, err
}
