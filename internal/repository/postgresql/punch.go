package postgresql

import (
	"context"
	"fmt"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/punch"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.Repository {
	return &punchRepository{db: db}
}

// FindRange implements punch.Repository.
func (r *punchRepository) FindRange(ctx context.Context, filter punch.Filter) ([]punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, source_entry_id, agent_id, client_group_id, activity_id,
			   direction, time_utc, local_time, belongs_to_date, created_at
		FROM punch_events
		WHERE belongs_to_date >= $1
		  AND belongs_to_date <= $2
	`
	args := []any{filter.StartDate, filter.EndDate}

	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		query += fmt.Sprintf(" AND agent_id = $%d", len(args))
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		query += fmt.Sprintf(" AND client_group_id = $%d", len(args))
	}

	query += " ORDER BY time_utc ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch events: %w", err)
	}
	defer rows.Close()

	var events []punch.Event
	for rows.Next() {
		var e punch.Event
		if err := rows.Scan(
			&e.ID, &e.SourceEntryID, &e.AgentID, &e.GroupID, &e.ActivityID,
			&e.Direction, &e.TimeUTC, &e.LocalTime, &e.BelongsToDate, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch events: %w", err)
	}

	return events, nil
}

// FindBySourceEntryID implements punch.Repository.
func (r *punchRepository) FindBySourceEntryID(ctx context.Context, sourceEntryID string) (*punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, source_entry_id, agent_id, client_group_id, activity_id,
			   direction, time_utc, local_time, belongs_to_date, created_at
		FROM punch_events
		WHERE source_entry_id = $1
		LIMIT 1
	`

	var e punch.Event
	err := q.QueryRow(ctx, query, sourceEntryID).Scan(
		&e.ID, &e.SourceEntryID, &e.AgentID, &e.GroupID, &e.ActivityID,
		&e.Direction, &e.TimeUTC, &e.LocalTime, &e.BelongsToDate, &e.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // not ingested yet
		}
		return nil, fmt.Errorf("failed to get punch event by source entry id: %w", err)
	}

	return &e, nil
}

// InsertBatch implements punch.Repository.
func (r *punchRepository) InsertBatch(ctx context.Context, events []punch.Event) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO punch_events (
			id, source_entry_id, agent_id, client_group_id, activity_id,
			direction, time_utc, local_time, belongs_to_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (source_entry_id) DO NOTHING
	`

	var inserted int64
	insert := func(q database.Querier) error {
		for _, e := range events {
			tag, err := q.Exec(ctx, query,
				e.ID, e.SourceEntryID, e.AgentID, e.GroupID, e.ActivityID,
				e.Direction, e.TimeUTC, e.LocalTime, e.BelongsToDate,
			)
			if err != nil {
				return fmt.Errorf("failed to insert punch event %s: %w", e.SourceEntryID, err)
			}
			inserted += tag.RowsAffected()
		}
		return nil
	}

	// Join an ambient transaction if one is running; otherwise the batch
	// gets its own so a partial ingest never persists.
	if _, ok := TxFromContext(ctx); ok {
		err := insert(GetQuerier(ctx, r.db))
		return inserted, err
	}
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		return insert(GetQuerier(txCtx, r.db))
	})
	return inserted, err
}
