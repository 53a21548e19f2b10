package deriver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/punch"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/session"
)

type deriverService struct {
	punchRepo   punch.Repository
	sessionRepo session.Repository
}

func NewDeriverService(punchRepo punch.Repository, sessionRepo session.Repository) session.Deriver {
	return &deriverService{
		punchRepo:   punchRepo,
		sessionRepo: sessionRepo,
	}
}

// DeriveRange implements session.Deriver.
func (s *deriverService) DeriveRange(ctx context.Context, req session.DeriveRequest) (session.DeriveResult, error) {
	if err := req.Validate(); err != nil {
		return session.DeriveResult{}, err
	}

	events, err := s.punchRepo.FindRange(ctx, punch.Filter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		AgentID:   req.AgentID,
		GroupID:   req.GroupID,
	})
	if err != nil {
		return session.DeriveResult{}, fmt.Errorf("failed to load punch events: %w", err)
	}

	sessions := Derive(events)

	result := session.DeriveResult{
		PunchEvents: len(events),
		Derived:     len(sessions),
	}
	for i := range sessions {
		sessions[i].ID = uuid.NewString()
		if sessions[i].IsComplete {
			result.Complete++
		} else {
			result.Incomplete++
		}
	}

	inserted, err := s.sessionRepo.InsertBatch(ctx, sessions)
	if err != nil {
		return session.DeriveResult{}, fmt.Errorf("failed to store sessions: %w", err)
	}
	result.Inserted = inserted

	slog.Info("Derived sessions",
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"punch_events", result.PunchEvents,
		"derived", result.Derived,
		"incomplete", result.Incomplete,
		"inserted", result.Inserted,
	)

	return result, nil
}
