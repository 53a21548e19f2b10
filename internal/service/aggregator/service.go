package aggregator

import (
	"context"
	"fmt"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/rollup"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/session"
)

// Rollups are computed in memory from one range query. Weekly and even
// monthly ranges stay small (thousands of sessions), and deriving every
// breakdown from the same snapshot keeps the numbers mutually consistent.
type aggregatorService struct {
	sessionRepo session.Repository
}

func NewAggregatorService(sessionRepo session.Repository) rollup.Service {
	return &aggregatorService{sessionRepo: sessionRepo}
}

func (s *aggregatorService) load(ctx context.Context, opts rollup.Options) ([]session.Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.FindRange(ctx, session.Filter{
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	return filterSessions(sessions, opts), nil
}

// HoursByAgent implements rollup.Service.
func (s *aggregatorService) HoursByAgent(ctx context.Context, opts rollup.Options) ([]rollup.AgentHours, error) {
	sessions, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return hoursByAgent(sessions), nil
}

// HoursByActivity implements rollup.Service.
func (s *aggregatorService) HoursByActivity(ctx context.Context, opts rollup.Options) ([]rollup.ActivityHours, error) {
	sessions, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return hoursByActivity(sessions), nil
}

// HoursByDay implements rollup.Service.
func (s *aggregatorService) HoursByDay(ctx context.Context, opts rollup.Options) ([]rollup.DayHours, error) {
	sessions, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return hoursByDay(sessions), nil
}

// HoursByGroup implements rollup.Service.
func (s *aggregatorService) HoursByGroup(ctx context.Context, opts rollup.Options) ([]rollup.GroupHours, error) {
	sessions, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return hoursByGroup(sessions), nil
}

// HoursByAgentAndActivity implements rollup.Service.
func (s *aggregatorService) HoursByAgentAndActivity(ctx context.Context, opts rollup.Options) ([]rollup.AgentActivityHours, error) {
	sessions, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return hoursByAgentAndActivity(sessions), nil
}

// HoursByGroupAndActivity implements rollup.Service.
func (s *aggregatorService) HoursByGroupAndActivity(ctx context.Context, opts rollup.Options) ([]rollup.GroupActivityHours, error) {
	sessions, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return hoursByGroupAndActivity(sessions), nil
}

// HoursByAgentAndDay implements rollup.Service.
func (s *aggregatorService) HoursByAgentAndDay(ctx context.Context, opts rollup.Options) ([]rollup.AgentDayHours, error) {
	sessions, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return hoursByAgentAndDay(sessions), nil
}

// SummaryStats implements rollup.Service.
func (s *aggregatorService) SummaryStats(ctx context.Context, opts rollup.Options) (rollup.Summary, error) {
	sessions, err := s.load(ctx, opts)
	if err != nil {
		return rollup.Summary{}, err
	}
	return summaryStats(sessions), nil
}
