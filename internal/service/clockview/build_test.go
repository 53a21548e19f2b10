package clockview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/agent"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/clockview"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/punch"
)

func ts(day, hour, min int) time.Time {
	return time.Date(2026, 3, day, hour, min, 0, 0, time.UTC)
}

func event(agentID string, dir punch.Direction, at time.Time) punch.Event {
	return punch.Event{
		AgentID:       agentID,
		GroupID:       "g1",
		Direction:     dir,
		TimeUTC:       at,
		BelongsToDate: at.Format("2006-01-02"),
	}
}

func TestBuildUsesEarliestInAndLatestOut(t *testing.T) {
	// Two pairs with a lunch gap; the view spans the whole day.
	events := []punch.Event{
		event("a1", punch.DirectionOut, ts(2, 17, 30)),
		event("a1", punch.DirectionIn, ts(2, 13, 0)),
		event("a1", punch.DirectionOut, ts(2, 12, 0)),
		event("a1", punch.DirectionIn, ts(2, 9, 0)),
	}

	records := build(events, map[string]string{"a1": "Alice"})
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Alice", rec.AgentName)
	require.NotNil(t, rec.ClockInTimeUTC)
	assert.Equal(t, ts(2, 9, 0), *rec.ClockInTimeUTC)
	require.NotNil(t, rec.ClockOutTimeUTC)
	assert.Equal(t, ts(2, 17, 30), *rec.ClockOutTimeUTC)
	require.NotNil(t, rec.TotalHours)
	assert.Equal(t, 8.5, *rec.TotalHours)
	assert.True(t, rec.IsComplete)
}

func TestBuildMissingOutIsIncomplete(t *testing.T) {
	records := build([]punch.Event{
		event("a1", punch.DirectionIn, ts(2, 9, 0)),
	}, map[string]string{"a1": "Alice"})

	require.Len(t, records, 1)
	assert.False(t, records[0].IsComplete)
	assert.NotNil(t, records[0].ClockInTimeUTC)
	assert.Nil(t, records[0].ClockOutTimeUTC)
	assert.Nil(t, records[0].TotalHours)
}

func TestBuildOutBeforeInIsCompleteWithNegativeSpan(t *testing.T) {
	// An Out earlier than the only In (stray punch). Both punches exist, so
	// the row is complete and the negative span is reported as-is.
	records := build([]punch.Event{
		event("a1", punch.DirectionOut, ts(2, 8, 0)),
		event("a1", punch.DirectionIn, ts(2, 9, 0)),
	}, map[string]string{"a1": "Alice"})

	require.Len(t, records, 1)
	assert.True(t, records[0].IsComplete)
	require.NotNil(t, records[0].TotalHours)
	assert.Equal(t, -1.0, *records[0].TotalHours)
}

func TestBuildSortsByDateThenName(t *testing.T) {
	events := []punch.Event{
		event("a2", punch.DirectionIn, ts(2, 9, 0)),
		event("a1", punch.DirectionIn, ts(3, 9, 0)),
		event("a1", punch.DirectionIn, ts(2, 10, 0)),
	}

	records := build(events, map[string]string{"a1": "Alice", "a2": "Bob"})
	require.Len(t, records, 3)

	assert.Equal(t, []string{"2026-03-02", "2026-03-02", "2026-03-03"},
		[]string{records[0].Date, records[1].Date, records[2].Date})
	assert.Equal(t, "Alice", records[0].AgentName)
	assert.Equal(t, "Bob", records[1].AgentName)
}

func TestBuildUnknownAgentLabel(t *testing.T) {
	records := build([]punch.Event{
		event("ghost", punch.DirectionIn, ts(2, 9, 0)),
	}, map[string]string{})

	require.Len(t, records, 1)
	assert.Equal(t, "Unknown", records[0].AgentName)
}

type stubPunchRepo struct {
	events []punch.Event
}

func (s *stubPunchRepo) FindRange(ctx context.Context, filter punch.Filter) ([]punch.Event, error) {
	return s.events, nil
}

func (s *stubPunchRepo) FindBySourceEntryID(ctx context.Context, id string) (*punch.Event, error) {
	return nil, nil
}

func (s *stubPunchRepo) InsertBatch(ctx context.Context, events []punch.Event) (int64, error) {
	return int64(len(events)), nil
}

type stubAgentRepo struct {
	agents []agent.Agent
}

func (s *stubAgentRepo) FindAll(ctx context.Context) ([]agent.Agent, error) {
	return s.agents, nil
}

func (s *stubAgentRepo) GetByID(ctx context.Context, id string) (agent.Agent, error) {
	return agent.Agent{}, agent.ErrAgentNotFound
}

func (s *stubAgentRepo) Upsert(ctx context.Context, a agent.Agent) (agent.Agent, error) {
	return a, nil
}

func TestRecordsResolvesNames(t *testing.T) {
	svc := NewClockViewService(
		&stubPunchRepo{events: []punch.Event{
			event("a1", punch.DirectionIn, ts(2, 9, 0)),
			event("a1", punch.DirectionOut, ts(2, 17, 0)),
		}},
		&stubAgentRepo{agents: []agent.Agent{{ID: "a1", Name: "Alice"}}},
	)

	records, err := svc.Records(context.Background(), clockview.Options{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].AgentName)
	assert.Equal(t, 8.0, *records[0].TotalHours)
}

func TestRecordsRejectsInvalidRange(t *testing.T) {
	svc := NewClockViewService(&stubPunchRepo{}, &stubAgentRepo{})

	_, err := svc.Records(context.Background(), clockview.Options{
		StartDate: "not-a-date",
		EndDate:   "2026-03-02",
	})
	require.Error(t, err)
}
