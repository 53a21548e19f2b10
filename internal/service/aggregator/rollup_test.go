package aggregator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/rollup"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/session"
)

func strPtr(s string) *string { return &s }

func completeSession(agentID, agentName, groupID string, day int, minutes int) session.Session {
	start := time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(minutes) * time.Minute)
	return session.Session{
		AgentID:         agentID,
		GroupID:         groupID,
		StartTimeUTC:    start,
		EndTimeUTC:      &end,
		DurationMinutes: &minutes,
		IsComplete:      true,
		AgentName:       strPtr(agentName),
		GroupName:       strPtr("Group " + groupID),
	}
}

func incompleteSession(agentID, agentName, groupID string, day int) session.Session {
	return session.Session{
		AgentID:      agentID,
		GroupID:      groupID,
		StartTimeUTC: time.Date(2026, 3, day, 14, 0, 0, 0, time.UTC),
		IsComplete:   false,
		AgentName:    strPtr(agentName),
		GroupName:    strPtr("Group " + groupID),
	}
}

type stubSessionRepo struct {
	sessions []session.Session
}

func (s *stubSessionRepo) FindRange(ctx context.Context, filter session.Filter) ([]session.Session, error) {
	return s.sessions, nil
}

func (s *stubSessionRepo) InsertBatch(ctx context.Context, sessions []session.Session) (int64, error) {
	return 0, nil
}

func opts() rollup.Options {
	return rollup.Options{
		StartDate:         "2026-03-01",
		EndDate:           "2026-03-31",
		IncludeIncomplete: true,
	}
}

func TestHoursByAgentSortsAndRounds(t *testing.T) {
	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		completeSession("a1", "Alice", "g1", 2, 40),
		completeSession("a1", "Alice", "g1", 3, 41),
		completeSession("a1", "Alice", "g1", 4, 39),
		completeSession("a2", "Bob", "g1", 2, 480),
	}})

	rows, err := svc.HoursByAgent(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Highest hours first.
	assert.Equal(t, "Bob", rows[0].AgentName)
	assert.Equal(t, 8.0, rows[0].TotalHours)

	// 40+41+39 minutes sums before converting, so no per-session drift.
	assert.Equal(t, "Alice", rows[1].AgentName)
	assert.Equal(t, 120, rows[1].TotalMinutes)
	assert.Equal(t, 2.0, rows[1].TotalHours)
	assert.Equal(t, 3, rows[1].SessionCount)
}

func TestHoursByAgentTieBreaksByName(t *testing.T) {
	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		completeSession("a2", "Bob", "g1", 2, 60),
		completeSession("a1", "Alice", "g1", 2, 60),
	}})

	rows, err := svc.HoursByAgent(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].AgentName)
	assert.Equal(t, "Bob", rows[1].AgentName)
}

func TestIncompleteSessionsCountButAddNoMinutes(t *testing.T) {
	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		completeSession("a1", "Alice", "g1", 2, 120),
		incompleteSession("a1", "Alice", "g1", 2),
	}})

	rows, err := svc.HoursByAgent(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].TotalHours)
	assert.Equal(t, 2, rows[0].SessionCount)
	assert.Equal(t, 1, rows[0].IncompleteSessions)
}

func TestIncludeIncompleteFalseExcludesEntirely(t *testing.T) {
	options := opts()
	options.IncludeIncomplete = false

	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		completeSession("a1", "Alice", "g1", 2, 120),
		incompleteSession("a1", "Alice", "g1", 2),
		incompleteSession("a2", "Bob", "g1", 2),
	}})

	rows, err := svc.HoursByAgent(context.Background(), options)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].SessionCount)
	assert.Equal(t, 0, rows[0].IncompleteSessions)

	summary, err := svc.SummaryStats(context.Background(), options)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalSessions)
	assert.Equal(t, 1, summary.UniqueAgents)
}

func TestHoursByActivityUnspecifiedBucket(t *testing.T) {
	withActivity := completeSession("a1", "Alice", "g1", 2, 60)
	withActivity.ActivityID = strPtr("act-1")
	withActivity.ActivityName = strPtr("Support")

	without := completeSession("a1", "Alice", "g1", 3, 90)

	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{withActivity, without}})

	rows, err := svc.HoursByActivity(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Nil(t, rows[0].ActivityID)
	assert.Equal(t, 1.5, rows[0].TotalHours)

	require.NotNil(t, rows[1].ActivityID)
	assert.Equal(t, "Support", *rows[1].ActivityName)
	assert.Equal(t, 1.0, rows[1].TotalHours)
}

func TestHoursByDaySortsAscending(t *testing.T) {
	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		completeSession("a1", "Alice", "g1", 5, 60),
		completeSession("a1", "Alice", "g1", 2, 60),
		completeSession("a2", "Bob", "g1", 2, 30),
	}})

	rows, err := svc.HoursByDay(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2026-03-02", rows[0].Date)
	assert.Equal(t, "Mar 2", rows[0].DateFormatted)
	assert.Equal(t, 1.5, rows[0].TotalHours)
	assert.Equal(t, "2026-03-05", rows[1].Date)
}

func TestHoursByGroupCountsDistinctAgents(t *testing.T) {
	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		completeSession("a1", "Alice", "g1", 2, 60),
		completeSession("a1", "Alice", "g1", 3, 60),
		completeSession("a2", "Bob", "g1", 2, 60),
		completeSession("a3", "Cara", "g2", 2, 480),
	}})

	rows, err := svc.HoursByGroup(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "g2", rows[0].GroupID)
	assert.Equal(t, 1, rows[0].AgentCount)

	assert.Equal(t, "g1", rows[1].GroupID)
	assert.Equal(t, 2, rows[1].AgentCount)
	assert.Equal(t, 3, rows[1].SessionCount)
}

func TestHoursByAgentAndActivitySortsByHoursDesc(t *testing.T) {
	short := completeSession("a1", "Alice", "g1", 2, 60)
	long := completeSession("a2", "Bob", "g1", 2, 480)
	long.ActivityID = strPtr("act-1")
	long.ActivityName = strPtr("Support")

	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{short, long}})

	rows, err := svc.HoursByAgentAndActivity(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Highest hours first, even when the smaller row sorts earlier by name.
	assert.Equal(t, "Bob", rows[0].AgentName)
	assert.Equal(t, 8.0, rows[0].TotalHours)
	assert.Equal(t, "Alice", rows[1].AgentName)
}

func TestHoursByGroupAndActivitySortsByHoursDesc(t *testing.T) {
	short := completeSession("a1", "Alice", "g1", 2, 30)
	long := completeSession("a2", "Bob", "g2", 2, 240)
	long.ActivityID = strPtr("act-1")

	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{short, long}})

	rows, err := svc.HoursByGroupAndActivity(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "g2", rows[0].GroupID)
	assert.Equal(t, 4.0, rows[0].TotalHours)
	assert.Equal(t, "g1", rows[1].GroupID)
}

func TestHoursByAgentAndActivityTieBreaksByName(t *testing.T) {
	first := completeSession("a2", "Bob", "g1", 2, 60)
	second := completeSession("a1", "Alice", "g1", 2, 60)

	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{first, second}})

	rows, err := svc.HoursByAgentAndActivity(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].AgentName)
	assert.Equal(t, "Bob", rows[1].AgentName)
}

func TestHoursByAgentAndDay(t *testing.T) {
	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		completeSession("a1", "Alice", "g1", 2, 240),
		completeSession("a1", "Alice", "g1", 2, 60),
		completeSession("a1", "Alice", "g1", 3, 120),
		completeSession("a2", "Bob", "g1", 2, 30),
	}})

	rows, err := svc.HoursByAgentAndDay(context.Background(), opts())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Alice", rows[0].AgentName)
	assert.Equal(t, "2026-03-02", rows[0].Date)
	assert.Equal(t, 5.0, rows[0].TotalHours)

	assert.Equal(t, "Bob", rows[1].AgentName)
	assert.Equal(t, "2026-03-02", rows[1].Date)

	assert.Equal(t, "2026-03-03", rows[2].Date)
}

func TestAgentFilterRestrictsAllRollups(t *testing.T) {
	options := opts()
	options.AgentIDs = []string{"a1"}

	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		completeSession("a1", "Alice", "g1", 2, 60),
		completeSession("a2", "Bob", "g2", 2, 60),
	}})

	rows, err := svc.HoursByGroup(context.Background(), options)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "g1", rows[0].GroupID)
}

func TestActivityFilterDropsUnspecified(t *testing.T) {
	options := opts()
	options.ActivityIDs = []string{"act-1"}

	tagged := completeSession("a1", "Alice", "g1", 2, 60)
	tagged.ActivityID = strPtr("act-1")

	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		tagged,
		completeSession("a2", "Bob", "g1", 2, 60),
	}})

	summary, err := svc.SummaryStats(context.Background(), options)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalSessions)
}

func TestEmptyRangeYieldsEmptyRows(t *testing.T) {
	svc := NewAggregatorService(&stubSessionRepo{})

	rows, err := svc.HoursByAgent(context.Background(), opts())
	require.NoError(t, err)
	assert.Empty(t, rows)

	summary, err := svc.SummaryStats(context.Background(), opts())
	require.NoError(t, err)
	assert.Equal(t, rollup.Summary{}, summary)
}

func TestRollupsAreIdempotent(t *testing.T) {
	repo := &stubSessionRepo{sessions: []session.Session{
		completeSession("a1", "Alice", "g1", 2, 40),
		completeSession("a2", "Bob", "g1", 2, 41),
		incompleteSession("a1", "Alice", "g2", 3),
	}}
	svc := NewAggregatorService(repo)

	first, err := svc.HoursByAgent(context.Background(), opts())
	require.NoError(t, err)
	second, err := svc.HoursByAgent(context.Background(), opts())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummaryStats(t *testing.T) {
	tagged := completeSession("a1", "Alice", "g1", 2, 90)
	tagged.ActivityID = strPtr("act-1")

	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		tagged,
		completeSession("a2", "Bob", "g2", 2, 30),
		incompleteSession("a3", "Cara", "g1", 3),
	}})

	summary, err := svc.SummaryStats(context.Background(), opts())
	require.NoError(t, err)

	assert.Equal(t, 2.0, summary.TotalHours)
	assert.Equal(t, 120, summary.TotalMinutes)
	assert.Equal(t, 3, summary.TotalSessions)
	assert.Equal(t, 1, summary.IncompleteSessions)
	assert.Equal(t, 3, summary.UniqueAgents)
	assert.Equal(t, 2, summary.UniqueGroups)
	// act-1 plus the untagged sessions' Unspecified bucket.
	assert.Equal(t, 2, summary.UniqueActivities)
}

func TestSummaryCountsUnspecifiedAsOneActivity(t *testing.T) {
	tagged := completeSession("a1", "Alice", "g1", 2, 60)
	tagged.ActivityID = strPtr("act-1")

	svc := NewAggregatorService(&stubSessionRepo{sessions: []session.Session{
		tagged,
		completeSession("a2", "Bob", "g1", 2, 60),
		completeSession("a3", "Cara", "g1", 3, 60),
	}})

	summary, err := svc.SummaryStats(context.Background(), opts())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.UniqueActivities)
}
