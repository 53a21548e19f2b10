package deriver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/punch"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func event(agentID string, dir punch.Direction, at time.Time) punch.Event {
	return punch.Event{
		SourceEntryID: agentID + "-" + at.Format(time.RFC3339),
		AgentID:       agentID,
		GroupID:       "grp-1",
		Direction:     dir,
		TimeUTC:       at,
		BelongsToDate: at.Format("2006-01-02"),
	}
}

func TestDerivePairsInWithNextOut(t *testing.T) {
	sessions := Derive([]punch.Event{
		event("a1", punch.DirectionIn, ts(9, 0)),
		event("a1", punch.DirectionOut, ts(12, 0)),
		event("a1", punch.DirectionIn, ts(13, 0)),
		event("a1", punch.DirectionOut, ts(17, 30)),
	})

	require.Len(t, sessions, 2)

	assert.True(t, sessions[0].IsComplete)
	assert.Equal(t, ts(9, 0), sessions[0].StartTimeUTC)
	require.NotNil(t, sessions[0].DurationMinutes)
	assert.Equal(t, 180, *sessions[0].DurationMinutes)

	assert.True(t, sessions[1].IsComplete)
	require.NotNil(t, sessions[1].DurationMinutes)
	assert.Equal(t, 270, *sessions[1].DurationMinutes)
}

func TestDeriveTrailingInBecomesIncomplete(t *testing.T) {
	sessions := Derive([]punch.Event{
		event("a1", punch.DirectionIn, ts(9, 0)),
		event("a1", punch.DirectionOut, ts(12, 0)),
		event("a1", punch.DirectionIn, ts(13, 0)),
	})

	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].IsComplete)

	last := sessions[1]
	assert.False(t, last.IsComplete)
	assert.Equal(t, ts(13, 0), last.StartTimeUTC)
	assert.Nil(t, last.EndTimeUTC)
	assert.Nil(t, last.DurationMinutes)
}

func TestDeriveDoubleInClosesFirstAsIncomplete(t *testing.T) {
	sessions := Derive([]punch.Event{
		event("a1", punch.DirectionIn, ts(9, 0)),
		event("a1", punch.DirectionIn, ts(10, 0)),
		event("a1", punch.DirectionOut, ts(11, 0)),
	})

	require.Len(t, sessions, 2)

	assert.False(t, sessions[0].IsComplete)
	assert.Equal(t, ts(9, 0), sessions[0].StartTimeUTC)

	assert.True(t, sessions[1].IsComplete)
	assert.Equal(t, ts(10, 0), sessions[1].StartTimeUTC)
	assert.Equal(t, 60, *sessions[1].DurationMinutes)
}

func TestDeriveDropsOrphanOut(t *testing.T) {
	sessions := Derive([]punch.Event{
		event("a1", punch.DirectionOut, ts(8, 0)),
		event("a1", punch.DirectionIn, ts(9, 0)),
		event("a1", punch.DirectionOut, ts(10, 0)),
	})

	require.Len(t, sessions, 1)
	assert.Equal(t, ts(9, 0), sessions[0].StartTimeUTC)
	assert.Equal(t, 60, *sessions[0].DurationMinutes)
}

func TestDeriveRoundsDurationHalfUp(t *testing.T) {
	in := event("a1", punch.DirectionIn, ts(9, 0))

	out := event("a1", punch.DirectionOut, ts(9, 0).Add(90*time.Minute+24*time.Second))
	sessions := Derive([]punch.Event{in, out})
	require.Len(t, sessions, 1)
	assert.Equal(t, 90, *sessions[0].DurationMinutes)

	out = event("a1", punch.DirectionOut, ts(9, 0).Add(90*time.Minute+36*time.Second))
	sessions = Derive([]punch.Event{in, out})
	require.Len(t, sessions, 1)
	assert.Equal(t, 91, *sessions[0].DurationMinutes)
}

func TestDeriveKeepsAgentsAndDaysSeparate(t *testing.T) {
	// a1's Out lands on the next calendar day, so its In never pairs: the
	// provider assigns each punch a belongs-to date and derivation never
	// pairs across days or agents.
	nextDay := time.Date(2026, 3, 3, 0, 30, 0, 0, time.UTC)
	sessions := Derive([]punch.Event{
		event("a1", punch.DirectionIn, ts(22, 0)),
		event("a1", punch.DirectionOut, nextDay),
		event("a2", punch.DirectionIn, ts(22, 0)),
		event("a2", punch.DirectionOut, ts(23, 0)),
	})

	require.Len(t, sessions, 2)

	assert.Equal(t, "a1", sessions[0].AgentID)
	assert.False(t, sessions[0].IsComplete)

	assert.Equal(t, "a2", sessions[1].AgentID)
	assert.True(t, sessions[1].IsComplete)
	assert.Equal(t, 60, *sessions[1].DurationMinutes)
}

func TestDeriveIsOrderInsensitive(t *testing.T) {
	events := []punch.Event{
		event("a2", punch.DirectionOut, ts(17, 0)),
		event("a1", punch.DirectionIn, ts(9, 0)),
		event("a2", punch.DirectionIn, ts(8, 30)),
		event("a1", punch.DirectionOut, ts(12, 0)),
	}
	shuffled := []punch.Event{events[3], events[0], events[2], events[1]}

	first := Derive(events)
	second := Derive(shuffled)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].AgentID, second[i].AgentID)
		assert.Equal(t, first[i].StartTimeUTC, second[i].StartTimeUTC)
		assert.Equal(t, first[i].IsComplete, second[i].IsComplete)
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	assert.Empty(t, Derive(nil))
	assert.Empty(t, Derive([]punch.Event{}))
}
