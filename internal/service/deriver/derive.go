package deriver

import (
	"sort"
	"time"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/punch"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/session"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/timeutil"
)

// Derive pairs punch events into sessions. Events are grouped per
// (agent, belongs-to date) and swept in time order with a single pending
// slot per group:
//
//   - an In while another In is pending closes the pending one as an
//     incomplete session and opens a new one
//   - an Out with a pending In completes the session
//   - an Out with nothing pending is dropped
//   - a pending In left at the end of the day becomes incomplete
//
// The output is deterministic for any input order of events: sessions are
// sorted by start time, then agent ID.
func Derive(events []punch.Event) []session.Session {
	type groupKey struct {
		agentID string
		date    string
	}

	grouped := make(map[groupKey][]punch.Event)
	for _, e := range events {
		if !e.Direction.Valid() {
			continue
		}
		key := groupKey{agentID: e.AgentID, date: e.BelongsToDate}
		grouped[key] = append(grouped[key], e)
	}

	keys := make([]groupKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].agentID < keys[j].agentID
	})

	var sessions []session.Session
	for _, key := range keys {
		dayEvents := grouped[key]
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].TimeUTC.Before(dayEvents[j].TimeUTC)
		})

		var pending *punch.Event
		for i := range dayEvents {
			e := dayEvents[i]
			switch e.Direction {
			case punch.DirectionIn:
				if pending != nil {
					sessions = append(sessions, incompleteFrom(*pending))
				}
				pending = &dayEvents[i]
			case punch.DirectionOut:
				if pending == nil {
					continue // orphan clock-out, nothing to close
				}
				sessions = append(sessions, completeFrom(*pending, e.TimeUTC))
				pending = nil
			}
		}
		if pending != nil {
			sessions = append(sessions, incompleteFrom(*pending))
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].StartTimeUTC.Equal(sessions[j].StartTimeUTC) {
			return sessions[i].StartTimeUTC.Before(sessions[j].StartTimeUTC)
		}
		return sessions[i].AgentID < sessions[j].AgentID
	})

	return sessions
}

func completeFrom(in punch.Event, end time.Time) session.Session {
	duration := timeutil.MinutesBetween(in.TimeUTC, end)
	endCopy := end
	return session.Session{
		AgentID:         in.AgentID,
		GroupID:         in.GroupID,
		ActivityID:      in.ActivityID,
		StartTimeUTC:    in.TimeUTC,
		EndTimeUTC:      &endCopy,
		DurationMinutes: &duration,
		IsComplete:      true,
	}
}

func incompleteFrom(in punch.Event) session.Session {
	return session.Session{
		AgentID:      in.AgentID,
		GroupID:      in.GroupID,
		ActivityID:   in.ActivityID,
		StartTimeUTC: in.TimeUTC,
		IsComplete:   false,
	}
}
