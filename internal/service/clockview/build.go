package clockview

import (
	"sort"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/clockview"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/punch"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/timeutil"
)

// build collapses punch events into one row per (agent, day): the earliest
// clock-in against the latest clock-out, whatever happened in between. The
// span can cover unpaired punches; this view reports presence, not billable
// time.
func build(events []punch.Event, agentNames map[string]string) []clockview.Record {
	type dayKey struct {
		agentID string
		date    string
	}

	recordsByKey := make(map[dayKey]*clockview.Record)
	for i := range events {
		e := events[i]
		if !e.Direction.Valid() {
			continue
		}

		key := dayKey{agentID: e.AgentID, date: e.BelongsToDate}
		rec, ok := recordsByKey[key]
		if !ok {
			name := agentNames[e.AgentID]
			if name == "" {
				name = "Unknown"
			}
			rec = &clockview.Record{
				AgentID:   e.AgentID,
				AgentName: name,
				Date:      e.BelongsToDate,
			}
			recordsByKey[key] = rec
		}

		switch e.Direction {
		case punch.DirectionIn:
			if rec.ClockInTimeUTC == nil || e.TimeUTC.Before(*rec.ClockInTimeUTC) {
				rec.ClockInTimeUTC = &events[i].TimeUTC
				rec.ClockInLocal = e.LocalTime
			}
		case punch.DirectionOut:
			if rec.ClockOutTimeUTC == nil || e.TimeUTC.After(*rec.ClockOutTimeUTC) {
				rec.ClockOutTimeUTC = &events[i].TimeUTC
				rec.ClockOutLocal = e.LocalTime
			}
		}
	}

	records := make([]clockview.Record, 0, len(recordsByKey))
	for _, rec := range recordsByKey {
		// Complete means both punches exist. A stray Out before the day's
		// only In yields a negative span; the row still surfaces it rather
		// than hiding the punch.
		if rec.ClockInTimeUTC != nil && rec.ClockOutTimeUTC != nil {
			minutes := timeutil.MinutesBetween(*rec.ClockInTimeUTC, *rec.ClockOutTimeUTC)
			hours := timeutil.MinutesToHours(minutes)
			rec.TotalHours = &hours
			rec.IsComplete = true
		}
		records = append(records, *rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		if records[i].AgentName != records[j].AgentName {
			return records[i].AgentName < records[j].AgentName
		}
		return records[i].AgentID < records[j].AgentID
	})

	return records
}
