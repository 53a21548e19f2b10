package aggregator

import (
	"sort"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/rollup"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/session"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/timeutil"
)

// unknownLabel stands in for display names missing from the directory.
const unknownLabel = "Unknown"

// filterSessions applies the options' set filters and the completeness
// toggle. Empty ID slices impose no restriction.
func filterSessions(sessions []session.Session, opts rollup.Options) []session.Session {
	agentSet := toSet(opts.AgentIDs)
	groupSet := toSet(opts.GroupIDs)
	activitySet := toSet(opts.ActivityIDs)

	filtered := make([]session.Session, 0, len(sessions))
	for _, s := range sessions {
		if !opts.IncludeIncomplete && !s.IsComplete {
			continue
		}
		if agentSet != nil && !agentSet[s.AgentID] {
			continue
		}
		if groupSet != nil && !groupSet[s.GroupID] {
			continue
		}
		if activitySet != nil && (s.ActivityID == nil || !activitySet[*s.ActivityID]) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func minutesOf(s session.Session) int {
	if s.DurationMinutes == nil {
		return 0
	}
	return *s.DurationMinutes
}

func labelOr(name *string, fallback string) string {
	if name == nil || *name == "" {
		return fallback
	}
	return *name
}

func hoursByAgent(sessions []session.Session) []rollup.AgentHours {
	rowsByID := make(map[string]*rollup.AgentHours)
	for _, s := range sessions {
		row, ok := rowsByID[s.AgentID]
		if !ok {
			row = &rollup.AgentHours{
				AgentID:    s.AgentID,
				AgentName:  labelOr(s.AgentName, unknownLabel),
				AgentEmail: s.AgentEmail,
			}
			rowsByID[s.AgentID] = row
		}
		row.TotalMinutes += minutesOf(s)
		row.SessionCount++
		if !s.IsComplete {
			row.IncompleteSessions++
		}
	}

	rows := make([]rollup.AgentHours, 0, len(rowsByID))
	for _, row := range rowsByID {
		row.TotalHours = timeutil.MinutesToHours(row.TotalMinutes)
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalMinutes != rows[j].TotalMinutes {
			return rows[i].TotalMinutes > rows[j].TotalMinutes
		}
		if rows[i].AgentName != rows[j].AgentName {
			return rows[i].AgentName < rows[j].AgentName
		}
		return rows[i].AgentID < rows[j].AgentID
	})
	return rows
}

func hoursByActivity(sessions []session.Session) []rollup.ActivityHours {
	// The zero string keys the "Unspecified" bucket; real activity IDs are
	// UUIDs and cannot collide with it.
	rowsByID := make(map[string]*rollup.ActivityHours)
	for _, s := range sessions {
		key := ""
		if s.ActivityID != nil {
			key = *s.ActivityID
		}
		row, ok := rowsByID[key]
		if !ok {
			row = &rollup.ActivityHours{
				ActivityID:   s.ActivityID,
				ActivityName: s.ActivityName,
			}
			rowsByID[key] = row
		}
		row.TotalMinutes += minutesOf(s)
		row.SessionCount++
	}

	rows := make([]rollup.ActivityHours, 0, len(rowsByID))
	for _, row := range rowsByID {
		row.TotalHours = timeutil.MinutesToHours(row.TotalMinutes)
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalMinutes != rows[j].TotalMinutes {
			return rows[i].TotalMinutes > rows[j].TotalMinutes
		}
		return activitySortKey(rows[i].ActivityID, rows[i].ActivityName) <
			activitySortKey(rows[j].ActivityID, rows[j].ActivityName)
	})
	return rows
}

func activitySortKey(id, name *string) string {
	if id == nil {
		return "Unspecified"
	}
	return labelOr(name, unknownLabel) + "|" + *id
}

func hoursByDay(sessions []session.Session) []rollup.DayHours {
	rowsByDate := make(map[string]*rollup.DayHours)
	for _, s := range sessions {
		date := s.StartTimeUTC.Format("2006-01-02")
		row, ok := rowsByDate[date]
		if !ok {
			row = &rollup.DayHours{
				Date:          date,
				DateFormatted: timeutil.FormatDateLabel(date),
			}
			rowsByDate[date] = row
		}
		row.TotalMinutes += minutesOf(s)
		row.SessionCount++
	}

	rows := make([]rollup.DayHours, 0, len(rowsByDate))
	for _, row := range rowsByDate {
		row.TotalHours = timeutil.MinutesToHours(row.TotalMinutes)
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
	return rows
}

func hoursByGroup(sessions []session.Session) []rollup.GroupHours {
	type groupAgg struct {
		row    rollup.GroupHours
		agents map[string]bool
	}

	aggsByID := make(map[string]*groupAgg)
	for _, s := range sessions {
		agg, ok := aggsByID[s.GroupID]
		if !ok {
			agg = &groupAgg{
				row: rollup.GroupHours{
					GroupID:   s.GroupID,
					GroupName: labelOr(s.GroupName, unknownLabel),
				},
				agents: make(map[string]bool),
			}
			aggsByID[s.GroupID] = agg
		}
		agg.row.TotalMinutes += minutesOf(s)
		agg.row.SessionCount++
		agg.agents[s.AgentID] = true
		if !s.IsComplete {
			agg.row.IncompleteSessions++
		}
	}

	rows := make([]rollup.GroupHours, 0, len(aggsByID))
	for _, agg := range aggsByID {
		agg.row.TotalHours = timeutil.MinutesToHours(agg.row.TotalMinutes)
		agg.row.AgentCount = len(agg.agents)
		rows = append(rows, agg.row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalMinutes != rows[j].TotalMinutes {
			return rows[i].TotalMinutes > rows[j].TotalMinutes
		}
		if rows[i].GroupName != rows[j].GroupName {
			return rows[i].GroupName < rows[j].GroupName
		}
		return rows[i].GroupID < rows[j].GroupID
	})
	return rows
}

func hoursByAgentAndActivity(sessions []session.Session) []rollup.AgentActivityHours {
	rowsByKey := make(map[string]*rollup.AgentActivityHours)
	for _, s := range sessions {
		key := s.AgentID + "|"
		if s.ActivityID != nil {
			key += *s.ActivityID
		}
		row, ok := rowsByKey[key]
		if !ok {
			row = &rollup.AgentActivityHours{
				AgentID:      s.AgentID,
				AgentName:    labelOr(s.AgentName, unknownLabel),
				ActivityID:   s.ActivityID,
				ActivityName: s.ActivityName,
			}
			rowsByKey[key] = row
		}
		row.TotalMinutes += minutesOf(s)
		row.SessionCount++
	}

	rows := make([]rollup.AgentActivityHours, 0, len(rowsByKey))
	for _, row := range rowsByKey {
		row.TotalHours = timeutil.MinutesToHours(row.TotalMinutes)
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalMinutes != rows[j].TotalMinutes {
			return rows[i].TotalMinutes > rows[j].TotalMinutes
		}
		if rows[i].AgentName != rows[j].AgentName {
			return rows[i].AgentName < rows[j].AgentName
		}
		if rows[i].AgentID != rows[j].AgentID {
			return rows[i].AgentID < rows[j].AgentID
		}
		return activitySortKey(rows[i].ActivityID, rows[i].ActivityName) <
			activitySortKey(rows[j].ActivityID, rows[j].ActivityName)
	})
	return rows
}

func hoursByGroupAndActivity(sessions []session.Session) []rollup.GroupActivityHours {
	rowsByKey := make(map[string]*rollup.GroupActivityHours)
	for _, s := range sessions {
		key := s.GroupID + "|"
		if s.ActivityID != nil {
			key += *s.ActivityID
		}
		row, ok := rowsByKey[key]
		if !ok {
			row = &rollup.GroupActivityHours{
				GroupID:      s.GroupID,
				GroupName:    labelOr(s.GroupName, unknownLabel),
				ActivityID:   s.ActivityID,
				ActivityName: s.ActivityName,
			}
			rowsByKey[key] = row
		}
		row.TotalMinutes += minutesOf(s)
		row.SessionCount++
	}

	rows := make([]rollup.GroupActivityHours, 0, len(rowsByKey))
	for _, row := range rowsByKey {
		row.TotalHours = timeutil.MinutesToHours(row.TotalMinutes)
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalMinutes != rows[j].TotalMinutes {
			return rows[i].TotalMinutes > rows[j].TotalMinutes
		}
		if rows[i].GroupName != rows[j].GroupName {
			return rows[i].GroupName < rows[j].GroupName
		}
		if rows[i].GroupID != rows[j].GroupID {
			return rows[i].GroupID < rows[j].GroupID
		}
		return activitySortKey(rows[i].ActivityID, rows[i].ActivityName) <
			activitySortKey(rows[j].ActivityID, rows[j].ActivityName)
	})
	return rows
}

func hoursByAgentAndDay(sessions []session.Session) []rollup.AgentDayHours {
	rowsByKey := make(map[string]*rollup.AgentDayHours)
	for _, s := range sessions {
		date := s.StartTimeUTC.Format("2006-01-02")
		key := s.AgentID + "|" + date
		row, ok := rowsByKey[key]
		if !ok {
			row = &rollup.AgentDayHours{
				AgentID:   s.AgentID,
				AgentName: labelOr(s.AgentName, unknownLabel),
				Date:      date,
			}
			rowsByKey[key] = row
		}
		row.TotalMinutes += minutesOf(s)
		row.SessionCount++
	}

	rows := make([]rollup.AgentDayHours, 0, len(rowsByKey))
	for _, row := range rowsByKey {
		row.TotalHours = timeutil.MinutesToHours(row.TotalMinutes)
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].AgentName != rows[j].AgentName {
			return rows[i].AgentName < rows[j].AgentName
		}
		return rows[i].AgentID < rows[j].AgentID
	})
	return rows
}

func summaryStats(sessions []session.Session) rollup.Summary {
	var summary rollup.Summary
	agents := make(map[string]bool)
	groups := make(map[string]bool)
	activities := make(map[string]bool)

	for _, s := range sessions {
		summary.TotalMinutes += minutesOf(s)
		summary.TotalSessions++
		if !s.IsComplete {
			summary.IncompleteSessions++
		}
		agents[s.AgentID] = true
		groups[s.GroupID] = true
		// Sessions without an activity count as one distinct activity, the
		// same Unspecified bucket hoursByActivity reports.
		key := ""
		if s.ActivityID != nil {
			key = *s.ActivityID
		}
		activities[key] = true
	}

	summary.TotalHours = timeutil.MinutesToHours(summary.TotalMinutes)
	summary.UniqueAgents = len(agents)
	summary.UniqueGroups = len(groups)
	summary.UniqueActivities = len(activities)
	return summary
}
