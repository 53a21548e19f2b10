package rollup

import (
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/validator"
)

// Options scopes an aggregation request. Empty ID slices impose no
// restriction. IncludeIncomplete defaults to true at the transport layer;
// when false, incomplete sessions are excluded from every count, not just
// from the minute sums.
type Options struct {
	StartDate         string // YYYY-MM-DD, inclusive
	EndDate           string // YYYY-MM-DD, inclusive
	AgentIDs          []string
	GroupIDs          []string
	ActivityIDs       []string
	IncludeIncomplete bool
}

func (o *Options) Validate() error {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(o.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be a valid date (YYYY-MM-DD)",
		})
	}

	end, ok := validator.IsValidDate(o.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AgentHours is one by-agent rollup row.
type AgentHours struct {
	AgentID            string  `json:"agent_id"`
	AgentName          string  `json:"agent_name"`
	AgentEmail         *string `json:"agent_email,omitempty"`
	TotalHours         float64 `json:"total_hours"`
	TotalMinutes       int     `json:"total_minutes"`
	SessionCount       int     `json:"session_count"`
	IncompleteSessions int     `json:"incomplete_sessions"`
}

// ActivityHours is one by-activity rollup row. A nil ActivityID is the
// "Unspecified" bucket for sessions whose opening punch carried no activity.
type ActivityHours struct {
	ActivityID   *string `json:"activity_id"`
	ActivityName *string `json:"activity_name,omitempty"`
	TotalHours   float64 `json:"total_hours"`
	TotalMinutes int     `json:"total_minutes"`
	SessionCount int     `json:"session_count"`
}

// DayHours is one by-day rollup row, keyed by the session's start date.
type DayHours struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	DateFormatted string  `json:"date_formatted"`
	TotalHours    float64 `json:"total_hours"`
	TotalMinutes  int     `json:"total_minutes"`
	SessionCount  int     `json:"session_count"`
}

// GroupHours is one by-group rollup row. AgentCount is the number of
// distinct agents contributing sessions to the group.
type GroupHours struct {
	GroupID            string  `json:"client_group_id"`
	GroupName          string  `json:"group_name"`
	TotalHours         float64 `json:"total_hours"`
	TotalMinutes       int     `json:"total_minutes"`
	SessionCount       int     `json:"session_count"`
	AgentCount         int     `json:"agent_count"`
	IncompleteSessions int     `json:"incomplete_sessions"`
}

// AgentActivityHours is one (agent, activity) rollup row.
type AgentActivityHours struct {
	AgentID      string  `json:"agent_id"`
	AgentName    string  `json:"agent_name"`
	ActivityID   *string `json:"activity_id"`
	ActivityName *string `json:"activity_name,omitempty"`
	TotalHours   float64 `json:"total_hours"`
	TotalMinutes int     `json:"total_minutes"`
	SessionCount int     `json:"session_count"`
}

// GroupActivityHours is one (group, activity) rollup row.
type GroupActivityHours struct {
	GroupID      string  `json:"client_group_id"`
	GroupName    string  `json:"group_name"`
	ActivityID   *string `json:"activity_id"`
	ActivityName *string `json:"activity_name,omitempty"`
	TotalHours   float64 `json:"total_hours"`
	TotalMinutes int     `json:"total_minutes"`
	SessionCount int     `json:"session_count"`
}

// AgentDayHours is one (agent, day) rollup row.
type AgentDayHours struct {
	AgentID      string  `json:"agent_id"`
	AgentName    string  `json:"agent_name"`
	Date         string  `json:"date"` // YYYY-MM-DD
	TotalHours   float64 `json:"total_hours"`
	TotalMinutes int     `json:"total_minutes"`
	SessionCount int     `json:"session_count"`
}

// Summary is the single-row rollup over the whole filtered population.
type Summary struct {
	TotalHours         float64 `json:"total_hours"`
	TotalMinutes       int     `json:"total_minutes"`
	TotalSessions      int     `json:"total_sessions"`
	IncompleteSessions int     `json:"incomplete_sessions"`
	UniqueAgents       int     `json:"unique_agents"`
	UniqueGroups       int     `json:"unique_groups"`
	UniqueActivities   int     `json:"unique_activities"`
}
