package clockview

import (
	"time"

	"github.com/flextime-hq/flextime-backend-go/internal/pkg/validator"
)

// Record is one (agent, day) summary span: earliest clock-in to latest
// clock-out, regardless of how many intermediate pairs occurred. It answers
// "when did this agent work today, overall"; discrete billable spans are
// the session deriver's job.
type Record struct {
	AgentID         string     `json:"agent_id"`
	AgentName       string     `json:"agent_name"`
	Date            string     `json:"date"` // YYYY-MM-DD
	ClockInTimeUTC  *time.Time `json:"clock_in_time_utc"`
	ClockInLocal    *string    `json:"clock_in_time_local,omitempty"`
	ClockOutTimeUTC *time.Time `json:"clock_out_time_utc"`
	ClockOutLocal   *string    `json:"clock_out_time_local,omitempty"`
	TotalHours      *float64   `json:"total_hours,omitempty"`
	IsComplete      bool       `json:"is_complete"`
}

// Options scopes a clock-in/out query.
type Options struct {
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, inclusive
	AgentID   *string
	GroupID   *string
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
