package session

import (
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/validator"
)

// Filter narrows a session query to a date range (on StartTimeUTC) and an
// optional completeness constraint. Set filters on agents, groups and
// activities are applied by the aggregator after fetching.
type Filter struct {
	StartDate      string // YYYY-MM-DD, inclusive
	EndDate        string // YYYY-MM-DD, inclusive
	OnlyIncomplete bool
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(f.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	end, ok := validator.IsValidDate(f.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DeriveRequest asks for sessions to be re-derived over a date range,
// optionally scoped to one agent or one group.
type DeriveRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	AgentID   *string `json:"agent_id,omitempty"`
	GroupID   *string `json:"group_id,omitempty"`
}

func (r *DeriveRequest) Validate() error {
	f := Filter{StartDate: r.StartDate, EndDate: r.EndDate}
	return f.Validate()
}

// DeriveResult summarizes one derivation run. Inserted can be lower than
// Derived when the run repeats an already-processed period.
type DeriveResult struct {
	PunchEvents int   `json:"punch_events"`
	Derived     int   `json:"derived"`
	Complete    int   `json:"complete"`
	Incomplete  int   `json:"incomplete"`
	Inserted    int64 `json:"inserted"`
}
