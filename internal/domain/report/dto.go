package report

import (
	"github.com/flextime-hq/flextime-backend-go/internal/domain/rollup"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/validator"
)

// WeeklyReport is the client-scoped digest of one reporting week,
// aggregated across every group mapped to the client.
type WeeklyReport struct {
	ClientEmail        string                    `json:"client_email"`
	PeriodStart        string                    `json:"period_start"` // YYYY-MM-DD
	PeriodEnd          string                    `json:"period_end"`   // YYYY-MM-DD
	Summary            rollup.Summary            `json:"summary"`
	HoursByAgent       []rollup.AgentHours       `json:"hours_by_agent"`
	HoursByActivity    []rollup.ActivityHours    `json:"hours_by_activity"`
	HoursByGroup       []rollup.GroupHours       `json:"hours_by_group"`
	IncompleteSessions []IncompleteSessionDetail `json:"incomplete_sessions_detail"`
}

// IncompleteSessionDetail flags an unterminated span for manual follow-up.
type IncompleteSessionDetail struct {
	AgentID      string `json:"agent_id"`
	AgentName    string `json:"agent_name"`
	GroupID      string `json:"client_group_id"`
	GroupName    string `json:"group_name"`
	StartTimeUTC string `json:"start_time_utc"`
	Date         string `json:"date"` // YYYY-MM-DD
}

// WeeklyReportRequest scopes a weekly report to one client and week.
type WeeklyReportRequest struct {
	ClientEmail string `json:"client_email"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
}

func (r *WeeklyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "client_email",
			Message: "client_email is required",
		})
	} else if !validator.IsValidEmail(r.ClientEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "client_email",
			Message: "client_email must be a valid email address",
		})
	}

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	end, ok := validator.IsValidDate(r.EndDate)
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

// DigestRequest triggers weekly digest delivery. When the dates are empty
// the previous Monday-to-Sunday week is used.
type DigestRequest struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

// DigestResult summarizes one digest run.
type DigestResult struct {
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	Sent        int      `json:"sent"`
	Skipped     int      `json:"skipped"`
	Failed      []string `json:"failed,omitempty"`
}
