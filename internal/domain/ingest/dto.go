package ingest

import (
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/validator"
)

// Request scopes an ingestion run to a date range, optionally limited to
// specific provider group IDs. DryRun fetches and maps without writing.
type Request struct {
	StartDate string   `json:"start_date"` // YYYY-MM-DD
	EndDate   string   `json:"end_date"`   // YYYY-MM-DD
	GroupIDs  []string `json:"group_ids,omitempty"`
	DryRun    bool     `json:"dry_run,omitempty"`
}

func (r *Request) Validate() error {
	var errs validator.ValidationErrors

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

// Stats summarizes one ingestion run. Skipped counts entries with an
// unknown agent/group or an invalid direction; Duplicates counts entries
// already stored from an earlier run.
type Stats struct {
	Fetched    int   `json:"fetched"`
	Inserted   int64 `json:"inserted"`
	Skipped    int   `json:"skipped"`
	Duplicates int   `json:"duplicates"`
}

// DirectoryStats summarizes one directory sync run.
type DirectoryStats struct {
	Agents     int `json:"agents"`
	Groups     int `json:"groups"`
	Activities int `json:"activities"`
}
