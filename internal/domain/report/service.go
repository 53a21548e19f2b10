package report

import (
	"context"
)

// Service composes client-scoped weekly reports and delivers digests.
type Service interface {
	// WeeklyReport aggregates the client's groups over the requested week.
	WeeklyReport(ctx context.Context, req WeeklyReportRequest) (WeeklyReport, error)

	// SendWeeklyDigests composes and emails a digest to every client with
	// at least one mapped group.
	SendWeeklyDigests(ctx context.Context, req DigestRequest) (DigestResult, error)
}
