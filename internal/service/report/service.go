package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/client"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/report"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/rollup"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/session"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/email"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/timeutil"
)

type reportService struct {
	clientRepo  client.Repository
	sessionRepo session.Repository
	rollups     rollup.Service
	mailer      email.EmailService
	now         func() time.Time
}

func NewReportService(
	clientRepo client.Repository,
	sessionRepo session.Repository,
	rollups rollup.Service,
	mailer email.EmailService,
) report.Service {
	return &reportService{
		clientRepo:  clientRepo,
		sessionRepo: sessionRepo,
		rollups:     rollups,
		mailer:      mailer,
		now:         time.Now,
	}
}

// WeeklyReport implements report.Service.
func (s *reportService) WeeklyReport(ctx context.Context, req report.WeeklyReportRequest) (report.WeeklyReport, error) {
	if err := req.Validate(); err != nil {
		return report.WeeklyReport{}, err
	}

	groupIDs, err := s.clientRepo.GroupIDsByEmail(ctx, req.ClientEmail)
	if err != nil {
		return report.WeeklyReport{}, fmt.Errorf("failed to resolve client groups: %w", err)
	}
	if len(groupIDs) == 0 {
		return report.WeeklyReport{}, report.ErrNoGroupsForClient
	}

	opts := rollup.Options{
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		GroupIDs:          groupIDs,
		IncludeIncomplete: true,
	}

	result := report.WeeklyReport{
		ClientEmail: req.ClientEmail,
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
	}

	// The breakdowns are independent reads, so fetch them concurrently.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.rollups.SummaryStats(gctx, opts)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		result.Summary = summary
		return nil
	})

	g.Go(func() error {
		rows, err := s.rollups.HoursByAgent(gctx, opts)
		if err != nil {
			return fmt.Errorf("hours by agent: %w", err)
		}
		result.HoursByAgent = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.rollups.HoursByActivity(gctx, opts)
		if err != nil {
			return fmt.Errorf("hours by activity: %w", err)
		}
		result.HoursByActivity = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.rollups.HoursByGroup(gctx, opts)
		if err != nil {
			return fmt.Errorf("hours by group: %w", err)
		}
		result.HoursByGroup = rows
		return nil
	})

	g.Go(func() error {
		details, err := s.incompleteDetails(gctx, req, groupIDs)
		if err != nil {
			return fmt.Errorf("incomplete sessions: %w", err)
		}
		result.IncompleteSessions = details
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.WeeklyReport{}, err
	}

	return result, nil
}

func (s *reportService) incompleteDetails(ctx context.Context, req report.WeeklyReportRequest, groupIDs []string) ([]report.IncompleteSessionDetail, error) {
	sessions, err := s.sessionRepo.FindRange(ctx, session.Filter{
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		OnlyIncomplete: true,
	})
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		wanted[id] = true
	}

	details := []report.IncompleteSessionDetail{}
	for _, sess := range sessions {
		if !wanted[sess.GroupID] {
			continue
		}
		detail := report.IncompleteSessionDetail{
			AgentID:      sess.AgentID,
			AgentName:    "Unknown",
			GroupID:      sess.GroupID,
			GroupName:    "Unknown",
			StartTimeUTC: sess.StartTimeUTC.Format(time.RFC3339),
			Date:         sess.StartTimeUTC.Format("2006-01-02"),
		}
		if sess.AgentName != nil && *sess.AgentName != "" {
			detail.AgentName = *sess.AgentName
		}
		if sess.GroupName != nil && *sess.GroupName != "" {
			detail.GroupName = *sess.GroupName
		}
		details = append(details, detail)
	}

	return details, nil
}

// SendWeeklyDigests implements report.Service.
func (s *reportService) SendWeeklyDigests(ctx context.Context, req report.DigestRequest) (report.DigestResult, error) {
	start, end := req.StartDate, req.EndDate
	if start == "" || end == "" {
		start, end = timeutil.PreviousWeek(s.now())
	}

	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return report.DigestResult{}, fmt.Errorf("failed to list clients: %w", err)
	}

	result := report.DigestResult{
		PeriodStart: start,
		PeriodEnd:   end,
	}

	for _, c := range clients {
		weekly, err := s.WeeklyReport(ctx, report.WeeklyReportRequest{
			ClientEmail: c.Email,
			StartDate:   start,
			EndDate:     end,
		})
		if err != nil {
			if errors.Is(err, report.ErrNoGroupsForClient) {
				result.Skipped++
				continue
			}
			slog.Error("Failed to compose weekly digest", "client", c.Email, "error", err)
			result.Failed = append(result.Failed, c.Email)
			continue
		}

		if req.DryRun {
			result.Sent++
			continue
		}

		if err := s.mailer.SendWeeklyDigest(c.Email, digestData(weekly)); err != nil {
			result.Failed = append(result.Failed, c.Email)
			continue
		}
		result.Sent++
	}

	slog.Info("Weekly digest run finished",
		"period_start", result.PeriodStart,
		"period_end", result.PeriodEnd,
		"sent", result.Sent,
		"skipped", result.Skipped,
		"failed", len(result.Failed),
		"dry_run", req.DryRun,
	)

	return result, nil
}

func digestData(weekly report.WeeklyReport) email.WeeklyDigestData {
	data := email.WeeklyDigestData{
		PeriodStart:     weekly.PeriodStart,
		PeriodEnd:       weekly.PeriodEnd,
		TotalHours:      weekly.Summary.TotalHours,
		TotalFormatted:  timeutil.FormatHours(weekly.Summary.TotalMinutes),
		TotalSessions:   weekly.Summary.TotalSessions,
		IncompleteCount: weekly.Summary.IncompleteSessions,
	}
	for _, row := range weekly.HoursByAgent {
		data.AgentRows = append(data.AgentRows, email.DigestRow{Name: row.AgentName, Hours: row.TotalHours})
	}
	for _, row := range weekly.HoursByGroup {
		data.GroupRows = append(data.GroupRows, email.DigestRow{Name: row.GroupName, Hours: row.TotalHours})
	}
	return data
}
