package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/activity"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/agent"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/group"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/ingest"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/punch"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/session"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/jibble"
)

type ingestService struct {
	provider     jibble.Client
	punchRepo    punch.Repository
	agentRepo    agent.Repository
	groupRepo    group.Repository
	activityRepo activity.Repository
	deriver      session.Deriver
}

func NewIngestService(
	provider jibble.Client,
	punchRepo punch.Repository,
	agentRepo agent.Repository,
	groupRepo group.Repository,
	activityRepo activity.Repository,
	deriver session.Deriver,
) ingest.Service {
	return &ingestService{
		provider:     provider,
		punchRepo:    punchRepo,
		agentRepo:    agentRepo,
		groupRepo:    groupRepo,
		activityRepo: activityRepo,
		deriver:      deriver,
	}
}

// IngestTimeEntries implements ingest.Service.
func (s *ingestService) IngestTimeEntries(ctx context.Context, req ingest.Request) (ingest.Stats, error) {
	if err := req.Validate(); err != nil {
		return ingest.Stats{}, err
	}

	entries, err := s.provider.TimeEntries(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return ingest.Stats{}, fmt.Errorf("failed to fetch time entries: %w", err)
	}

	lookup, err := s.buildLookup(ctx)
	if err != nil {
		return ingest.Stats{}, err
	}

	wantedGroups := make(map[string]bool, len(req.GroupIDs))
	for _, id := range req.GroupIDs {
		wantedGroups[id] = true
	}

	stats := ingest.Stats{Fetched: len(entries)}
	var events []punch.Event
	for _, entry := range entries {
		event, ok := lookup.mapEntry(entry)
		if !ok {
			stats.Skipped++
			continue
		}
		if len(wantedGroups) > 0 && !wantedGroups[event.GroupID] {
			stats.Skipped++
			continue
		}
		events = append(events, event)
	}

	if req.DryRun {
		slog.Info("Dry-run ingestion, nothing stored",
			"start_date", req.StartDate,
			"end_date", req.EndDate,
			"fetched", stats.Fetched,
			"mapped", len(events),
			"skipped", stats.Skipped,
		)
		return stats, nil
	}

	inserted, err := s.punchRepo.InsertBatch(ctx, events)
	if err != nil {
		return stats, fmt.Errorf("failed to store punch events: %w", err)
	}
	stats.Inserted = inserted
	stats.Duplicates = len(events) - int(inserted)

	if _, err := s.deriver.DeriveRange(ctx, session.DeriveRequest{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}); err != nil {
		return stats, fmt.Errorf("failed to derive sessions after ingestion: %w", err)
	}

	slog.Info("Ingested time entries",
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"fetched", stats.Fetched,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
		"duplicates", stats.Duplicates,
	)

	return stats, nil
}

// entryLookup resolves provider identifiers to local rows during mapping.
type entryLookup struct {
	agentsBySource     map[string]agent.Agent
	groupsBySource     map[string]group.ClientGroup
	activitiesBySource map[string]activity.Type
	memberGroupSource  map[string]string // source member ID -> source group ID
}

func (s *ingestService) buildLookup(ctx context.Context) (*entryLookup, error) {
	agents, err := s.agentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load agents: %w", err)
	}
	groups, err := s.groupRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load client groups: %w", err)
	}
	activities, err := s.activityRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity types: %w", err)
	}
	members, err := s.provider.People(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider directory: %w", err)
	}

	lookup := &entryLookup{
		agentsBySource:     make(map[string]agent.Agent, len(agents)),
		groupsBySource:     make(map[string]group.ClientGroup, len(groups)),
		activitiesBySource: make(map[string]activity.Type, len(activities)),
		memberGroupSource:  make(map[string]string, len(members)),
	}
	for _, a := range agents {
		lookup.agentsBySource[a.SourceMemberID] = a
	}
	for _, g := range groups {
		lookup.groupsBySource[g.SourceGroupID] = g
	}
	for _, t := range activities {
		lookup.activitiesBySource[t.SourceActivityID] = t
	}
	for _, m := range members {
		if m.GroupID != nil {
			lookup.memberGroupSource[m.ID] = *m.GroupID
		}
	}

	return lookup, nil
}

// mapEntry converts one provider entry to a punch event. It fails (false)
// when the direction is unknown, the timestamp does not parse, or the
// entry cannot be attributed to a known agent and group.
func (l *entryLookup) mapEntry(entry jibble.TimeEntry) (punch.Event, bool) {
	direction := punch.Direction(entry.Type)
	if !direction.Valid() {
		slog.Warn("Skipping entry with unknown direction", "entry_id", entry.ID, "type", entry.Type)
		return punch.Event{}, false
	}

	timeUTC, err := time.Parse(time.RFC3339, entry.Time)
	if err != nil {
		slog.Warn("Skipping entry with unparseable time", "entry_id", entry.ID, "time", entry.Time)
		return punch.Event{}, false
	}

	a, ok := l.agentsBySource[entry.PersonID]
	if !ok {
		slog.Warn("Skipping entry for unknown agent", "entry_id", entry.ID, "person_id", entry.PersonID)
		return punch.Event{}, false
	}

	sourceGroupID, ok := l.memberGroupSource[entry.PersonID]
	if !ok {
		slog.Warn("Skipping entry for agent without a group", "entry_id", entry.ID, "person_id", entry.PersonID)
		return punch.Event{}, false
	}
	g, ok := l.groupsBySource[sourceGroupID]
	if !ok {
		slog.Warn("Skipping entry for unknown group", "entry_id", entry.ID, "source_group_id", sourceGroupID)
		return punch.Event{}, false
	}

	event := punch.Event{
		ID:            uuid.NewString(),
		SourceEntryID: entry.ID,
		AgentID:       a.ID,
		GroupID:       g.ID,
		Direction:     direction,
		TimeUTC:       timeUTC,
		BelongsToDate: entry.BelongsToDate,
	}
	if entry.LocalTime != "" {
		localTime := entry.LocalTime
		event.LocalTime = &localTime
	}
	if entry.ActivityID != nil {
		if t, ok := l.activitiesBySource[*entry.ActivityID]; ok {
			activityID := t.ID
			event.ActivityID = &activityID
		}
	}

	return event, true
}

// SyncDirectory implements ingest.Service.
func (s *ingestService) SyncDirectory(ctx context.Context) (ingest.DirectoryStats, error) {
	var stats ingest.DirectoryStats

	groups, err := s.provider.Groups(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch provider groups: %w", err)
	}
	for _, g := range groups {
		if _, err := s.groupRepo.Upsert(ctx, group.ClientGroup{
			ID:            uuid.NewString(),
			SourceGroupID: g.ID,
			Name:          g.Name,
		}); err != nil {
			return stats, fmt.Errorf("failed to upsert client group %s: %w", g.ID, err)
		}
		stats.Groups++
	}

	members, err := s.provider.People(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch provider people: %w", err)
	}
	for _, m := range members {
		if _, err := s.agentRepo.Upsert(ctx, agent.Agent{
			ID:             uuid.NewString(),
			SourceMemberID: m.ID,
			Name:           m.FullName,
			Email:          m.Email,
			Timezone:       m.Timezone,
		}); err != nil {
			return stats, fmt.Errorf("failed to upsert agent %s: %w", m.ID, err)
		}
		stats.Agents++
	}

	activities, err := s.provider.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch provider activities: %w", err)
	}
	for _, a := range activities {
		if _, err := s.activityRepo.Upsert(ctx, activity.Type{
			ID:               uuid.NewString(),
			SourceActivityID: a.ID,
			Name:             a.Name,
		}); err != nil {
			return stats, fmt.Errorf("failed to upsert activity type %s: %w", a.ID, err)
		}
		stats.Activities++
	}

	slog.Info("Synced provider directory",
		"agents", stats.Agents,
		"groups", stats.Groups,
		"activities", stats.Activities,
	)

	return stats, nil
}
