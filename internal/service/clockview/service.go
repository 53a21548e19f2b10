package clockview

import (
	"context"
	"fmt"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/agent"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/clockview"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/punch"
)

type clockViewService struct {
	punchRepo punch.Repository
	agentRepo agent.Repository
}

func NewClockViewService(punchRepo punch.Repository, agentRepo agent.Repository) clockview.Service {
	return &clockViewService{
		punchRepo: punchRepo,
		agentRepo: agentRepo,
	}
}

// Records implements clockview.Service.
func (s *clockViewService) Records(ctx context.Context, opts clockview.Options) ([]clockview.Record, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	events, err := s.punchRepo.FindRange(ctx, punch.Filter{
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
		AgentID:   opts.AgentID,
		GroupID:   opts.GroupID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load punch events: %w", err)
	}

	agents, err := s.agentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load agents: %w", err)
	}

	names := make(map[string]string, len(agents))
	for _, a := range agents {
		names[a.ID] = a.Name
	}

	return build(events, names), nil
}
