package rollup

import (
	"context"
)

// Service computes session rollups for a date range. Every method returns
// deterministically ordered rows and an empty slice (or zero-valued
// Summary) for a range with no sessions.
type Service interface {
	HoursByAgent(ctx context.Context, opts Options) ([]AgentHours, error)
	HoursByActivity(ctx context.Context, opts Options) ([]ActivityHours, error)
	HoursByDay(ctx context.Context, opts Options) ([]DayHours, error)
	HoursByGroup(ctx context.Context, opts Options) ([]GroupHours, error)
	HoursByAgentAndActivity(ctx context.Context, opts Options) ([]AgentActivityHours, error)
	HoursByGroupAndActivity(ctx context.Context, opts Options) ([]GroupActivityHours, error)
	HoursByAgentAndDay(ctx context.Context, opts Options) ([]AgentDayHours, error)
	SummaryStats(ctx context.Context, opts Options) (Summary, error)
}
