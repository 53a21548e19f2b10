package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/rollup"
	"github.com/flextime-hq/flextime-backend-go/internal/handler/http/response"
)

type AggregationHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type AggregationHandlerImpl struct {
	rollupService rollup.Service
}

func NewAggregationHandler(rollupService rollup.Service) AggregationHandler {
	return &AggregationHandlerImpl{rollupService: rollupService}
}

// Get implements AggregationHandler. The "type" query parameter selects the
// breakdown; everything else scopes it.
func (h *AggregationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	opts := rollup.Options{
		StartDate:         query.Get("startDate"),
		EndDate:           query.Get("endDate"),
		AgentIDs:          splitIDs(query.Get("agentIds")),
		GroupIDs:          splitIDs(query.Get("groupIds")),
		ActivityIDs:       splitIDs(query.Get("activityIds")),
		IncludeIncomplete: query.Get("includeIncomplete") != "false",
	}

	aggType := query.Get("type")
	if aggType == "" {
		aggType = "summary"
	}

	var (
		data interface{}
		err  error
	)
	switch aggType {
	case "hoursByAgent":
		data, err = h.rollupService.HoursByAgent(r.Context(), opts)
	case "hoursByActivity":
		data, err = h.rollupService.HoursByActivity(r.Context(), opts)
	case "hoursByDay":
		data, err = h.rollupService.HoursByDay(r.Context(), opts)
	case "hoursByGroup":
		data, err = h.rollupService.HoursByGroup(r.Context(), opts)
	case "hoursByAgentAndActivity":
		data, err = h.rollupService.HoursByAgentAndActivity(r.Context(), opts)
	case "hoursByGroupAndActivity":
		data, err = h.rollupService.HoursByGroupAndActivity(r.Context(), opts)
	case "hoursByAgentAndDay":
		data, err = h.rollupService.HoursByAgentAndDay(r.Context(), opts)
	case "summary":
		data, err = h.rollupService.SummaryStats(r.Context(), opts)
	default:
		response.BadRequest(w, "Unknown aggregation type: "+aggType, nil)
		return
	}

	if err != nil {
		slog.Error("Failed to compute aggregation", "type", aggType, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
