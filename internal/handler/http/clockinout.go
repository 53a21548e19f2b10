package http

import (
	"log/slog"
	"net/http"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/clockview"
	"github.com/flextime-hq/flextime-backend-go/internal/handler/http/response"
)

type ClockInOutHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type ClockInOutHandlerImpl struct {
	clockViewService clockview.Service
}

func NewClockInOutHandler(clockViewService clockview.Service) ClockInOutHandler {
	return &ClockInOutHandlerImpl{clockViewService: clockViewService}
}

// List implements ClockInOutHandler.
func (h *ClockInOutHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	opts := clockview.Options{
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	}
	if agentID := query.Get("agentId"); agentID != "" {
		opts.AgentID = &agentID
	}
	if groupID := query.Get("groupId"); groupID != "" {
		opts.GroupID = &groupID
	}

	records, err := h.clockViewService.Records(r.Context(), opts)
	if err != nil {
		slog.Error("Failed to build clock in/out view", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
