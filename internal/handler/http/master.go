package http

import (
	"log/slog"
	"net/http"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/activity"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/agent"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/group"
	"github.com/flextime-hq/flextime-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// MasterHandler serves the directory lookups the dashboard filters need.
type MasterHandler interface {
	ListAgents(w http.ResponseWriter, r *http.Request)
	GetAgent(w http.ResponseWriter, r *http.Request)
	ListGroups(w http.ResponseWriter, r *http.Request)
	ListActivities(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	agentRepo    agent.Repository
	groupRepo    group.Repository
	activityRepo activity.Repository
}

func NewMasterHandler(agentRepo agent.Repository, groupRepo group.Repository, activityRepo activity.Repository) MasterHandler {
	return &MasterHandlerImpl{
		agentRepo:    agentRepo,
		groupRepo:    groupRepo,
		activityRepo: activityRepo,
	}
}

// ListAgents implements MasterHandler.
func (h *MasterHandlerImpl) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agentRepo.FindAll(r.Context())
	if err != nil {
		slog.Error("Failed to list agents", "error", err)
		response.HandleError(w, err)
		return
	}
	if agents == nil {
		agents = []agent.Agent{}
	}
	response.Success(w, agents)
}

// GetAgent implements MasterHandler.
func (h *MasterHandlerImpl) GetAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.agentRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, a)
}

// ListGroups implements MasterHandler.
func (h *MasterHandlerImpl) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupRepo.FindAll(r.Context())
	if err != nil {
		slog.Error("Failed to list client groups", "error", err)
		response.HandleError(w, err)
		return
	}
	if groups == nil {
		groups = []group.ClientGroup{}
	}
	response.Success(w, groups)
}

// ListActivities implements MasterHandler.
func (h *MasterHandlerImpl) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityRepo.FindAll(r.Context())
	if err != nil {
		slog.Error("Failed to list activity types", "error", err)
		response.HandleError(w, err)
		return
	}
	if activities == nil {
		activities = []activity.Type{}
	}
	response.Success(w, activities)
}
