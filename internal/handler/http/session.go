package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/session"
	"github.com/flextime-hq/flextime-backend-go/internal/handler/http/response"
)

type SessionHandler interface {
	Derive(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type SessionHandlerImpl struct {
	sessionRepo session.Repository
	deriver     session.Deriver
}

func NewSessionHandler(sessionRepo session.Repository, deriver session.Deriver) SessionHandler {
	return &SessionHandlerImpl{
		sessionRepo: sessionRepo,
		deriver:     deriver,
	}
}

// Derive implements SessionHandler.
func (h *SessionHandlerImpl) Derive(w http.ResponseWriter, r *http.Request) {
	var req session.DeriveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Derive sessions decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.deriver.DeriveRange(r.Context(), req)
	if err != nil {
		slog.Error("Failed to derive sessions", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sessions derived", result)
}

// List implements SessionHandler.
func (h *SessionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := session.Filter{
		StartDate:      query.Get("startDate"),
		EndDate:        query.Get("endDate"),
		OnlyIncomplete: query.Get("onlyIncomplete") == "true",
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	sessions, err := h.sessionRepo.FindRange(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list sessions", "error", err)
		response.HandleError(w, err)
		return
	}
	if sessions == nil {
		sessions = []session.Session{}
	}

	response.Success(w, sessions)
}
