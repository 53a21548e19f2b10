package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/ingest"
	"github.com/flextime-hq/flextime-backend-go/internal/handler/http/response"
)

type IngestHandler interface {
	IngestTimeEntries(w http.ResponseWriter, r *http.Request)
	SyncDirectory(w http.ResponseWriter, r *http.Request)
}

type IngestHandlerImpl struct {
	ingestService ingest.Service
}

func NewIngestHandler(ingestService ingest.Service) IngestHandler {
	return &IngestHandlerImpl{ingestService: ingestService}
}

// IngestTimeEntries implements IngestHandler.
func (h *IngestHandlerImpl) IngestTimeEntries(w http.ResponseWriter, r *http.Request) {
	var req ingest.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Ingest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.ingestService.IngestTimeEntries(r.Context(), req)
	if err != nil {
		slog.Error("Failed to ingest time entries", "error", err)
		response.BadGateway(w, "Failed to ingest time entries from provider")
		return
	}

	response.SuccessWithMessage(w, "Time entries ingested", stats)
}

// SyncDirectory implements IngestHandler.
func (h *IngestHandlerImpl) SyncDirectory(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ingestService.SyncDirectory(r.Context())
	if err != nil {
		slog.Error("Failed to sync directory", "error", err)
		response.BadGateway(w, "Failed to sync provider directory")
		return
	}

	response.SuccessWithMessage(w, "Directory synced", stats)
}
