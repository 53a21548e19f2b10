package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/report"
	"github.com/flextime-hq/flextime-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Weekly(w http.ResponseWriter, r *http.Request)
	SendWeeklyDigests(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// Weekly implements ReportHandler.
func (h *ReportHandlerImpl) Weekly(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := report.WeeklyReportRequest{
		ClientEmail: query.Get("clientEmail"),
		StartDate:   query.Get("startDate"),
		EndDate:     query.Get("endDate"),
	}

	weekly, err := h.reportService.WeeklyReport(r.Context(), req)
	if err != nil {
		slog.Error("Failed to build weekly report", "client", req.ClientEmail, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, weekly)
}

// SendWeeklyDigests implements ReportHandler.
func (h *ReportHandlerImpl) SendWeeklyDigests(w http.ResponseWriter, r *http.Request) {
	var req report.DigestRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Digest decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.reportService.SendWeeklyDigests(r.Context(), req)
	if err != nil {
		slog.Error("Failed to send weekly digests", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly digests processed", result)
}
