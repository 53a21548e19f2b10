package response

import (
	"errors"
	"net/http"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/agent"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/client"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/group"
	"github.com/flextime-hq/flextime-backend-go/internal/domain/report"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, agent.ErrAgentNotFound):
		NotFound(w, "Agent not found")
	case errors.Is(err, group.ErrGroupNotFound):
		NotFound(w, "Client group not found")
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, report.ErrNoGroupsForClient):
		NotFound(w, "No client groups mapped to this email")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
