package ports

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bennysakos/searchlight/internal/domain"
	e "github.com/bennysakos/searchlight/internal/errors"
	"github.com/bennysakos/searchlight/internal/logging"
	"github.com/bennysakos/searchlight/internal/reporting"
)

func writeErrorResponse(ctx context.Context, w http.ResponseWriter, responseError error) int {
	w.Header().Set("Content-Type", "application/json")

	// Unknown error: default to 500
	statusCode := http.StatusInternalServerError
	cause := "Internal server error"

	if errors.Is(responseError, domain.ErrPlayerNotFound) {
		statusCode = http.StatusNotFound
		cause = "Player not found"
	} else if errors.Is(responseError, e.ErrAPIClient) {
		statusCode = http.StatusBadRequest
		cause = responseError.Error()
	} else if errors.Is(responseError, e.ErrRatelimitExceeded) {
		statusCode = http.StatusTooManyRequests
		cause = "Rate limit exceeded"
	} else if errors.Is(responseError, domain.ErrTemporarilyUnavailable) {
		statusCode = http.StatusBadGateway
		cause = "Ratings site temporarily unavailable"
	} else if errors.Is(responseError, domain.ErrUnrecognizedPage) {
		statusCode = http.StatusBadGateway
		cause = "Unrecognized response from ratings site"
	} else if errors.Is(responseError, e.ErrAPIServer) {
		statusCode = http.StatusInternalServerError
		cause = "Internal server error"
	}

	errorData, err := ErrorResponseData(cause)
	if err != nil {
		logging.FromContext(ctx).Error("Failed to marshal error response", "error", err)
		reporting.Report(ctx, fmt.Errorf("failed to marshal error response: %w", err), map[string]string{
			"responseError": responseError.Error(),
		})
		w.WriteHeader(statusCode)
		w.Write([]byte(`{"success":false,"cause":"Internal server error"}`))
		return statusCode
	}

	w.WriteHeader(statusCode)
	w.Write(errorData)

	return statusCode
}
