package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ps-vitor/boliga-prices/internal/api/models"
	"github.com/ps-vitor/boliga-prices/internal/pricing"
	"github.com/ps-vitor/boliga-prices/internal/repositories"
	"github.com/ps-vitor/boliga-prices/pkg/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	resp := models.ErrorResponse{ErrorCode: "INVALID_PARAMETER", Message: err.Error()}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		resp.ErrorCode = "VALIDATION_FAILED"
		resp.Message = "Request validation failed"
		resp.Details = fields
	}
	writeJSON(w, r, http.StatusBadRequest, resp)
}

// writeError maps service errors to HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	var samplesErr *pricing.InsufficientSamplesError
	switch {
	case errors.As(err, &samplesErr):
		writeJSON(w, r, http.StatusUnprocessableEntity, models.ErrorResponse{
			ErrorCode: "INSUFFICIENT_SAMPLES",
			Message:   err.Error(),
			Details:   map[string]int{"required": samplesErr.Required, "actual": samplesErr.Actual},
		})
	case errors.Is(err, pricing.ErrEmptyDataset):
		writeJSON(w, r, http.StatusUnprocessableEntity, models.ErrorResponse{
			ErrorCode: "EMPTY_DATASET",
			Message:   err.Error(),
		})
	case errors.Is(err, repositories.ErrLoad):
		log.Error("Sale table could not be loaded", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, models.ErrorResponse{
			ErrorCode: "LOAD_FAILED",
			Message:   err.Error(),
		})
	default:
		log.Error("Request failed", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, models.ErrorResponse{
			ErrorCode: "INTERNAL_SERVER_ERROR",
			Message:   "Internal server error",
		})
	}
}
