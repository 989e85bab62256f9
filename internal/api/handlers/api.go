package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/ps-vitor/boliga-prices/internal/api/models"
	"github.com/ps-vitor/boliga-prices/internal/pricing"
	"github.com/ps-vitor/boliga-prices/internal/services/prediction"
	"github.com/ps-vitor/boliga-prices/pkg/logger"
)

// Predictor is the part of prediction.PredictionService the API uses.
type Predictor interface {
	Estimate(ctx context.Context, req prediction.Request) (prediction.Estimate, error)
	SaleYears(ctx context.Context) ([]pricing.YearCount, error)
}

type APIHandler struct {
	predictor Predictor
	validate  *validator.Validate
	log       *logger.Logger
}

func NewAPIHandler(predictor Predictor, log *logger.Logger) *APIHandler {
	return &APIHandler{predictor: predictor, validate: validator.New(), log: log}
}

func (h *APIHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/predict", h.HandlePredict).Methods(http.MethodGet)
	r.HandleFunc("/api/sales/years", h.HandleSaleYears).Methods(http.MethodGet)
}

func (h *APIHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// HandlePredict answers GET /api/predict?area=100&min_sale_year=2019...
func (h *APIHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	req, err := models.ParsePredictRequest(r.URL.Query())
	if err != nil {
		writeBadRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	estimate, err := h.predictor.Estimate(r.Context(), req.ToRequest())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.log.Info("Predicted price",
		"zip_code", estimate.ZipCode,
		"area", estimate.TargetArea,
		"price", estimate.Price,
		"samples", estimate.Samples)
	writeJSON(w, r, http.StatusOK, estimate)
}

func (h *APIHandler) HandleSaleYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.predictor.SaleYears(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, years)
}
