// internal/api/handlers/scraping.go

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/ps-vitor/boliga-prices/internal/api/models"
	"github.com/ps-vitor/boliga-prices/internal/services/scraping"
	"github.com/ps-vitor/boliga-prices/pkg/logger"
)

// Harvester is the part of scraping.ScraperService the API uses.
type Harvester interface {
	ScrapeAndStore(ctx context.Context, zip string, streets []string) (scraping.Summary, error)
}

type ScrapingHandler struct {
	scraperService Harvester
	validate       *validator.Validate
	log            *logger.Logger
}

func NewScrapingHandler(svc Harvester, log *logger.Logger) *ScrapingHandler {
	return &ScrapingHandler{scraperService: svc, validate: validator.New(), log: log}
}

func (h *ScrapingHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/scrape", h.HandleScrape).Methods(http.MethodPost)
}

// HandleScrape scrapes the posted streets and replaces the stored sales.
func (h *ScrapingHandler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	var req models.ScrapeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	summary, err := h.scraperService.ScrapeAndStore(r.Context(), req.Zip, req.Streets)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.log.Info("Scraping completed", "zip", req.Zip, "streets", summary.Streets, "sales", summary.Sales)
	writeJSON(w, r, http.StatusOK, summary)
}
