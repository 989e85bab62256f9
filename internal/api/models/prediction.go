// internal/api/models/prediction.go
package models

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/ps-vitor/boliga-prices/internal/pricing"
	"github.com/ps-vitor/boliga-prices/internal/services/prediction"
)

// PredictRequest holds the query parameters of GET /api/predict.
type PredictRequest struct {
	Area        float64 `json:"area" validate:"gt=0"`
	MinSaleYear int     `json:"min_sale_year" validate:"gte=1"`
	MaxSaleYear int     `json:"max_sale_year" validate:"gte=1"`
	MinArea     float64 `json:"min_area" validate:"gte=0"`
	MaxArea     float64 `json:"max_area" validate:"gte=0"`
	MinSamples  int     `json:"min_samples" validate:"gte=0"`
	MinBuilt    *int    `json:"min_built,omitempty"`
	MaxBuilt    *int    `json:"max_built,omitempty"`
}

// ParsePredictRequest reads a PredictRequest from query parameters, filling
// absent ones with the prediction defaults.
func ParsePredictRequest(q url.Values) (PredictRequest, error) {
	def := pricing.DefaultQuery(0)
	req := PredictRequest{
		MinSaleYear: def.MinSaleYear,
		MaxSaleYear: def.MaxSaleYear,
		MinArea:     def.MinArea,
		MaxArea:     def.MaxArea,
		MinSamples:  def.MinSamples,
	}

	floats := map[string]*float64{
		"area":     &req.Area,
		"min_area": &req.MinArea,
		"max_area": &req.MaxArea,
	}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return req, fmt.Errorf("%s: not a number: %q", name, v)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"min_sale_year": &req.MinSaleYear,
		"max_sale_year": &req.MaxSaleYear,
		"min_samples":   &req.MinSamples,
	}
	for name, dst := range ints {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, fmt.Errorf("%s: not an integer: %q", name, v)
			}
			*dst = n
		}
	}

	for name, dst := range map[string]**int{"min_built": &req.MinBuilt, "max_built": &req.MaxBuilt} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return req, fmt.Errorf("%s: not an integer: %q", name, v)
			}
			*dst = &n
		}
	}

	return req, nil
}

// ToRequest converts to a service request. A build-year range is only set
// when at least one bound was given; the other defaults to 0 or the current
// year.
func (r PredictRequest) ToRequest() prediction.Request {
	req := prediction.Request{Query: pricing.Query{
		TargetArea:  r.Area,
		MinSaleYear: r.MinSaleYear,
		MaxSaleYear: r.MaxSaleYear,
		MinArea:     r.MinArea,
		MaxArea:     r.MaxArea,
		MinSamples:  r.MinSamples,
	}}
	if r.MinBuilt != nil || r.MaxBuilt != nil {
		years := prediction.YearRange{Min: 0, Max: pricing.CurrentYear()}
		if r.MinBuilt != nil {
			years.Min = *r.MinBuilt
		}
		if r.MaxBuilt != nil {
			years.Max = *r.MaxBuilt
		}
		req.BuildYear = &years
	}
	return req
}

// ScrapeRequest is the body of POST /api/scrape.
type ScrapeRequest struct {
	Zip     string   `json:"zip" validate:"required,len=4,numeric"`
	Streets []string `json:"streets" validate:"required,min=1,dive,required"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	ErrorCode string      `json:"error_code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
