// internal/scrapers/boliga/client.go
package boliga

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/ps-vitor/boliga-prices/internal/config"
	"github.com/ps-vitor/boliga-prices/internal/domain"
)

// Client fetches sold lists from boliga.dk.
type Client struct {
	collector *colly.Collector
	baseURL   string
}

// NewClient builds a client whose requests share one rate limit.
func NewClient(cfg config.BoligaConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}

	options := []colly.CollectorOption{
		colly.AllowedDomains(base.Hostname()),
		colly.AllowURLRevisit(),
	}
	if cfg.UserAgent != "" {
		options = append(options, colly.UserAgent(cfg.UserAgent))
	}
	c := colly.NewCollector(options...)

	if cfg.Timeout > 0 {
		c.SetRequestTimeout(cfg.Timeout)
	}

	parallelism := cfg.RateLimit.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	err = c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: parallelism,
		Delay:       cfg.RateLimit.Delay,
		RandomDelay: cfg.RateLimit.RandomDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit: %w", err)
	}

	return &Client{collector: c, baseURL: base.String()}, nil
}

// SearchURL is the results page listing the latest sales on street within zip.
func (p *Client) SearchURL(street, zip string) string {
	q := url.Values{}
	q.Set("searchTab", "1")
	q.Set("propertyType", "1")
	q.Set("zipcodeFrom", zip)
	q.Set("zipcodeTo", zip)
	q.Set("street", street)
	q.Set("sort", "date-d")
	q.Set("page", "1")
	return p.baseURL + "/salg/resultater?" + q.Encode()
}

// SoldList scrapes the first results page for street within zip. A page
// without a sold list yields ErrNoSoldList.
func (p *Client) SoldList(ctx context.Context, street, zip string) (domain.SaleTable, error) {
	c := p.collector.Clone()
	c.Context = ctx

	var (
		sales  domain.SaleTable
		err    error
		parsed bool
	)

	c.OnHTML("html", func(e *colly.HTMLElement) {
		parsed = true
		sales, err = ParseSoldList(e.DOM)
	})

	c.OnError(func(r *colly.Response, e error) {
		err = fmt.Errorf("request URL %v failed with status %d: %w", r.Request.URL, r.StatusCode, e)
	})

	target := p.SearchURL(street, zip)
	if visitErr := c.Visit(target); visitErr != nil && err == nil {
		return nil, fmt.Errorf("visit %s: %w", target, visitErr)
	}
	c.Wait()

	if err != nil {
		return nil, err
	}
	if !parsed {
		return nil, fmt.Errorf("%s did not return an HTML page", target)
	}
	return sales, nil
}
