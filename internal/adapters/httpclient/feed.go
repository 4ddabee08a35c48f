package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"currencytracker/internal/domain"
)

// DefaultFeedURL is the Central Bank of Russia daily rates mirror.
const DefaultFeedURL = "https://www.cbr-xml-daily.ru/daily_json.js"

// FeedClient reads the daily rates document: {"Valute": {"USD": {"Value": 90.5, ...}, ...}}.
// It makes exactly one request per call and never retries.
type FeedClient struct {
	http    *http.Client
	feedURL string
}

func (c *FeedClient) FetchRates(ctx context.Context, codes []string) (map[string]float64, error) {
	u, err := url.Parse(c.feedURL)
	if err != nil {
		return nil, &domain.FeedError{Kind: domain.KindTransport, Detail: "failed to parse feed URL", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.FeedError{Kind: domain.KindTransport, Detail: "failed to create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.FeedError{Kind: domain.KindTransport, Detail: "failed to execute request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.FeedError{
			Kind:   domain.KindTransport,
			Detail: fmt.Sprintf("unexpected status code %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var body any
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &domain.FeedError{Kind: domain.KindParse, Detail: "failed to decode response", Err: err}
	}

	return extractRates(body, codes)
}

// extractRates picks the requested codes out of a decoded feed document.
// The first offending code, in request order, decides the error.
func extractRates(doc any, codes []string) (map[string]float64, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, &domain.FeedError{Kind: domain.KindMalformedFeed, Detail: "document is not an object"}
	}
	rawValute, ok := root["Valute"]
	if !ok {
		return nil, &domain.FeedError{Kind: domain.KindMalformedFeed, Detail: "missing Valute key"}
	}
	valute, ok := rawValute.(map[string]any)
	if !ok {
		return nil, &domain.FeedError{Kind: domain.KindMalformedFeed, Detail: "Valute is not an object"}
	}

	rates := make(map[string]float64, len(codes))
	for _, code := range codes {
		if _, seen := rates[code]; seen {
			continue
		}
		rawEntry, ok := valute[code]
		if !ok {
			return nil, &domain.FeedError{Kind: domain.KindCodeNotFound, Code: code, Detail: "absent from Valute"}
		}
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			return nil, &domain.FeedError{Kind: domain.KindInvalidRateType, Code: code, Detail: "entry is not an object"}
		}
		value, ok := entry["Value"].(float64)
		if !ok {
			return nil, &domain.FeedError{
				Kind:   domain.KindInvalidRateType,
				Code:   code,
				Detail: fmt.Sprintf("Value has type %T", entry["Value"]),
			}
		}
		if value <= 0 {
			return nil, &domain.FeedError{
				Kind:   domain.KindInvalidRateType,
				Code:   code,
				Detail: fmt.Sprintf("Value must be positive, got %v", value),
			}
		}
		rates[code] = value
	}
	return rates, nil
}

func NewFeedClient(httpClient *http.Client, feedURL string) *FeedClient {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &FeedClient{http: httpClient, feedURL: feedURL}
}
