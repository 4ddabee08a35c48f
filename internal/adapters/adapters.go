package adapters

import (
	"context"
)

// RateFeed returns rates for the requested symbolic codes.
type RateFeed interface {
	FetchRates(ctx context.Context, codes []string) (map[string]float64, error)
}

// RateFeedFunc adapts a plain function (for example an instrumented one) to RateFeed.
type RateFeedFunc func(ctx context.Context, codes []string) (map[string]float64, error)

func (f RateFeedFunc) FetchRates(ctx context.Context, codes []string) (map[string]float64, error) {
	return f(ctx, codes)
}
