package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"currencytracker/internal/adapters"
	"currencytracker/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Integrator merges feed rates into a currency collection. It keeps no state
// between calls: every Refresh works on the records it is given.
type Integrator struct {
	feed    adapters.RateFeed
	log     logrus.FieldLogger
	metrics *Metrics
	now     func() time.Time
}

func NewIntegrator(feed adapters.RateFeed, log logrus.FieldLogger, metrics *Metrics) *Integrator {
	return &Integrator{feed: feed, log: log, metrics: metrics, now: time.Now}
}

// Refresh fetches rates for every record and applies them in place.
// It never fails: when the feed call fails for any reason the whole batch keeps
// its previous rates and the outcome is marked stale.
func (i *Integrator) Refresh(ctx context.Context, records []*domain.Currency) Outcome {
	out := Outcome{AttemptID: uuid.NewString(), AttemptedAt: i.now()}
	log := i.log.WithField("attempt_id", out.AttemptID)

	// STEP 1: deriving requested codes from the collection
	codes := uniqueCodes(records)
	if len(codes) == 0 {
		return out
	}

	// STEP 2: one feed call for the whole collection
	rates, err := i.feed.FetchRates(ctx, codes)
	if err == nil {
		err = checkRates(rates)
	}
	if err != nil {
		reason := failureKind(err)
		i.metrics.observeFetch(reason)
		i.metrics.observeRefresh(true, 0)
		logFallback(log, reason, err)
		return fallback(out, records, reason)
	}
	i.metrics.observeFetch("ok")

	// STEP 3: applying fetched values, codes missing from the answer keep their rate
	out.Entries = make([]Entry, 0, len(records))
	updated := 0
	for _, rec := range records {
		newRate, ok := rates[rec.Code()]
		if !ok {
			out.Entries = append(out.Entries, toEntry(rec, 0, false))
			continue
		}
		oldRate := rec.Rate()
		// checkRates guarantees a positive value
		_ = rec.SetRate(newRate)
		out.Entries = append(out.Entries, toEntry(rec, delta(oldRate, newRate), false))
		updated++
	}

	out.LastSuccessAt = out.AttemptedAt
	i.metrics.observeRefresh(false, out.AttemptedAt.Unix())
	log.Infof("%d of %d currencies updated from feed", updated, len(records))
	return out
}

func uniqueCodes(records []*domain.Currency) []string {
	seen := make(map[string]struct{}, len(records))
	codes := make([]string, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.Code()]; ok {
			continue
		}
		seen[rec.Code()] = struct{}{}
		codes = append(codes, rec.Code())
	}
	return codes
}

// checkRates rejects an answer that would break the positive rate invariant, so
// nothing is applied unless everything can be.
func checkRates(rates map[string]float64) error {
	for code, v := range rates {
		if !(v > 0) {
			return &domain.FeedError{
				Kind:   domain.KindInvalidRateType,
				Code:   code,
				Detail: fmt.Sprintf("rate must be positive, got %v", v),
			}
		}
	}
	return nil
}

// delta is new - old computed in decimal, so 92.10 - 90.50 is exactly 1.60.
func delta(oldRate, newRate float64) float64 {
	if oldRate == 0 {
		return 0
	}
	return decimal.NewFromFloat(newRate).Sub(decimal.NewFromFloat(oldRate)).InexactFloat64()
}

func fallback(out Outcome, records []*domain.Currency, reason string) Outcome {
	out.Stale = true
	out.Failure = reason
	out.Entries = make([]Entry, 0, len(records))
	for _, rec := range records {
		out.Entries = append(out.Entries, toEntry(rec, 0, true))
	}
	return out
}

func toEntry(rec *domain.Currency, d float64, stale bool) Entry {
	return Entry{
		ID:          rec.ID(),
		NumCode:     rec.NumCode(),
		Code:        rec.Code(),
		Name:        rec.Name(),
		Rate:        rec.Rate(),
		Nominal:     rec.Nominal(),
		RatePerUnit: rec.RatePerUnit(),
		Delta:       d,
		Stale:       stale,
	}
}

const kindUnknown = "Unknown"

func failureKind(err error) string {
	var feedErr *domain.FeedError
	if !errors.As(err, &feedErr) {
		return kindUnknown
	}
	return feedErr.Kind.String()
}

func logFallback(log logrus.FieldLogger, reason string, err error) {
	var feedErr *domain.FeedError
	if !errors.As(err, &feedErr) {
		log.WithError(err).Warn("Feed call failed, serving previous rates")
		return
	}
	fields := logrus.Fields{"kind": reason}
	switch feedErr.Kind {
	case domain.KindTransport:
		log.WithError(err).WithFields(fields).Warn("Feed unreachable, serving previous rates")
	case domain.KindParse:
		log.WithError(err).WithFields(fields).Warn("Feed body is not JSON, serving previous rates")
	case domain.KindMalformedFeed:
		log.WithError(err).WithFields(fields).Warn("Feed document has unexpected shape, serving previous rates")
	case domain.KindCodeNotFound, domain.KindInvalidRateType:
		fields["code"] = feedErr.Code
		log.WithError(err).WithFields(fields).Warn("Feed has no usable rate for a currency, serving previous rates")
	default:
		log.WithError(err).WithFields(fields).Warn("Feed call failed, serving previous rates")
	}
}
