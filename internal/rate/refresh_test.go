package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"currencytracker/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockRateFeed struct{ mock.Mock }

func (m *MockRateFeed) FetchRates(ctx context.Context, codes []string) (map[string]float64, error) {
	args := m.Called(ctx, codes)
	rates, _ := args.Get(0).(map[string]float64)
	return rates, args.Error(1)
}

func mustCurrency(t *testing.T, id int, code string, rate float64, nominal int) *domain.Currency {
	t.Helper()
	c, err := domain.NewCurrency(id, 100+id, code, code+" name", rate, nominal)
	require.NoError(t, err)
	return c
}

func newTestIntegrator(feed *MockRateFeed) (*Integrator, *test.Hook, *Metrics) {
	logger, hook := test.NewNullLogger()
	metrics := NewMetrics(prometheus.NewRegistry())
	integrator := NewIntegrator(feed, logger, metrics)
	integrator.now = func() time.Time { return time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC) }
	return integrator, hook, metrics
}

func TestRefresh_SuccessUpdatesRatesAndDeltas(t *testing.T) {
	feed := new(MockRateFeed)
	integrator, _, metrics := newTestIntegrator(feed)

	usd := mustCurrency(t, 1, "USD", 90.50, 1)
	eur := mustCurrency(t, 2, "EUR", 98.75, 1)
	jpy := mustCurrency(t, 3, "JPY", 0.60, 100)

	feed.On("FetchRates", mock.Anything, []string{"USD", "EUR", "JPY"}).
		Return(map[string]float64{"USD": 92.10, "EUR": 97.25, "JPY": 61.2}, nil).Once()

	out := integrator.Refresh(context.Background(), []*domain.Currency{usd, eur, jpy})

	require.False(t, out.Stale)
	require.Empty(t, out.Failure)
	require.NotEmpty(t, out.AttemptID)
	require.Equal(t, out.AttemptedAt, out.LastSuccessAt)
	require.Len(t, out.Entries, 3)

	require.Equal(t, "USD", out.Entries[0].Code)
	require.Equal(t, 92.10, out.Entries[0].Rate)
	require.Equal(t, 1.60, out.Entries[0].Delta)
	require.False(t, out.Entries[0].Stale)

	require.Equal(t, 97.25, out.Entries[1].Rate)
	require.Equal(t, -1.5, out.Entries[1].Delta)

	require.Equal(t, 61.2, out.Entries[2].Rate)
	require.Equal(t, 60.6, out.Entries[2].Delta)
	require.Equal(t, 61.2/100, out.Entries[2].RatePerUnit)

	// records are updated in place
	require.Equal(t, 92.10, usd.Rate())
	require.Equal(t, 97.25, eur.Rate())

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.FeedFetchTotal.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.RefreshTotal.WithLabelValues("fresh")))
	require.Equal(t, float64(out.AttemptedAt.Unix()), testutil.ToFloat64(metrics.LastSuccessTime))
	feed.AssertExpectations(t)
}

func TestRefresh_CodeAbsentFromAnswerKeepsRate(t *testing.T) {
	feed := new(MockRateFeed)
	integrator, _, _ := newTestIntegrator(feed)

	usd := mustCurrency(t, 1, "USD", 90.50, 1)
	chf := mustCurrency(t, 2, "CHF", 102.30, 1)

	feed.On("FetchRates", mock.Anything, []string{"USD", "CHF"}).
		Return(map[string]float64{"USD": 92.10}, nil).Once()

	out := integrator.Refresh(context.Background(), []*domain.Currency{usd, chf})

	require.False(t, out.Stale)
	require.Equal(t, Entry{
		ID: 2, NumCode: 102, Code: "CHF", Name: "CHF name",
		Rate: 102.30, Nominal: 1, RatePerUnit: 102.30, Delta: 0, Stale: false,
	}, out.Entries[1])
	require.Equal(t, 102.30, chf.Rate())
}

func TestRefresh_DuplicateCodesRequestedOnce(t *testing.T) {
	feed := new(MockRateFeed)
	integrator, _, _ := newTestIntegrator(feed)

	first := mustCurrency(t, 1, "USD", 90.50, 1)
	second := mustCurrency(t, 2, "USD", 91.00, 1)

	feed.On("FetchRates", mock.Anything, []string{"USD"}).
		Return(map[string]float64{"USD": 92.00}, nil).Once()

	out := integrator.Refresh(context.Background(), []*domain.Currency{first, second})

	require.Len(t, out.Entries, 2)
	require.Equal(t, 1.5, out.Entries[0].Delta)
	require.Equal(t, 1.0, out.Entries[1].Delta)
	feed.AssertExpectations(t)
}

func TestRefresh_AnyFeedFailureFallsBackWholeBatch(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantKind string
	}{
		{name: "transport", err: &domain.FeedError{Kind: domain.KindTransport, Err: context.DeadlineExceeded}, wantKind: "TransportError"},
		{name: "parse", err: &domain.FeedError{Kind: domain.KindParse}, wantKind: "ParseError"},
		{name: "malformed", err: &domain.FeedError{Kind: domain.KindMalformedFeed, Detail: "missing Valute key"}, wantKind: "MalformedFeed"},
		{name: "code not found", err: &domain.FeedError{Kind: domain.KindCodeNotFound, Code: "CHF"}, wantKind: "CodeNotFound"},
		{name: "invalid rate type", err: &domain.FeedError{Kind: domain.KindInvalidRateType, Code: "USD"}, wantKind: "InvalidRateType"},
		{name: "unclassified", err: errors.New("boom"), wantKind: "Unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			feed := new(MockRateFeed)
			integrator, hook, metrics := newTestIntegrator(feed)

			usd := mustCurrency(t, 1, "USD", 90.50, 1)
			chf := mustCurrency(t, 2, "CHF", 102.30, 1)

			feed.On("FetchRates", mock.Anything, []string{"USD", "CHF"}).Return(nil, tc.err).Once()

			out := integrator.Refresh(context.Background(), []*domain.Currency{usd, chf})

			require.True(t, out.Stale)
			require.Equal(t, tc.wantKind, out.Failure)
			require.True(t, out.LastSuccessAt.IsZero())
			require.Len(t, out.Entries, 2)
			for _, e := range out.Entries {
				require.True(t, e.Stale)
				require.Zero(t, e.Delta)
			}
			require.Equal(t, 90.50, out.Entries[0].Rate)
			require.Equal(t, 102.30, out.Entries[1].Rate)
			require.Equal(t, 90.50, usd.Rate())
			require.Equal(t, 102.30, chf.Rate())

			require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
			require.Equal(t, 1.0, testutil.ToFloat64(metrics.FeedFetchTotal.WithLabelValues(tc.wantKind)))
			require.Equal(t, 1.0, testutil.ToFloat64(metrics.RefreshTotal.WithLabelValues("stale")))
			feed.AssertExpectations(t)
		})
	}
}

func TestRefresh_NonPositiveRateInAnswerAppliesNothing(t *testing.T) {
	feed := new(MockRateFeed)
	integrator, _, _ := newTestIntegrator(feed)

	usd := mustCurrency(t, 1, "USD", 90.50, 1)
	eur := mustCurrency(t, 2, "EUR", 98.75, 1)

	feed.On("FetchRates", mock.Anything, []string{"USD", "EUR"}).
		Return(map[string]float64{"USD": 92.10, "EUR": 0}, nil).Once()

	out := integrator.Refresh(context.Background(), []*domain.Currency{usd, eur})

	require.True(t, out.Stale)
	require.Equal(t, "InvalidRateType", out.Failure)
	require.Equal(t, 90.50, usd.Rate())
	require.Equal(t, 98.75, eur.Rate())
}

func TestRefresh_LogsCodeForPerCurrencyFailures(t *testing.T) {
	feed := new(MockRateFeed)
	integrator, hook, _ := newTestIntegrator(feed)

	feed.On("FetchRates", mock.Anything, []string{"CHF"}).
		Return(nil, &domain.FeedError{Kind: domain.KindCodeNotFound, Code: "CHF"}).Once()

	integrator.Refresh(context.Background(), []*domain.Currency{mustCurrency(t, 1, "CHF", 102.30, 1)})

	entry := hook.LastEntry()
	require.Equal(t, "CHF", entry.Data["code"])
	require.Equal(t, "CodeNotFound", entry.Data["kind"])
}

func TestRefresh_EmptyCollectionSkipsFeed(t *testing.T) {
	feed := new(MockRateFeed)
	integrator, _, _ := newTestIntegrator(feed)

	out := integrator.Refresh(context.Background(), nil)

	require.False(t, out.Stale)
	require.Empty(t, out.Entries)
	feed.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything)
}

func TestRefresh_NilMetricsAllowed(t *testing.T) {
	feed := new(MockRateFeed)
	logger, _ := test.NewNullLogger()
	integrator := NewIntegrator(feed, logger, nil)

	feed.On("FetchRates", mock.Anything, []string{"USD"}).Return(nil, errors.New("down")).Once()

	out := integrator.Refresh(context.Background(), []*domain.Currency{mustCurrency(t, 1, "USD", 90.50, 1)})
	require.True(t, out.Stale)
}

func TestDelta(t *testing.T) {
	require.Equal(t, 1.60, delta(90.50, 92.10))
	require.Equal(t, -0.1, delta(0.3, 0.2))
	require.Equal(t, 0.0, delta(0, 92.10))
}
