package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"currencytracker/internal/domain"

	"github.com/stretchr/testify/require"
)

const dailyJSON = `{
    "Date": "2025-01-02T11:30:00+03:00",
    "Valute": {
        "USD": {"ID": "R01235", "NumCode": "840", "CharCode": "USD", "Nominal": 1, "Name": "US Dollar", "Value": 92.1, "Previous": 90.5},
        "EUR": {"ID": "R01239", "NumCode": "978", "CharCode": "EUR", "Nominal": 1, "Name": "Euro", "Value": 99.8, "Previous": 98.75},
        "JPY": {"ID": "R01820", "NumCode": "392", "CharCode": "JPY", "Nominal": 100, "Name": "Yen", "Value": 61.2, "Previous": 60.0}
    }
}`

func newFeedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFeedClient_Success(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(dailyJSON))
	}))
	t.Cleanup(srv.Close)

	c := NewFeedClient(srv.Client(), srv.URL+"/daily_json.js")

	rates, err := c.FetchRates(context.Background(), []string{"USD", "EUR"})
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, gotMethod)
	require.Equal(t, "/daily_json.js", gotPath)
	require.Equal(t, map[string]float64{"USD": 92.1, "EUR": 99.8}, rates)
}

func TestFeedClient_DuplicateCodesCollapse(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, dailyJSON)
	c := NewFeedClient(srv.Client(), srv.URL)

	rates, err := c.FetchRates(context.Background(), []string{"JPY", "JPY"})
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"JPY": 61.2}, rates)
}

func TestFeedClient_CodeNotFound(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, dailyJSON)
	c := NewFeedClient(srv.Client(), srv.URL)

	rates, err := c.FetchRates(context.Background(), []string{"USD", "XAU", "ZZZ"})
	require.Nil(t, rates)
	require.ErrorIs(t, err, domain.ErrCodeNotFound)

	var feedErr *domain.FeedError
	require.ErrorAs(t, err, &feedErr)
	require.Equal(t, "XAU", feedErr.Code)
}

func TestFeedClient_MissingValute(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, `{"Date": "2025-01-02", "Rates": {}}`)
	c := NewFeedClient(srv.Client(), srv.URL)

	_, err := c.FetchRates(context.Background(), []string{"XAU"})
	require.ErrorIs(t, err, domain.ErrMalformedFeed)

	var feedErr *domain.FeedError
	require.ErrorAs(t, err, &feedErr)
	require.Empty(t, feedErr.Code)
	require.Contains(t, err.Error(), "missing Valute key")
}

func TestFeedClient_MalformedShapes(t *testing.T) {
	cases := map[string]string{
		"top level array":  `[1, 2, 3]`,
		"valute is string": `{"Valute": "USD"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newFeedServer(t, http.StatusOK, body)
			c := NewFeedClient(srv.Client(), srv.URL)

			_, err := c.FetchRates(context.Background(), []string{"USD"})
			require.ErrorIs(t, err, domain.ErrMalformedFeed)
		})
	}
}

func TestFeedClient_InvalidRateType(t *testing.T) {
	cases := map[string]string{
		"string value":   `{"Valute": {"USD": {"Value": "92.1"}}}`,
		"null value":     `{"Valute": {"USD": {"Value": null}}}`,
		"missing value":  `{"Valute": {"USD": {"Previous": 90.5}}}`,
		"entry not obj":  `{"Valute": {"USD": 92.1}}`,
		"negative value": `{"Valute": {"USD": {"Value": -1}}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newFeedServer(t, http.StatusOK, body)
			c := NewFeedClient(srv.Client(), srv.URL)

			_, err := c.FetchRates(context.Background(), []string{"USD"})
			require.ErrorIs(t, err, domain.ErrInvalidRateType)
			require.ErrorIs(t, err, &domain.FeedError{Kind: domain.KindInvalidRateType, Code: "USD"})
		})
	}
}

func TestFeedClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewFeedClient(srv.Client(), srv.URL)

	_, err := c.FetchRates(context.Background(), []string{"USD"})
	require.ErrorIs(t, err, domain.ErrTransport)
	require.Contains(t, err.Error(), "unexpected status code 503")
}

func TestFeedClient_JSONDecodeError(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, "{")
	c := NewFeedClient(srv.Client(), srv.URL)

	_, err := c.FetchRates(context.Background(), []string{"USD"})
	require.ErrorIs(t, err, domain.ErrParse)
	require.Contains(t, err.Error(), "failed to decode response")
}

func TestFeedClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	feedURL := srv.URL
	srv.Close()

	c := NewFeedClient(&http.Client{}, feedURL)

	_, err := c.FetchRates(context.Background(), []string{"USD"})
	require.ErrorIs(t, err, domain.ErrTransport)

	var feedErr *domain.FeedError
	require.ErrorAs(t, err, &feedErr)
	require.Error(t, feedErr.Unwrap())
}

func TestFeedClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewFeedClient(&http.Client{Timeout: 50 * time.Millisecond}, srv.URL)

	_, err := c.FetchRates(context.Background(), []string{"USD"})
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestFeedClient_FeedURLParseError(t *testing.T) {
	c := NewFeedClient(&http.Client{}, "http://::1]")
	_, err := c.FetchRates(context.Background(), []string{"USD"})
	require.ErrorIs(t, err, domain.ErrTransport)
	require.Contains(t, err.Error(), "failed to parse feed URL")
}

func TestNewFeedClient_DefaultsURL(t *testing.T) {
	c := NewFeedClient(&http.Client{}, "")
	require.Equal(t, DefaultFeedURL, c.feedURL)
}
