package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"
	"time"

	"currencytracker/internal/adapters"
	"currencytracker/internal/adapters/cache"
	"currencytracker/internal/adapters/httpclient"
	"currencytracker/internal/adapters/memory"
	"currencytracker/internal/api"
	"currencytracker/internal/config"
	"currencytracker/internal/domain"
	"currencytracker/internal/instrument"
	"currencytracker/internal/logging"
	"currencytracker/internal/page"
	httpserver "currencytracker/internal/platform/http"
	"currencytracker/internal/rate"
	"currencytracker/internal/rate/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run(configPath string) error {
	appCfg, err := config.Init(configPath)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.Open(appCfg.Logging)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := logCloser.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", closeErr)
		}
	}()
	logger.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, appCfg, logger)
}

func serve(ctx context.Context, appCfg *config.AppConfig, logger *logrus.Logger) error {
	seed, err := memory.DefaultSeed()
	if err != nil {
		logger.WithError(err).Error("Invalid seed data")
		return err
	}
	book := rate.NewBook(seed.Currencies)
	catalog, err := memory.NewCatalog(seed.Users, seed.Subscriptions, book)
	if err != nil {
		logger.WithError(err).Error("Invalid catalog")
		return err
	}
	logger.Infof("✅ Catalog loaded: %d users, %d currencies", len(seed.Users), book.Len())

	feed, err := newFeed(appCfg, logger)
	if err != nil {
		return err
	}
	defer feed.Close()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := rate.NewMetrics(registry)

	// Services
	integrator := rate.NewIntegrator(feed, logger, metrics)
	rateService := rate.NewService(book, integrator)

	if interval := appCfg.Scheduler.RefreshIntervalSec; interval > 0 {
		scheduler := rate.NewScheduler(book, integrator, logger, time.Duration(interval)*time.Second)
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logger.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logger.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logger.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	author, err := domain.NewAuthor(appCfg.App.AuthorName, appCfg.App.AuthorGroup)
	if err != nil {
		return err
	}
	appInfo, err := domain.NewApp(appCfg.App.Name, appCfg.App.Version, author)
	if err != nil {
		return err
	}
	pages, err := page.New(appInfo, catalog, rateService, logger)
	if err != nil {
		return err
	}
	rateHandler := handler.NewRateHandler(rate.NewValidator(seed.SupportedCodes()), rateService, logger)
	router := api.NewRouter(rateHandler, pages, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logger.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router, logger); serverErr != nil {
		logger.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// feedStack is the feed the integrator talks to, plus the cache behind it
// when one is configured.
type feedStack struct {
	adapters.RateFeed
	cache *cache.FeedCache
}

func (f feedStack) Close() {
	if f.cache != nil {
		f.cache.Close()
	}
}

// newFeed builds the instrumented feed client, behind a TTL cache when one is configured.
func newFeed(appCfg *config.AppConfig, logger logrus.FieldLogger) (feedStack, error) {
	httpTimeout := appCfg.HTTPClient.Timeout()
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	client := httpclient.NewFeedClient(&http.Client{Timeout: httpTimeout}, appCfg.Feed.URL)
	feed := adapters.RateFeedFunc(instrument.Wrap1("fetch_rates", logger, client.FetchRates))

	if appCfg.Feed.CacheTTLSeconds <= 0 {
		return feedStack{RateFeed: feed}, nil
	}
	cached, err := cache.NewFeedCache(feed, appCfg.Feed.CacheMaxItems, time.Duration(appCfg.Feed.CacheTTLSeconds)*time.Second)
	if err != nil {
		logger.WithError(err).Error("Failed to create feed cache")
		return feedStack{}, err
	}
	// cache hits are logged as their own operation
	return feedStack{
		RateFeed: adapters.RateFeedFunc(instrument.Wrap1("fetch_rates_cached", logger, cached.FetchRates)),
		cache:    cached,
	}, nil
}

// Fetch runs a single instrumented feed call for codes and prints the rates
// sorted by code. Feed failures are returned as is.
func Fetch(ctx context.Context, appCfg *config.AppConfig, logger logrus.FieldLogger, codes []string, w io.Writer) error {
	normalized, err := rate.NewValidator(nil).NormalizeCodes(codes)
	if err != nil {
		return err
	}

	fetchCfg := *appCfg
	fetchCfg.Feed.CacheTTLSeconds = 0
	feed, err := newFeed(&fetchCfg, logger)
	if err != nil {
		return err
	}
	defer feed.Close()
	rates, err := feed.FetchRates(ctx, normalized)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(rates))
	for code := range rates {
		keys = append(keys, code)
	}
	slices.Sort(keys)
	for _, code := range keys {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", code, strconv.FormatFloat(rates[code], 'f', -1, 64)); err != nil {
			return err
		}
	}
	return nil
}
