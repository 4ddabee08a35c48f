package api

import (
	"net/http"

	_ "currencytracker/internal/docs"
	"currencytracker/internal/page"
	"currencytracker/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler, pages *page.Pages, metrics http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// HTML pages
	router.Get("/", pages.Index)
	router.Get("/users", pages.Users)
	router.Get("/user", pages.UserDetail)
	router.Get("/currencies", pages.Currencies)
	router.Get("/author", pages.Author)
	router.Handle("/static/*", pages.Static())
	router.NotFound(pages.NotFound)

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/api/v1/currencies", rateHandler.GetCurrencies)
	router.Get("/api/v1/currencies/supported", rateHandler.GetSupportedCodes)

	if metrics != nil {
		router.Handle("/metrics", metrics)
	}
	return router
}
