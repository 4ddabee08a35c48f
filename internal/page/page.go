package page

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"currencytracker/internal/adapters/memory"
	"currencytracker/internal/domain"
	"currencytracker/internal/rate"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const timeLayout = "02.01.2006 15:04:05"

type Catalog interface {
	Users() []memory.UserSummary
	User(id int) (domain.User, error)
	SubscribedCurrencies(userID int) []*domain.Currency
	CurrencyCount() int
}

type RateService interface {
	Refresh(ctx context.Context) rate.Outcome
}

// Pages renders the HTML side of the application.
type Pages struct {
	app       domain.App
	catalog   Catalog
	rates     RateService
	log       logrus.FieldLogger
	templates map[string]*template.Template
}

func New(app domain.App, catalog Catalog, rates RateService, log logrus.FieldLogger) (*Pages, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) },
		"delta": func(v float64) string {
			if v == 0 {
				return "0"
			}
			return fmt.Sprintf("%+.4f", v)
		},
		"clock": func(t time.Time) string { return t.Format(timeLayout) },
	}

	templates := make(map[string]*template.Template)
	for _, name := range []string{"index.html", "users.html", "user_detail.html", "currencies.html", "author.html", "error.html"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return &Pages{app: app, catalog: catalog, rates: rates, log: log, templates: templates}, nil
}

func (p *Pages) Index(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusOK, "index.html", map[string]any{
		"App":         p.app,
		"RequestPath": r.URL.Path,
	})
}

func (p *Pages) Users(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusOK, "users.html", map[string]any{
		"Users":       p.catalog.Users(),
		"RequestPath": r.URL.Path,
	})
}

func (p *Pages) UserDetail(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		p.Error(w, http.StatusBadRequest, "user id is required")
		return
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		p.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := p.catalog.User(id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			p.Error(w, http.StatusNotFound, fmt.Sprintf("user with id %d not found", id))
			return
		}
		p.log.WithError(err).WithField("user_id", id).Error("ups, couldn't load user this time")
		p.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	p.render(w, http.StatusOK, "user_detail.html", map[string]any{
		"User":            user,
		"Subscriptions":   p.catalog.SubscribedCurrencies(id),
		"CurrenciesCount": p.catalog.CurrencyCount(),
		"RequestPath":     "/users",
	})
}

// Currencies refreshes the rates on every view. A failed refresh still renders
// the table, with the previous rates marked as static data.
func (p *Pages) Currencies(w http.ResponseWriter, r *http.Request) {
	out := p.rates.Refresh(r.Context())
	if out.Stale {
		p.log.WithFields(logrus.Fields{"attempt_id": out.AttemptID, "kind": out.Failure}).
			Warn("Rendering currencies with previous rates")
	}
	p.render(w, http.StatusOK, "currencies.html", map[string]any{
		"Outcome":     out,
		"RequestPath": r.URL.Path,
	})
}

func (p *Pages) Author(w http.ResponseWriter, r *http.Request) {
	p.render(w, http.StatusOK, "author.html", map[string]any{
		"App":         p.app,
		"RequestPath": r.URL.Path,
	})
}

func (p *Pages) NotFound(w http.ResponseWriter, _ *http.Request) {
	p.Error(w, http.StatusNotFound, "page not found")
}

func (p *Pages) Error(w http.ResponseWriter, status int, message string) {
	p.render(w, status, "error.html", map[string]any{
		"Status":      status,
		"Message":     message,
		"RequestPath": "",
	})
}

// Static serves the embedded stylesheet and images under /static/.
func (p *Pages) Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (p *Pages) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	var buf bytes.Buffer
	if err := p.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		p.log.WithError(err).WithField("template", name).Error("template rendering failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
