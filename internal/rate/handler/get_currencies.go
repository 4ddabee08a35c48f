package handler

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"currencytracker/internal/rate"
)

// GetCurrencies godoc
// @Summary Refresh and list exchange rates
// @Description Pull current rates from the feed and return the refresh outcome.
// @Description When the feed fails the previous rates are returned with "stale": true.
// @Tags Currencies
// @Produce json
// @Param codes query string false "Comma separated codes, e.g. USD,EUR"
// @Success 200 {object} rate.Outcome
// @Failure 400 {object} errorResponse
// @Router /currencies [get]
func (h *Handler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	var filter []string
	if raw := r.URL.Query().Get("codes"); raw != "" {
		codes, err := h.validator.NormalizeCodes(strings.Split(raw, ","))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter = codes
	}

	out := h.service.Refresh(r.Context())
	if out.Stale {
		h.log.WithField("attempt_id", out.AttemptID).Infof("Serving stale rates: %s", out.Failure)
	}
	if filter != nil {
		out.Entries = slices.DeleteFunc(out.Entries, func(e rate.Entry) bool {
			return !slices.Contains(filter, e.Code)
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}
