package handler

import (
	"encoding/json"
	"net/http"
)

type GetSupportedCodesResponse struct {
	Codes []string `json:"codes" example:"CHF,CNY,EUR,GBP,JPY,USD"`
}

// GetSupportedCodes godoc
// @Summary List supported currencies
// @Description Retrieve the codes of the tracked currencies, accepted by the codes filter
// @Tags Currencies
// @Produce json
// @Success 200 {object} GetSupportedCodesResponse
// @Router /currencies/supported [get]
func (h *Handler) GetSupportedCodes(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(GetSupportedCodesResponse{
		Codes: h.validator.SupportedCodes(),
	})
}
