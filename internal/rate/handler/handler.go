package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"currencytracker/internal/rate"

	"github.com/sirupsen/logrus"
)

type RateService interface {
	Refresh(ctx context.Context) rate.Outcome
}

type CodeValidator interface {
	NormalizeCodes(codes []string) ([]string, error)
	SupportedCodes() []string
}

type Handler struct {
	validator CodeValidator
	service   RateService
	log       logrus.FieldLogger
}

func NewRateHandler(validator CodeValidator, service RateService, log logrus.FieldLogger) *Handler {
	return &Handler{validator: validator, service: service, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}
