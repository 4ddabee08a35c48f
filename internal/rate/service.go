package rate

import (
	"context"

	"currencytracker/internal/domain"
)

type Service struct {
	book       *Book
	integrator *Integrator
}

// Refresh pulls fresh rates into the book; see Book.Refresh.
func (s *Service) Refresh(ctx context.Context) Outcome {
	return s.book.Refresh(ctx, s.integrator)
}

func (s *Service) Currencies() []*domain.Currency {
	return s.book.Currencies()
}

func NewService(book *Book, integrator *Integrator) *Service {
	return &Service{book: book, integrator: integrator}
}
