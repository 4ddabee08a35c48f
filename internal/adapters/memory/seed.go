package memory

import (
	"errors"

	"currencytracker/internal/domain"
)

// Seed is the demonstration data set the application starts with.
type Seed struct {
	Users         []domain.User
	Currencies    []*domain.Currency
	Subscriptions []domain.Subscription
}

func DefaultSeed() (Seed, error) {
	var (
		seed Seed
		errs []error
	)

	addUser := func(id int, name string) {
		u, err := domain.NewUser(id, name)
		errs = append(errs, err)
		seed.Users = append(seed.Users, u)
	}
	addCurrency := func(id, numCode int, code, name string, rate float64, nominal int) {
		c, err := domain.NewCurrency(id, numCode, code, name, rate, nominal)
		errs = append(errs, err)
		if c != nil {
			seed.Currencies = append(seed.Currencies, c)
		}
	}
	subscribe := func(id, userID, currencyID int) {
		s, err := domain.NewSubscription(id, userID, currencyID)
		errs = append(errs, err)
		seed.Subscriptions = append(seed.Subscriptions, s)
	}

	addUser(1, "Ivan Ivanov")
	addUser(2, "Maria Petrova")
	addUser(3, "Alexey Sidorov")
	addUser(4, "Elena Kuznetsova")

	addCurrency(1, 840, "USD", "US Dollar", 90.50, 1)
	addCurrency(2, 978, "EUR", "Euro", 98.75, 1)
	addCurrency(3, 826, "GBP", "Pound Sterling", 115.20, 1)
	addCurrency(4, 392, "JPY", "Japanese Yen", 0.60, 100)
	addCurrency(5, 756, "CHF", "Swiss Franc", 102.30, 1)
	addCurrency(6, 156, "CNY", "Chinese Yuan", 12.50, 1)

	subscribe(1, 1, 1) // Ivan -> USD
	subscribe(2, 1, 2) // Ivan -> EUR
	subscribe(3, 2, 2) // Maria -> EUR
	subscribe(4, 2, 3) // Maria -> GBP
	subscribe(5, 3, 4) // Alexey -> JPY
	subscribe(6, 4, 1) // Elena -> USD
	subscribe(7, 4, 2) // Elena -> EUR
	subscribe(8, 4, 5) // Elena -> CHF

	if err := errors.Join(errs...); err != nil {
		return Seed{}, err
	}
	return seed, nil
}

// SupportedCodes lists the symbolic codes of the seeded currencies.
func (s Seed) SupportedCodes() map[string]struct{} {
	codes := make(map[string]struct{}, len(s.Currencies))
	for _, c := range s.Currencies {
		codes[c.Code()] = struct{}{}
	}
	return codes
}
