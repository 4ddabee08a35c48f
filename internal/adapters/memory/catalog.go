package memory

import (
	"fmt"
	"slices"

	"currencytracker/internal/domain"
)

// CurrencySource is the owner of the currency collection.
type CurrencySource interface {
	Currencies() []*domain.Currency
}

// UserSummary is a user with the number of currencies they follow.
type UserSummary struct {
	ID            int
	Name          string
	Subscriptions int
}

// Catalog holds users and their subscriptions. It is read-only after construction.
type Catalog struct {
	users         []domain.User
	subscriptions []domain.Subscription
	currencies    CurrencySource
}

func NewCatalog(users []domain.User, subscriptions []domain.Subscription, currencies CurrencySource) (*Catalog, error) {
	known := make(map[int]struct{}, len(users))
	for _, u := range users {
		if _, dup := known[u.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate user id %d", domain.ErrValidation, u.ID)
		}
		known[u.ID] = struct{}{}
	}
	currencyIDs := make(map[int]struct{})
	for _, c := range currencies.Currencies() {
		currencyIDs[c.ID()] = struct{}{}
	}
	for _, s := range subscriptions {
		if _, ok := known[s.UserID]; !ok {
			return nil, fmt.Errorf("%w: subscription %d refers to unknown user %d", domain.ErrValidation, s.ID, s.UserID)
		}
		if _, ok := currencyIDs[s.CurrencyID]; !ok {
			return nil, fmt.Errorf("%w: subscription %d refers to unknown currency %d", domain.ErrValidation, s.ID, s.CurrencyID)
		}
	}
	return &Catalog{
		users:         slices.Clone(users),
		subscriptions: slices.Clone(subscriptions),
		currencies:    currencies,
	}, nil
}

func (c *Catalog) Users() []UserSummary {
	out := make([]UserSummary, 0, len(c.users))
	for _, u := range c.users {
		out = append(out, UserSummary{ID: u.ID, Name: u.Name, Subscriptions: c.SubscriptionCount(u.ID)})
	}
	return out
}

func (c *Catalog) User(id int) (domain.User, error) {
	idx := slices.IndexFunc(c.users, func(u domain.User) bool { return u.ID == id })
	if idx < 0 {
		return domain.User{}, fmt.Errorf("%w: id %d", domain.ErrUserNotFound, id)
	}
	return c.users[idx], nil
}

func (c *Catalog) SubscriptionCount(userID int) int {
	n := 0
	for _, s := range c.subscriptions {
		if s.UserID == userID {
			n++
		}
	}
	return n
}

// SubscribedCurrencies returns the user's currencies in collection order.
func (c *Catalog) SubscribedCurrencies(userID int) []*domain.Currency {
	ids := make(map[int]struct{})
	for _, s := range c.subscriptions {
		if s.UserID == userID {
			ids[s.CurrencyID] = struct{}{}
		}
	}
	var out []*domain.Currency
	for _, cur := range c.currencies.Currencies() {
		if _, ok := ids[cur.ID()]; ok {
			out = append(out, cur)
		}
	}
	return out
}

func (c *Catalog) CurrencyCount() int {
	return len(c.currencies.Currencies())
}
