package domain

import (
	"fmt"
	"strings"
)

// Currency is a rate record: one currency quoted against the base (RUB) currency.
// Only the rate changes after construction.
type Currency struct {
	id      int
	numCode int
	code    string
	name    string
	rate    float64
	nominal int
}

type currencyFields struct {
	ID      int     `validate:"gt=0"`
	NumCode int     `validate:"gt=0"`
	Code    string  `validate:"len=3,alpha"`
	Name    string  `validate:"required"`
	Rate    float64 `validate:"gt=0"`
	Nominal int     `validate:"gt=0"`
}

func NewCurrency(id, numCode int, code, name string, rate float64, nominal int) (*Currency, error) {
	f := currencyFields{
		ID:      id,
		NumCode: numCode,
		Code:    strings.ToUpper(strings.TrimSpace(code)),
		Name:    strings.TrimSpace(name),
		Rate:    rate,
		Nominal: nominal,
	}
	if err := validateStruct("currency", f); err != nil {
		return nil, err
	}
	return &Currency{
		id:      f.ID,
		numCode: f.NumCode,
		code:    f.Code,
		name:    f.Name,
		rate:    f.Rate,
		nominal: f.Nominal,
	}, nil
}

func (c *Currency) ID() int { return c.id }
func (c *Currency) NumCode() int { return c.numCode }
func (c *Currency) Code() string { return c.code }
func (c *Currency) Name() string { return c.name }
func (c *Currency) Rate() float64 { return c.rate }
func (c *Currency) Nominal() int { return c.nominal }
func (c *Currency) String() string { return fmt.Sprintf("%s (%s)", c.name, c.code) }

// RatePerUnit is the rate of a single unit of the currency.
func (c *Currency) RatePerUnit() float64 {
	return c.rate / float64(c.nominal)
}

// SetRate replaces the rate, keeping it positive.
func (c *Currency) SetRate(rate float64) error {
	if !(rate > 0) {
		return fmt.Errorf("%w: currency %s: rate must be positive, got %v", ErrValidation, c.code, rate)
	}
	c.rate = rate
	return nil
}
