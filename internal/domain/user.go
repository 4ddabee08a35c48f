package domain

import "strings"

type User struct {
	ID   int    `validate:"gt=0"`
	Name string `validate:"required"`
}

func NewUser(id int, name string) (User, error) {
	u := User{ID: id, Name: strings.TrimSpace(name)}
	if err := validateStruct("user", u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Subscription links a user to a currency they follow.
type Subscription struct {
	ID         int `validate:"gt=0"`
	UserID     int `validate:"gt=0"`
	CurrencyID int `validate:"gt=0"`
}

func NewSubscription(id, userID, currencyID int) (Subscription, error) {
	s := Subscription{ID: id, UserID: userID, CurrencyID: currencyID}
	if err := validateStruct("subscription", s); err != nil {
		return Subscription{}, err
	}
	return s, nil
}
