package rate

import (
	"time"
)

// Entry is one row of a refresh outcome.
type Entry struct {
	ID          int     `json:"id"`
	NumCode     int     `json:"num_code"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Rate        float64 `json:"rate"`
	Nominal     int     `json:"nominal"`
	RatePerUnit float64 `json:"rate_per_unit"`
	Delta       float64 `json:"delta"`
	Stale       bool    `json:"stale"`
}

// Outcome is the result of one refresh attempt. When Stale is set every entry
// carries its previous rate with a zero delta and Failure names what went wrong.
type Outcome struct {
	AttemptID     string    `json:"attempt_id"`
	AttemptedAt   time.Time `json:"attempted_at"`
	LastSuccessAt time.Time `json:"last_success_at"`
	Stale         bool      `json:"stale"`
	Failure       string    `json:"failure,omitempty"`
	Entries       []Entry   `json:"entries"`
}
