package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUserNotFound = errors.New("user not found")
)

// FeedErrorKind is the closed set of ways an exchange-rate feed call can fail.
type FeedErrorKind int

const (
	KindTransport FeedErrorKind = iota + 1
	KindParse
	KindMalformedFeed
	KindCodeNotFound
	KindInvalidRateType
)

func (k FeedErrorKind) String() string {
	switch k {
	case KindTransport:
		return "TransportError"
	case KindParse:
		return "ParseError"
	case KindMalformedFeed:
		return "MalformedFeed"
	case KindCodeNotFound:
		return "CodeNotFound"
	case KindInvalidRateType:
		return "InvalidRateType"
	default:
		return fmt.Sprintf("FeedErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is matching by kind only.
var (
	ErrTransport       = &FeedError{Kind: KindTransport}
	ErrParse           = &FeedError{Kind: KindParse}
	ErrMalformedFeed   = &FeedError{Kind: KindMalformedFeed}
	ErrCodeNotFound    = &FeedError{Kind: KindCodeNotFound}
	ErrInvalidRateType = &FeedError{Kind: KindInvalidRateType}
)

// FeedError is returned by feed clients. Code is set only for the per-code kinds.
type FeedError struct {
	Kind   FeedErrorKind
	Code   string
	Detail string
	Err    error
}

func (e *FeedError) Error() string {
	msg := e.Kind.String()
	if e.Code != "" {
		msg += fmt.Sprintf(" %q", e.Code)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FeedError) Unwrap() error { return e.Err }

// Is reports kind equality, so errors.Is(err, ErrCodeNotFound) matches any code.
func (e *FeedError) Is(target error) bool {
	t, ok := target.(*FeedError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

// ErrorKind names the failure for log records.
func (e *FeedError) ErrorKind() string { return e.Kind.String() }
