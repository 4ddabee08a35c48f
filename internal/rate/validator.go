package rate

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrCodesRequired   = errors.New("at least one currency code is required")
	ErrCodeMalformed   = errors.New("currency code must be 3 letters")
	ErrCodeUnsupported = errors.New("currency not supported")
)

type CurrencyValidator struct {
	supportedCodesSet map[string]struct{} // read only copy
	supportedCodesLst []string            // read only copy
}

// NormalizeCodes trims and upper-cases codes and checks each one is well-formed
// and, when the validator has a supported set, supported.
func (v *CurrencyValidator) NormalizeCodes(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, ErrCodesRequired
	}
	out := make([]string, 0, len(codes))
	for _, raw := range codes {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if !isAlpha3(code) {
			return nil, fmt.Errorf("%w: %q", ErrCodeMalformed, raw)
		}
		if len(v.supportedCodesSet) > 0 {
			if _, ok := v.supportedCodesSet[code]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrCodeUnsupported, code)
			}
		}
		out = append(out, code)
	}
	return out, nil
}

func (v *CurrencyValidator) SupportedCodes() []string {
	return slices.Clone(v.supportedCodesLst)
}

func NewValidator(supportedCurrencies map[string]struct{}) *CurrencyValidator {
	codesSet := maps.Clone(supportedCurrencies)
	codesLst := slices.Collect(maps.Keys(codesSet))
	slices.Sort(codesLst)

	return &CurrencyValidator{
		supportedCodesSet: codesSet,
		supportedCodesLst: codesLst,
	}
}

func isAlpha3(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
