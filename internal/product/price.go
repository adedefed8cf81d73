package product

import (
	"strconv"
	"strings"

	"warehouse-be/internal/utils"

	"github.com/shopspring/decimal"
)

// NormalizePrice parses s and renders it with exactly two fraction digits.
func NormalizePrice(s string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return "", ErrInvalidPrice
	}
	return d.StringFixed(2), nil
}

// ParseQuantity accepts a run of ASCII digits only.
func ParseQuantity(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if !utils.IsDigits(s) {
		return 0, ErrInvalidQuantity
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}
