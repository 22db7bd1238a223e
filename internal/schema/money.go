package schema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept, matching NUMERIC(10,2).
const moneyScale = 2

// maxMoney is the first value that no longer fits NUMERIC(10,2).
var maxMoney = decimal.New(1, 8)

// Bounds on the decimal text accepted before any arithmetic. Rounding rescales through
// big.Int, so an unchecked exponent like 1e10000000 costs seconds of CPU.
const (
	minAmountExponent = -10
	maxAmountExponent = 10
	maxAmountDigits   = 20
)

// Money is a fixed-point amount with two fractional digits. It travels as decimal text
// ("150.00") so no float rounding happens between the store and the client.
type Money struct {
	decimal.Decimal
}

func NewMoney(s string) (Money, error) {
	d, err := parseAmount(s)
	if err != nil {
		return Money{}, err
	}

	return Money{Decimal: d.Round(moneyScale)}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}

	if exp := d.Exponent(); exp < minAmountExponent || exp > maxAmountExponent || d.NumDigits() > maxAmountDigits {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q, out of range", s)
	}

	return d, nil
}

// MustMoney is NewMoney for literals.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}

	return m
}

func (m Money) String() string {
	return m.StringFixed(moneyScale)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both "150.00" and 150.
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}

	parsed, err := NewMoney(raw)
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}

	*m = parsed

	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}
