package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// Money represents a monetary value in the smallest currency unit (kopecks, cents).
// Amounts are stored in the database as REAL and converted at the boundary.
type Money int64

// NewMoney creates a Money value from major and minor units
func NewMoney(units int64, minor int) Money {
	return Money(units*100 + int64(minor))
}

// Cents creates a Money value from minor units only
func Cents(cents int64) Money {
	return Money(cents)
}

// FromFloat creates a Money value from a float64, rounding to the nearest minor unit
func FromFloat(amount float64) Money {
	return Money(math.Round(amount * 100))
}

// ParseMoney parses decimal text such as "1250", "1250.5" or "1 250,50".
// More than two fractional digits is an error rather than a silent rounding.
func ParseMoney(text string) (Money, error) {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.Replace(s, ",", ".", 1)
	if s == "" {
		return 0, errors.NotValidf("empty amount")
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, errors.NotValidf("amount %q", text)
	}
	if len(frac) > 2 {
		return 0, errors.NotValidf("amount %q with more than two decimal places", text)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, errors.NotValidf("amount %q", text)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, errors.NotValidf("amount %q", text)
	}
	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, errors.NotValidf("amount %q", text)
	}

	if units > (math.MaxInt64-minor)/100 {
		return 0, errors.NotValidf("amount %q out of range", text)
	}
	m := Money(units*100 + minor)
	if negative {
		m = -m
	}
	return m, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ToCents returns the value in minor units (the underlying representation)
func (m Money) ToCents() int64 {
	return int64(m)
}

// Float64 returns the value in major units, as stored in REAL columns
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// Add returns the sum of two Money values
func (m Money) Add(other Money) Money {
	return m + other
}

// IsZero returns true if the value is zero
func (m Money) IsZero() bool {
	return m == 0
}

// IsPositive returns true if the value is positive
func (m Money) IsPositive() bool {
	return m > 0
}

// String returns a simple string representation (e.g., "123.45")
func (m Money) String() string {
	negative := m < 0
	if negative {
		m = -m
	}
	result := fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
	if negative {
		result = "-" + result
	}
	return result
}

// Value stores the amount as a REAL in major units
func (m Money) Value() (driver.Value, error) {
	return m.Float64(), nil
}

// Scan reads REAL, INTEGER or textual amounts
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
	case float64:
		*m = FromFloat(v)
	case int64:
		*m = Money(v * 100)
	case []byte:
		return m.scanText(string(v))
	case string:
		return m.scanText(v)
	default:
		return errors.Errorf("cannot scan %T into Money", src)
	}
	return nil
}

func (m *Money) scanText(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.Annotatef(err, "cannot scan %q into Money", s)
	}
	*m = FromFloat(f)
	return nil
}

// MarshalJSON writes the amount in major units
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON reads a number or a decimal string in major units
func (m *Money) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		s = string(b)
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
