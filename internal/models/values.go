package models

import (
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Date is a calendar date as entered in a date input (YYYY-MM-DD). The empty
// value means the date was not provided.
type Date string

func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

// Time parses the date. Values stored by SQL drivers as full timestamps are
// accepted by their date prefix.
func (d Date) Time() (time.Time, bool) {
	s := strings.TrimSpace(string(d))
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Before reports whether d is strictly before other. Absent or unparsable
// dates are never before anything.
func (d Date) Before(other Date) bool {
	a, ok := d.Time()
	if !ok {
		return false
	}
	b, ok := other.Time()
	if !ok {
		return false
	}
	return a.Before(b)
}

// Money is a currency-tagged amount, used for package budgets.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

func NewMoney(amount, currency string) (*Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, err
	}
	return &Money{Amount: d, Currency: currency}, nil
}

func (m Money) String() string {
	if m.Currency == "" {
		return m.Amount.String()
	}
	return m.Currency + " " + m.Amount.String()
}

// Schema describes Money for the OpenAPI document; decimal amounts travel as
// strings so no precision is lost in JSON.
func (Money) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: huma.TypeObject,
		Properties: map[string]*huma.Schema{
			"amount": {
				Type:        huma.TypeString,
				Description: "Decimal amount",
				Pattern:     `^-?[0-9]+(\.[0-9]+)?$`,
			},
			"currency": {
				Type:        huma.TypeString,
				Description: "ISO currency code",
			},
		},
		Required: []string{"amount"},
	}
}
