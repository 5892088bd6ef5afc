package domain

import (
	"fmt"
	"sort"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MaxDenominationQuantity bounds a single tally so totals stay far from int64 overflow.
const MaxDenominationQuantity int64 = 1_000_000

// Nominal is the face value of a note or coin, in cents.
type Nominal int64

// NoteNominals are the accepted banknotes, highest first.
var NoteNominals = []Nominal{50000, 20000, 10000, 5000, 2000, 1000, 500}

// CoinNominals are the accepted coins, highest first.
var CoinNominals = []Nominal{200, 100, 50, 20, 10, 5, 2, 1}

// IsValid reports whether n is an accepted note or coin.
func (n Nominal) IsValid() bool {
	for _, v := range NoteNominals {
		if n == v {
			return true
		}
	}
	for _, v := range CoinNominals {
		if n == v {
			return true
		}
	}
	return false
}

// IsNote reports whether n is a banknote.
func (n Nominal) IsNote() bool {
	for _, v := range NoteNominals {
		if n == v {
			return true
		}
	}
	return false
}

// Decimal returns the face value in currency units.
func (n Nominal) Decimal() decimal.Decimal {
	return decimal.New(int64(n), -2)
}

// String renders the face value without trailing zeros ("500", "0.5", "0.05").
func (n Nominal) String() string {
	return n.Decimal().String()
}

// MarshalText lets nominals be used as JSON object keys.
func (n Nominal) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText parses a face value such as "20", "0.50" or "0.05".
func (n *Nominal) UnmarshalText(text []byte) error {
	parsed, err := ParseNominal(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// ParseNominal parses a face value expressed in currency units.
func ParseNominal(s string) (Nominal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, apperrors.NewValidationError("denominationCount", fmt.Sprintf("invalid nominal '%s'", s))
	}
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, apperrors.NewValidationError("denominationCount", fmt.Sprintf("invalid nominal '%s'", s))
	}
	n := Nominal(cents.IntPart())
	if !n.IsValid() {
		return 0, apperrors.NewValidationError("denominationCount", fmt.Sprintf("unsupported nominal '%s'", s))
	}
	return n, nil
}

// DenominationCount is a physical tally of notes and coins taken at close time.
type DenominationCount struct {
	Counts map[Nominal]int64 `json:"counts"`
}

// NewDenominationCount validates counts and returns a count holding a private copy of them.
func NewDenominationCount(counts map[Nominal]int64) (DenominationCount, error) {
	dc := DenominationCount{Counts: make(map[Nominal]int64, len(counts))}
	for n, q := range counts {
		dc.Counts[n] = q
	}
	if err := dc.Validate(); err != nil {
		return DenominationCount{}, err
	}
	return dc, nil
}

// Validate checks that every nominal is accepted and every quantity is within bounds.
func (d DenominationCount) Validate() error {
	for _, n := range d.Nominals() {
		if !n.IsValid() {
			return apperrors.NewValidationError("denominationCount", fmt.Sprintf("unsupported nominal %d cents", int64(n)))
		}
		q := d.Counts[n]
		if q < 0 {
			return apperrors.NewValidationError("denominationCount", fmt.Sprintf("quantity for %s must not be negative", n))
		}
		if q > MaxDenominationQuantity {
			return apperrors.NewValidationError("denominationCount", fmt.Sprintf("quantity for %s is too large", n))
		}
	}
	return nil
}

// Nominals returns the counted nominals, highest first.
func (d DenominationCount) Nominals() []Nominal {
	out := make([]Nominal, 0, len(d.Counts))
	for n := range d.Counts {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// TotalCents is Σ(quantity × nominal) in integer cents.
func (d DenominationCount) TotalCents() int64 {
	var total int64
	for n, q := range d.Counts {
		total += int64(n) * q
	}
	return total
}

// Total is the counted amount in currency units with exactly two decimal places.
func (d DenominationCount) Total() decimal.Decimal {
	return decimal.New(d.TotalCents(), -2)
}

// NotesTotal and CoinsTotal split the total for closing reports.
func (d DenominationCount) NotesTotal() decimal.Decimal {
	var cents int64
	for n, q := range d.Counts {
		if n.IsNote() {
			cents += int64(n) * q
		}
	}
	return decimal.New(cents, -2)
}

func (d DenominationCount) CoinsTotal() decimal.Decimal {
	return d.Total().Sub(d.NotesTotal())
}

// Clone returns a deep copy.
func (d DenominationCount) Clone() DenominationCount {
	out := DenominationCount{Counts: make(map[Nominal]int64, len(d.Counts))}
	for n, q := range d.Counts {
		out.Counts[n] = q
	}
	return out
}
