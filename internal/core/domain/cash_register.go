package domain

import (
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RegisterState is the lifecycle state of a daily cash register.
type RegisterState string

const (
	RegisterOpen   RegisterState = "OPEN"
	RegisterClosed RegisterState = "CLOSED"
	// RegisterAudited is declared by the business but has no transition into or out of it yet.
	RegisterAudited RegisterState = "AUDITED"
)

// IsValid reports whether s is a known state.
func (s RegisterState) IsValid() bool {
	return s == RegisterOpen || s == RegisterClosed || s == RegisterAudited
}

// DifferenceClass classifies a closing difference against the configured tolerance.
type DifferenceClass string

const (
	DifferenceBalanced    DifferenceClass = "BALANCED"
	DifferenceWarning     DifferenceClass = "WARNING"
	DifferenceDiscrepancy DifferenceClass = "DISCREPANCY"
)

// Opening is the metadata captured when the register is opened.
type Opening struct {
	OpenedAt     time.Time       `json:"openedAt"`
	OpenedBy     string          `json:"openedBy"`
	InitialFloat decimal.Decimal `json:"initialFloat"`
	Notes        string          `json:"notes"`
}

// Closing is frozen when the register is closed.
type Closing struct {
	ClosedAt          time.Time          `json:"closedAt"`
	ClosedBy          string             `json:"closedBy"`
	Notes             string             `json:"notes"`
	DenominationCount *DenominationCount `json:"denominationCount,omitempty"`
	ActualBalance     decimal.Decimal    `json:"actualBalance"`
	Difference        decimal.Decimal    `json:"difference"`
	Classification    DifferenceClass    `json:"classification"`
}

// Totals are derived from the movement list; they are never mutated independently.
type Totals struct {
	Income             decimal.Decimal `json:"income"`
	Expense            decimal.Decimal `json:"expense"`
	TheoreticalBalance decimal.Decimal `json:"theoreticalBalance"`
	ActualBalance      decimal.Decimal `json:"actualBalance"` // Zero until closed
}

// CashRegister is the per-day aggregate for one physical cash drawer.
type CashRegister struct {
	RegisterID          string                            `json:"registerID"`
	Date                time.Time                         `json:"date"` // Midnight UTC of the business day
	State               RegisterState                     `json:"state"`
	Opening             Opening                           `json:"opening"`
	Closing             *Closing                          `json:"closing,omitempty"`
	Movements           []Movement                        `json:"movements"`
	PaymentMethodTotals map[PaymentMethod]decimal.Decimal `json:"paymentMethodTotals"`
	Totals              Totals                            `json:"totals"`
	Version             int64                             `json:"version"`
	AuditFields
}

// NormalizeDate returns midnight UTC of t's calendar day as seen in t's own location.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsOpen reports whether movements may still be recorded.
func (r *CashRegister) IsOpen() bool {
	return r.State == RegisterOpen
}

// EnsureOpen returns a state error unless the register is open.
func (r *CashRegister) EnsureOpen(operation string) error {
	if r.State != RegisterOpen {
		return apperrors.NewStateError("cannot " + operation + ": cash register for " + r.Date.Format(time.DateOnly) + " is " + string(r.State))
	}
	return nil
}

// AppendMovement appends m at the end of the movement list, assigning its sequence.
// The register must be open and m must be valid; on error nothing is changed.
func (r *CashRegister) AppendMovement(m Movement) error {
	if err := r.EnsureOpen("record movement"); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	m.RegisterID = r.RegisterID
	m.Sequence = len(r.Movements) + 1
	r.Movements = append(r.Movements, m)
	return nil
}

// MarkClosed freezes the closing block and moves the register to CLOSED.
func (r *CashRegister) MarkClosed(c Closing) error {
	if err := r.EnsureOpen("close"); err != nil {
		return err
	}
	r.State = RegisterClosed
	r.Closing = &c
	return nil
}

// OpenDuration is how long the register has been (or was) open.
func (r *CashRegister) OpenDuration(now time.Time) time.Duration {
	end := now
	if r.Closing != nil {
		end = r.Closing.ClosedAt
	}
	if end.Before(r.Opening.OpenedAt) {
		return 0
	}
	return end.Sub(r.Opening.OpenedAt)
}

// Clone returns a deep copy so callers can mutate it without affecting the original.
func (r *CashRegister) Clone() *CashRegister {
	out := *r
	out.Movements = make([]Movement, len(r.Movements))
	copy(out.Movements, r.Movements)
	out.PaymentMethodTotals = make(map[PaymentMethod]decimal.Decimal, len(r.PaymentMethodTotals))
	for k, v := range r.PaymentMethodTotals {
		out.PaymentMethodTotals[k] = v
	}
	if r.Closing != nil {
		c := *r.Closing
		if c.DenominationCount != nil {
			dc := c.DenominationCount.Clone()
			c.DenominationCount = &dc
		}
		out.Closing = &c
	}
	return &out
}

// RegisterFilter narrows register listings and aggregations.
type RegisterFilter struct {
	From   time.Time       // Inclusive, normalized
	To     time.Time       // Inclusive, normalized
	States []RegisterState // Empty means any state
}
