package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	// MaxConceptLength is the maximum length of a movement concept, in characters.
	MaxConceptLength = 200
	// MaxReferenceLength bounds receipt/invoice/patient references.
	MaxReferenceLength = 64
)

// MovementKind determines how a movement affects the register balance.
type MovementKind string

const (
	MovementIncome            MovementKind = "INCOME"
	MovementExpense           MovementKind = "EXPENSE"
	MovementOpeningFloat      MovementKind = "OPENING_FLOAT"
	MovementClosingAdjustment MovementKind = "CLOSING_ADJUSTMENT"
)

// IsValid reports whether k is one of the known kinds.
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementIncome, MovementExpense, MovementOpeningFloat, MovementClosingAdjustment:
		return true
	}
	return false
}

// IsSubmittable reports whether callers may record a movement of this kind.
// OPENING_FLOAT is emitted by Open and CLOSING_ADJUSTMENT is reserved for reconciliation.
func (k MovementKind) IsSubmittable() bool {
	return k == MovementIncome || k == MovementExpense
}

// PaymentMethod is the closed set of ways money can enter or leave the drawer.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCheck        PaymentMethod = "CHECK"
	PaymentMobilePay    PaymentMethod = "MOBILE_PAY"
)

// PaymentMethods lists every payment method in display order.
var PaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentCard,
	PaymentBankTransfer,
	PaymentCheck,
	PaymentMobilePay,
}

// IsValid reports whether p is one of the known payment methods.
func (p PaymentMethod) IsValid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

// Movement is a single cash-affecting event. Movements are never edited or deleted;
// corrections are recorded as new compensating movements.
type Movement struct {
	MovementID    string          `json:"movementID"`
	RegisterID    string          `json:"registerID"`
	Sequence      int             `json:"sequence"` // 1-based position within the register
	Kind          MovementKind    `json:"kind"`
	Concept       string          `json:"concept"`
	Amount        decimal.Decimal `json:"amount"` // Always positive; sign comes from Kind
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	ReceiptNumber *string         `json:"receiptNumber,omitempty"`
	InvoiceNumber *string         `json:"invoiceNumber,omitempty"`
	PatientID     *string         `json:"patientID,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	CreatedBy     string          `json:"createdBy"`
}

// SignedAmount is the movement's effect on the theoretical balance.
func (m Movement) SignedAmount() decimal.Decimal {
	switch m.Kind {
	case MovementIncome, MovementOpeningFloat:
		return m.Amount
	case MovementExpense:
		return m.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// Validate checks the stored invariants of a movement regardless of who produced it.
func (m Movement) Validate() error {
	if !m.Kind.IsValid() {
		return apperrors.NewValidationError("kind", "unknown movement kind '"+string(m.Kind)+"'")
	}
	return validateMovementFields(m.Concept, m.Amount, m.PaymentMethod)
}

// MovementInput is what an ordinary caller submits to record a movement.
type MovementInput struct {
	Kind          MovementKind
	Concept       string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	ReceiptNumber *string
	InvoiceNumber *string
	PatientID     *string
}

// Normalize trims free-text fields and drops blank references.
func (in MovementInput) Normalize() MovementInput {
	in.Concept = strings.TrimSpace(in.Concept)
	in.ReceiptNumber = trimRef(in.ReceiptNumber)
	in.InvoiceNumber = trimRef(in.InvoiceNumber)
	in.PatientID = trimRef(in.PatientID)
	return in
}

// Validate checks a caller-submitted movement. It expects a normalized input.
func (in MovementInput) Validate() error {
	if in.Kind == "" {
		return apperrors.NewValidationError("kind", "is required")
	}
	if !in.Kind.IsValid() {
		return apperrors.NewValidationError("kind", "unknown movement kind '"+string(in.Kind)+"'")
	}
	if !in.Kind.IsSubmittable() {
		return apperrors.NewValidationError("kind", "movement kind '"+string(in.Kind)+"' is reserved")
	}
	if err := validateMovementFields(in.Concept, in.Amount, in.PaymentMethod); err != nil {
		return err
	}
	refs := []struct {
		field string
		value *string
	}{
		{"receiptNumber", in.ReceiptNumber},
		{"invoiceNumber", in.InvoiceNumber},
		{"patientID", in.PatientID},
	}
	for _, ref := range refs {
		if ref.value != nil && utf8.RuneCountInString(*ref.value) > MaxReferenceLength {
			return apperrors.NewValidationError(ref.field, "is too long")
		}
	}
	return nil
}

func validateMovementFields(concept string, amount decimal.Decimal, method PaymentMethod) error {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return apperrors.NewValidationError("concept", "is required")
	}
	if utf8.RuneCountInString(concept) > MaxConceptLength {
		return apperrors.NewValidationError("concept", "must be at most 200 characters")
	}
	if err := ValidateAmount("amount", amount, false); err != nil {
		return err
	}
	if method == "" {
		return apperrors.NewValidationError("paymentMethod", "is required")
	}
	if !method.IsValid() {
		return apperrors.NewValidationError("paymentMethod", "unknown payment method '"+string(method)+"'")
	}
	return nil
}

// MaxAmount is the largest amount a NUMERIC(14, 2) column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// ValidateAmount checks that a money amount is positive (or non-negative when allowZero),
// has no more than two decimal places and does not exceed MaxAmount.
func ValidateAmount(field string, amount decimal.Decimal, allowZero bool) error {
	if allowZero {
		if amount.IsNegative() {
			return apperrors.NewValidationError(field, "must not be negative")
		}
	} else if !amount.IsPositive() {
		return apperrors.NewValidationError(field, "must be greater than zero")
	}
	if !amount.Equal(amount.Round(2)) {
		return apperrors.NewValidationError(field, "must have at most two decimal places")
	}
	if amount.GreaterThan(MaxAmount) {
		return apperrors.NewValidationError(field, "must not exceed "+MaxAmount.StringFixed(2))
	}
	return nil
}

func trimRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil
	}
	return stringPtr(v)
}
