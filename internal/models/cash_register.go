package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegister is a row of cash_registers. Movements live in cash_movements.
type CashRegister struct {
	RegisterID   string          `db:"register_id"`
	RegisterDate time.Time       `db:"register_date"` // DATE column
	State        string          `db:"state"`
	OpenedAt     time.Time       `db:"opened_at"`
	OpenedBy     string          `db:"opened_by"`
	InitialFloat decimal.Decimal `db:"initial_float"`
	OpeningNotes string          `db:"opening_notes"`

	ClosedAt          *time.Time          `db:"closed_at"`
	ClosedBy          *string             `db:"closed_by"`
	ClosingNotes      *string             `db:"closing_notes"`
	DenominationCount []byte              `db:"denomination_count"` // JSONB, nominal in cents -> quantity
	ActualBalance     decimal.NullDecimal `db:"actual_balance"`
	Difference        decimal.NullDecimal `db:"difference"`
	Classification    *string             `db:"classification"`

	TotalIncome         decimal.Decimal `db:"total_income"`
	TotalExpense        decimal.Decimal `db:"total_expense"`
	TheoreticalBalance  decimal.Decimal `db:"theoretical_balance"`
	PaymentMethodTotals []byte          `db:"payment_method_totals"` // JSONB, method -> amount
	Version             int64           `db:"version"`
	AuditFields
}

// Movement is a row of cash_movements.
type Movement struct {
	MovementID    string          `db:"movement_id"`
	RegisterID    string          `db:"register_id"`
	Sequence      int             `db:"sequence"`
	Kind          string          `db:"kind"`
	Concept       string          `db:"concept"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentMethod string          `db:"payment_method"`
	ReceiptNumber *string         `db:"receipt_number"`
	InvoiceNumber *string         `db:"invoice_number"`
	PatientID     *string         `db:"patient_id"`
	Timestamp     time.Time       `db:"movement_timestamp"`
	CreatedBy     string          `db:"created_by"`
}

// DocumentSequence is a row of document_sequences.
type DocumentSequence struct {
	Series     string    `db:"series"`
	Year       int       `db:"year"`
	EntityType string    `db:"entity_type"`
	LastIssued int64     `db:"last_issued"`
	UpdatedAt  time.Time `db:"updated_at"`
}
