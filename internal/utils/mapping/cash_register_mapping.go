package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/SscSPs/clinic_cash_register/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelCashRegister converts a domain CashRegister to its cash_registers row.
func ToModelCashRegister(d domain.CashRegister) (models.CashRegister, error) {
	pmTotals, err := json.Marshal(d.PaymentMethodTotals)
	if err != nil {
		return models.CashRegister{}, fmt.Errorf("encode payment method totals: %w", err)
	}

	m := models.CashRegister{
		RegisterID:          d.RegisterID,
		RegisterDate:        d.Date,
		State:               string(d.State),
		OpenedAt:            d.Opening.OpenedAt,
		OpenedBy:            d.Opening.OpenedBy,
		InitialFloat:        d.Opening.InitialFloat,
		OpeningNotes:        d.Opening.Notes,
		TotalIncome:         d.Totals.Income,
		TotalExpense:        d.Totals.Expense,
		TheoreticalBalance:  d.Totals.TheoreticalBalance,
		PaymentMethodTotals: pmTotals,
		Version:             d.Version,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}

	if c := d.Closing; c != nil {
		closedAt := c.ClosedAt
		classification := string(c.Classification)
		m.ClosedAt = &closedAt
		m.ClosedBy = &c.ClosedBy
		m.ClosingNotes = &c.Notes
		m.ActualBalance = decimal.NewNullDecimal(c.ActualBalance)
		m.Difference = decimal.NewNullDecimal(c.Difference)
		m.Classification = &classification
		if c.DenominationCount != nil {
			counts, err := json.Marshal(c.DenominationCount.Counts)
			if err != nil {
				return models.CashRegister{}, fmt.Errorf("encode denomination count: %w", err)
			}
			m.DenominationCount = counts
		}
	}
	return m, nil
}

// ToDomainCashRegister converts a cash_registers row and its movement rows to a domain CashRegister.
func ToDomainCashRegister(m models.CashRegister, movements []models.Movement) (domain.CashRegister, error) {
	d := domain.CashRegister{
		RegisterID: m.RegisterID,
		Date:       domain.NormalizeDate(m.RegisterDate),
		State:      domain.RegisterState(m.State),
		Opening: domain.Opening{
			OpenedAt:     m.OpenedAt,
			OpenedBy:     m.OpenedBy,
			InitialFloat: m.InitialFloat,
			Notes:        m.OpeningNotes,
		},
		Movements: ToDomainMovementSlice(movements),
		Totals: domain.Totals{
			Income:             m.TotalIncome,
			Expense:            m.TotalExpense,
			TheoreticalBalance: m.TheoreticalBalance,
			ActualBalance:      decimal.Zero,
		},
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}

	d.PaymentMethodTotals = make(map[domain.PaymentMethod]decimal.Decimal, len(domain.PaymentMethods))
	if len(m.PaymentMethodTotals) > 0 {
		if err := json.Unmarshal(m.PaymentMethodTotals, &d.PaymentMethodTotals); err != nil {
			return domain.CashRegister{}, fmt.Errorf("decode payment method totals of register %s: %w", m.RegisterID, err)
		}
	}

	if m.ClosedAt != nil {
		c := &domain.Closing{
			ClosedAt:      *m.ClosedAt,
			ActualBalance: m.ActualBalance.Decimal,
			Difference:    m.Difference.Decimal,
		}
		if m.ClosedBy != nil {
			c.ClosedBy = *m.ClosedBy
		}
		if m.ClosingNotes != nil {
			c.Notes = *m.ClosingNotes
		}
		if m.Classification != nil {
			c.Classification = domain.DifferenceClass(*m.Classification)
		}
		if len(m.DenominationCount) > 0 {
			var counts map[domain.Nominal]int64
			if err := json.Unmarshal(m.DenominationCount, &counts); err != nil {
				return domain.CashRegister{}, fmt.Errorf("decode denomination count of register %s: %w", m.RegisterID, err)
			}
			dc := domain.DenominationCount{Counts: counts}
			c.DenominationCount = &dc
		}
		d.Closing = c
		d.Totals.ActualBalance = c.ActualBalance
	}
	return d, nil
}

// ToModelMovement converts a domain Movement to its cash_movements row.
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:    d.MovementID,
		RegisterID:    d.RegisterID,
		Sequence:      d.Sequence,
		Kind:          string(d.Kind),
		Concept:       d.Concept,
		Amount:        d.Amount,
		PaymentMethod: string(d.PaymentMethod),
		ReceiptNumber: d.ReceiptNumber,
		InvoiceNumber: d.InvoiceNumber,
		PatientID:     d.PatientID,
		Timestamp:     d.Timestamp,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainMovement converts a cash_movements row to a domain Movement.
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:    m.MovementID,
		RegisterID:    m.RegisterID,
		Sequence:      m.Sequence,
		Kind:          domain.MovementKind(m.Kind),
		Concept:       m.Concept,
		Amount:        m.Amount,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		ReceiptNumber: m.ReceiptNumber,
		InvoiceNumber: m.InvoiceNumber,
		PatientID:     m.PatientID,
		Timestamp:     m.Timestamp,
		CreatedBy:     m.CreatedBy,
	}
}

// ToDomainMovementSlice converts movement rows, keeping their order.
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	out := make([]domain.Movement, len(ms))
	for i, m := range ms {
		out[i] = ToDomainMovement(m)
	}
	return out
}
