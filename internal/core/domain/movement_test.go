package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func validInput() domain.MovementInput {
	return domain.MovementInput{
		Kind:          domain.MovementIncome,
		Concept:       "Consulta general",
		Amount:        decimal.RequireFromString("65.00"),
		PaymentMethod: domain.PaymentCash,
	}
}

func TestMovementInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *domain.MovementInput)
		wantField string
	}{
		{"valid income", func(in *domain.MovementInput) {}, ""},
		{"valid expense", func(in *domain.MovementInput) { in.Kind = domain.MovementExpense }, ""},
		{"missing kind", func(in *domain.MovementInput) { in.Kind = "" }, "kind"},
		{"unknown kind", func(in *domain.MovementInput) { in.Kind = "REFUND" }, "kind"},
		{"closing adjustment reserved", func(in *domain.MovementInput) { in.Kind = domain.MovementClosingAdjustment }, "kind"},
		{"opening float reserved", func(in *domain.MovementInput) { in.Kind = domain.MovementOpeningFloat }, "kind"},
		{"blank concept", func(in *domain.MovementInput) { in.Concept = "   " }, "concept"},
		{"concept too long", func(in *domain.MovementInput) { in.Concept = strings.Repeat("a", 201) }, "concept"},
		{"concept at limit", func(in *domain.MovementInput) { in.Concept = strings.Repeat("ñ", 200) }, ""},
		{"zero amount", func(in *domain.MovementInput) { in.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(in *domain.MovementInput) { in.Amount = decimal.RequireFromString("-1") }, "amount"},
		{"sub-cent amount", func(in *domain.MovementInput) { in.Amount = decimal.RequireFromString("1.005") }, "amount"},
		{"missing payment method", func(in *domain.MovementInput) { in.PaymentMethod = "" }, "paymentMethod"},
		{"unknown payment method", func(in *domain.MovementInput) { in.PaymentMethod = "CRYPTO" }, "paymentMethod"},
		{"receipt too long", func(in *domain.MovementInput) { in.ReceiptNumber = strPtr(strings.Repeat("R", 65)) }, "receiptNumber"},
		{"patient too long", func(in *domain.MovementInput) { in.PatientID = strPtr(strings.Repeat("P", 65)) }, "patientID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Normalize().Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			assert.Equal(t, tt.wantField, apperrors.FieldOf(err))
		})
	}
}

func TestMovementInput_Normalize(t *testing.T) {
	in := validInput()
	in.Concept = "  Consulta  "
	in.ReceiptNumber = strPtr("  ")
	in.InvoiceNumber = strPtr(" F-2024-001 ")

	out := in.Normalize()
	assert.Equal(t, "Consulta", out.Concept)
	assert.Nil(t, out.ReceiptNumber)
	require.NotNil(t, out.InvoiceNumber)
	assert.Equal(t, "F-2024-001", *out.InvoiceNumber)
	assert.Equal(t, "  Consulta  ", in.Concept, "input must not be modified")
}

func TestMovement_SignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("12.50")
	tests := []struct {
		kind domain.MovementKind
		want string
	}{
		{domain.MovementIncome, "12.5"},
		{domain.MovementOpeningFloat, "12.5"},
		{domain.MovementExpense, "-12.5"},
		{domain.MovementClosingAdjustment, "0"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			m := domain.Movement{Kind: tt.kind, Amount: amount}
			assert.Equal(t, tt.want, m.SignedAmount().String())
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, domain.ValidateAmount("initialFloat", decimal.Zero, true))
	assert.Error(t, domain.ValidateAmount("initialFloat", decimal.Zero, false))
	assert.Error(t, domain.ValidateAmount("initialFloat", decimal.RequireFromString("-0.01"), true))
	assert.NoError(t, domain.ValidateAmount("amount", decimal.RequireFromString("0.01"), false))
	assert.NoError(t, domain.ValidateAmount("amount", decimal.RequireFromString("10.500"), false))
}

func TestValidateAmount_UpperBound(t *testing.T) {
	assert.NoError(t, domain.ValidateAmount("amount", domain.MaxAmount, false))

	err := domain.ValidateAmount("amount", decimal.RequireFromString("1000000000000"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, "amount", apperrors.FieldOf(err))

	err = domain.ValidateAmount("initialFloat", decimal.RequireFromString("1e15"), true)
	assert.Equal(t, "initialFloat", apperrors.FieldOf(err))

	in := validInput()
	in.Amount = decimal.RequireFromString("1000000000000.00")
	assert.Equal(t, "amount", apperrors.FieldOf(in.Normalize().Validate()))
}
