package dto

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	"github.com/SscSPs/clinic_cash_register/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DateFormat is the wire format of business days.
const DateFormat = time.DateOnly

// OpenCashRegisterRequest defines the data needed to open the register of a day.
type OpenCashRegisterRequest struct {
	Date         string          `json:"date" binding:"omitempty,datetime=2006-01-02"` // Optional, defaults to today in the clinic timezone
	InitialFloat decimal.Decimal `json:"initialFloat" swaggertype:"string" example:"200.00"`
	Notes        string          `json:"notes" binding:"max=500"`
}

// RecordMovementRequest defines a caller-submitted income or expense.
type RecordMovementRequest struct {
	Kind          domain.MovementKind  `json:"kind" binding:"required" example:"INCOME"`
	Concept       string               `json:"concept" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" swaggertype:"string" example:"65.00"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required" example:"CASH"`
	ReceiptNumber *string              `json:"receiptNumber"`
	InvoiceNumber *string              `json:"invoiceNumber"`
	PatientID     *string              `json:"patientID"`
}

// ToMovementInput converts the request to its domain form.
func (r RecordMovementRequest) ToMovementInput() domain.MovementInput {
	return domain.MovementInput{
		Kind:          r.Kind,
		Concept:       r.Concept,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		ReceiptNumber: r.ReceiptNumber,
		InvoiceNumber: r.InvoiceNumber,
		PatientID:     r.PatientID,
	}
}

// CloseCashRegisterRequest defines the closing count and notes.
// DenominationCount maps a face value ("20", "0.50") to a quantity; omit it to close without a count.
type CloseCashRegisterRequest struct {
	DenominationCount map[string]int64 `json:"denominationCount"`
	Notes             string           `json:"notes" binding:"max=1000"`
}

// ToDenominationCount parses the count, returning nil when none was supplied.
func (r CloseCashRegisterRequest) ToDenominationCount() (*domain.DenominationCount, error) {
	if r.DenominationCount == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(r.DenominationCount))
	for k := range r.DenominationCount {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	counts := make(map[domain.Nominal]int64, len(keys))
	seen := make(map[domain.Nominal]string, len(keys))
	for _, k := range keys {
		n, err := domain.ParseNominal(k)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[n]; ok {
			return nil, apperrors.NewValidationError("denominationCount", fmt.Sprintf("nominal '%s' given twice ('%s' and '%s')", n, prev, k))
		}
		seen[n] = k
		q := r.DenominationCount[k]
		if q < 0 || q > domain.MaxDenominationQuantity {
			return nil, apperrors.NewValidationError("denominationCount", fmt.Sprintf("quantity for '%s' must be between 0 and %d", k, domain.MaxDenominationQuantity))
		}
		counts[n] = q
	}
	dc, err := domain.NewDenominationCount(counts)
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

// ListCashRegistersParams defines the query parameters for listing registers.
type ListCashRegistersParams struct {
	From      string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	State     string  `form:"state" binding:"omitempty,oneof=OPEN CLOSED AUDITED"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// StatisticsParams defines the date range of an aggregation.
type StatisticsParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID     string               `json:"movementID"`
	Sequence       int                  `json:"sequence"`
	Kind           domain.MovementKind  `json:"kind"`
	Concept        string               `json:"concept"`
	Amount         decimal.Decimal      `json:"amount" swaggertype:"string"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod"`
	ReceiptNumber  *string              `json:"receiptNumber,omitempty"`
	InvoiceNumber  *string              `json:"invoiceNumber,omitempty"`
	PatientID      *string              `json:"patientID,omitempty"`
	Timestamp      time.Time            `json:"timestamp"`
	CreatedBy      string               `json:"createdBy"`
	RunningBalance decimal.Decimal      `json:"runningBalance" swaggertype:"string"`
}

// TotalsResponse mirrors domain.Totals.
type TotalsResponse struct {
	Income             decimal.Decimal `json:"income" swaggertype:"string"`
	Expense            decimal.Decimal `json:"expense" swaggertype:"string"`
	TheoreticalBalance decimal.Decimal `json:"theoreticalBalance" swaggertype:"string"`
	ActualBalance      decimal.Decimal `json:"actualBalance" swaggertype:"string"`
}

// OpeningResponse mirrors domain.Opening.
type OpeningResponse struct {
	OpenedAt     time.Time       `json:"openedAt"`
	OpenedBy     string          `json:"openedBy"`
	InitialFloat decimal.Decimal `json:"initialFloat" swaggertype:"string"`
	Notes        string          `json:"notes"`
}

// ClosingResponse mirrors domain.Closing with the count split into notes and coins.
type ClosingResponse struct {
	ClosedAt          time.Time              `json:"closedAt"`
	ClosedBy          string                 `json:"closedBy"`
	Notes             string                 `json:"notes"`
	DenominationCount map[string]int64       `json:"denominationCount,omitempty"`
	NotesTotal        *decimal.Decimal       `json:"notesTotal,omitempty" swaggertype:"string"`
	CoinsTotal        *decimal.Decimal       `json:"coinsTotal,omitempty" swaggertype:"string"`
	ActualBalance     decimal.Decimal        `json:"actualBalance" swaggertype:"string"`
	Difference        decimal.Decimal        `json:"difference" swaggertype:"string"`
	Classification    domain.DifferenceClass `json:"classification"`
}

// CashRegisterSummaryResponse is a register without its movements.
type CashRegisterSummaryResponse struct {
	RegisterID          string               `json:"registerID"`
	Date                string               `json:"date"`
	State               domain.RegisterState `json:"state"`
	Opening             OpeningResponse      `json:"opening"`
	Closing             *ClosingResponse     `json:"closing,omitempty"`
	PaymentMethodTotals map[string]string    `json:"paymentMethodTotals"`
	Totals              TotalsResponse       `json:"totals"`
	MovementCount       int                  `json:"movementCount"`
	OpenDurationSeconds int64                `json:"openDurationSeconds"`
	Version             int64                `json:"version"`
	CreatedAt           time.Time            `json:"createdAt"`
	LastUpdatedAt       time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy       string               `json:"lastUpdatedBy"`
}

// CashRegisterResponse is a register with its movements.
type CashRegisterResponse struct {
	CashRegisterSummaryResponse
	Movements []MovementResponse `json:"movements"`
}

// ListCashRegistersResponse defines a page of registers.
type ListCashRegistersResponse struct {
	Registers []CashRegisterSummaryResponse `json:"registers"`
	NextToken *string                       `json:"nextToken,omitempty"`
}

// ToCashRegisterSummaryResponse converts a domain.CashRegister to its summary DTO.
func ToCashRegisterSummaryResponse(reg *domain.CashRegister, now time.Time) CashRegisterSummaryResponse {
	pmTotals := make(map[string]string, len(domain.PaymentMethods))
	for _, pm := range domain.PaymentMethods {
		pmTotals[string(pm)] = reg.PaymentMethodTotals[pm].StringFixed(2)
	}
	res := CashRegisterSummaryResponse{
		RegisterID: reg.RegisterID,
		Date:       reg.Date.Format(DateFormat),
		State:      reg.State,
		Opening: OpeningResponse{
			OpenedAt:     reg.Opening.OpenedAt,
			OpenedBy:     reg.Opening.OpenedBy,
			InitialFloat: reg.Opening.InitialFloat,
			Notes:        reg.Opening.Notes,
		},
		PaymentMethodTotals: pmTotals,
		Totals: TotalsResponse{
			Income:             reg.Totals.Income,
			Expense:            reg.Totals.Expense,
			TheoreticalBalance: reg.Totals.TheoreticalBalance,
			ActualBalance:      reg.Totals.ActualBalance,
		},
		MovementCount:       len(reg.Movements),
		OpenDurationSeconds: int64(reg.OpenDuration(now) / time.Second),
		Version:             reg.Version,
		CreatedAt:           reg.CreatedAt,
		LastUpdatedAt:       reg.LastUpdatedAt,
		LastUpdatedBy:       reg.LastUpdatedBy,
	}
	if reg.Closing != nil {
		res.Closing = toClosingResponse(reg.Closing)
	}
	return res
}

func toClosingResponse(c *domain.Closing) *ClosingResponse {
	res := &ClosingResponse{
		ClosedAt:       c.ClosedAt,
		ClosedBy:       c.ClosedBy,
		Notes:          c.Notes,
		ActualBalance:  c.ActualBalance,
		Difference:     c.Difference,
		Classification: c.Classification,
	}
	if c.DenominationCount != nil {
		res.DenominationCount = make(map[string]int64, len(c.DenominationCount.Counts))
		for n, q := range c.DenominationCount.Counts {
			res.DenominationCount[n.String()] = q
		}
		notes := c.DenominationCount.NotesTotal()
		coins := c.DenominationCount.CoinsTotal()
		res.NotesTotal = &notes
		res.CoinsTotal = &coins
	}
	return res
}

// ToCashRegisterResponse converts a domain.CashRegister, including its movements and running balances.
func ToCashRegisterResponse(reg *domain.CashRegister, now time.Time) CashRegisterResponse {
	balances := accounting.RunningBalances(reg.Opening.InitialFloat, reg.Movements)
	movements := make([]MovementResponse, len(reg.Movements))
	for i, m := range reg.Movements {
		movements[i] = MovementResponse{
			MovementID:     m.MovementID,
			Sequence:       m.Sequence,
			Kind:           m.Kind,
			Concept:        m.Concept,
			Amount:         m.Amount,
			PaymentMethod:  m.PaymentMethod,
			ReceiptNumber:  m.ReceiptNumber,
			InvoiceNumber:  m.InvoiceNumber,
			PatientID:      m.PatientID,
			Timestamp:      m.Timestamp,
			CreatedBy:      m.CreatedBy,
			RunningBalance: balances[i],
		}
	}
	return CashRegisterResponse{
		CashRegisterSummaryResponse: ToCashRegisterSummaryResponse(reg, now),
		Movements:                   movements,
	}
}

// ToListCashRegisterSummaryResponse converts a slice of registers to summary DTOs.
func ToListCashRegisterSummaryResponse(regs []domain.CashRegister, now time.Time) []CashRegisterSummaryResponse {
	res := make([]CashRegisterSummaryResponse, len(regs))
	for i := range regs {
		res[i] = ToCashRegisterSummaryResponse(&regs[i], now)
	}
	return res
}

// StatisticsResponse represents the aggregation over a date range.
type StatisticsResponse struct {
	FromDate            string            `json:"fromDate"`
	ToDate              string            `json:"toDate"`
	RegisterCount       int               `json:"registerCount"`
	TotalIncome         decimal.Decimal   `json:"totalIncome" swaggertype:"string"`
	TotalExpense        decimal.Decimal   `json:"totalExpense" swaggertype:"string"`
	TotalTheoretical    decimal.Decimal   `json:"totalTheoretical" swaggertype:"string"`
	TotalActual         decimal.Decimal   `json:"totalActual" swaggertype:"string"`
	TotalDifference     decimal.Decimal   `json:"totalDifference" swaggertype:"string"`
	PaymentMethodTotals map[string]string `json:"paymentMethodTotals"`
	Classifications     map[string]int    `json:"classifications"`
}

// ToStatisticsResponse converts domain.RegisterStatistics to its DTO.
func ToStatisticsResponse(s *domain.RegisterStatistics) StatisticsResponse {
	pm := make(map[string]string, len(domain.PaymentMethods))
	for _, m := range domain.PaymentMethods {
		pm[string(m)] = s.PaymentMethodTotals[m].StringFixed(2)
	}
	classes := map[string]int{
		string(domain.DifferenceBalanced):    s.Classifications[domain.DifferenceBalanced],
		string(domain.DifferenceWarning):     s.Classifications[domain.DifferenceWarning],
		string(domain.DifferenceDiscrepancy): s.Classifications[domain.DifferenceDiscrepancy],
	}
	return StatisticsResponse{
		FromDate:            s.From.Format(DateFormat),
		ToDate:              s.To.Format(DateFormat),
		RegisterCount:       s.RegisterCount,
		TotalIncome:         s.TotalIncome,
		TotalExpense:        s.TotalExpense,
		TotalTheoretical:    s.TotalTheoretical,
		TotalActual:         s.TotalActual,
		TotalDifference:     s.TotalDifference,
		PaymentMethodTotals: pm,
		Classifications:     classes,
	}
}
