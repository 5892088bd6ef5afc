package pgsql

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/clinic_cash_register/internal/apperrors"
	"github.com/SscSPs/clinic_cash_register/internal/core/domain"
	portsrepo "github.com/SscSPs/clinic_cash_register/internal/core/ports/repositories"
	"github.com/SscSPs/clinic_cash_register/internal/models"
	"github.com/SscSPs/clinic_cash_register/internal/utils/mapping"
	"github.com/SscSPs/clinic_cash_register/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const registerColumns = `
	register_id, register_date, state, opened_at, opened_by, initial_float, opening_notes,
	closed_at, closed_by, closing_notes, denomination_count, actual_balance, difference, classification,
	total_income, total_expense, theoretical_balance, payment_method_totals, version,
	created_at, created_by, last_updated_at, last_updated_by`

const movementColumns = `
	movement_id, register_id, sequence, kind, concept, amount, payment_method,
	receipt_number, invoice_number, patient_id, movement_timestamp, created_by`

const insertMovementQuery = `
	INSERT INTO cash_movements (` + movementColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

type PgxCashRegisterRepository struct {
	BaseRepository
}

// newPgxCashRegisterRepository creates a new repository for cash registers and their movements.
func newPgxCashRegisterRepository(pool *pgxpool.Pool) *PgxCashRegisterRepository {
	return &PgxCashRegisterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCashRegisterRepository implements portsrepo.CashRegisterRepositoryFacade
var _ portsrepo.CashRegisterRepositoryFacade = (*PgxCashRegisterRepository)(nil)

// CreateCashRegister inserts the register row and its initial movements in one transaction.
// The UNIQUE(register_date) constraint decides concurrent opens of the same day.
func (r *PgxCashRegisterRepository) CreateCashRegister(ctx context.Context, reg domain.CashRegister) error {
	m, err := mapping.ToModelCashRegister(reg)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to map cash register "+reg.RegisterID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	query := `
		INSERT INTO cash_registers (` + registerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);`
	_, err = tx.Exec(ctx, query,
		m.RegisterID,
		m.RegisterDate,
		m.State,
		m.OpenedAt,
		m.OpenedBy,
		m.InitialFloat,
		m.OpeningNotes,
		m.ClosedAt,
		m.ClosedBy,
		m.ClosingNotes,
		m.DenominationCount,
		m.ActualBalance,
		m.Difference,
		m.Classification,
		m.TotalIncome,
		m.TotalExpense,
		m.TheoreticalBalance,
		m.PaymentMethodTotals,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("a cash register already exists for " + reg.Date.Format(time.DateOnly))
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert cash register "+reg.RegisterID, err)
	}

	if err := r.insertMovements(ctx, tx, reg.Movements); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCashRegisterRepository) insertMovements(ctx context.Context, tx pgx.Tx, movements []domain.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, mv := range movements {
		m := mapping.ToModelMovement(mv)
		batch.Queue(insertMovementQuery,
			m.MovementID,
			m.RegisterID,
			m.Sequence,
			m.Kind,
			m.Concept,
			m.Amount,
			m.PaymentMethod,
			m.ReceiptNumber,
			m.InvoiceNumber,
			m.PatientID,
			m.Timestamp,
			m.CreatedBy,
		)
	}
	// Close the batch results to surface the error of any queued insert
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert movements", err)
	}
	return nil
}

// FindCashRegisterByID retrieves a register and its movements.
func (r *PgxCashRegisterRepository) FindCashRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	return r.findOne(ctx, r.Pool, "register_id = $1", registerID, false)
}

// FindCashRegisterByDate retrieves the register of a business day.
func (r *PgxCashRegisterRepository) FindCashRegisterByDate(ctx context.Context, date time.Time) (*domain.CashRegister, error) {
	return r.findOne(ctx, r.Pool, "register_date = $1", domain.NormalizeDate(date), false)
}

func (r *PgxCashRegisterRepository) findOne(ctx context.Context, q querier, where string, arg any, forUpdate bool) (*domain.CashRegister, error) {
	query := "SELECT " + registerColumns + " FROM cash_registers WHERE " + where
	if forUpdate {
		query += " FOR UPDATE"
	}
	m, err := scanCashRegister(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("cash register not found")
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find cash register", err)
	}

	movements, err := r.findMovements(ctx, q, []string{m.RegisterID})
	if err != nil {
		return nil, err
	}

	reg, err := mapping.ToDomainCashRegister(m, movements[m.RegisterID])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to map cash register "+m.RegisterID, err)
	}
	return &reg, nil
}

func scanCashRegister(row pgx.Row) (models.CashRegister, error) {
	var m models.CashRegister
	err := row.Scan(
		&m.RegisterID,
		&m.RegisterDate,
		&m.State,
		&m.OpenedAt,
		&m.OpenedBy,
		&m.InitialFloat,
		&m.OpeningNotes,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.ClosingNotes,
		&m.DenominationCount,
		&m.ActualBalance,
		&m.Difference,
		&m.Classification,
		&m.TotalIncome,
		&m.TotalExpense,
		&m.TheoreticalBalance,
		&m.PaymentMethodTotals,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// findMovements loads the movements of several registers, grouped by register and in sequence order.
func (r *PgxCashRegisterRepository) findMovements(ctx context.Context, q querier, registerIDs []string) (map[string][]models.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM cash_movements
		WHERE register_id = ANY($1)
		ORDER BY register_id, sequence;`
	rows, err := q.Query(ctx, query, registerIDs)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query movements", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Movement, len(registerIDs))
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(
			&m.MovementID,
			&m.RegisterID,
			&m.Sequence,
			&m.Kind,
			&m.Concept,
			&m.Amount,
			&m.PaymentMethod,
			&m.ReceiptNumber,
			&m.InvoiceNumber,
			&m.PatientID,
			&m.Timestamp,
			&m.CreatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan movement row", err)
		}
		out[m.RegisterID] = append(out[m.RegisterID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating movement rows", err)
	}
	return out, nil
}

// MutateCashRegister locks the register row with SELECT ... FOR UPDATE, applies fn and writes the
// register row plus any movements fn appended, all in one transaction. Concurrent callers for the
// same register wait on the row lock, so fn always sees the latest committed movement list.
func (r *PgxCashRegisterRepository) MutateCashRegister(ctx context.Context, registerID string, fn portsrepo.CashRegisterMutation) (*domain.CashRegister, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	reg, err := r.findOne(ctx, tx, "register_id = $1", registerID, true)
	if err != nil {
		return nil, err
	}
	persisted := len(reg.Movements)
	expectedVersion := reg.Version

	if err := fn(reg); err != nil {
		return nil, err
	}
	if len(reg.Movements) < persisted {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "movements of cash register "+registerID+" cannot be removed", nil)
	}

	m, err := mapping.ToModelCashRegister(*reg)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to map cash register "+registerID, err)
	}

	query := `
		UPDATE cash_registers SET
			state = $2, closed_at = $3, closed_by = $4, closing_notes = $5, denomination_count = $6,
			actual_balance = $7, difference = $8, classification = $9,
			total_income = $10, total_expense = $11, theoretical_balance = $12, payment_method_totals = $13,
			version = $14, last_updated_at = $15, last_updated_by = $16
		WHERE register_id = $1 AND version = $17;`
	tag, err := tx.Exec(ctx, query,
		m.RegisterID,
		m.State,
		m.ClosedAt,
		m.ClosedBy,
		m.ClosingNotes,
		m.DenominationCount,
		m.ActualBalance,
		m.Difference,
		m.Classification,
		m.TotalIncome,
		m.TotalExpense,
		m.TheoreticalBalance,
		m.PaymentMethodTotals,
		m.Version,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to update cash register "+registerID, err)
	}
	if tag.RowsAffected() != 1 {
		// Cannot happen while the row lock is held; guards against writers that bypass it.
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "cash register "+registerID+" was modified concurrently", nil)
	}

	if err := r.insertMovements(ctx, tx, reg.Movements[persisted:]); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return reg, nil
}

// ListCashRegisters retrieves a page of registers, newest day first, using a date cursor.
func (r *PgxCashRegisterRepository) ListCashRegisters(ctx context.Context, filter domain.RegisterFilter, limit int, nextToken *string) ([]domain.CashRegister, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	conditions, args := filterConditions(filter)
	if nextToken != nil && *nextToken != "" {
		lastDate, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", "is invalid")
		}
		args = append(args, lastDate)
		conditions = append(conditions, "register_date < $"+strconv.Itoa(len(args)))
	}

	query := "SELECT " + registerColumns + " FROM cash_registers"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY register_date DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query cash registers", err)
	}
	modelRegisters := make([]models.CashRegister, 0, fetchLimit)
	for rows.Next() {
		m, err := scanCashRegister(rows)
		if err != nil {
			rows.Close()
			return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan cash register row", err)
		}
		modelRegisters = append(modelRegisters, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating cash register rows", err)
	}

	var nextTokenVal *string
	if len(modelRegisters) > limit {
		modelRegisters = modelRegisters[:limit]
		token := pagination.EncodeDateBasedToken(modelRegisters[limit-1].RegisterDate)
		nextTokenVal = &token
	}
	if len(modelRegisters) == 0 {
		return []domain.CashRegister{}, nil, nil
	}

	ids := make([]string, len(modelRegisters))
	for i, m := range modelRegisters {
		ids[i] = m.RegisterID
	}
	movements, err := r.findMovements(ctx, r.Pool, ids)
	if err != nil {
		return nil, nil, err
	}

	registers := make([]domain.CashRegister, len(modelRegisters))
	for i, m := range modelRegisters {
		reg, err := mapping.ToDomainCashRegister(m, movements[m.RegisterID])
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to map cash register "+m.RegisterID, err)
		}
		registers[i] = reg
	}
	return registers, nextTokenVal, nil
}

// SummarizeCashRegisters aggregates persisted totals; movements are not re-read.
func (r *PgxCashRegisterRepository) SummarizeCashRegisters(ctx context.Context, filter domain.RegisterFilter) (*domain.RegisterStatistics, error) {
	conditions, args := filterConditions(filter)
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_income), 0),
			COALESCE(SUM(total_expense), 0),
			COALESCE(SUM(theoretical_balance), 0),
			COALESCE(SUM(actual_balance), 0),
			COALESCE(SUM(difference), 0),
			COUNT(*) FILTER (WHERE classification = 'BALANCED'),
			COUNT(*) FILTER (WHERE classification = 'WARNING'),
			COUNT(*) FILTER (WHERE classification = 'DISCREPANCY')
		FROM cash_registers` + where + `;`

	stats := &domain.RegisterStatistics{
		From:                filter.From,
		To:                  filter.To,
		PaymentMethodTotals: make(map[domain.PaymentMethod]decimal.Decimal, len(domain.PaymentMethods)),
		Classifications:     make(map[domain.DifferenceClass]int, 3),
	}
	var count, balanced, warning, discrepancy int64
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&count,
		&stats.TotalIncome,
		&stats.TotalExpense,
		&stats.TotalTheoretical,
		&stats.TotalActual,
		&stats.TotalDifference,
		&balanced,
		&warning,
		&discrepancy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to aggregate cash registers", err)
	}
	stats.RegisterCount = int(count)
	stats.Classifications[domain.DifferenceBalanced] = int(balanced)
	stats.Classifications[domain.DifferenceWarning] = int(warning)
	stats.Classifications[domain.DifferenceDiscrepancy] = int(discrepancy)

	for _, pm := range domain.PaymentMethods {
		stats.PaymentMethodTotals[pm] = decimal.Zero
	}
	pmQuery := `
		SELECT t.key, COALESCE(SUM(t.value::numeric), 0)
		FROM cash_registers, jsonb_each_text(payment_method_totals) AS t(key, value)` + where + `
		GROUP BY t.key;`
	rows, err := r.Pool.Query(ctx, pmQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to aggregate payment method totals", err)
	}
	defer rows.Close()
	for rows.Next() {
		var method string
		var total decimal.Decimal
		if err := rows.Scan(&method, &total); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan payment method total", err)
		}
		stats.PaymentMethodTotals[domain.PaymentMethod(method)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating payment method totals", err)
	}
	return stats, nil
}

func filterConditions(filter domain.RegisterFilter) ([]string, []any) {
	var conditions []string
	var args []any
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conditions = append(conditions, "register_date >= $"+strconv.Itoa(len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conditions = append(conditions, "register_date <= $"+strconv.Itoa(len(args)))
	}
	if len(filter.States) > 0 {
		states := make([]string, len(filter.States))
		for i, s := range filter.States {
			states[i] = string(s)
		}
		args = append(args, states)
		conditions = append(conditions, "state = ANY($"+strconv.Itoa(len(args))+")")
	}
	return conditions, args
}
