package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "cash_registers_register_date_key"}

	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert cash register: %w", dup)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}

func TestRepositoryProvider_UsesPgxRepositories(t *testing.T) {
	repos := NewRepositoryProvider(nil)

	cashRepo, ok := repos.CashRegisterRepo.(*PgxCashRegisterRepository)
	if assert.True(t, ok) {
		assert.Nil(t, cashRepo.Pool)
	}

	_, ok = repos.SequenceRepo.(*PgxSequenceRepository)
	assert.True(t, ok)
}
