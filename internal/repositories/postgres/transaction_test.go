package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTransactionRetriesDeadlocks(t *testing.T) {
	db := newTestDB(t)

	attempts := 0
	err := Transaction(context.Background(), db, 3, func(tx *gorm.DB) error {
		attempts++
		if attempts < 3 {
			return errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestTransactionGivesUp(t *testing.T) {
	db := newTestDB(t)

	attempts := 0
	err := Transaction(context.Background(), db, 2, func(tx *gorm.DB) error {
		attempts++
		return errors.New("could not serialize access due to concurrent update")
	})
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestTransactionDoesNotRetryDomainErrors(t *testing.T) {
	db := newTestDB(t)
	errDomain := errors.New("forbidden")

	attempts := 0
	err := Transaction(context.Background(), db, 3, func(tx *gorm.DB) error {
		attempts++
		return errDomain
	})
	assert.ErrorIs(t, err, errDomain)
	assert.Equal(t, 1, attempts)
}
