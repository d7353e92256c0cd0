package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUnitOfWork_Do(t *testing.T) {
	cases := []struct {
		name      string
		fnErr     error
		expectErr error
	}{
		{name: "Commit"},
		{name: "RollbackOnError", fnErr: errors.New("boom"), expectErr: errors.New("boom")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			uow := NewUnitOfWork(db)

			mock.ExpectBegin()
			if tc.fnErr != nil {
				mock.ExpectRollback()
			} else {
				mock.ExpectCommit()
			}

			var sawTx bool
			err := uow.Do(context.Background(), func(ctx context.Context) error {
				tx, ok := ctx.Value(TxKey).(*gorm.DB)
				sawTx = ok && tx != nil
				return tc.fnErr
			})

			require.True(t, sawTx)
			if tc.expectErr != nil {
				require.EqualError(t, err, tc.expectErr.Error())
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUnitOfWork_Do_JoinsOuterTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUnitOfWork(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := uow.Do(context.Background(), func(outer context.Context) error {
		return uow.Do(outer, func(inner context.Context) error {
			calls++
			require.Same(t, outer.Value(TxKey), inner.Value(TxKey))
			return nil
		})
	})

	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}
