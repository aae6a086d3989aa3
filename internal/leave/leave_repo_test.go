package leave_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-elms/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Two separate mocked connections act as the pool and the transaction.
// A statement landing on the wrong one fails that mock's expectations.
func TestLeaveRepository_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("create rides the caller's transaction", func(t *testing.T) {
		poolDB, poolMock, err := sqlmock.New()
		require.NoError(t, err)
		defer poolDB.Close()

		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{
			SkipDefaultTransaction: true,
			Logger:                 logger.Discard,
		})
		require.NoError(t, err)

		txDB, txMock, err := sqlmock.New()
		require.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		txMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "leave_requests"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		txMock.ExpectCommit()

		tx, err := txDB.Begin()
		require.NoError(t, err)

		repo := leave.NewRepository(gdb)
		l := &leave.LeaveRequest{
			EmployeeID:  "EMP001",
			Department:  "Engineering",
			LeaveType:   "Annual",
			StartDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
			Days:        3,
			Status:      leave.StatusPending,
			AppliedDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		}
		assert.NoError(t, repo.WithTx(tx).Create(ctx, l))
		assert.Equal(t, uint64(7), l.ID)
		assert.NoError(t, tx.Commit())

		// Nothing may bypass the transaction onto the pool.
		assert.NoError(t, poolMock.ExpectationsWereMet())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})

	t.Run("guarded status update rides the caller's transaction", func(t *testing.T) {
		poolDB, poolMock, err := sqlmock.New()
		require.NoError(t, err)
		defer poolDB.Close()

		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{
			SkipDefaultTransaction: true,
			Logger:                 logger.Discard,
		})
		require.NoError(t, err)

		txDB, txMock, err := sqlmock.New()
		require.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		txMock.ExpectExec(regexp.QuoteMeta(`UPDATE "leave_requests"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectCommit()

		tx, err := txDB.Begin()
		require.NoError(t, err)

		repo := leave.NewRepository(gdb)
		decided, err := repo.WithTx(tx).UpdateStatusIfPending(ctx, 9, leave.StatusApproved)
		assert.NoError(t, err)
		assert.True(t, decided)
		assert.NoError(t, tx.Commit())

		assert.NoError(t, poolMock.ExpectationsWereMet())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})

	t.Run("guarded update reports a lost race", func(t *testing.T) {
		poolDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer poolDB.Close()

		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{
			SkipDefaultTransaction: true,
			Logger:                 logger.Discard,
		})
		require.NoError(t, err)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "leave_requests"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := leave.NewRepository(gdb)
		decided, err := repo.UpdateStatusIfPending(ctx, 9, leave.StatusRejected)
		assert.NoError(t, err)
		assert.False(t, decided)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
