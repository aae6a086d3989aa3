package employee

import (
	"errors"
	"strings"

	employeeerrors "go-elms/internal/employee/errors"
	"go-elms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError classifies store errors for callers outside the
// package; anything unrecognized is a store failure, not a client fault.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return employeeerrors.ErrEmployeeIDExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "employees_pkey") {
		return employeeerrors.ErrEmployeeIDExists
	}

	return apperror.StoreFailure(err)
}
