package head

import (
	"errors"
	"strings"

	headerrors "go-elms/internal/head/errors"
	"go-elms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError classifies store errors; anything unrecognized is a
// store failure, not a client fault.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return headerrors.ErrHeadNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_head_employee_id" {
			return headerrors.ErrHeadEmployeeIDExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_head_employee_id") {
		return headerrors.ErrHeadEmployeeIDExists
	}

	return apperror.StoreFailure(err)
}
