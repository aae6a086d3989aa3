package headerrors

import (
	"net/http"

	"go-elms/internal/shared/apperror"
)

var (
	ErrHeadNotFound = apperror.New(
		apperror.CodeNotFound,
		"department head not found",
		http.StatusNotFound,
	)
	ErrHeadEmployeeIDExists = apperror.New(
		apperror.CodeDuplicateIdentifier,
		"a department head with this employee id already exists",
		http.StatusConflict,
	)
	ErrInvalidHeadID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department head id",
		http.StatusBadRequest,
	)
)
