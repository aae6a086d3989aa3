package employeeerrors

import (
	"net/http"

	"go-elms/internal/shared/apperror"
)

var (
	ErrEmployeeIDExists = apperror.New(
		apperror.CodeDuplicateIdentifier,
		"Employee ID already exists.",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
)
