package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	autherrors "go-elms/internal/auth/errors"
	"go-elms/internal/employee"
	employeeerrors "go-elms/internal/employee/errors"
	"go-elms/internal/head"
	"go-elms/internal/middleware"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/credentials"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	RegisterEmployee(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	LoginEmployee(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginDepartmentHead(ctx context.Context, req LoginRequest) (HeadLoginResponse, error)
}

type service struct {
	db           *sql.DB
	employeeRepo employee.Repository
	headRepo     head.Repository
	logger       *zap.Logger
}

func NewService(db *sql.DB, employeeRepo employee.Repository, headRepo head.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, employeeRepo: employeeRepo, headRepo: headRepo, logger: l}
}

// RegisterEmployee reports a duplicate id as a structured result, not an
// error; nothing is written in that case.
func (s *service) RegisterEmployee(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	s.logger.Debug("register employee requested", zap.String("employee_id", req.EmployeeID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register employee begin tx failed", zap.Error(err))
		return RegisterResponse{}, apperror.StoreFailure(err)
	}
	defer tx.Rollback()

	qtx := s.employeeRepo.WithTx(tx)

	exists, err := qtx.ExistsByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("register employee lookup failed", zap.Error(err))
		return RegisterResponse{}, apperror.StoreFailure(err)
	}
	if exists {
		s.logger.Warn("register employee duplicate id", zap.String("employee_id", req.EmployeeID))
		return RegisterResponse{Success: false, Message: "Employee ID already exists."}, nil
	}

	hashed, err := credentials.Hash(req.Password)
	if err != nil {
		return RegisterResponse{}, err
	}

	e := &employee.Employee{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Department: req.Department,
		Password:   hashed,
	}

	if err := qtx.Create(ctx, e); err != nil {
		mapped := employee.MapRepositoryError(err)
		// A concurrent registration can slip past the exists check; the
		// primary key turns it into the same duplicate outcome.
		if errors.Is(mapped, employeeerrors.ErrEmployeeIDExists) {
			s.logger.Warn("register employee duplicate id", zap.String("employee_id", req.EmployeeID))
			return RegisterResponse{Success: false, Message: "Employee ID already exists."}, nil
		}
		s.logger.Error("register employee persist failed", zap.Error(err))
		return RegisterResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register employee commit failed", zap.Error(err))
		return RegisterResponse{}, apperror.StoreFailure(err)
	}
	s.logger.Info("register employee success", zap.String("employee_id", req.EmployeeID))

	return RegisterResponse{Success: true, Message: "Registration successful"}, nil
}

// LoginEmployee answers identically for an unknown id and a wrong password.
func (s *service) LoginEmployee(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	failed := LoginResponse{Success: false, Message: "Invalid credentials"}

	e, err := s.employeeRepo.FindByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		mapped := employee.MapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			s.logger.Warn("employee login failed")
			return failed, nil
		}
		s.logger.Error("employee login lookup failed", zap.Error(err))
		return LoginResponse{}, mapped
	}

	if !credentials.Verify(req.Password, e.Password) {
		s.logger.Warn("employee login failed")
		return failed, nil
	}

	token, err := generateToken(e.EmployeeID, e.Name, e.Department, middleware.RoleEmployee)
	if err != nil {
		s.logger.Error("employee login token generation failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("employee login success", zap.String("employee_id", e.EmployeeID))
	return LoginResponse{
		Success: true,
		Message: "Login successful",
		Identity: &Identity{
			EmployeeID: e.EmployeeID,
			Name:       e.Name,
			Department: e.Department,
		},
		Token: token,
	}, nil
}

// LoginDepartmentHead refreshes last_login in the same transaction that read
// the record. Inactive accounts are rejected only after the password has
// been verified, so the distinct message never confirms an id to a guesser.
func (s *service) LoginDepartmentHead(ctx context.Context, req LoginRequest) (HeadLoginResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("head login begin tx failed", zap.Error(err))
		return HeadLoginResponse{}, apperror.StoreFailure(err)
	}
	defer tx.Rollback()

	qtx := s.headRepo.WithTx(tx)

	h, err := qtx.FindByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("head login failed")
			return HeadLoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("head login lookup failed", zap.Error(err))
		return HeadLoginResponse{}, apperror.StoreFailure(err)
	}

	if !credentials.Verify(req.Password, h.Password) {
		s.logger.Warn("head login failed")
		return HeadLoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if h.Status == head.StatusInactive {
		s.logger.Warn("head login blocked, account inactive", zap.Uint64("head_id", h.ID))
		return HeadLoginResponse{}, autherrors.ErrAccountInactive
	}

	now := time.Now().UTC()
	h.LastLogin = &now
	if err := qtx.Update(ctx, h); err != nil {
		s.logger.Error("head login last_login persist failed", zap.Error(err))
		return HeadLoginResponse{}, apperror.StoreFailure(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("head login commit failed", zap.Error(err))
		return HeadLoginResponse{}, apperror.StoreFailure(err)
	}

	token, err := generateToken(h.EmployeeID, h.Name, h.Department, middleware.RoleDepartmentHead)
	if err != nil {
		s.logger.Error("head login token generation failed", zap.Error(err))
		return HeadLoginResponse{}, err
	}

	s.logger.Info("head login success", zap.Uint64("head_id", h.ID))
	return HeadLoginResponse{
		ID:         h.ID,
		EmployeeID: h.EmployeeID,
		Name:       h.Name,
		Department: h.Department,
		Status:     h.Status,
		LastLogin:  now.Format(time.RFC3339),
		Token:      token,
	}, nil
}
