package head

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	headerrors "go-elms/internal/head/errors"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/credentials"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateHeadRequest) (HeadResponse, error)
	GetAll(ctx context.Context) ([]HeadResponse, error)
	Update(ctx context.Context, id string, req UpdateHeadRequest) (HeadResponse, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (HeadResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("head.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("head.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHeadRequest) (HeadResponse, error) {
	s.logger.Debug("create head requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("department", req.Department),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create head begin tx failed", zap.Error(err))
		return HeadResponse{}, apperror.StoreFailure(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	hashed, err := credentials.Hash(req.Password)
	if err != nil {
		return HeadResponse{}, err
	}

	// Last login is stamped at creation; the record is "seen" from day one.
	now := time.Now().UTC()
	h := &DepartmentHead{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Department: req.Department,
		Password:   hashed,
		Status:     StatusActive,
		LastLogin:  &now,
	}

	if err := qtx.Create(ctx, h); err != nil {
		s.logger.Error("create head persist failed", zap.Error(err))
		return HeadResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create head commit failed", zap.Error(err))
		return HeadResponse{}, apperror.StoreFailure(err)
	}
	s.logger.Info("create head success",
		zap.Uint64("head_id", h.ID),
		zap.String("employee_id", h.EmployeeID),
	)

	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HeadResponse, error) {
	heads, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.StoreFailure(err)
	}
	return mapToListResponse(heads), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHeadRequest) (HeadResponse, error) {
	headID, err := parseHeadID(id)
	if err != nil {
		return HeadResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update head begin tx failed", zap.Error(err))
		return HeadResponse{}, apperror.StoreFailure(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, headID)
	if err != nil {
		return HeadResponse{}, mapRepositoryError(err)
	}

	h.EmployeeID = req.EmployeeID
	h.Name = req.Name
	h.Department = req.Department
	if req.Password != "" {
		hashed, err := credentials.Hash(req.Password)
		if err != nil {
			return HeadResponse{}, err
		}
		h.Password = hashed
	}

	if err := qtx.Update(ctx, h); err != nil {
		s.logger.Error("update head persist failed",
			zap.Uint64("head_id", headID),
			zap.Error(err),
		)
		return HeadResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update head commit failed", zap.Error(err))
		return HeadResponse{}, apperror.StoreFailure(err)
	}
	s.logger.Info("update head success", zap.Uint64("head_id", headID))

	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	headID, err := parseHeadID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.StoreFailure(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, headID); err != nil {
		return apperror.StoreFailure(err)
	}

	if err := tx.Commit(); err != nil {
		return apperror.StoreFailure(err)
	}
	s.logger.Info("delete head success", zap.Uint64("head_id", headID))
	return nil
}

func (s *service) ToggleStatus(ctx context.Context, id string) (HeadResponse, error) {
	headID, err := parseHeadID(id)
	if err != nil {
		return HeadResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("toggle head status begin tx failed", zap.Error(err))
		return HeadResponse{}, apperror.StoreFailure(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, headID)
	if err != nil {
		return HeadResponse{}, mapRepositoryError(err)
	}

	if h.Status == StatusActive {
		h.Status = StatusInactive
	} else {
		h.Status = StatusActive
	}

	if err := qtx.Update(ctx, h); err != nil {
		s.logger.Error("toggle head status persist failed",
			zap.Uint64("head_id", headID),
			zap.Error(err),
		)
		return HeadResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return HeadResponse{}, apperror.StoreFailure(err)
	}
	s.logger.Info("toggle head status success",
		zap.Uint64("head_id", headID),
		zap.String("status", h.Status),
	)

	return mapToResponse(*h), nil
}

func parseHeadID(id string) (uint64, error) {
	headID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, headerrors.ErrInvalidHeadID
	}
	return headID, nil
}

func mapToResponse(h DepartmentHead) HeadResponse {
	resp := HeadResponse{
		ID:         h.ID,
		EmployeeID: h.EmployeeID,
		Name:       h.Name,
		Department: h.Department,
		Status:     h.Status,
	}
	if h.LastLogin != nil {
		v := h.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &v
	}
	return resp
}

func mapToListResponse(heads []DepartmentHead) []HeadResponse {
	resp := make([]HeadResponse, len(heads))
	for i, h := range heads {
		resp[i] = mapToResponse(h)
	}
	return resp
}
