package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-elms/internal/events"
	leaveerrors "go-elms/internal/leave/errors"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	dateLayout = "2006-01-02"

	allLeavesCacheKey = "leaves:all"
	leavesCacheTTL    = 5 * time.Minute
)

// Decider identifies the department head acting on a leave request. A head
// may only decide requests of their own department.
type Decider struct {
	EmployeeID string
	Department string
}

type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (SubmitLeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	UpdateStatus(ctx context.Context, id string, decider Decider, req UpdateStatusRequest) (UpdateStatusResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// inclusiveDayCount counts both endpoints: a one-day leave has equal start
// and end dates and a count of 1.
func inclusiveDayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (SubmitLeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return SubmitLeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return SubmitLeaveResponse{}, err
	}
	if startDate.After(endDate) {
		s.logger.Warn("submit leave invalid date range",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return SubmitLeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return SubmitLeaveResponse{}, apperror.StoreFailure(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &LeaveRequest{
		EmployeeID:  req.EmployeeID,
		Department:  req.Department,
		LeaveType:   req.LeaveType,
		StartDate:   startDate,
		EndDate:     endDate,
		Days:        inclusiveDayCount(startDate, endDate),
		Reason:      req.Reason,
		Status:      StatusPending,
		AppliedDate: time.Now().UTC().Truncate(24 * time.Hour),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return SubmitLeaveResponse{}, apperror.StoreFailure(err)
	}

	if err := s.enqueueSubmittedEvent(ctx, tx, l); err != nil {
		s.logger.Error("submit leave outbox persist failed", zap.Error(err))
		return SubmitLeaveResponse{}, apperror.StoreFailure(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return SubmitLeaveResponse{}, apperror.StoreFailure(err)
	}
	s.invalidateListCache(ctx)
	s.logger.Info("submit leave success",
		zap.Uint64("leave_id", l.ID),
		zap.String("employee_id", l.EmployeeID),
		zap.Int("days", l.Days),
	)

	return SubmitLeaveResponse{
		Message: "Leave request submitted successfully",
		Leave:   mapToResponse(*l),
	}, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, apperror.StoreFailure(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, allLeavesCacheKey).Result()
		if err == nil {
			var resp []LeaveResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(allLeavesCacheKey, func() (interface{}, error) {
		leaves, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, apperror.StoreFailure(err)
		}

		resp := mapToListResponse(leaves)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, allLeavesCacheKey, jsonData, leavesCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]LeaveResponse), nil
}

// UpdateStatus is a validated transition: only Pending requests move, only
// to Approved or Rejected, and only at a hand of the owning department.
func (s *service) UpdateStatus(ctx context.Context, id string, decider Decider, req UpdateStatusRequest) (UpdateStatusResponse, error) {
	s.logger.Debug("update leave status requested",
		zap.String("leave_id", id),
		zap.String("decided_by", decider.EmployeeID),
		zap.String("target_status", req.Status),
	)

	leaveID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return UpdateStatusResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return UpdateStatusResponse{}, leaveerrors.ErrInvalidTargetStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave status begin tx failed", zap.Error(err))
		return UpdateStatusResponse{}, apperror.StoreFailure(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UpdateStatusResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("update leave status lookup failed", zap.Error(err))
		return UpdateStatusResponse{}, apperror.StoreFailure(err)
	}

	if l.Status != StatusPending {
		s.logger.Warn("update leave status invalid transition",
			zap.Uint64("leave_id", leaveID),
			zap.String("from_status", l.Status),
			zap.String("to_status", req.Status),
		)
		return UpdateStatusResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if decider.Department != l.Department {
		s.logger.Warn("update leave status department mismatch",
			zap.Uint64("leave_id", leaveID),
			zap.String("leave_department", l.Department),
			zap.String("decider_department", decider.Department),
		)
		return UpdateStatusResponse{}, leaveerrors.ErrDepartmentMismatch
	}

	fromStatus := l.Status

	// The status condition rides in the UPDATE: a concurrent decider who
	// committed first leaves zero rows for this one to change.
	decided, err := qtx.UpdateStatusIfPending(ctx, leaveID, req.Status)
	if err != nil {
		s.logger.Error("update leave status persist failed",
			zap.Uint64("leave_id", leaveID),
			zap.Error(err),
		)
		return UpdateStatusResponse{}, apperror.StoreFailure(err)
	}
	if !decided {
		s.logger.Warn("update leave status lost decision race",
			zap.Uint64("leave_id", leaveID),
		)
		return UpdateStatusResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	l.Status = req.Status

	if err := s.enqueueStatusChangedEvent(ctx, tx, l, fromStatus, decider); err != nil {
		s.logger.Error("update leave status outbox persist failed", zap.Error(err))
		return UpdateStatusResponse{}, apperror.StoreFailure(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave status commit failed", zap.Error(err))
		return UpdateStatusResponse{}, apperror.StoreFailure(err)
	}
	s.invalidateListCache(ctx)
	s.logger.Info("update leave status success",
		zap.Uint64("leave_id", leaveID),
		zap.String("status", l.Status),
	)

	return UpdateStatusResponse{
		Message: "Leave status updated successfully",
		Leave:   mapToResponse(*l),
	}, nil
}

func (s *service) enqueueSubmittedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.LeaveSubmittedEvent{
		EventType:  events.LeaveSubmittedEventType,
		LeaveID:    l.ID,
		EmployeeID: l.EmployeeID,
		Department: l.Department,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		Days:       l.Days,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   strconv.FormatUint(l.ID, 10),
		EventType:     events.LeaveSubmittedEventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueStatusChangedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, fromStatus string, decider Decider) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.LeaveStatusChangedEvent{
		EventType:  events.LeaveStatusChangedEventType,
		LeaveID:    l.ID,
		EmployeeID: l.EmployeeID,
		Department: l.Department,
		FromStatus: fromStatus,
		ToStatus:   l.Status,
		DecidedBy:  decider.EmployeeID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   strconv.FormatUint(l.ID, 10),
		EventType:     events.LeaveStatusChangedEventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, allLeavesCacheKey).Err(); err != nil {
		s.logger.Error("invalidate leaves cache failed", zap.Error(err))
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:          l.ID,
		EmployeeID:  l.EmployeeID,
		Department:  l.Department,
		LeaveType:   l.LeaveType,
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		Days:        l.Days,
		Reason:      l.Reason,
		Status:      l.Status,
		AppliedDate: l.AppliedDate.Format(dateLayout),
	}
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
