package head

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *DepartmentHead) error
	FindByID(ctx context.Context, id uint64) (*DepartmentHead, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*DepartmentHead, error)
	FindAll(ctx context.Context) ([]DepartmentHead, error)
	Update(ctx context.Context, h *DepartmentHead) error
	Delete(ctx context.Context, id uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds a session to the caller's transaction, so every statement of
// the unit of work commits or rolls back together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *DepartmentHead) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByID(ctx context.Context, id uint64) (*DepartmentHead, error) {
	var h DepartmentHead
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*DepartmentHead, error) {
	var h DepartmentHead
	err := r.db.WithContext(ctx).First(&h, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) FindAll(ctx context.Context) ([]DepartmentHead, error) {
	var heads []DepartmentHead
	err := r.db.WithContext(ctx).Order("id ASC").Find(&heads).Error
	return heads, err
}

func (r *repository) Update(ctx context.Context, h *DepartmentHead) error {
	return r.db.WithContext(ctx).Save(h).Error
}

// Delete is idempotent; removing an absent id is not an error.
func (r *repository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&DepartmentHead{}, "id = ?", id).Error
}
