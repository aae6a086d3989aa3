package head

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// DepartmentHead carries a surrogate numeric id; the employee id is the
// login identifier and is unique across heads.
type DepartmentHead struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	EmployeeID string `gorm:"type:varchar(50);uniqueIndex:uq_head_employee_id;not null"`
	Name       string `gorm:"type:varchar(255);not null"`
	Department string `gorm:"type:varchar(100);not null"`
	Password   string `gorm:"type:varchar(255);not null"` // bcrypt hash
	Status     string `gorm:"type:varchar(20);not null;default:'Active'"`

	// Stamped at creation as well as on every successful login.
	LastLogin *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
