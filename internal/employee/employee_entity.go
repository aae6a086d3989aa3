package employee

import "time"

// Employee is keyed by the human-facing employee id. Records are created at
// registration and never updated or deleted.
type Employee struct {
	EmployeeID string `gorm:"type:varchar(50);primaryKey"`
	Name       string `gorm:"type:varchar(255);not null"`
	Department string `gorm:"type:varchar(100);not null"`
	Password   string `gorm:"type:varchar(255);not null"` // bcrypt hash, never plaintext

	CreatedAt time.Time
	UpdatedAt time.Time
}
