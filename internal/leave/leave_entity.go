package leave

import "time"

type LeaveRequest struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	EmployeeID string `gorm:"type:varchar(50);not null;index:idx_leave_requests_employee"`
	Department string `gorm:"type:varchar(100);not null"`
	LeaveType  string `gorm:"type:varchar(50);not null"`

	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	// Inclusive span in days, always derived from the dates at submission.
	Days   int    `gorm:"not null"`
	Reason string `gorm:"type:text"`

	Status      string    `gorm:"type:varchar(20);not null;default:'Pending';index:idx_leave_requests_status"`
	AppliedDate time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
