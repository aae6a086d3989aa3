package events

import "time"

const LeaveLifecycleTopic = "elms.leave.lifecycle.v1"

const (
	LeaveSubmittedEventType     = "leave.submitted"
	LeaveStatusChangedEventType = "leave.status_changed"
)

type LeaveSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    uint64    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	Department string    `json:"department"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Days       int       `json:"days"`
	OccurredAt time.Time `json:"occurred_at"`
}

type LeaveStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    uint64    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	Department string    `json:"department"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	DecidedBy  string    `json:"decided_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
