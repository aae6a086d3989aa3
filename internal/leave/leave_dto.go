package leave

type SubmitLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Department string `json:"department" binding:"required"`
	LeaveType  string `json:"type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected"`
}

type LeaveResponse struct {
	ID          uint64 `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Department  string `json:"department"`
	LeaveType   string `json:"type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Days        int    `json:"days"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	AppliedDate string `json:"applied_date"`
}

type SubmitLeaveResponse struct {
	Message string        `json:"message"`
	Leave   LeaveResponse `json:"leave"`
}

type UpdateStatusResponse struct {
	Message string        `json:"message"`
	Leave   LeaveResponse `json:"leave"`
}
