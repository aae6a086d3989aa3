package head

type CreateHeadRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
}

type UpdateHeadRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department" binding:"required"`
	// Blank keeps the current password.
	Password string `json:"password"`
}

type HeadResponse struct {
	ID         uint64  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Status     string  `json:"status"`
	LastLogin  *string `json:"last_login,omitempty"`
}
