package auth

type RegisterRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Identity struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type LoginResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Identity *Identity `json:"identity,omitempty"`
	Token    string    `json:"token,omitempty"`
}

type HeadLoginResponse struct {
	ID         uint64 `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Status     string `json:"status"`
	LastLogin  string `json:"last_login"`
	Token      string `json:"token"`
}
