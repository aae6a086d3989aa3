package auth

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.POST("/register", handler.RegisterEmployee)
		employees.POST("/login", handler.LoginEmployee)
	}

	r.POST("/heads/login", handler.LoginDepartmentHead)
}
