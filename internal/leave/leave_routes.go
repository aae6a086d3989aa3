package leave

import (
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", handler.Submit)
		leaves.GET("/by-employee/:id", handler.GetByEmployee)
		leaves.GET("", middleware.RoleMiddleware(middleware.RoleDepartmentHead), handler.GetAll)
		leaves.PATCH("/:id/status", middleware.RoleMiddleware(middleware.RoleDepartmentHead), handler.UpdateStatus)
	}
}
