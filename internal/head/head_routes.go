package head

import (
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	heads := r.Group("/heads")
	heads.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(middleware.RoleDepartmentHead))
	{
		heads.POST("", handler.Create)
		heads.GET("", handler.GetAll)
		heads.PUT("/:id", handler.Update)
		heads.DELETE("/:id", handler.Delete)
		heads.PATCH("/:id/status", handler.ToggleStatus)
	}
}
