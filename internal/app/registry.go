package app

import (
	"database/sql"

	"go-elms/internal/auth"
	"go-elms/internal/employee"
	"go-elms/internal/head"
	"go-elms/internal/leave"
	"go-elms/internal/messaging/kafka"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	headRepo := head.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(db, employeeRepo, headRepo)
	headService := head.NewService(db, headRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	headHandler := head.NewHandler(headService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		head.RegisterRoutes(api, headHandler)
		leave.RegisterRoutes(api, leaveHandler)
	}
}
