package app

import (
	"os"
	"time"

	"go-elms/internal/bootstrap"
	"go-elms/internal/middleware"
	"go-elms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// BuildApp wires infrastructure into the router and returns when routes are
// registered; the caller starts the server.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	registerModules(router, db, gormDB, rdb)

	return nil
}

// ServerConfigFromEnv keeps timeout policy in one place.
func ServerConfigFromEnv() bootstrap.ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return bootstrap.ServerConfig{
		Port:         port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
