package main

import (
	"go-elms/internal/app"
	"go-elms/internal/bootstrap"
	"go-elms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	router := gin.New()
	router.Use(gin.Recovery())

	if err := app.BuildApp(router); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(router, app.ServerConfigFromEnv(), bootstrap.NewStdoutAuditLogger())
}
