package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	ctx := context.Background()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	logger := logging.NewZapLogger(zl)
	defer logger.Sync()

	gin.SetMode(gin.ReleaseMode)

	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg, logger)

	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		return
	}

	app.Run(ctx)

}
