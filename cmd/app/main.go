package main

import (
	"context"

	"donmario/config"
	"donmario/di"
	"donmario/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	app.Bridge.Start(context.Background())
	app.HTTP.Serve()
}
