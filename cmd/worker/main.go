package main

import (
	"villa/config"
	"villa/di"
	"villa/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg, "worker")

	worker := di.InitializeWorker()
	worker.Serve()
}
