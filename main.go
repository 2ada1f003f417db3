package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/household-server/api"
	"github.com/carson-networks/household-server/internal/config"
	"github.com/carson-networks/household-server/internal/logging"
	"github.com/carson-networks/household-server/internal/operator"
	"github.com/carson-networks/household-server/internal/service"
	"github.com/carson-networks/household-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("household-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Fatal("logging.SetLevel")
		return
	}

	store, err := storage.NewStorage(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}

	delegator := operator.NewOperatorDelegator(store, envConfig.OperatorQueueSize)
	delegator.Start()

	svc := service.NewService(store.Reader, service.Clock{Location: envConfig.Location()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:         logger,
		Port:           envConfig.Port,
		StorageBackend: envConfig.StorageBackend,
		Service:        svc,
		Operator:       delegator,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("HttpServer.Serve")
	}

	delegator.Stop()
	if err := store.Close(); err != nil {
		logger.WithError(err).Error("Storage.Close")
	}
	logger.Info("household-server stopped")
}
