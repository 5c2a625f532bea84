package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sjsneakers/resale-gateway/internal/config"
	"github.com/sjsneakers/resale-gateway/internal/exporter"
	"github.com/sjsneakers/resale-gateway/internal/sheets"
	"github.com/sjsneakers/resale-gateway/pkg/logger"
	"github.com/sjsneakers/resale-gateway/pkg/prom"
	"github.com/sjsneakers/resale-gateway/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Kill, os.Interrupt, syscall.SIGTERM)

	writer, err := sheets.NewWriter(context.Background(), sheets.Config{
		SpreadsheetID:      config.Get().SheetsSpreadsheetID,
		ServiceAccountPath: config.Get().SheetsServiceAccountPath,
		ClientID:           config.Get().SheetsClientID,
		ClientSecret:       config.Get().SheetsClientSecret,
		RefreshToken:       config.Get().SheetsRefreshToken,
		SalesSheet:         config.Get().SheetsSalesSheet,
		MoneyFlowSheet:     config.Get().SheetsMoneyFlowSheet,
	})
	if err != nil {
		logger.Error("failed to create sheets writer", "error", err)
		return
	}

	// Initialize idempotency service
	idempotencyConfig := exporter.DefaultIdempotencyConfig()
	idempotencyService := exporter.NewIdempotencyService(redisAdap, idempotencyConfig)

	service, err := exporter.NewService(redisAdap)
	if err != nil {
		logger.Error("failed to create the exporter", "error", err)
		return
	}
	service.RegisterProcessor(exporter.NewLedgerEventProcessor(writer, idempotencyService))

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}

	go func() {
		prom.ListenAndServer(":9100", "/metrics")
	}()

	go func() {
		err := service.Start()
		if err != nil {
			logger.Error("failed to start exporter", "error", err)
		}
	}()

	select {
	case <-c:
		service.Stop()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
