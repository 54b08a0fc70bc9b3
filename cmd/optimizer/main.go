package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/database/postgres"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/integrator/gads"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/integrator/gads/gadsclient"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/repository"
	"github.com/ChristopherHoole/gads-optimizer/internal/api"
	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/internal/metrics"
	"github.com/ChristopherHoole/gads-optimizer/internal/scheduler"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/executing"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/guarding"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/optimizing"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/recommending"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Log level set to: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	policyRepo := repository.NewAccountPolicyRepository(pgConn)
	entityRepo := repository.NewEntityRepository(pgConn)
	snapshotRepo := repository.NewFeatureSnapshotRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)
	ledgerRepo := repository.NewChangeLedgerRepository(pgConn)

	entityCache := recommending.NewEntityCache(entityRepo, 15*time.Minute)
	builder := recommending.NewContextBuilder(snapshotRepo, insightRepo, ledgerRepo, entityCache, cfg.Engine)
	registry := recommending.DefaultRegistry()
	evaluator := guarding.NewEvaluator(cfg.Engine)

	engineMetrics := metrics.New()

	optimizer := optimizing.NewService(policyRepo, builder, registry, evaluator, engineMetrics)

	gadsClient := gadsclient.NewClient(cfg)
	gadsIntegrator := gads.New(cfg, gadsClient)

	executor := executing.NewService(
		policyRepo,
		snapshotRepo,
		insightRepo,
		ledgerRepo,
		evaluator,
		gadsIntegrator,
		engineMetrics,
		cfg.Engine,
		cfg.OptimizationRun.Approver,
	)

	runService := scheduler.NewOptimizationRunService(policyRepo, optimizer, executor, cfg)

	if err := runService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Failed to start the optimization run scheduler")
	} else {
		logrus.Info("Optimization run scheduler started successfully")
	}

	server, err := api.New(cfg, optimizer, executor, ledgerRepo, runService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to ping PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
