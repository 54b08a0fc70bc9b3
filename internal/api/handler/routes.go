package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/repository"
	"github.com/ChristopherHoole/gads-optimizer/internal/api/handler/router"
	"github.com/ChristopherHoole/gads-optimizer/internal/scheduler"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/executing"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/optimizing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Optimization(optimizer optimizing.Optimizer, executor executing.Executor) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/:id/report",
			Method:  http.MethodGet,
			Handler: GetOptimizationReport(optimizer),
		},
		{
			Path:    "/v1/accounts/:id/runs",
			Method:  http.MethodPost,
			Handler: TriggerOptimizationRun(optimizer, executor),
		},
	}
}

func Changes(ledger repository.ChangeLedgerRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/:id/changes",
			Method:  http.MethodGet,
			Handler: GetChangeHistory(ledger),
		},
	}
}

func CronJobs(service *scheduler.OptimizationRunService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/optimization/run",
			Method:  http.MethodPost,
			Handler: RunOptimizationCron(service),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(service),
		},
	}
}
