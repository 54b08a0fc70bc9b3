package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/ChristopherHoole/gads-optimizer/internal/scheduler"
	"github.com/ChristopherHoole/gads-optimizer/pkg/apiErrors"
)

// RunOptimizationCron triggers the scheduled optimization run outside its
// cron window.
func RunOptimizationCron(service *scheduler.OptimizationRunService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunOptimizationCron")

		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "optimization run service unavailable", nil)
			return
		}

		if service.IsRunning() {
			apiErrors.WriteError(w, apiErrors.ErrRunAlreadyActive, "an optimization run is already in progress", nil)
			return
		}

		service.TriggerManualRun()

		response := map[string]any{
			"message": "optimization run started",
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus reports the optimization run scheduler state.
func GetCronStatus(service *scheduler.OptimizationRunService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"optimization_run": service.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
