package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/executing"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/optimizing"
	"github.com/ChristopherHoole/gads-optimizer/pkg/apiErrors"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
	"github.com/ChristopherHoole/gads-optimizer/pkg/utils"
)

// RunResponse is the body returned by a manual optimization run.
type RunResponse struct {
	Report    *domain.OptimizationReport `json:"report"`
	Execution *domain.ExecutionReport    `json:"execution,omitempty"`
}

// TriggerOptimizationRun generates a fresh report for one account. The
// execute query parameter additionally runs the executor in dry_run or live
// mode.
func TriggerOptimizationRun(optimizer optimizing.Optimizer, executor executing.Executor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account id is required", nil)
			return
		}

		date, err := utils.ParseDate(r.URL.Query().Get("date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"date":       r.URL.Query().Get("date"),
				"error":      err.Error(),
			}).Warn("run: invalid date parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "date must be formatted as YYYY-MM-DD", nil)
			return
		}

		runDate := *date
		if runDate.IsZero() {
			now := time.Now().UTC()
			runDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		}

		executeMode := r.URL.Query().Get("execute")
		if executeMode != "" &&
			executeMode != string(domain.ExecutionModeDryRun) &&
			executeMode != string(domain.ExecutionModeLive) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRunMode, "execute must be dry_run or live", nil)
			return
		}

		logger.WithFields(log.Fields{
			"account_id": id,
			"date":       runDate.Format(time.DateOnly),
			"execute":    executeMode,
		}).Info("run: starting manual optimization run")

		report, err := optimizer.GenerateReport(id, runDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"date":       runDate.Format(time.DateOnly),
				"error":      err.Error(),
			}).Error("run: failed to generate optimization report")

			apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, err.Error(), nil)
			return
		}

		response := RunResponse{Report: report}

		if executeMode != "" {
			execution, err := executor.Execute(r.Context(), report, domain.ExecutionMode(executeMode))
			if err != nil {
				logger.WithFields(log.Fields{
					"account_id": id,
					"mode":       executeMode,
					"error":      err.Error(),
				}).Error("run: failed to execute optimization report")

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
				return
			}
			response.Execution = execution
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("run: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
