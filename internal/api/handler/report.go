package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/optimizing"
	"github.com/ChristopherHoole/gads-optimizer/pkg/apiErrors"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
)

// GetOptimizationReport returns the latest report generated for the account.
func GetOptimizationReport(service optimizing.Optimizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account id is required", nil)
			return
		}

		logger.WithField("account_id", id).Info("report: fetching latest optimization report")

		report, ok := service.LatestReport(id)
		if !ok {
			logger.WithField("account_id", id).Info("report: no report generated for account")
			apiErrors.WriteError(w, apiErrors.ErrReportNotFound, "no optimization report generated for this account", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("report: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
