package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/repository"
	"github.com/ChristopherHoole/gads-optimizer/pkg/apiErrors"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
	"github.com/ChristopherHoole/gads-optimizer/pkg/utils"
)

// GetChangeHistory returns the audit trail of applied changes for an account.
// Without date filters it covers the last 30 days.
func GetChangeHistory(ledger repository.ChangeLedgerRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account id is required", nil)
			return
		}

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"start_date": r.URL.Query().Get("start_date"),
				"error":      err.Error(),
			}).Warn("changes: invalid start_date parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date must be formatted as YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"end_date":   r.URL.Query().Get("end_date"),
				"error":      err.Error(),
			}).Warn("changes: invalid end_date parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date must be formatted as YYYY-MM-DD", nil)
			return
		}

		to := *endDate
		if to.IsZero() {
			to = time.Now().UTC()
		}

		from := *startDate
		if from.IsZero() {
			from = to.AddDate(0, 0, -30)
		}

		logger.WithFields(log.Fields{
			"account_id": id,
			"from":       from.Format(time.DateOnly),
			"to":         to.Format(time.DateOnly),
		}).Info("changes: fetching change history")

		records, err := ledger.GetByAccountAndRange(id, from, to)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("changes: failed to fetch change history")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("changes: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
