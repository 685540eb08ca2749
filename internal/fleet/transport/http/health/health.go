package health

import (
	"net/http"

	"github.com/fleetworks/fleet-maintenance/platform/logger"
)

// HealthCheck reports process liveness. Dependency health is not probed here.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("SERVING")); err != nil {
		logger.Error(r.Context(), "write health response", logger.ErrorF(err))
	}
}
