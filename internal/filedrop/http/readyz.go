package http

import (
	"net/http"
	"time"

	"github.com/oatfile/filedrop/internal/filedrop/blob"
	"github.com/oatfile/filedrop/internal/filedrop/store"
	"github.com/oatfile/filedrop/pkg/dropsdk"
	"github.com/oatfile/filedrop/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the catalog database and blob storage
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	dropsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	dropsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	catalog store.Catalog,
	blobs *blob.Store,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &dropsdk.HealthChecks{
			Database: "ok",
			Storage:  "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := catalog.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := blobs.Check(); err != nil {
			checks.Storage = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := dropsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
