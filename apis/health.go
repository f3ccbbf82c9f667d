package apis

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 500 * time.Millisecond

type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealthAPI mounts /healthz (process is up) and /readyz (database answers a ping)
func RegisterHealthAPI(routes gin.IRoutes, pinger Pinger) {

	routes.GET("healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, Response{Status: http.StatusOK, Message: "ok"})
	})

	routes.GET("readyz", func(ctx *gin.Context) {

		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readinessTimeout)
		defer cancel()

		if err := pinger.Ping(pingCtx); err != nil {
			slog.Warn("Readiness check failed", "request_id", RequestIDFrom(ctx), "error", err)
			ctx.JSON(http.StatusServiceUnavailable, Response{Status: http.StatusServiceUnavailable, Message: "database not ready"})
			return
		}

		ctx.JSON(http.StatusOK, Response{Status: http.StatusOK, Message: "ready"})
	})
}
