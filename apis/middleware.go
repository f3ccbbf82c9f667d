package apis

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/supakorn-kn/books-lib/errors"
)

const (
	RequestIDHeader     = "X-Request-Id"
	requestIDContextKey = "request_id"
)

// NewEngine creates a gin engine with recovery, request ID, access log and CORS middleware
func NewEngine(allowOrigins []string) *gin.Engine {

	g := gin.New()
	g.Use(RequestID(), AccessLog(), Recovery(), CORS(allowOrigins))

	return g
}

func RequestID() gin.HandlerFunc {

	return func(ctx *gin.Context) {

		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Set(requestIDContextKey, requestID)
		ctx.Header(RequestIDHeader, requestID)

		ctx.Next()
	}
}

func RequestIDFrom(ctx *gin.Context) string {
	return ctx.GetString(requestIDContextKey)
}

func AccessLog() gin.HandlerFunc {

	return func(ctx *gin.Context) {

		start := time.Now()

		ctx.Next()

		slog.Info("access",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", RequestIDFrom(ctx),
		)
	}
}

// Recovery answers panics with the generic 500 body instead of an empty response
func Recovery() gin.HandlerFunc {

	return gin.CustomRecovery(func(ctx *gin.Context, recovered any) {

		slog.Error("Panic recovered", "method", ctx.Request.Method, "path", ctx.Request.URL.Path, "request_id", RequestIDFrom(ctx), "panic", recovered)

		unknownError := errors.UnknownError.New()
		writeError(ctx, http.StatusInternalServerError, unknownError.Message, unknownError)
	})
}

func CORS(allowOrigins []string) gin.HandlerFunc {

	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(allowOrigins) == 0 || slices.Contains(allowOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowOrigins
	}

	return cors.New(config)
}
