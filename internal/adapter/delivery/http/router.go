package http

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	handler "github.com/Fluid-X/core/internal/adapter/handler/http"
)

// RegisterRoutes sets up the routes for the target handler and common health checks.
func RegisterRoutes(r *router.Router, h *handler.TargetHandler, logger *zap.Logger) {
	logger.Info("Setting up application-specific routes...")

	r.GET("/networks", h.ListNetworks)
	r.GET("/networks/{"+handler.NetworkParam+"}", h.GetNetwork)
	r.GET("/networks/{"+handler.NetworkParam+"}/preflight", h.GetPreflight)
	r.GET("/toolchain", h.GetToolchain)

	logger.Info("Setting up health check route...")
	r.GET("/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	})

	logger.Info("All routes registered.")
}

// LoggingMiddleware logs each request's method and URI.
func LoggingMiddleware(next fasthttp.RequestHandler, logger *zap.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		logger.Info("Request received",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("uri", ctx.RequestURI()))
		next(ctx)
	}
}
