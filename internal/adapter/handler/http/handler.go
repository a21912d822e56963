package http

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Fluid-X/core/internal/adapter/presenter"
	"github.com/Fluid-X/core/internal/application/port"
	"github.com/Fluid-X/core/internal/domain"
	"github.com/Fluid-X/core/internal/pkg/apperrors"
)

// NetworkParam is the router path parameter carrying the network name.
const NetworkParam = "network"

// TargetHandler serves deployment targets over HTTP.
type TargetHandler struct {
	service port.TargetService
	logger  *zap.Logger
}

func NewTargetHandler(service port.TargetService, logger *zap.Logger) *TargetHandler {
	return &TargetHandler{
		service: service,
		logger:  logger.Named("TargetHandler"),
	}
}

// ListNetworks handles requests for the configured network names.
func (h *TargetHandler) ListNetworks(ctx *fasthttp.RequestCtx) {
	names := h.service.ListTargets(ctx)
	h.writeJSON(ctx, fasthttp.StatusOK, presenter.ToNetworkNames(names))
}

// GetNetwork handles requests for one resolved profile. The mnemonic is redacted
// and the provider URL is reduced to scheme://host.
func (h *TargetHandler) GetNetwork(ctx *fasthttp.RequestCtx) {
	name, ok := h.networkParam(ctx)
	if !ok {
		return
	}

	profile, err := h.service.ResolveTarget(ctx, name)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, presenter.ToPublicProfileView(profile))
}

// GetPreflight handles requests to probe a network's endpoint.
func (h *TargetHandler) GetPreflight(ctx *fasthttp.RequestCtx) {
	name, ok := h.networkParam(ctx)
	if !ok {
		return
	}

	report, err := h.service.Preflight(ctx, name)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, presenter.ToPreflightView(report))
}

// GetToolchain handles requests for the pinned compiler version and test timeout.
func (h *TargetHandler) GetToolchain(ctx *fasthttp.RequestCtx) {
	h.writeJSON(ctx, fasthttp.StatusOK, presenter.ToToolchainView(h.service.Toolchain(ctx)))
}

func (h *TargetHandler) networkParam(ctx *fasthttp.RequestCtx) (string, bool) {
	name, ok := ctx.UserValue(NetworkParam).(string)
	if !ok || name == "" {
		h.logger.Error("Failed to get network name from context")
		h.writeJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "network name is required"})
		return "", false
	}
	return name, true
}

// writeError maps domain and application errors onto HTTP status codes.
func (h *TargetHandler) writeError(ctx *fasthttp.RequestCtx, err error) {
	status := statusFor(err)
	if status >= fasthttp.StatusInternalServerError {
		h.logger.Error("Request failed", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
	} else {
		h.logger.Debug("Request rejected", zap.ByteString("uri", ctx.RequestURI()), zap.Error(err))
	}
	h.writeJSON(ctx, status, presenter.ToErrorView(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownNetwork), errors.Is(err, apperrors.ErrNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, domain.ErrMissingCredential), errors.Is(err, domain.ErrInvalidSetting):
		return fasthttp.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUnavailable):
		return fasthttp.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrTimeout):
		return fasthttp.StatusGatewayTimeout
	case errors.Is(err, apperrors.ErrExternalServiceFailure):
		return fasthttp.StatusBadGateway
	case errors.Is(err, apperrors.ErrInternal):
		return fasthttp.StatusInternalServerError
	default:
		return fasthttp.StatusInternalServerError
	}
}

func (h *TargetHandler) writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
