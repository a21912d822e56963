package service

import (
	"context"

	"github.com/Fluid-X/core/internal/domain/entity"
)

// EndpointProber performs a single read-only JSON-RPC call against a node.
type EndpointProber interface {
	Probe(ctx context.Context, endpoint entity.RPCURL) (entity.ProbeResult, error)
}
