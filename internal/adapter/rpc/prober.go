package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Fluid-X/core/internal/domain/entity"
	domainService "github.com/Fluid-X/core/internal/domain/service"
	"github.com/Fluid-X/core/internal/pkg/apperrors"
)

// Compile-time check
var _ domainService.EndpointProber = (*Prober)(nil)

const defaultProbeTimeout = 10 * time.Second

// Prober implements domainService.EndpointProber with a single eth_chainId call.
type Prober struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewProber creates a new endpoint prober. A non-positive timeout uses 10s.
func NewProber(timeout time.Duration, logger *zap.Logger) *Prober {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Prober{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout: timeout,
		logger:  logger.Named("EndpointProber"),
	}
}

// chainIDPayload asks the node which chain it serves; it has no side effects.
var chainIDPayload = []byte(`{"jsonrpc":"2.0","method":"eth_chainId","params":[],"id":1}`)

// JSONRPCResponse defines the basic structure for a JSON-RPC response.
type JSONRPCResponse struct {
	ID      interface{}     `json:"id"`
	Jsonrpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError defines the structure for a JSON-RPC error.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Probe determines the protocol and calls the appropriate probe function.
// Errors and logs carry the redacted endpoint only.
func (p *Prober) Probe(ctx context.Context, endpoint entity.RPCURL) (entity.ProbeResult, error) {
	startTime := time.Now()
	redacted := endpoint.Redacted()

	var (
		body []byte
		err  error
	)
	switch endpoint.Scheme() {
	case "http", "https":
		body, err = p.probeHTTP(ctx, endpoint.String(), redacted)
	case "ws", "wss":
		body, err = p.probeWS(ctx, endpoint.String(), redacted)
	default:
		p.logger.Warn("Skipping probe for unsupported protocol", zap.String("url", redacted))
		return entity.ProbeResult{}, fmt.Errorf("%w: unsupported protocol in URL %s", apperrors.ErrInvalidInput, redacted)
	}
	latency := time.Since(startTime)
	if err != nil {
		return entity.ProbeResult{Latency: latency}, err
	}

	chainID, err := p.decodeChainID(redacted, body)
	if err != nil {
		return entity.ProbeResult{Latency: latency}, err
	}

	p.logger.Debug("Endpoint answered eth_chainId",
		zap.String("url", redacted), zap.Uint64("chainId", chainID), zap.Duration("latency", latency),
	)
	return entity.ProbeResult{ChainID: chainID, Latency: latency}, nil
}

// effectiveTimeout is the smaller of the configured timeout and the context deadline.
func (p *Prober) effectiveTimeout(ctx context.Context) time.Duration {
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

// probeHTTP performs the JSON-RPC call over HTTP/HTTPS.
func (p *Prober) probeHTTP(ctx context.Context, rpcURL, redacted string) ([]byte, error) {
	timeout := p.effectiveTimeout(ctx)
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: probe of %s had no time left: %v", apperrors.ErrTimeout, redacted, ctx.Err())
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rpcURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(chainIDPayload)

	if err := p.client.DoTimeout(req, resp, timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			p.logger.Debug("HTTP probe timed out", zap.String("url", redacted), zap.Duration("timeout", timeout))
			return nil, fmt.Errorf("%w: http probe of %s timed out after %v", apperrors.ErrTimeout, redacted, timeout)
		}
		p.logger.Debug("HTTP probe request failed", zap.String("url", redacted), zap.Error(err))
		return nil, fmt.Errorf("%w: http probe of %s failed: %v", apperrors.ErrExternalServiceFailure, redacted, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		p.logger.Debug("HTTP probe returned non-OK status",
			zap.String("url", redacted), zap.Int("statusCode", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: %s returned non-OK http status: %d",
			apperrors.ErrExternalServiceFailure, redacted, resp.StatusCode(),
		)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

// probeWS performs the JSON-RPC call over WS/WSS.
func (p *Prober) probeWS(ctx context.Context, rpcURL, redacted string) ([]byte, error) {
	timeout := p.effectiveTimeout(ctx)
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: probe of %s had no time left: %v", apperrors.ErrTimeout, redacted, ctx.Err())
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: timeout,
	}

	conn, _, err := dialer.DialContext(dialCtx, rpcURL, nil)
	if err != nil {
		p.logger.Debug("WS dial failed", zap.String("url", redacted), zap.Error(err))
		if errors.Is(dialCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: ws dial to %s timed out", apperrors.ErrTimeout, redacted)
		}
		return nil, fmt.Errorf("%w: ws dial to %s failed: %v", apperrors.ErrExternalServiceFailure, redacted, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, chainIDPayload); err != nil {
		p.logger.Debug("WS write message failed", zap.String("url", redacted), zap.Error(err))
		return nil, fmt.Errorf("%w: ws write to %s failed: %v", apperrors.ErrExternalServiceFailure, redacted, err)
	}

	_, message, err := conn.ReadMessage()
	if err != nil {
		p.logger.Debug("WS read message failed", zap.String("url", redacted), zap.Error(err))
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: ws read from %s timed out", apperrors.ErrTimeout, redacted)
		}
		return nil, fmt.Errorf("%w: ws read from %s failed: %v", apperrors.ErrExternalServiceFailure, redacted, err)
	}
	return message, nil
}

// decodeChainID checks the JSON-RPC envelope and decodes the hex quantity result.
func (p *Prober) decodeChainID(redacted string, body []byte) (uint64, error) {
	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		p.logger.Debug("Probe failed to unmarshal JSON response", zap.String("url", redacted), zap.Error(err))
		return 0, fmt.Errorf("%w: %s returned invalid JSON response: %v",
			apperrors.ErrExternalServiceFailure, redacted, err,
		)
	}

	if rpcResp.Error != nil {
		p.logger.Debug("Probe returned JSON-RPC error",
			zap.String("url", redacted),
			zap.Int("errorCode", rpcResp.Error.Code),
			zap.String("errorMessage", rpcResp.Error.Message),
		)
		return 0, fmt.Errorf("%w: %s returned json-rpc error: %d %s",
			apperrors.ErrExternalServiceFailure, redacted, rpcResp.Error.Code, rpcResp.Error.Message,
		)
	}

	if rpcResp.Jsonrpc != "2.0" || rpcResp.Result == nil {
		return 0, fmt.Errorf("%w: %s returned invalid JSON-RPC structure", apperrors.ErrExternalServiceFailure, redacted)
	}

	var quantity string
	if err := json.Unmarshal(rpcResp.Result, &quantity); err != nil {
		return 0, fmt.Errorf("%w: %s returned non-string chain id: %v", apperrors.ErrExternalServiceFailure, redacted, err)
	}
	chainID, err := hexutil.DecodeUint64(quantity)
	if err != nil {
		return 0, fmt.Errorf("%w: %s returned malformed chain id %q: %v",
			apperrors.ErrExternalServiceFailure, redacted, quantity, err,
		)
	}
	return chainID, nil
}
