package presenter

import (
	"errors"

	dto "github.com/Fluid-X/core/internal/adapter/presenter/dto"
	"github.com/Fluid-X/core/internal/domain"
	"github.com/Fluid-X/core/internal/domain/entity"
)

// ToProfileView converts a resolved profile to its display form. The mnemonic
// stays an entity.Secret, so it is redacted by every encoder.
func ToProfileView(p entity.NetworkProfile) dto.ProfileView {
	view := dto.ProfileView{
		Name:          p.Name.String(),
		GasLimit:      p.GasLimit,
		GasPrice:      p.GasPrice,
		TimeoutBlocks: p.TimeoutBlocks,
		SkipDryRun:    p.SkipDryRun,
	}
	if p.ChainID != nil {
		id := *p.ChainID
		view.ChainID = &id
	}

	switch c := p.Connection.(type) {
	case entity.RemoteProvider:
		view.Connection = dto.ConnectionView{
			Kind:     string(c.Kind()),
			Mnemonic: c.Mnemonic,
			RPCURL:   c.RPCURL.String(),
		}
	case entity.LocalEndpoint:
		port := c.Port
		view.Connection = dto.ConnectionView{
			Kind: string(c.Kind()),
			Host: c.Host,
			Port: &port,
		}
	}
	return view
}

// ToPublicProfileView is ToProfileView for network-facing callers: the provider
// URL is cut down to scheme://host since it usually carries an API key.
func ToPublicProfileView(p entity.NetworkProfile) dto.ProfileView {
	view := ToProfileView(p)
	if c, ok := p.Connection.(entity.RemoteProvider); ok {
		view.Connection.RPCURL = c.RPCURL.Redacted()
	}
	return view
}

// ToToolchainView converts the toolchain policies to their display form.
func ToToolchainView(t entity.Toolchain) dto.ToolchainView {
	return dto.ToolchainView{
		Compiler:      t.Compiler.Name,
		Version:       t.Compiler.Version,
		TestTimeoutMs: t.TestHarness.TimeoutMs,
	}
}

// ToPreflightView converts a preflight report to its display form.
func ToPreflightView(r entity.PreflightReport) dto.PreflightView {
	return dto.PreflightView{
		Network:         r.Network.String(),
		Endpoint:        r.Endpoint,
		Reachable:       r.Reachable,
		LatencyMs:       r.Latency.Milliseconds(),
		ExpectedChainID: r.ExpectedChainID,
		ObservedChainID: r.ObservedChainID,
		ChainIDMatches:  r.ChainIDMatches,
		Error:           r.Error,
	}
}

// ToNetworkNames converts network names to plain strings.
func ToNetworkNames(names []entity.NetworkName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}

// ToErrorView extracts the named field or the valid network list from configuration errors.
func ToErrorView(err error) dto.ErrorView {
	view := dto.ErrorView{Error: err.Error()}

	var (
		unknown *domain.UnknownNetworkError
		missing *domain.MissingCredentialError
		invalid *domain.InvalidSettingError
	)
	switch {
	case errors.As(err, &unknown):
		view.Valid = ToNetworkNames(unknown.Known)
	case errors.As(err, &missing):
		view.Field = missing.Field
	case errors.As(err, &invalid):
		view.Field = invalid.Field
	}
	return view
}
