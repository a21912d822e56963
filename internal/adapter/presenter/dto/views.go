package presenter_dto

import "github.com/Fluid-X/core/internal/domain/entity"

// ProfileView is the wire and display form of a resolved network profile.
type ProfileView struct {
	Name          string         `json:"name" yaml:"name"`
	ChainID       *uint64        `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Connection    ConnectionView `json:"connection" yaml:"connection"`
	GasLimit      uint64         `json:"gasLimit" yaml:"gasLimit"`
	GasPrice      uint64         `json:"gasPrice" yaml:"gasPrice"`
	TimeoutBlocks uint64         `json:"timeoutBlocks" yaml:"timeoutBlocks"`
	SkipDryRun    bool           `json:"skipDryRun" yaml:"skipDryRun"`
}

// ConnectionView flattens both connection variants; Kind says which fields apply.
type ConnectionView struct {
	Kind     string        `json:"kind" yaml:"kind"`
	Mnemonic entity.Secret `json:"mnemonic,omitempty" yaml:"mnemonic,omitempty"`
	RPCURL   string        `json:"rpcUrl,omitempty" yaml:"rpcUrl,omitempty"`
	Host     string        `json:"host,omitempty" yaml:"host,omitempty"`
	Port     *uint16       `json:"port,omitempty" yaml:"port,omitempty"`
}

// ToolchainView is the wire form of the global compiler and test policies.
type ToolchainView struct {
	Compiler      string `json:"compiler" yaml:"compiler"`
	Version       string `json:"version" yaml:"version"`
	TestTimeoutMs int64  `json:"testTimeoutMs" yaml:"testTimeoutMs"`
}

// PreflightView is the wire form of a preflight report.
type PreflightView struct {
	Network         string  `json:"network" yaml:"network"`
	Endpoint        string  `json:"endpoint" yaml:"endpoint"`
	Reachable       bool    `json:"reachable" yaml:"reachable"`
	LatencyMs       int64   `json:"latencyMs" yaml:"latencyMs"`
	ExpectedChainID *uint64 `json:"expectedChainId,omitempty" yaml:"expectedChainId,omitempty"`
	ObservedChainID *uint64 `json:"observedChainId,omitempty" yaml:"observedChainId,omitempty"`
	ChainIDMatches  *bool   `json:"chainIdMatches,omitempty" yaml:"chainIdMatches,omitempty"`
	Error           string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// ErrorView is the body of every non-2xx API response.
type ErrorView struct {
	Error string   `json:"error"`
	Field string   `json:"field,omitempty"`
	Valid []string `json:"validNetworks,omitempty"`
}
