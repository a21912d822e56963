package entity

import (
	"net"
	"slices"
	"strconv"
	"time"
)

// NetworkName identifies a deployment target.
type NetworkName string

// Known deployment targets.
const (
	NetworkGoerli  NetworkName = "goerli"
	NetworkGanache NetworkName = "ganache"
)

// knownNetworks is the single source of truth for valid network names, in display order.
var knownNetworks = []NetworkName{NetworkGoerli, NetworkGanache}

// KnownNetworks returns the closed set of network names.
func KnownNetworks() []NetworkName {
	return slices.Clone(knownNetworks)
}

// ParseNetworkName maps a raw name onto the closed set. Matching is exact.
func ParseNetworkName(raw string) (NetworkName, bool) {
	name := NetworkName(raw)
	if !slices.Contains(knownNetworks, name) {
		return "", false
	}
	return name, true
}

// IsKnown reports whether n is one of the configured networks.
func (n NetworkName) IsKnown() bool {
	return slices.Contains(knownNetworks, n)
}

func (n NetworkName) String() string {
	return string(n)
}

// ConnectionKind discriminates the Connection variants.
type ConnectionKind string

const (
	ConnectionRemoteProvider ConnectionKind = "remoteProvider"
	ConnectionLocalEndpoint  ConnectionKind = "localEndpoint"
)

// Connection describes how the deployment tool reaches a network.
// Implementations are RemoteProvider and LocalEndpoint only.
type Connection interface {
	Kind() ConnectionKind
	// Endpoint is the JSON-RPC URL the connection talks to.
	Endpoint() RPCURL
	isConnection()
}

// RemoteProvider is handed to an external provider constructor that signs with
// keys derived from Mnemonic and submits through RPCURL.
type RemoteProvider struct {
	Mnemonic Secret `validate:"required"`
	RPCURL   RPCURL `validate:"required"`
}

func (RemoteProvider) Kind() ConnectionKind { return ConnectionRemoteProvider }

func (c RemoteProvider) Endpoint() RPCURL { return c.RPCURL }

func (RemoteProvider) isConnection() {}

// LocalEndpoint is a same-machine development node.
type LocalEndpoint struct {
	Host string `validate:"required,ip"`
	Port uint16
}

func (LocalEndpoint) Kind() ConnectionKind { return ConnectionLocalEndpoint }

func (c LocalEndpoint) Endpoint() RPCURL {
	return RPCURL("http://" + net.JoinHostPort(c.Host, strconv.FormatUint(uint64(c.Port), 10)))
}

func (LocalEndpoint) isConnection() {}

// NetworkProfile is the fully resolved bundle of connection and transaction
// policy for one deployment target.
type NetworkProfile struct {
	Name NetworkName `validate:"required,known_network"`
	// ChainID is nil for networks whose id is discovered at connect time.
	ChainID       *uint64    `validate:"omitempty,gt=0"`
	Connection    Connection `validate:"required"`
	GasLimit      uint64     `validate:"gt=0"`
	GasPrice      uint64     `validate:"gt=0"`
	TimeoutBlocks uint64     `validate:"gt=0"`
	SkipDryRun    bool
}

// Clone returns a copy that shares no memory with p.
func (p NetworkProfile) Clone() NetworkProfile {
	if p.ChainID != nil {
		id := *p.ChainID
		p.ChainID = &id
	}
	return p
}

// CompilerPolicy pins the contract compiler for deterministic builds.
type CompilerPolicy struct {
	Name    string `validate:"required"`
	Version string `validate:"required,semver"`
}

// TestHarnessPolicy bounds a single test run.
type TestHarnessPolicy struct {
	TimeoutMs int64 `validate:"gt=0"`
}

// Timeout returns the abort threshold as a duration.
func (p TestHarnessPolicy) Timeout() time.Duration {
	return time.Duration(p.TimeoutMs) * time.Millisecond
}

// Toolchain groups the global, network-independent policies.
type Toolchain struct {
	Compiler    CompilerPolicy
	TestHarness TestHarnessPolicy
}

// ProbeResult is what a live endpoint reported back to a preflight probe.
type ProbeResult struct {
	ChainID uint64
	Latency time.Duration
}

// PreflightReport summarizes a read-only reachability check of a resolved profile.
type PreflightReport struct {
	Network         NetworkName
	Endpoint        string // redacted, scheme://host only
	Reachable       bool
	Latency         time.Duration
	ExpectedChainID *uint64
	ObservedChainID *uint64
	// ChainIDMatches is nil when the profile does not pin a chain id.
	ChainIDMatches *bool
	Error          string
}
