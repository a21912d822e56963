// Package registry resolves deployment target names into validated network profiles.
package registry

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/Fluid-X/core/internal/domain"
	"github.com/Fluid-X/core/internal/domain/entity"
	domainService "github.com/Fluid-X/core/internal/domain/service"
)

// Compile-time check
var _ domainService.TargetResolver = (*Registry)(nil)

// Environment keys read during resolution.
const (
	EnvGoerliMnemonic    = "GOERLI_MNEMONIC"
	EnvGoerliProviderURL = "GOERLI_PROVIDER_URL"
	EnvGanachePort       = "GANACHE_PORT"
)

// Profile field names reported by configuration errors.
const (
	FieldMnemonic = "mnemonic"
	FieldRPCURL   = "rpcUrl"
	FieldPort     = "port"
)

const (
	remoteGasLimit      uint64 = 8_000_000
	remoteGasPrice      uint64 = 10_000_000_000
	remoteTimeoutBlocks uint64 = 50
	goerliChainID       uint64 = 5

	localGasLimit      uint64 = 6_721_975
	localGasPrice      uint64 = 20_000_000_000
	localTimeoutBlocks uint64 = 50
	localDefaultPort   uint16 = 8545
)

const (
	localHost       = "127.0.0.1"
	compilerName    = "solc"
	compilerVersion = "0.8.9"
	testTimeoutMs   = 100_000
)

// definition holds the compiled-in literals for one network and how its
// connection is built from the environment.
type definition struct {
	chainID       *uint64
	gasLimit      uint64
	gasPrice      uint64
	timeoutBlocks uint64
	skipDryRun    bool
	envKeys       []string
	connect       func(env domainService.Environment) (entity.Connection, error)
}

// Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	definitions map[entity.NetworkName]definition
	toolchain   entity.Toolchain
	validate    *validator.Validate
}

// New builds the registry with the compiled-in network table.
// It panics if the compiled-in toolchain literals fail validation.
func New() *Registry {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("known_network", func(fl validator.FieldLevel) bool {
		return entity.NetworkName(fl.Field().String()).IsKnown()
	}); err != nil {
		panic(fmt.Sprintf("registry: register validation: %v", err))
	}

	r := &Registry{
		definitions: map[entity.NetworkName]definition{
			entity.NetworkGoerli: {
				chainID:       uint64Ptr(goerliChainID),
				gasLimit:      remoteGasLimit,
				gasPrice:      remoteGasPrice,
				timeoutBlocks: remoteTimeoutBlocks,
				skipDryRun:    false,
				envKeys:       []string{EnvGoerliMnemonic, EnvGoerliProviderURL},
				connect:       connectRemote(EnvGoerliMnemonic, EnvGoerliProviderURL),
			},
			entity.NetworkGanache: {
				gasLimit:      localGasLimit,
				gasPrice:      localGasPrice,
				timeoutBlocks: localTimeoutBlocks,
				skipDryRun:    false,
				envKeys:       []string{EnvGanachePort},
				connect:       connectLocal(EnvGanachePort),
			},
		},
		toolchain: entity.Toolchain{
			Compiler:    entity.CompilerPolicy{Name: compilerName, Version: compilerVersion},
			TestHarness: entity.TestHarnessPolicy{TimeoutMs: testTimeoutMs},
		},
		validate: validate,
	}

	if err := validate.Struct(r.toolchain); err != nil {
		panic(fmt.Sprintf("registry: invalid toolchain literals: %v", err))
	}
	return r
}

// Resolve returns the complete profile for name, reading credentials and
// overrides from env. Credentials are checked in order: mnemonic, then rpcUrl.
func (r *Registry) Resolve(name string, env domainService.Environment) (entity.NetworkProfile, error) {
	network, ok := entity.ParseNetworkName(name)
	if !ok {
		return entity.NetworkProfile{}, &domain.UnknownNetworkError{Name: name, Known: r.Networks()}
	}
	def, ok := r.definitions[network]
	if !ok {
		return entity.NetworkProfile{}, &domain.UnknownNetworkError{Name: name, Known: r.Networks()}
	}

	conn, err := def.connect(env)
	if err != nil {
		return entity.NetworkProfile{}, err
	}

	profile := entity.NetworkProfile{
		Name:          network,
		Connection:    conn,
		GasLimit:      def.gasLimit,
		GasPrice:      def.gasPrice,
		TimeoutBlocks: def.timeoutBlocks,
		SkipDryRun:    def.skipDryRun,
	}
	if def.chainID != nil {
		profile.ChainID = uint64Ptr(*def.chainID)
	}

	if err := r.checkComplete(profile); err != nil {
		return entity.NetworkProfile{}, err
	}
	return profile, nil
}

// Networks lists the configured network names.
func (r *Registry) Networks() []entity.NetworkName {
	return entity.KnownNetworks()
}

// EnvKeys lists the environment keys read when resolving name.
func (r *Registry) EnvKeys(name entity.NetworkName) []string {
	def, ok := r.definitions[name]
	if !ok {
		return nil
	}
	keys := make([]string, len(def.envKeys))
	copy(keys, def.envKeys)
	return keys
}

// Toolchain returns the pinned compiler and test harness policies.
func (r *Registry) Toolchain() entity.Toolchain {
	return r.toolchain
}

// CompilerVersion returns the pinned compiler version.
func (r *Registry) CompilerVersion() string {
	return r.toolchain.Compiler.Version
}

// TestTimeoutMs returns the per-run test abort threshold in milliseconds.
func (r *Registry) TestTimeoutMs() int64 {
	return r.toolchain.TestHarness.TimeoutMs
}

func (r *Registry) checkComplete(p entity.NetworkProfile) error {
	if err := r.validate.Struct(p); err != nil {
		return fmt.Errorf("%w: network %s: %v", domain.ErrIncompleteProfile, p.Name, err)
	}
	if err := r.validate.Struct(p.Connection); err != nil {
		return fmt.Errorf("%w: network %s connection: %v", domain.ErrIncompleteProfile, p.Name, err)
	}
	return nil
}

func connectRemote(mnemonicKey, rpcURLKey string) func(domainService.Environment) (entity.Connection, error) {
	return func(env domainService.Environment) (entity.Connection, error) {
		raw, _ := lookupNonEmpty(env, mnemonicKey)
		mnemonic := entity.NewSecret(raw)
		if mnemonic.IsZero() {
			return nil, &domain.MissingCredentialError{Field: FieldMnemonic, EnvKey: mnemonicKey}
		}
		rawURL, ok := lookupNonEmpty(env, rpcURLKey)
		if !ok {
			return nil, &domain.MissingCredentialError{Field: FieldRPCURL, EnvKey: rpcURLKey}
		}
		rpcURL, err := entity.NewRPCURL(rawURL)
		if err != nil {
			return nil, &domain.InvalidSettingError{Field: FieldRPCURL, EnvKey: rpcURLKey, Reason: err.Error()}
		}
		return entity.RemoteProvider{Mnemonic: mnemonic, RPCURL: rpcURL}, nil
	}
}

// connectLocal honors any syntactically valid port, including 0. An unset or
// empty key falls back to the default.
func connectLocal(portKey string) func(domainService.Environment) (entity.Connection, error) {
	return func(env domainService.Environment) (entity.Connection, error) {
		port := localDefaultPort
		if raw, ok := lookupNonEmpty(env, portKey); ok {
			parsed, err := strconv.ParseUint(raw, 10, 16)
			if err != nil {
				return nil, &domain.InvalidSettingError{
					Field:  FieldPort,
					EnvKey: portKey,
					Reason: "must be a decimal integer between 0 and 65535",
				}
			}
			port = uint16(parsed)
		}
		return entity.LocalEndpoint{Host: localHost, Port: port}, nil
	}
}

func lookupNonEmpty(env domainService.Environment, key string) (string, bool) {
	if env == nil {
		return "", false
	}
	v, ok := env.Lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
