package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Fluid-X/core/internal/application/port"
	"github.com/Fluid-X/core/internal/domain"
	"github.com/Fluid-X/core/internal/domain/entity"
	domainRepo "github.com/Fluid-X/core/internal/domain/repository"
	domainService "github.com/Fluid-X/core/internal/domain/service"
)

// Compile-time check to ensure targetService implements TargetService
var _ port.TargetService = (*targetService)(nil)

// fingerprinter is implemented by environment snapshots that can digest a key set.
// Without it, resolved profiles are not cached.
type fingerprinter interface {
	Fingerprint(keys ...string) string
}

// targetService implements the port.TargetService interface on top of the registry.
type targetService struct {
	resolver domainService.TargetResolver
	env      domainService.Environment
	cache    domainRepo.ProfileCache
	prober   domainService.EndpointProber
	logger   *zap.Logger
}

// NewTargetService creates a new instance of the target service.
// cache and prober may be nil.
func NewTargetService(
	resolver domainService.TargetResolver,
	env domainService.Environment,
	cache domainRepo.ProfileCache,
	prober domainService.EndpointProber,
	logger *zap.Logger,
) port.TargetService {
	return &targetService{
		resolver: resolver,
		env:      env,
		cache:    cache,
		prober:   prober,
		logger:   logger.Named("TargetService"),
	}
}

// ResolveTarget resolves a network name, serving repeat lookups from cache while the
// relevant environment keys are unchanged.
func (s *targetService) ResolveTarget(ctx context.Context, name string) (entity.NetworkProfile, error) {
	key, cacheable := s.cacheKey(name)
	if cacheable {
		cached, found, err := s.cache.GetProfile(ctx, key)
		if err != nil {
			s.logger.Warn("Cache error when getting profile", zap.String("network", name), zap.Error(err))
		}
		if found {
			s.logger.Debug("Cache hit for profile", zap.String("network", name))
			return cached.Clone(), nil
		}
	}

	profile, err := s.resolver.Resolve(name, s.env)
	if err != nil {
		s.logResolveFailure(name, err)
		return entity.NetworkProfile{}, err
	}

	fields := []zap.Field{
		zap.String("network", profile.Name.String()),
		zap.String("connection", string(profile.Connection.Kind())),
		zap.String("endpoint", profile.Connection.Endpoint().Redacted()),
	}
	if profile.ChainID != nil {
		fields = append(fields, zap.Uint64("chainId", *profile.ChainID))
	}
	s.logger.Info("Resolved deployment target", fields...)

	if cacheable {
		if err := s.cache.SetProfile(ctx, key, profile.Clone(), 0); err != nil {
			s.logger.Warn("Failed to cache resolved profile", zap.String("network", name), zap.Error(err))
		}
	}
	return profile, nil
}

// ListTargets returns the configured network names.
func (s *targetService) ListTargets(_ context.Context) []entity.NetworkName {
	return s.resolver.Networks()
}

// Toolchain returns the pinned compiler and test harness policies.
func (s *targetService) Toolchain(_ context.Context) entity.Toolchain {
	return s.resolver.Toolchain()
}

// Preflight resolves the network and asks its endpoint for its chain id. An
// unreachable endpoint is reported in the result, not returned as an error.
func (s *targetService) Preflight(ctx context.Context, name string) (entity.PreflightReport, error) {
	profile, err := s.ResolveTarget(ctx, name)
	if err != nil {
		return entity.PreflightReport{}, err
	}
	if s.prober == nil {
		return entity.PreflightReport{}, domain.ErrPreflightUnavailable
	}

	endpoint := profile.Connection.Endpoint()
	report := entity.PreflightReport{
		Network:         profile.Name,
		Endpoint:        endpoint.Redacted(),
		ExpectedChainID: profile.Clone().ChainID,
	}

	result, err := s.prober.Probe(ctx, endpoint)
	report.Latency = result.Latency
	if err != nil {
		s.logger.Warn("Preflight probe failed",
			zap.String("network", name), zap.String("endpoint", report.Endpoint), zap.Error(err),
		)
		report.Error = err.Error()
		return report, nil
	}

	observed := result.ChainID
	report.Reachable = true
	report.ObservedChainID = &observed
	if profile.ChainID != nil {
		matches := *profile.ChainID == observed
		report.ChainIDMatches = &matches
		if !matches {
			s.logger.Warn("Endpoint serves a different chain than the profile expects",
				zap.String("network", name),
				zap.Uint64("expectedChainId", *profile.ChainID),
				zap.Uint64("observedChainId", observed),
			)
		}
	}

	s.logger.Info("Preflight probe finished",
		zap.String("network", name),
		zap.String("endpoint", report.Endpoint),
		zap.Uint64("observedChainId", observed),
		zap.Duration("latency", result.Latency),
	)
	return report, nil
}

func (s *targetService) cacheKey(name string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	fp, ok := s.env.(fingerprinter)
	if !ok {
		return "", false
	}
	network, known := entity.ParseNetworkName(name)
	if !known {
		return "", false
	}
	return network.String() + "_" + fp.Fingerprint(s.resolver.EnvKeys(network)...), true
}

func (s *targetService) logResolveFailure(name string, err error) {
	var (
		unknown *domain.UnknownNetworkError
		missing *domain.MissingCredentialError
		invalid *domain.InvalidSettingError
	)
	switch {
	case errors.As(err, &unknown):
		s.logger.Warn("Unknown deployment target requested",
			zap.String("network", name), zap.Any("known", unknown.Known),
		)
	case errors.As(err, &missing):
		s.logger.Warn("Deployment target is missing a credential",
			zap.String("network", name), zap.String("field", missing.Field), zap.String("envKey", missing.EnvKey),
		)
	case errors.As(err, &invalid):
		s.logger.Warn("Deployment target has an invalid setting",
			zap.String("network", name), zap.String("field", invalid.Field), zap.String("envKey", invalid.EnvKey),
		)
	default:
		s.logger.Error("Failed to resolve deployment target", zap.String("network", name), zap.Error(err))
	}
}
