package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fasthttp/router"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	delivery "github.com/Fluid-X/core/internal/adapter/delivery/http"
	handler "github.com/Fluid-X/core/internal/adapter/handler/http"
	"github.com/Fluid-X/core/internal/adapter/presenter"
)

var errPreflightFailed = errors.New("preflight failed")

func newResolveCmd(a *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <network>",
		Short: "Print the resolved profile for a network (mnemonic redacted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.service.ResolveTarget(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, presenter.ToProfileView(profile))
		},
	}
}

func newNetworksCmd(a *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List the configured network names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := a.service.ListTargets(cmd.Context())
			return render(cmd.OutOrStdout(), opts.output, presenter.ToNetworkNames(names))
		},
	}
}

func newToolchainCmd(a *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toolchain",
		Short: "Print the pinned compiler version and test timeout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return render(cmd.OutOrStdout(), opts.output, presenter.ToToolchainView(a.service.Toolchain(cmd.Context())))
		},
	}
}

func newPreflightCmd(a *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight <network>",
		Short: "Resolve a network and check that its endpoint answers with the expected chain id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.service.Preflight(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), opts.output, presenter.ToPreflightView(report)); err != nil {
				return err
			}
			if !report.Reachable {
				return fmt.Errorf("%w: %s is unreachable", errPreflightFailed, report.Endpoint)
			}
			if report.ChainIDMatches != nil && !*report.ChainIDMatches {
				return fmt.Errorf("%w: %s serves chain %d, expected %d",
					errPreflightFailed, report.Endpoint, *report.ObservedChainID, *report.ExpectedChainID)
			}
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve deployment targets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	a.logger.Info("Setting up HTTP router...")
	r := router.New()
	delivery.RegisterRoutes(r, handler.NewTargetHandler(a.service, a.logger), a.logger)

	srv := &fasthttp.Server{
		Handler: delivery.LoggingMiddleware(r.Handler, a.logger),
		Name:    a.cfg.App.Name,
	}

	serverAddr := ":" + a.cfg.Server.Port
	a.logger.Info("Starting HTTP server", zap.String("address", serverAddr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(serverAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error("HTTP server stopped", zap.Error(err))
		}
		return err
	case <-ctx.Done():
		a.logger.Info("Shutting down HTTP server")
		return srv.Shutdown()
	}
}
