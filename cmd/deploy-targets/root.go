package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Fluid-X/core/internal/adapter/env"
	"github.com/Fluid-X/core/internal/adapter/rpc"
	"github.com/Fluid-X/core/internal/adapter/storage/memory"
	"github.com/Fluid-X/core/internal/application"
	"github.com/Fluid-X/core/internal/application/port"
	"github.com/Fluid-X/core/internal/config"
	domainService "github.com/Fluid-X/core/internal/domain/service"
	"github.com/Fluid-X/core/internal/logger"
	"github.com/Fluid-X/core/internal/registry"
)

// app holds the dependencies shared by every subcommand.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	service port.TargetService
}

type rootOptions struct {
	configPath string
	envFile    string
	output     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:          "deploy-targets",
		Short:        "Resolve contract deployment targets",
		Long:         `Resolve network profiles (connection, credentials, gas and confirmation policy) for the contract deployment tool.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			built, err := buildApp(opts)
			if err != nil {
				return err
			}
			*a = *built
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "configs", "Directory containing config.yaml")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Dotenv file with network credentials (overrides env.file)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "Output format: json or yaml")

	cmd.AddCommand(newResolveCmd(a, opts))
	cmd.AddCommand(newNetworksCmd(a, opts))
	cmd.AddCommand(newToolchainCmd(a, opts))
	cmd.AddCommand(newPreflightCmd(a, opts))
	cmd.AddCommand(newServeCmd(a))

	return cmd
}

// buildApp wires configuration, logging, the environment snapshot and the target service.
func buildApp(opts *rootOptions) (*app, error) {
	if opts.output != "json" && opts.output != "yaml" {
		return nil, fmt.Errorf("unsupported output format %q (expected json or yaml)", opts.output)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from %s: %w", opts.configPath, err)
	}
	if opts.envFile != "" {
		cfg.Env.File = opts.envFile
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	snapshot, err := env.Load(cfg.Env.File, log)
	if err != nil {
		return nil, err
	}

	var prober domainService.EndpointProber
	if cfg.Probe.Enabled {
		prober = rpc.NewProber(cfg.Probe.GetTimeout(), log)
	}

	service := application.NewTargetService(
		registry.New(),
		snapshot,
		memory.NewProfileCache(cfg.Cache, log),
		prober,
		log,
	)

	return &app{cfg: cfg, logger: log, service: service}, nil
}

// render writes v to w in the requested format.
func render(w io.Writer, format string, v interface{}) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
