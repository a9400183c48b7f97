// Package cli provides the command-line interface for aura.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/aura/internal/app"
	"github.com/okian/aura/internal/config"
	"github.com/okian/aura/pkg/logger"
)

// Option configures the root command.
type Option func(*app)

// WithService makes every command use svc instead of one built from config.
func WithService(svc *service.Service) Option {
	return func(a *app) {
		a.svc = svc
	}
}

// app carries state shared by the subcommands.
type app struct {
	svc *service.Service

	// Global flags
	sourceName string
	logLevel   string
	format     string
}

// NewRootCmd builds the aura command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "aura",
		Short: "Turn weather into a visual aura",
		Long: `Aura maps a weather snapshot to a renderer-agnostic visual: gradient layers,
a polygon or star outline, a filter chain, a shadow and a pulse period.

Weather can be given on the command line, read from a JSON observation,
fetched live for a place, or picked at random from a list of notable places.

Configuration is read from AURA_CONFIG (YAML) and AURA_* environment variables.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.sourceName, "source", "", "weather source (openmeteo, synthetic); overrides AURA_SOURCE")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&a.format, "output", "o", formatSummary, "output format (summary, json, css)")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newFetchCmd(a))
	root.AddCommand(newRandomCmd(a))
	root.AddCommand(newModesCmd(a))
	root.AddCommand(newExplainCmd(a))
	return root
}

// setup builds the service from configuration unless one was injected.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(a.format); err != nil {
		return err
	}
	if a.svc != nil {
		return nil
	}

	if err := logger.Init(logger.Options{Writer: cmd.ErrOrStderr()}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(a.logLevel); err != nil {
		return err
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.sourceName != "" {
		cfg.Source = a.sourceName
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	a.svc = service.NewFromConfig(cfg, service.WithLogger(logger.Named("cli")))
	return nil
}
