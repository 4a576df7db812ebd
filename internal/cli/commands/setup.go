package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/dimcheck/internal/cli/output"
	"github.com/leapstack-labs/dimcheck/internal/config"
	"github.com/leapstack-labs/dimcheck/pkg/check"
	"github.com/spf13/cobra"
)

// Context keys for values the root command stores for subcommands.
type (
	configKey struct{}
	loggerKey struct{}
)

// WithConfig stores the loaded config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Table    check.Table
	Renderer *output.Renderer
}

// NewCommandContext builds the shared command dependencies, including
// the variable table assembled from the project configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())

	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Table:    table,
		Renderer: r,
	}, nil
}
