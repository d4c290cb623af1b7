// Package service is the blogview command line.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"blogview/app/config"
	"blogview/app/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type ctxKey string

const appKey ctxKey = "app"

// App carries what every command needs once configuration is resolved.
type App struct {
	Config *config.Config
	Logger *zap.Logger
}

var osExit = os.Exit

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		osExit(1)
	}
}

// NewRootCmd constructs the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "blogview",
		Short:         "Serve and render a fragment-routed blog from a posts document",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey, &App{Config: cfg, Logger: logger}))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app, err := getApp(cmd); err == nil {
				_ = app.Logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|json|toml)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newContentCmd())
	cmd.AddCommand(newVersionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getApp(cmd *cobra.Command) (*App, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("internal error: app not initialized")
	}
	app, ok := ctx.Value(appKey).(*App)
	if !ok {
		return nil, errors.New("internal error: app not initialized")
	}
	return app, nil
}
