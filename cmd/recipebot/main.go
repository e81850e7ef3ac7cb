package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/m3rciful/recipebot/core/buildinfo"
	corecmd "github.com/m3rciful/recipebot/core/cmd"
	"github.com/m3rciful/recipebot/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "recipebot",
		Short:         "Telegram bot for browsing air fryer recipes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return corecmd.Run(corecmd.Options{
				ConfigPath:        configPath,
				ConfigEnvVar:      "CONFIG_PATH",
				DefaultConfigPath: "config.yaml",
				LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
					return app.Load(path)
				},
				Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
					return app.Bootstrap(cfg.(*app.Config))
				},
				Context: cmd.Context(),
			})
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (overrides CONFIG_PATH)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	})
	return root
}
