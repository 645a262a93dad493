package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gantt-go/app"
	"gantt-go/app/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var envDir string

	cmd := &cobra.Command{
		Use:          "gantt-server",
		Short:        "Serve Gantt chart tasks and links over HTTP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, envDir)
			if err != nil {
				return err
			}

			log, err := config.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := app.Run(ctx, cfg, log); err != nil {
				log.Errorw("server stopped", "error", err)
				return fmt.Errorf("run server: %w", err)
			}
			log.Info("server stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envDir, "env-dir", ".", "directory holding an optional .env file")
	flags.String("port", "", "listening port (PORT)")
	flags.String("static-dir", "", "static asset directory (STATIC_DIR)")
	flags.String("driver", "", "store backend: mysql, sqlite or neo4j (DB_DRIVER)")

	v.BindPFlag("PORT", flags.Lookup("port"))
	v.BindPFlag("STATIC_DIR", flags.Lookup("static-dir"))
	v.BindPFlag("DB_DRIVER", flags.Lookup("driver"))
	return cmd
}
