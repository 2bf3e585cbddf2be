package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pingcraft/pingcraft/internal/api"
	"github.com/pingcraft/pingcraft/internal/config"
	"github.com/pingcraft/pingcraft/internal/storage"
	"github.com/pingcraft/pingcraft/internal/tracker"
)

var (
	configPath = "pingcraft.yml"

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Keeps polling the configured servers and serves their status over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			logger.Info().
				Str("config", configPath).
				Msg("loading config")

			provider := config.FileProvider{ConfigPath: configPath}
			cfg, err := provider.Config()
			if err != nil {
				return err
			}

			var repo *storage.Repository
			if cfg.StoragePath != "" {
				repo, err = storage.New(cfg.StoragePath)
				if err != nil {
					return err
				}
				defer repo.Close()
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tr := tracker.New(cfg, logger, repo)

			cfgCh := make(chan config.Config)
			go func() {
				defer close(cfgCh)
				if err := config.Watch(ctx, configPath, logger, cfgCh); err != nil &&
					ctx.Err() == nil {
					logger.Error().
						Err(err).
						Msg("config watcher stopped")
				}
			}()
			go func() {
				for cfg := range cfgCh {
					logger.Info().Msg("reloading config")
					tr.SetConfig(cfg)
				}
			}()

			srv := api.Server{
				Bind:    cfg.Bind,
				Tracker: tr,
				Repo:    repo,
				Logger:  logger,
			}

			errChan := make(chan error, 2)
			go func() {
				errChan <- srv.ListenAndServe(ctx)
			}()
			go func() {
				errChan <- tr.Run(ctx)
			}()

			select {
			case err := <-errChan:
				if ctx.Err() != nil {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info().Msg("shutting down")
				return nil
			}
		},
	}
)

func init() {
	envVarPrefix := "PINGCRAFT_"
	configPath = envString(envVarPrefix+"CONFIG", configPath)
	watchCmd.Flags().StringVarP(&configPath, "config", "c", configPath, "path of the config file")
}
