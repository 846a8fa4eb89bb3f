package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/cli/config"
	controller "github.com/secmon-lab/ziggy/pkg/controller/http"
	"github.com/secmon-lab/ziggy/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		deliveryCfg  config.Delivery
		dispatchCfg  config.Dispatch
		slackCfg     config.Slack
		firestoreCfg config.Firestore
		settingsCfg  config.Settings
	)

	flags := joinFlags(
		serverCfg.Flags(),
		deliveryCfg.Flags(),
		dispatchCfg.Flags(),
		slackCfg.Flags(),
		firestoreCfg.Flags(),
		settingsCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting ziggy server",
				slog.Any("server", serverCfg),
				slog.Any("delivery", deliveryCfg),
				slog.Any("dispatch", dispatchCfg),
				slog.Any("slack", slackCfg),
				slog.Any("firestore", firestoreCfg),
				slog.Any("settings", settingsCfg),
			)

			repo, err := firestoreCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			settingsUC, err := settingsCfg.Configure(ctx, repo)
			if err != nil {
				return err
			}

			sender, err := deliveryCfg.Configure()
			if err != nil {
				return err
			}
			dispatcher, err := dispatchCfg.Dispatcher(sender)
			if err != nil {
				return err
			}
			schema, err := settingsCfg.Schema()
			if err != nil {
				return err
			}

			opts := []usecase.PostingOption{usecase.WithSettings(settingsUC)}
			reporter, err := slackCfg.ConfigureOptional(ctx, logger)
			if err != nil {
				return err
			}
			if reporter != nil {
				opts = append(opts, usecase.WithReporter(reporter))
			}
			posting := usecase.NewPosting(dispatchCfg.Matcher(schema), dispatcher, opts...)

			server, err := controller.NewServer(ctx,
				controller.NewConfig(serverCfg.Addr),
				controller.NewUseCases(posting, settingsUC),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}
			if err := server.Wait(shutdownCtx); err != nil {
				logger.Warn("Shutdown before every report was posted", slog.Any("error", err))
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
