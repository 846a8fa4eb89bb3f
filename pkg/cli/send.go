package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/cli/config"
	"github.com/secmon-lab/ziggy/pkg/usecase"
	"github.com/secmon-lab/ziggy/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

func cmdSend() *cli.Command {
	var (
		formCfg      config.Form
		deliveryCfg  config.Delivery
		dispatchCfg  config.Dispatch
		slackCfg     config.Slack
		firestoreCfg config.Firestore
		settingsCfg  config.Settings
		remember     bool
	)

	flags := joinFlags(
		formCfg.Flags(),
		deliveryCfg.Flags(),
		dispatchCfg.Flags(),
		slackCfg.Flags(),
		firestoreCfg.Flags(),
		settingsCfg.Flags(),
		[]cli.Flag{
			&cli.BoolFlag{
				Name:        "remember",
				Usage:       "Store the form values and file paths as settings after sending",
				Category:    "Settings",
				Destination: &remember,
			},
		},
	)

	return &cli.Command{
		Name:  "send",
		Usage: "Send the round postings to every room",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Debug("Sending postings",
				slog.Any("form", formCfg),
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
			stored, err := settingsUC.Get(ctx, settingsCfg.ID())
			if err != nil {
				return err
			}

			teams, rooms, err := formCfg.Tables(stored)
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
			outcome, err := posting.Send(ctx, &usecase.SendInput{
				Teams:      teams,
				Rooms:      rooms,
				Template:   formCfg.Template(),
				SettingsID: settingsCfg.ID(),
			})
			if outcome != nil {
				printOutcome(c.Root().Writer, outcome)
				if reportErr := posting.Report(ctx, outcome); reportErr != nil {
					apperr.Handle(ctx, reportErr)
				}
			}
			if err != nil {
				return err
			}

			if remember {
				if _, err := settingsUC.Update(ctx, settingsCfg.ID(), formCfg.Settings()); err != nil {
					return err
				}
			}

			if outcome.HasErrors() {
				return goerr.New("some rooms could not be sent",
					goerr.V("failed", len(outcome.Errors)),
					goerr.V("rooms", outcome.RoomCount),
					goerr.V("batch_id", outcome.BatchID))
			}
			return nil
		},
	}
}
