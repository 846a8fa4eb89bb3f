package cli

import (
	"context"

	"github.com/secmon-lab/ziggy/pkg/cli/config"
	"github.com/secmon-lab/ziggy/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdMatch() *cli.Command {
	var (
		formCfg      config.Form
		dispatchCfg  config.Dispatch
		firestoreCfg config.Firestore
		settingsCfg  config.Settings
		slots        bool
	)

	flags := joinFlags(
		formCfg.Flags(),
		dispatchCfg.Flags(),
		firestoreCfg.Flags(),
		settingsCfg.Flags(),
		[]cli.Flag{
			&cli.BoolFlag{
				Name:        "slots",
				Usage:       "Count every e-mail slot, blank ones included",
				Destination: &slots,
			},
		},
	)

	return &cli.Command{
		Name:  "match",
		Usage: "Show the recipients of every room without sending",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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
			schema, err := settingsCfg.Schema()
			if err != nil {
				return err
			}

			matched, err := dispatchCfg.Matcher(schema).Match(ctx, teams, rooms)
			if err != nil {
				return err
			}

			mode := model.CountRecipients
			if slots {
				mode = model.CountSlots
			}
			printMatched(c.Root().Writer, matched, mode)
			return nil
		},
	}
}
