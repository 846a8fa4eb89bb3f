package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ziggy/pkg/cli/config"
	"github.com/secmon-lab/ziggy/pkg/usecase"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func cmdSettings() *cli.Command {
	var (
		firestoreCfg config.Firestore
		settingsCfg  config.Settings
	)

	flags := joinFlags(
		firestoreCfg.Flags(),
		settingsCfg.Flags(),
	)

	withSettings := func(ctx context.Context, fn func(uc *usecase.Settings) error) error {
		repo, err := firestoreCfg.Configure(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		uc, err := settingsCfg.Configure(ctx, repo)
		if err != nil {
			return err
		}
		return fn(uc)
	}

	var formCfg config.Form

	return &cli.Command{
		Name:  "settings",
		Usage: "Manage stored form defaults",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the current settings as YAML",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withSettings(ctx, func(uc *usecase.Settings) error {
						settings, err := uc.Get(ctx, settingsCfg.ID())
						if err != nil {
							return err
						}
						out, err := yaml.Marshal(settings)
						if err != nil {
							return goerr.Wrap(err, "failed to encode settings")
						}
						_, err = fmt.Fprint(c.Root().Writer, string(out))
						return err
					})
				},
			},
			{
				Name:  "set",
				Usage: "Store form defaults. Omitted fields keep their value",
				Flags: formCfg.Flags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return withSettings(ctx, func(uc *usecase.Settings) error {
						settings, err := uc.Update(ctx, settingsCfg.ID(), formCfg.Settings())
						if err != nil {
							return err
						}
						_, err = fmt.Fprintf(c.Root().Writer, "Settings %q saved.\n", settings.ID)
						return err
					})
				},
			},
			{
				Name:  "reset",
				Usage: "Remove stored settings",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withSettings(ctx, func(uc *usecase.Settings) error {
						if err := uc.Reset(ctx, settingsCfg.ID()); err != nil {
							return err
						}
						_, err := fmt.Fprintf(c.Root().Writer, "Settings %q reset.\n", settingsCfg.ID())
						return err
					})
				},
			},
		},
	}
}
