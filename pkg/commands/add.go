package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/apps"
	"tableflip.dev/appoverrides/pkg/commands/options"
	"tableflip.dev/appoverrides/pkg/runner/add"
	"tableflip.dev/appoverrides/pkg/setting"
	"tableflip.dev/appoverrides/pkg/snake"
)

func addAdd(topLevel *cobra.Command) {
	so := &options.SettingOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add [app]",
		Short: "Create an override for an installed app.",
		Long: `Create an override for an installed app that has none yet. Without an app
the candidates are offered in a prompt.`,
		Example: `
appoverrides add com.example.racer --controller-style disconnect
appoverrides add
appoverrides add -i
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: candidateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			tty := options.IsTerminal(cmd.InOrStdin())

			a := add.Add{
				Service: svc,
				Values:  so.Values(),
				Out:     cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				a.AppID = args[0]
			} else {
				if !tty {
					return errors.New("add: pass an app, no terminal to prompt on")
				}
				a.Pick = func(c []apps.App) (apps.App, error) {
					return snake.SelectApp(cmd, c)
				}
			}
			if i.Interactive || (len(args) == 0 && len(a.Values) == 0) {
				if !tty {
					return errors.New("add: no terminal to prompt on")
				}
				a.Ask = func(f setting.Field, current string) (string, error) {
					return snake.SelectValue(cmd, f, current)
				}
			}
			return a.Do(cmd.Context())
		},
	}

	options.AddSettingArgs(cmd, so)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
