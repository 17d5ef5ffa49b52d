package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/commands/options"
	"tableflip.dev/appoverrides/pkg/runner/set"
	"tableflip.dev/appoverrides/pkg/setting"
	"tableflip.dev/appoverrides/pkg/snake"
)

func addSet(topLevel *cobra.Command) {
	so := &options.SettingOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "set <app>",
		Short: "Change the override values of an app.",
		Long: `Change the override values of an app. The override is created when the app
has none. Use "no_change" to make a setting follow the global default again.`,
		Example: `
appoverrides set com.example.racer --controller-style xbox
appoverrides set com.example.racer --l2r2-style no_change
appoverrides set com.example.racer -i
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: appCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			if i.Interactive {
				stored, _ := svc.Store.Get(args[0])
				if err := snake.PromptSettingFlags(cmd, func(f setting.Field) string {
					return stored.Value(f)
				}); err != nil {
					return err
				}
			}
			s := set.Set{
				Service: svc,
				AppID:   args[0],
				Values:  so.Values(),
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddSettingArgs(cmd, so)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
