package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/commands/options"
	"tableflip.dev/appoverrides/pkg/runner/remove"
	"tableflip.dev/appoverrides/pkg/snake"
)

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <app>",
		Aliases: []string{"rm"},
		Short:   "Delete the override of an app so it follows the global defaults.",
		Example: `
appoverrides delete com.example.racer
appoverrides delete com.example.racer --yes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: overrideCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			d := remove.Delete{
				Service: svc,
				AppID:   args[0],
				Yes:     co.Yes,
				Out:     cmd.OutOrStdout(),
			}
			if options.IsTerminal(cmd.InOrStdin()) {
				d.Confirm = func(label string) (bool, error) {
					return snake.Confirm(cmd, label)
				}
			}
			return d.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
