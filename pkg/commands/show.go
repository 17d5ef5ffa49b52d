package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/commands/options"
	"tableflip.dev/appoverrides/pkg/runner/resolve"
	"tableflip.dev/appoverrides/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <app>",
		Short: "Show the stored override of an app.",
		Example: `
appoverrides show com.example.racer
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: appCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Service: svc,
				AppID:   args[0],
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addResolve(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <app>",
		Short: "Show the values an app runs with once the global defaults are applied.",
		Example: `
appoverrides resolve com.example.racer
appoverrides resolve com.example.racer --json
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: appCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			r := resolve.Resolve{
				Service: svc,
				AppID:   args[0],
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
