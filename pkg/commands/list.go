package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/commands/options"
	"tableflip.dev/appoverrides/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the apps with an override and the apps that can get one.",
		Example: `
appoverrides list
appoverrides list --show-id
appoverrides list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				Service: svc,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addCandidates(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "List installed apps that have no override yet.",
		Example: `
appoverrides candidates
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				Service:    svc,
				Candidates: true,
				JSON:       oo.JSON,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
