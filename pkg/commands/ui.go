package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/appoverrides/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse and edit overrides in a terminal UI.",
		Example: `
appoverrides ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			return teaui.Run(cmd.Context(), svc)
		},
	}

	topLevel.AddCommand(cmd)
}
