package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where overrides are stored.",
		Example: `
appoverrides info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, cfg, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			s := info.Info{
				Config: cfg,
				Store:  svc.Store,
				Out:    cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
