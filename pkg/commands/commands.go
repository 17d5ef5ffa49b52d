package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {
	noColor := false

	cmd := &cobra.Command{
		Use:   "appoverrides",
		Short: base.Wrap80("Per-app overrides for the controller style and L2/R2 mode of the device."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addList(topLevel)
	addCandidates(topLevel)
	addShow(topLevel)
	addSet(topLevel)
	addAdd(topLevel)
	addDelete(topLevel)
	addResolve(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addWatch(topLevel)
	addUI(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
