package snake

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/appoverrides/pkg/setting"
)

// SettingAnnotation marks a flag that holds a value for a setting field.
const SettingAnnotation = "appoverrides/setting"

// AnnotateSetting tags the named flag on cmd with field.
func AnnotateSetting(cmd *cobra.Command, name string, field setting.Field) error {
	return cmd.Flags().SetAnnotation(name, SettingAnnotation, []string{string(field)})
}

// PromptSettingFlags asks for every setting flag the user did not pass. The
// current stored value is the starting selection.
func PromptSettingFlags(cmd *cobra.Command, current func(setting.Field) string) error {
	var fs []*pflag.Flag
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		if len(f.Annotations[SettingAnnotation]) == 1 {
			fs = append(fs, f)
		}
	})

	for _, f := range fs {
		field, err := setting.ParseField(f.Annotations[SettingAnnotation][0])
		if err != nil {
			return err
		}
		start := setting.NoChangeKey
		if current != nil {
			start = current(field)
		}
		key, err := SelectValue(cmd, field, start)
		if err != nil {
			return err
		}
		if err := cmd.Flags().Set(f.Name, key); err != nil {
			return fmt.Errorf("snake: set --%s: %w", f.Name, err)
		}
	}
	return nil
}
