// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/setting"
	"tableflip.dev/appoverrides/pkg/snake"
)

// SettingOptions holds the raw value keys passed for each setting.
type SettingOptions struct {
	ControllerStyle string
	L2R2Style       string
}

const (
	controllerStyleFlag = "controller-style"
	l2r2StyleFlag       = "l2r2-style"
)

// AddSettingArgs wires one flag per overridable setting.
func AddSettingArgs(cmd *cobra.Command, o *SettingOptions) {
	cmd.Flags().StringVar(&o.ControllerStyle, controllerStyleFlag, "",
		"Controller style key, see `appoverrides key`.")
	cmd.Flags().StringVar(&o.L2R2Style, l2r2StyleFlag, "",
		"L2/R2 mode key, see `appoverrides key`.")

	for name, field := range map[string]setting.Field{
		controllerStyleFlag: setting.FieldControllerStyle,
		l2r2StyleFlag:       setting.FieldL2R2Style,
	} {
		field := field
		_ = snake.AnnotateSetting(cmd, name, field)
		_ = cmd.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return settingCompletions(field), cobra.ShellCompDirectiveNoFileComp
		})
	}
}

// Values returns the fields that were given a value.
func (o *SettingOptions) Values() map[setting.Field]string {
	out := map[setting.Field]string{}
	if o.ControllerStyle != "" {
		out[setting.FieldControllerStyle] = o.ControllerStyle
	}
	if o.L2R2Style != "" {
		out[setting.FieldL2R2Style] = o.L2R2Style
	}
	return out
}

func settingCompletions(f setting.Field) []string {
	opts := setting.Values(f)
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Key+"\t"+o.Label)
	}
	return out
}
