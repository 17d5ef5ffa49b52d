package override

import (
	"errors"
	"fmt"

	"tableflip.dev/appoverrides/pkg/setting"
)

// ErrInvalidDefaults is returned when a global default is NoChange.
var ErrInvalidDefaults = errors.New("override: global defaults must be concrete values")

// Defaults holds the device-wide value of each setting.
type Defaults struct {
	ControllerStyle setting.ControllerStyle `json:"controller_style"`
	L2R2Style       setting.L2R2Style       `json:"l2r2_style"`
}

// Validate rejects defaults that would leave a setting unresolved.
func (d Defaults) Validate() error {
	if d.ControllerStyle.IsNoChange() {
		return fmt.Errorf("%w: %s", ErrInvalidDefaults, setting.FieldControllerStyle)
	}
	if d.L2R2Style.IsNoChange() {
		return fmt.Errorf("%w: %s", ErrInvalidDefaults, setting.FieldL2R2Style)
	}
	return nil
}

// Source records where an effective value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceOverride Source = "override"
)

// Effective is the fully resolved setting set for one application.
type Effective struct {
	AppID                 string                  `json:"app_id"`
	ControllerStyle       setting.ControllerStyle `json:"controller_style"`
	ControllerStyleSource Source                  `json:"controller_style_source"`
	L2R2Style             setting.L2R2Style       `json:"l2r2_style"`
	L2R2StyleSource       Source                  `json:"l2r2_style_source"`
}

// Resolve layers entry over defaults: an explicit value wins, NoChange
// inherits.
func Resolve(defaults Defaults, entry Entry) Effective {
	eff := Effective{
		AppID:                 entry.AppID,
		ControllerStyle:       defaults.ControllerStyle,
		ControllerStyleSource: SourceDefault,
		L2R2Style:             defaults.L2R2Style,
		L2R2StyleSource:       SourceDefault,
	}
	if !entry.ControllerStyle.IsNoChange() {
		eff.ControllerStyle = entry.ControllerStyle
		eff.ControllerStyleSource = SourceOverride
	}
	if !entry.L2R2Style.IsNoChange() {
		eff.L2R2Style = entry.L2R2Style
		eff.L2R2StyleSource = SourceOverride
	}
	return eff
}

// ResolveApp resolves appID when it may have no stored entry at all.
func ResolveApp(defaults Defaults, appID string, entry Entry, ok bool) Effective {
	if !ok {
		return Resolve(defaults, New(appID))
	}
	return Resolve(defaults, entry)
}
