// Package setting defines the closed sets of values each overridable input
// setting can take, including the NoChange sentinel.
package setting

import (
	"fmt"
	"strings"
)

// NoChangeKey is the persistence key shared by every NoChange sentinel.
const NoChangeKey = "no_change"

// Field identifies one overridable setting category.
type Field string

const (
	// FieldControllerStyle selects the controller emulation style.
	FieldControllerStyle Field = "controller_style"
	// FieldL2R2Style selects the analog/digital trigger mode.
	FieldL2R2Style Field = "l2r2_style"
)

// AllFields returns the overridable fields in display order.
func AllFields() []Field {
	return []Field{
		FieldControllerStyle,
		FieldL2R2Style,
	}
}

// ParseField converts a user supplied name to a Field.
func ParseField(raw string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(FieldControllerStyle), "controller", "controller-style":
		return FieldControllerStyle, nil
	case string(FieldL2R2Style), "l2r2", "l2r2-style":
		return FieldL2R2Style, nil
	default:
		return "", fmt.Errorf("setting: unknown field %q", raw)
	}
}

// LabelID is the display label reference for the field.
func (f Field) LabelID() string {
	return string(f)
}

// Label is the default English text for the field.
func (f Field) Label() string {
	switch f {
	case FieldControllerStyle:
		return "Controller style"
	case FieldL2R2Style:
		return "L2/R2 mode"
	default:
		return string(f)
	}
}

// Option pairs a persistence key with its display label.
type Option struct {
	Key   string
	Label string
}

// Values lists the selectable options for field, NoChange first.
func Values(f Field) []Option {
	switch f {
	case FieldControllerStyle:
		styles := ControllerStyles()
		out := make([]Option, 0, len(styles))
		for _, s := range styles {
			out = append(out, Option{Key: s.Key(), Label: s.Label()})
		}
		return out
	case FieldL2R2Style:
		styles := L2R2Styles()
		out := make([]Option, 0, len(styles))
		for _, s := range styles {
			out = append(out, Option{Key: s.Key(), Label: s.Label()})
		}
		return out
	default:
		return nil
	}
}

// ControllerStyle is the controller emulation style.
type ControllerStyle string

const (
	ControllerNoChange   ControllerStyle = NoChangeKey
	ControllerOdin       ControllerStyle = "odin"
	ControllerXbox       ControllerStyle = "xbox"
	ControllerDisconnect ControllerStyle = "disconnect"
)

// ControllerStyles returns every ControllerStyle, NoChange first.
func ControllerStyles() []ControllerStyle {
	return []ControllerStyle{
		ControllerNoChange,
		ControllerOdin,
		ControllerXbox,
		ControllerDisconnect,
	}
}

// ParseControllerStyle converts a persistence key to a ControllerStyle. The
// empty string maps to NoChange.
func ParseControllerStyle(raw string) (ControllerStyle, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return ControllerNoChange, nil
	}
	for _, candidate := range ControllerStyles() {
		if string(candidate) == key {
			return candidate, nil
		}
	}
	return ControllerNoChange, fmt.Errorf("setting: unknown controller style %q", raw)
}

// NormalizeControllerStyle is ParseControllerStyle without the error: unknown
// keys fall back to NoChange.
func NormalizeControllerStyle(raw string) ControllerStyle {
	s, _ := ParseControllerStyle(raw)
	return s
}

// Key is the persistence key. The zero value reads as NoChange.
func (s ControllerStyle) Key() string {
	if s == "" {
		return NoChangeKey
	}
	return string(s)
}

func (s ControllerStyle) IsNoChange() bool { return s == "" || s == ControllerNoChange }

func (s ControllerStyle) LabelID() string {
	switch s {
	case ControllerNoChange:
		return "no_change"
	case ControllerOdin:
		return "controller_style.odin"
	case ControllerXbox:
		return "controller_style.xbox"
	case ControllerDisconnect:
		return "controller_style.disconnect"
	default:
		return "no_change"
	}
}

func (s ControllerStyle) Label() string {
	switch s {
	case ControllerNoChange:
		return "No change"
	case ControllerOdin:
		return "Odin"
	case ControllerXbox:
		return "Xbox"
	case ControllerDisconnect:
		return "Disconnect"
	default:
		return "No change"
	}
}

func (s ControllerStyle) String() string { return s.Label() }

// L2R2Style is the trigger mode for the L2/R2 buttons.
type L2R2Style string

const (
	L2R2NoChange L2R2Style = NoChangeKey
	L2R2Analog   L2R2Style = "analog"
	L2R2Digital  L2R2Style = "digital"
	L2R2Both     L2R2Style = "both"
)

// L2R2Styles returns every L2R2Style, NoChange first.
func L2R2Styles() []L2R2Style {
	return []L2R2Style{
		L2R2NoChange,
		L2R2Analog,
		L2R2Digital,
		L2R2Both,
	}
}

// ParseL2R2Style converts a persistence key to an L2R2Style. The empty string
// maps to NoChange.
func ParseL2R2Style(raw string) (L2R2Style, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return L2R2NoChange, nil
	}
	for _, candidate := range L2R2Styles() {
		if string(candidate) == key {
			return candidate, nil
		}
	}
	return L2R2NoChange, fmt.Errorf("setting: unknown l2/r2 style %q", raw)
}

// NormalizeL2R2Style is ParseL2R2Style without the error: unknown keys fall
// back to NoChange.
func NormalizeL2R2Style(raw string) L2R2Style {
	s, _ := ParseL2R2Style(raw)
	return s
}

// Key is the persistence key. The zero value reads as NoChange.
func (s L2R2Style) Key() string {
	if s == "" {
		return NoChangeKey
	}
	return string(s)
}

func (s L2R2Style) IsNoChange() bool { return s == "" || s == L2R2NoChange }

func (s L2R2Style) LabelID() string {
	switch s {
	case L2R2NoChange:
		return "no_change"
	case L2R2Analog:
		return "l2r2_style.analog"
	case L2R2Digital:
		return "l2r2_style.digital"
	case L2R2Both:
		return "l2r2_style.both"
	default:
		return "no_change"
	}
}

func (s L2R2Style) Label() string {
	switch s {
	case L2R2NoChange:
		return "No change"
	case L2R2Analog:
		return "Analog"
	case L2R2Digital:
		return "Digital"
	case L2R2Both:
		return "Both"
	default:
		return "No change"
	}
}

func (s L2R2Style) String() string { return s.Label() }
