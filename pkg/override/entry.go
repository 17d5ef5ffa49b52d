// Package override defines the per-application override record and how it
// resolves against the global defaults.
package override

import (
	"encoding/json"
	"fmt"
	"strings"

	"tableflip.dev/appoverrides/pkg/setting"
)

// Entry is one application's override record. A field holding its NoChange
// sentinel inherits the global default.
type Entry struct {
	AppID           string
	ControllerStyle setting.ControllerStyle
	L2R2Style       setting.L2R2Style
}

// New returns an entry for appID with every field set to NoChange.
func New(appID string) Entry {
	return Entry{
		AppID:           appID,
		ControllerStyle: setting.ControllerNoChange,
		L2R2Style:       setting.L2R2NoChange,
	}
}

// Equal reports full structural equality. Zero-valued fields compare equal to
// NoChange.
func (e Entry) Equal(other Entry) bool {
	return e.AppID == other.AppID &&
		e.ControllerStyle.Key() == other.ControllerStyle.Key() &&
		e.L2R2Style.Key() == other.L2R2Style.Key()
}

// IsEmpty reports whether every field is NoChange.
func (e Entry) IsEmpty() bool {
	return e.ControllerStyle.IsNoChange() && e.L2R2Style.IsNoChange()
}

// Value returns the persistence key held for field.
func (e Entry) Value(f setting.Field) string {
	switch f {
	case setting.FieldControllerStyle:
		return e.ControllerStyle.Key()
	case setting.FieldL2R2Style:
		return e.L2R2Style.Key()
	default:
		return ""
	}
}

// With returns a copy of e with field set to the value named by key.
func (e Entry) With(f setting.Field, key string) (Entry, error) {
	switch f {
	case setting.FieldControllerStyle:
		s, err := setting.ParseControllerStyle(key)
		if err != nil {
			return e, err
		}
		e.ControllerStyle = s
	case setting.FieldL2R2Style:
		s, err := setting.ParseL2R2Style(key)
		if err != nil {
			return e, err
		}
		e.L2R2Style = s
	default:
		return e, fmt.Errorf("override: unknown field %q", f)
	}
	return e, nil
}

// Subtitle renders the explicit overrides as a single line.
func (e Entry) Subtitle() string {
	parts := make([]string, 0, 2)
	if !e.ControllerStyle.IsNoChange() {
		parts = append(parts, setting.FieldControllerStyle.Label()+": "+e.ControllerStyle.Label())
	}
	if !e.L2R2Style.IsNoChange() {
		parts = append(parts, setting.FieldL2R2Style.Label()+": "+e.L2R2Style.Label())
	}
	if len(parts) == 0 {
		return "No overrides"
	}
	return strings.Join(parts, ", ")
}

type wireEntry struct {
	AppID           string `json:"app_id"`
	ControllerStyle string `json:"controller_style,omitempty"`
	L2R2Style       string `json:"l2r2_style,omitempty"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEntry{
		AppID:           e.AppID,
		ControllerStyle: e.ControllerStyle.Key(),
		L2R2Style:       e.L2R2Style.Key(),
	})
}

// UnmarshalJSON decodes an entry, substituting NoChange for any value key it
// does not recognise.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Entry{
		AppID:           w.AppID,
		ControllerStyle: setting.NormalizeControllerStyle(w.ControllerStyle),
		L2R2Style:       setting.NormalizeL2R2Style(w.L2R2Style),
	}
	return nil
}
