package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/appoverrides/pkg/override"
	"tableflip.dev/appoverrides/pkg/overview"
	"tableflip.dev/appoverrides/pkg/setting"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	return Writer(pp.Out)
}

// Writer returns w, or color.Output when w is nil.
func Writer(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Overview prints the override rows followed by the candidates.
func (pp *PrettyPrint) Overview(ov overview.Overview) {
	pp.TitleWithCount("Overrides", len(ov.Overrides), "app")
	pp.Overrides(ov.Overrides...)
	pp.TitleWithCount("Candidates", len(ov.Candidates), "app")
	pp.Candidates(ov.Candidates...)
}

func (pp *PrettyPrint) Overrides(rows ...overview.OverrideRow) {
	if len(rows) == 0 {
		pp.none()
		return
	}
	stale := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		name := r.DisplayName
		if !r.Installed {
			name = stale.Sprint(name + " (not installed)")
		}
		if pp.ShowID {
			tbl.AddRow(name, faint.Sprint(r.AppID), r.Subtitle)
		} else {
			tbl.AddRow(name, r.Subtitle)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) Candidates(rows ...overview.CandidateRow) {
	if len(rows) == 0 {
		pp.none()
		return
	}
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		tbl.AddRow(r.DisplayName, faint.Sprint(r.AppID))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Entry prints the stored values of one override.
func (pp *PrettyPrint) Entry(name string, e override.Entry) {
	pp.Title(name)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, f := range setting.AllFields() {
		tbl.AddRow(f.Label()+":", label(f, e.Value(f)))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Effective prints the resolved values and where each came from.
func (pp *PrettyPrint) Effective(name string, eff override.Effective) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)

	pp.Title(name)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Setting"), bold.Sprint("Value"), bold.Sprint("Source"))
	src := func(s override.Source) string {
		if s == override.SourceOverride {
			return green.Sprint(string(s))
		}
		return faint.Sprint(string(s))
	}
	tbl.AddRow(setting.FieldControllerStyle.Label(), eff.ControllerStyle.Label(), src(eff.ControllerStyleSource))
	tbl.AddRow(setting.FieldL2R2Style.Label(), eff.L2R2Style.Label(), src(eff.L2R2StyleSource))
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Legend prints the selectable keys for every field.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)
	for _, f := range setting.AllFields() {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint(f.Label()), bold.Sprint("Key"))
		for _, o := range setting.Values(f) {
			tbl.AddRow(o.Label, o.Key)
		}
		tbl.RightAlign(0)
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

func label(f setting.Field, key string) string {
	for _, o := range setting.Values(f) {
		if o.Key == key {
			return o.Label
		}
	}
	return strings.TrimSpace(key)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(Writer(w), string(b))
	return err
}
