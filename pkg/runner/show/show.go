// Package show prints the stored override of one app.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/override"
	"tableflip.dev/appoverrides/pkg/printers"
)

type Show struct {
	Service *app.Service
	AppID   string
	JSON    bool
	Out     io.Writer
}

type result struct {
	AppID     string             `json:"app_id"`
	Name      string             `json:"name"`
	Installed bool               `json:"installed"`
	Entry     *override.Entry    `json:"entry"`
	Subtitle  string             `json:"subtitle"`
	Effective override.Effective `json:"effective"`
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil || s.Service.Store == nil {
		return errors.New("can not show, no store")
	}
	a, installed, err := s.Service.Lookup(ctx, s.AppID)
	if err != nil {
		return err
	}
	e, ok := s.Service.Store.Get(s.AppID)
	eff, err := s.Service.Effective(s.AppID)
	if err != nil {
		return err
	}

	r := result{AppID: s.AppID, Name: s.AppID, Installed: installed, Effective: eff, Subtitle: "No overrides"}
	if installed {
		r.Name = a.Name()
	}
	if ok {
		r.Entry = &e
		r.Subtitle = e.Subtitle()
	}

	if s.JSON {
		return printers.JSON(s.Out, r)
	}

	pp := printers.PrettyPrint{Out: s.Out}
	pp.NewLine()
	if !ok {
		pp.Title(r.Name)
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(printers.Writer(s.Out), " no override for %s\n\n", s.AppID)
		return nil
	}
	pp.Entry(r.Name, e)
	if !installed {
		_, _ = fmt.Fprintf(printers.Writer(s.Out), "%s is not installed.\n\n", s.AppID)
	}
	return nil
}
