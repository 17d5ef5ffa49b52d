// Package add creates an override for an installed app.
package add

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/apps"
	"tableflip.dev/appoverrides/pkg/printers"
	"tableflip.dev/appoverrides/pkg/setting"
)

type Add struct {
	Service *app.Service
	// AppID is picked from the candidates when empty.
	AppID  string
	Values map[setting.Field]string
	// Pick chooses one of the candidates.
	Pick func(candidates []apps.App) (apps.App, error)
	// Values are completed interactively when Ask is set.
	Ask func(field setting.Field, current string) (string, error)
	Out io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errors.New("can not add, no service")
	}
	if a.AppID == "" {
		if a.Pick == nil {
			return errors.New("add: no app given")
		}
		cands, err := a.Service.Candidates(ctx)
		if err != nil {
			return err
		}
		chosen, err := a.Pick(cands)
		if err != nil {
			return err
		}
		a.AppID = chosen.ID
	}

	values := make(map[setting.Field]string, len(a.Values))
	for f, v := range a.Values {
		values[f] = v
	}
	if a.Ask != nil {
		for _, f := range setting.AllFields() {
			if _, ok := values[f]; ok {
				continue
			}
			v, err := a.Ask(f, setting.NoChangeKey)
			if err != nil {
				return err
			}
			values[f] = v
		}
	}

	e, changed, err := a.Service.Add(ctx, a.AppID, values)
	if err != nil {
		return err
	}
	w := printers.Writer(a.Out)
	if !changed {
		_, _ = fmt.Fprintf(w, "nothing to save for %s, every setting is %q\n", a.AppID, setting.NoChangeKey)
		return nil
	}
	_, _ = fmt.Fprintf(w, "added %s: %s\n", a.AppID, e.Subtitle())
	return nil
}
