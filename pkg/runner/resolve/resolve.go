// Package resolve prints the values an app ends up with after its override is
// layered over the global defaults.
package resolve

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/printers"
)

type Resolve struct {
	Service *app.Service
	AppID   string
	JSON    bool
	Out     io.Writer
}

func (r *Resolve) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not resolve, no service")
	}
	eff, err := r.Service.Effective(r.AppID)
	if err != nil {
		return err
	}
	if r.JSON {
		return printers.JSON(r.Out, eff)
	}

	name := r.AppID
	if a, ok, err := r.Service.Lookup(ctx, r.AppID); err == nil && ok {
		name = a.Name()
	}
	pp := printers.PrettyPrint{Out: r.Out}
	pp.NewLine()
	pp.Effective(name, eff)
	return nil
}
