// Package remove deletes the override of an app.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/printers"
)

type Delete struct {
	Service *app.Service
	AppID   string
	// Yes skips the confirmation.
	Yes bool
	// Confirm asks the user; deletion needs Yes or a positive answer.
	Confirm func(label string) (bool, error)
	Out     io.Writer
}

func (d *Delete) Do(_ context.Context) error {
	if d.Service == nil || d.Service.Store == nil {
		return errors.New("can not delete, no store")
	}
	w := printers.Writer(d.Out)

	e, ok := d.Service.Store.Get(d.AppID)
	if !ok {
		_, _ = fmt.Fprintf(w, "no override for %s\n", d.AppID)
		return nil
	}

	if !d.Yes {
		if d.Confirm == nil {
			return errors.New("delete: confirmation required, pass --yes")
		}
		yes, err := d.Confirm(fmt.Sprintf("Delete override for %s (%s)", d.AppID, e.Subtitle()))
		if err != nil {
			return err
		}
		if !yes {
			_, _ = fmt.Fprintln(w, "kept")
			return nil
		}
	}

	deleted, err := d.Service.Delete(d.AppID)
	if err != nil {
		return err
	}
	if deleted {
		_, _ = fmt.Fprintf(w, "deleted %s\n", d.AppID)
	}
	return nil
}
