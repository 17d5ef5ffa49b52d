// Package list prints the override overview.
package list

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/printers"
)

type List struct {
	Service *app.Service
	// Candidates limits the output to apps without an override.
	Candidates bool
	ShowID     bool
	JSON       bool
	Out        io.Writer
}

func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not list, no service")
	}
	ov, err := l.Service.Overview(ctx)
	if err != nil {
		return err
	}

	if l.JSON {
		if l.Candidates {
			return printers.JSON(l.Out, ov.Candidates)
		}
		return printers.JSON(l.Out, ov)
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	pp.NewLine()
	if l.Candidates {
		pp.TitleWithCount("Candidates", len(ov.Candidates), "app")
		pp.Candidates(ov.Candidates...)
		return nil
	}
	pp.Overview(ov)
	return nil
}
