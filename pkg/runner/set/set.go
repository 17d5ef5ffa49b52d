// Package set changes the override values of an app.
package set

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/printers"
	"tableflip.dev/appoverrides/pkg/setting"
)

type Set struct {
	Service *app.Service
	AppID   string
	// Values maps a field to the key it should take.
	Values map[setting.Field]string
	Out    io.Writer
}

// ErrNoValues is returned when no field was given.
var ErrNoValues = errors.New("set: nothing to set, pass at least one setting")

func (s *Set) Do(_ context.Context) error {
	if s.Service == nil {
		return errors.New("can not set, no service")
	}
	if len(s.Values) == 0 {
		return ErrNoValues
	}
	e, changed, err := s.Service.Apply(s.AppID, s.Values)
	if err != nil {
		return err
	}
	w := printers.Writer(s.Out)
	if !changed {
		_, _ = fmt.Fprintf(w, "%s unchanged: %s\n", s.AppID, e.Subtitle())
		return nil
	}
	_, _ = fmt.Fprintf(w, "saved %s: %s\n", s.AppID, e.Subtitle())
	return nil
}
