// Package watch follows changes made to the override store by other
// processes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/printers"
	"tableflip.dev/appoverrides/pkg/store"
)

type Watch struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

type change struct {
	Type     string `json:"type"`
	AppID    string `json:"app_id,omitempty"`
	Present  bool   `json:"present"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Do prints one line per change until ctx is cancelled.
func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil || n.Service.Store == nil {
		return errors.New("can not watch, no store")
	}
	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	w := printers.Writer(n.Out)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c := n.describe(ev)
			if n.JSON {
				if err := printers.JSON(w, c); err != nil {
					return err
				}
				continue
			}
			n.print(w, c)
		}
	}
}

func (n *Watch) describe(ev store.Event) change {
	c := change{Type: ev.Type.String(), AppID: ev.AppID}
	if ev.Type != store.EventOverrideChanged {
		return c
	}
	if e, ok := n.Service.Store.Get(ev.AppID); ok {
		c.Present = true
		c.Subtitle = e.Subtitle()
	}
	return c
}

func (n *Watch) print(w io.Writer, c change) {
	switch {
	case c.AppID == "":
		_, _ = fmt.Fprintf(w, "%s: %d overrides\n", c.Type, n.Service.Store.Len())
	case c.Present:
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", c.Type, c.AppID, c.Subtitle)
	default:
		_, _ = fmt.Fprintf(w, "%s %s: removed\n", c.Type, c.AppID)
	}
}
