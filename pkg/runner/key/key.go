// Package key provides CLI helpers to display the setting legend.
package key

import (
	"context"
	"io"

	"tableflip.dev/appoverrides/pkg/printers"
)

// Key prints the selectable value keys for every setting.
type Key struct {
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	pp := printers.PrettyPrint{Out: k.Out}
	pp.NewLine()
	pp.Legend()
	return nil
}
