package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/appoverrides/pkg/printers"
	"tableflip.dev/appoverrides/pkg/store"
)

type Info struct {
	Config store.Config
	Store  *store.Store
	Out    io.Writer
}

func (n *Info) Do(_ context.Context) error {
	w := printers.Writer(n.Out)

	if dir := os.Getenv(store.ConfigPathEnv); dir != "" {
		_, _ = fmt.Fprintln(w, store.ConfigPathEnv, "found on env, using", dir)
	} else {
		_, _ = fmt.Fprintln(w, store.ConfigPathEnv, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if src := n.Config.Source(); src != "" {
		_, _ = fmt.Fprintln(w, "Config file:", src)
	} else {
		_, _ = fmt.Fprintln(w, "Config file: none, using defaults")
	}
	_, _ = fmt.Fprintln(w, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(w, "Config.apps:", n.Config.AppsPath())
	d := n.Config.Defaults()
	_, _ = fmt.Fprintf(w, "Defaults: controller_style=%s l2r2_style=%s\n", d.ControllerStyle.Key(), d.L2R2Style.Key())

	if n.Store == nil {
		return fmt.Errorf("failed to open the override store")
	}

	_, _ = fmt.Fprintf(w, "Overrides:\n")
	found := 0
	for _, e := range n.Store.All() {
		_, _ = fmt.Fprintf(w, "  %s: %s\n", e.AppID, e.Subtitle())
		found++
	}
	if found == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", "no overrides")
	}
	return nil
}
