package commands

import (
	"context"
	"os"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/apps"
	"tableflip.dev/appoverrides/pkg/store"
)

// loadService reads the config and opens the store it points at.
func loadService(ctx context.Context) (*app.Service, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	sink, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	sink.Diagnostics = os.Stderr
	st, err := store.Open(ctx, sink)
	if err != nil {
		return nil, nil, err
	}
	st.Diagnostics = os.Stderr
	return &app.Service{
		Store:    st,
		Apps:     apps.ManifestProvider{Path: cfg.AppsPath()},
		Defaults: cfg.Defaults(),
	}, cfg, nil
}
