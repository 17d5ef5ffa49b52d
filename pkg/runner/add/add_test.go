package add

import (
	"bytes"
	"context"
	"testing"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/apps"
	"tableflip.dev/appoverrides/pkg/setting"
	"tableflip.dev/appoverrides/pkg/store"
)

func TestAddPicksCandidateAndAsks(t *testing.T) {
	st, err := store.Open(context.Background(), store.NewMemorySink())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	svc := &app.Service{Store: st, Apps: apps.StaticProvider{{ID: "b", DisplayName: "Beta"}, {ID: "a", DisplayName: "Alpha"}}}

	var offered []apps.App
	var asked []setting.Field
	a := Add{
		Service: svc,
		Values:  map[setting.Field]string{setting.FieldControllerStyle: "disconnect"},
		Pick: func(c []apps.App) (apps.App, error) {
			offered = c
			return c[0], nil
		},
		Ask: func(f setting.Field, _ string) (string, error) {
			asked = append(asked, f)
			return "digital", nil
		},
		Out: &bytes.Buffer{},
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if len(offered) != 2 || offered[0].ID != "a" {
		t.Fatalf("expected candidates sorted by name, got %v", offered)
	}
	if len(asked) != 1 || asked[0] != setting.FieldL2R2Style {
		t.Fatalf("expected only the missing field to be asked, got %v", asked)
	}
	e, ok := st.Get("a")
	if !ok || e.ControllerStyle != setting.ControllerDisconnect || e.L2R2Style != setting.L2R2Digital {
		t.Fatalf("unexpected stored entry %+v (ok=%v)", e, ok)
	}
}
