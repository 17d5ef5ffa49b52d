package snake

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/setting"
)

func TestParseBool(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    bool
		wantErr bool
	}{
		"yes":   {in: "yes", want: true},
		"Y":     {in: "Y", want: true},
		"no":    {in: "no"},
		"false": {in: "false"},
		"junk":  {in: "maybe", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseBool(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSelectAppWithoutCandidates(t *testing.T) {
	if _, err := SelectApp(&cobra.Command{}, nil); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestPromptSettingFlagsSkipsChangedFlags(t *testing.T) {
	cmd := &cobra.Command{}
	var style string
	cmd.Flags().StringVar(&style, "controller-style", "", "")
	if err := AnnotateSetting(cmd, "controller-style", setting.FieldControllerStyle); err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if err := cmd.Flags().Set("controller-style", "xbox"); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Nothing left to ask, so no prompt is started.
	if err := PromptSettingFlags(cmd, nil); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if style != "xbox" {
		t.Fatalf("expected flag value kept, got %q", style)
	}
}
