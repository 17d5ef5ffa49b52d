// Package snake holds the interactive prompts used by the CLI.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/apps"
	"tableflip.dev/appoverrides/pkg/setting"
)

// ErrNoCandidates is returned when there is nothing to pick from.
var ErrNoCandidates = errors.New("snake: every installed app already has an override")

// SelectApp asks the user to pick one of candidates.
func SelectApp(cmd *cobra.Command, candidates []apps.App) (apps.App, error) {
	if len(candidates) == 0 {
		return apps.App{}, ErrNoCandidates
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .ID | green }}",
		Inactive: "   {{ .Name }} {{ .ID | cyan }}",
		Selected: "{{ .Name | bold }}",
	}

	searcher := func(input string, index int) bool {
		a := candidates[index]
		name := squash(a.Name() + a.ID)
		return strings.Contains(name, squash(input))
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Select app",
		Items:     candidates,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    NopCloser(cmd.OutOrStdout()),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return apps.App{}, fmt.Errorf("snake: select app: %w", err)
	}
	return candidates[i], nil
}

// SelectValue asks the user to pick a value for field, starting on current.
// It returns the chosen persistence key.
func SelectValue(cmd *cobra.Command, field setting.Field, current string) (string, error) {
	options := setting.Values(field)
	if len(options) == 0 {
		return "", fmt.Errorf("snake: unknown field %q", field)
	}
	cursor := 0
	for i, o := range options {
		if o.Key == current {
			cursor = i
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . | magenta }}?",
		Active:   "➜  {{ .Label | bold }} {{ .Key | green }}",
		Inactive: "   {{ .Label }} {{ .Key | faint }}",
		Selected: "{{ .Label | bold }}",
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     field.Label(),
		Items:     options,
		Templates: templates,
		Size:      len(options),
		CursorPos: cursor,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    NopCloser(cmd.OutOrStdout()),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("snake: select %s: %w", field, err)
	}
	return options[i].Key, nil
}

func squash(s string) string {
	return strings.Replace(strings.ToLower(s), " ", "", -1)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NopCloser wraps w so it can be handed to promptui.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{w}
}
