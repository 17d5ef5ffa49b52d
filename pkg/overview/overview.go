// Package overview assembles the list of existing overrides and the apps that
// can still receive one, ready for a presentation layer to render.
package overview

import (
	"sort"
	"strings"

	"tableflip.dev/appoverrides/pkg/apps"
	"tableflip.dev/appoverrides/pkg/override"
)

// PlaceholderIcon is shown for overrides whose app is no longer installed.
const PlaceholderIcon = "placeholder"

// OverrideRow is one stored override joined with installed-app metadata.
type OverrideRow struct {
	AppID       string         `json:"app_id"`
	DisplayName string         `json:"name"`
	Icon        string         `json:"icon"`
	Subtitle    string         `json:"subtitle"`
	Entry       override.Entry `json:"entry"`
	// Installed is false for stale entries.
	Installed bool               `json:"installed"`
	Effective override.Effective `json:"effective"`
}

// CandidateRow is an installed app without an override.
type CandidateRow struct {
	AppID       string `json:"app_id"`
	DisplayName string `json:"name"`
	Icon        string `json:"icon,omitempty"`
}

// Overview is the full list state.
type Overview struct {
	Overrides  []OverrideRow  `json:"overrides"`
	Candidates []CandidateRow `json:"candidates"`
}

// Option customises BuildOverview behaviour.
type Option func(*buildOptions)

// WithPlaceholderIcon replaces the icon used for stale rows.
func WithPlaceholderIcon(icon string) Option {
	return func(opts *buildOptions) {
		if strings.TrimSpace(icon) == "" {
			return
		}
		opts.placeholder = icon
	}
}

type buildOptions struct {
	placeholder string
}

// BuildOverview joins entries with the installed apps. Entries for apps that
// are no longer installed are kept and labelled with their raw id.
func BuildOverview(entries []override.Entry, installed []apps.App, defaults override.Defaults, opts ...Option) Overview {
	config := &buildOptions{placeholder: PlaceholderIcon}
	for _, opt := range opts {
		opt(config)
	}

	idx := apps.Index(installed)
	overridden := make(map[string]struct{}, len(entries))

	rows := make([]OverrideRow, 0, len(entries))
	for _, e := range entries {
		if e.AppID == "" {
			continue
		}
		if _, dup := overridden[e.AppID]; dup {
			continue
		}
		overridden[e.AppID] = struct{}{}
		rows = append(rows, newOverrideRow(e, idx, defaults, config))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i].DisplayName, rows[i].AppID, rows[j].DisplayName, rows[j].AppID)
	})

	candidates := make([]CandidateRow, 0)
	for _, a := range candidateApps(installed, func(id string) bool {
		_, ok := overridden[id]
		return ok
	}) {
		candidates = append(candidates, CandidateRow{AppID: a.ID, DisplayName: a.Name(), Icon: a.Icon})
	}

	return Overview{Overrides: rows, Candidates: candidates}
}

func newOverrideRow(e override.Entry, idx map[string]apps.App, defaults override.Defaults, config *buildOptions) OverrideRow {
	row := OverrideRow{
		AppID:       e.AppID,
		DisplayName: e.AppID,
		Icon:        config.placeholder,
		Subtitle:    e.Subtitle(),
		Entry:       e,
		Effective:   override.Resolve(defaults, e),
	}
	if a, ok := idx[e.AppID]; ok {
		row.Installed = true
		row.DisplayName = a.Name()
		if a.Icon != "" {
			row.Icon = a.Icon
		}
	}
	return row
}

// less orders by display name ignoring case, then by id.
func less(nameA, idA, nameB, idB string) bool {
	la, lb := strings.ToLower(nameA), strings.ToLower(nameB)
	if la != lb {
		return la < lb
	}
	return idA < idB
}
