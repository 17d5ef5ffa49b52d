package overview

import (
	"sort"

	"tableflip.dev/appoverrides/pkg/apps"
	"tableflip.dev/appoverrides/pkg/override"
)

// Lookup is the read side of the override store.
type Lookup interface {
	Get(appID string) (override.Entry, bool)
}

// ResolveCandidates returns the installed apps that have no override yet,
// ordered by display name ignoring case with ties broken by id.
func ResolveCandidates(installed []apps.App, store Lookup) []apps.App {
	return candidateApps(installed, func(id string) bool {
		if store == nil {
			return false
		}
		_, ok := store.Get(id)
		return ok
	})
}

func candidateApps(installed []apps.App, overridden func(id string) bool) []apps.App {
	out := make([]apps.App, 0, len(installed))
	seen := make(map[string]struct{}, len(installed))
	for _, a := range installed {
		if a.ID == "" {
			continue
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		if overridden(a.ID) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i].Name(), out[i].ID, out[j].Name(), out[j].ID)
	})
	return out
}
