package scanner

import (
	"os"
	"path/filepath"

	"github.com/nullmedium/exek/model"
	"github.com/nullmedium/exek/usage"
)

// HistoryApplications turns previously launched executables back into
// candidates so they can be found by name. Paths that no longer exist or
// lost their exec bit are skipped.
func HistoryApplications(store *usage.Store) []model.Application {
	var apps []model.Application
	for _, p := range store.FrequentPaths() {
		info, err := os.Stat(p.Path)
		if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			continue
		}
		apps = append(apps, model.Application{
			Name:        filepath.Base(p.Path),
			Exec:        p.Path,
			Description: p.Path,
			Categories:  []string{"Path"},
			Identity:    model.PathBased(p.Path),
		})
	}
	return apps
}

// Merge appends extra to apps, dropping path entries whose executable is
// already the exec of a desktop entry.
func Merge(apps, extra []model.Application) []model.Application {
	known := make(map[string]bool, len(apps))
	for _, a := range apps {
		known[a.Exec] = true
	}
	out := append([]model.Application(nil), apps...)
	for _, e := range extra {
		if known[e.Exec] {
			continue
		}
		out = append(out, e)
	}
	return out
}
