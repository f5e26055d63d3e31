package scanner

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/charlievieth/fastwalk"
	"github.com/nullmedium/exek/log"
	"github.com/nullmedium/exek/model"
)

// DefaultApplicationDirs returns the directories holding .desktop files,
// lowest priority first so that user entries override system ones.
func DefaultApplicationDirs() []string {
	var dirs []string
	for i := len(xdg.DataDirs) - 1; i >= 0; i-- {
		dirs = append(dirs, filepath.Join(xdg.DataDirs[i], "applications"))
	}
	dirs = append(dirs,
		"/var/lib/flatpak/exports/share/applications",
		filepath.Join(xdg.DataHome, "flatpak", "exports", "share", "applications"),
		filepath.Join(xdg.DataHome, "applications"),
	)
	return dedupe(dirs)
}

// ScanApplications reads every launchable desktop entry under dirs. When two
// entries share a name the one from the later directory wins.
func ScanApplications(dirs []string) []model.Application {
	byName := make(map[string]model.Application)

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		for _, path := range desktopFiles(dir) {
			app, ok := parseDesktopFile(path)
			if !ok {
				continue
			}
			byName[app.Name] = app
		}
	}

	apps := make([]model.Application, 0, len(byName))
	for _, app := range byName {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps
}

// desktopFiles walks dir and returns its .desktop files in lexical order.
func desktopFiles(dir string) []string {
	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: true}
	err := fastwalk.Walk(&conf, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".desktop") {
			return nil
		}
		mu.Lock()
		files = append(files, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("walk application dir")
	}
	sort.Strings(files)
	return files
}

func parseDesktopFile(path string) (model.Application, bool) {
	f, err := os.Open(path)
	if err != nil {
		return model.Application{}, false
	}
	defer f.Close()
	return parseDesktopEntry(bufio.NewScanner(f), path)
}

// parseDesktopEntry reads the [Desktop Entry] group. Localized keys such as
// Name[de] are ignored.
func parseDesktopEntry(sc *bufio.Scanner, path string) (model.Application, bool) {
	var (
		app       model.Application
		inEntry   bool
		noDisplay bool
		hidden    bool
		kind      string
	)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			app.Name = value
		case "Exec":
			app.Exec = value
		case "Icon":
			app.Icon = value
		case "Comment":
			app.Description = value
		case "Categories":
			app.Categories = splitList(value)
		case "Terminal":
			app.Terminal = isTrue(value)
		case "NoDisplay":
			noDisplay = isTrue(value)
		case "Hidden":
			hidden = isTrue(value)
		case "Type":
			kind = value
		}
	}
	if sc.Err() != nil {
		return model.Application{}, false
	}

	if noDisplay || hidden || app.Name == "" || app.Exec == "" {
		return model.Application{}, false
	}
	if kind != "" && kind != "Application" {
		return model.Application{}, false
	}

	app.DesktopFile = path
	app.Identity = model.Named(app.Name)
	return app, true
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTrue(value string) bool {
	return strings.EqualFold(value, "true")
}

func dedupe(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs))
	// keep the last occurrence so priority order is preserved
	for i := len(dirs) - 1; i >= 0; i-- {
		d := filepath.Clean(dirs[i])
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
