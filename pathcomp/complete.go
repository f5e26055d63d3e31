package pathcomp

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nullmedium/exek/model"
)

// IsPathQuery reports whether query should be completed against the
// filesystem instead of ranked against applications.
func IsPathQuery(query string) bool {
	return strings.HasPrefix(query, "/") ||
		strings.HasPrefix(query, "./") ||
		strings.HasPrefix(query, "../") ||
		strings.HasPrefix(query, "~")
}

// Completer lists directories and executables matching a path query.
type Completer struct {
	home func() (string, error)
}

func New() *Completer {
	return &Completer{home: os.UserHomeDir}
}

// WithHome returns a completer that expands ~ to dir.
func WithHome(dir string) *Completer {
	return &Completer{home: func() (string, error) { return dir, nil }}
}

// Complete returns the completions for query, directories first. Errors
// reading the directory give an empty result.
func (c *Completer) Complete(query string) []model.PathCompletion {
	if !IsPathQuery(query) {
		return nil
	}

	home, _ := c.home()
	expanded := c.expand(query, home)
	dir, prefix := splitQuery(expanded)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []model.PathCompletion
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		full := filepath.Join(dir, name)
		info, err := os.Stat(full)
		if err != nil {
			continue
		}
		isDir := info.IsDir()
		if !isDir && !isExecutable(info) {
			continue
		}

		abs, err := filepath.Abs(full)
		if err != nil {
			continue
		}
		out = append(out, model.PathCompletion{
			Path:    abs,
			Display: display(query, abs, home),
			IsDir:   isDir,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		return out[i].Display < out[j].Display
	})
	return out
}

// Apply returns the query text after accepting sel. Directories get a
// trailing slash so the next listing descends into them.
func Apply(sel model.PathCompletion) string {
	if sel.IsDir && !strings.HasSuffix(sel.Display, "/") {
		return sel.Display + "/"
	}
	return sel.Display
}

// expand replaces a leading "~" or "~/". Other "~user" forms are left alone.
func (c *Completer) expand(query, home string) string {
	if home == "" {
		return query
	}
	if query == "~" {
		return home
	}
	if strings.HasPrefix(query, "~/") {
		return strings.TrimSuffix(home, "/") + query[1:]
	}
	return query
}

// splitQuery separates the directory to list from the name prefix to
// filter by.
func splitQuery(path string) (dir, prefix string) {
	if strings.HasSuffix(path, "/") {
		return path, ""
	}
	i := strings.LastIndex(path, "/")
	switch {
	case i < 0:
		return ".", path
	case i == 0:
		return "/", path[1:]
	default:
		return path[:i], path[i+1:]
	}
}

func display(query, abs, home string) string {
	if !strings.HasPrefix(query, "~") || home == "" {
		return abs
	}
	rel, err := filepath.Rel(home, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return abs
	}
	if rel == "." {
		return "~/"
	}
	return "~/" + rel
}

func isExecutable(info os.FileInfo) bool {
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
