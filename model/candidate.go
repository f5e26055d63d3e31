package model

import (
	"path/filepath"
	"strings"
)

// PathKeyPrefix namespaces usage keys for filesystem items so they never
// collide with application names.
const PathKeyPrefix = "path:"

// PathKey returns the usage key for a filesystem path.
func PathKey(path string) string {
	return PathKeyPrefix + path
}

// Candidate is anything the launcher can rank, select and launch.
type Candidate interface {
	Key() string   // usage key
	Title() string // what the user sees
}

type IdentityKind int

const (
	IdentityNamed IdentityKind = iota
	IdentityPath
)

// Identity says how an application is tracked in usage history.
type Identity struct {
	Kind  IdentityKind
	Value string // application name or absolute path
}

func Named(name string) Identity     { return Identity{Kind: IdentityNamed, Value: name} }
func PathBased(path string) Identity { return Identity{Kind: IdentityPath, Value: path} }

// Key returns the usage key for this identity.
func (id Identity) Key() string {
	if id.Kind == IdentityPath {
		return PathKey(id.Value)
	}
	return id.Value
}

type Application struct {
	Name        string
	Exec        string   // raw Exec line, field codes included
	Icon        string
	Description string   // desktop Comment, may be empty
	Categories  []string // in file order
	Terminal    bool
	DesktopFile string   // empty for path-based entries
	Identity    Identity
}

func (a Application) Key() string {
	if a.Identity.Value == "" {
		return a.Name
	}
	return a.Identity.Key()
}

func (a Application) Title() string { return a.Name }

// IsPath reports whether the entry was synthesized from a filesystem path.
func (a Application) IsPath() bool { return a.Identity.Kind == IdentityPath }

// ExecName is the base name of the executable: the first whitespace token
// of the Exec line with any leading directories removed.
func (a Application) ExecName() string {
	fields := strings.Fields(a.Exec)
	if len(fields) == 0 {
		return ""
	}
	tok := fields[0]
	if i := strings.LastIndex(tok, "/"); i >= 0 {
		return tok[i+1:]
	}
	return tok
}

// PathCompletion is one directory entry offered while completing a path.
type PathCompletion struct {
	Path    string // absolute
	Display string // what goes into the query when accepted
	IsDir   bool
}

func (p PathCompletion) Key() string   { return PathKey(filepath.Clean(p.Path)) }
func (p PathCompletion) Title() string { return p.Display }

// ScoredResult is an application ranked against a query.
type ScoredResult struct {
	App       Application
	Relevance int
	Frecency  float64
}
