package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/nullmedium/exek/log"
	"github.com/nullmedium/exek/model"
)

var ErrEmptyCommand = errors.New("empty command")

// defaultPath is appended to PATH for anything missing, so launches work
// from minimal environments such as window manager key bindings.
var defaultPath = []string{
	"/usr/local/sbin",
	"/usr/local/bin",
	"/usr/sbin",
	"/usr/bin",
	"/sbin",
	"/bin",
	"/usr/games",
	"/usr/local/games",
	"/snap/bin",
}

// Options controls how commands are built.
type Options struct {
	Terminals []string // tried in order for Terminal=true entries
	LookPath  func(file string) (string, error)
	Environ   func() []string
	Home      string
}

func (o Options) withDefaults() Options {
	if o.LookPath == nil {
		o.LookPath = exec.LookPath
	}
	if o.Environ == nil {
		o.Environ = os.Environ
	}
	if o.Home == "" {
		o.Home, _ = os.UserHomeDir()
	}
	return o
}

// BuildCommand returns the Exec line of app with desktop field codes
// removed. %c becomes the application name and %% a literal percent.
func BuildCommand(app model.Application) string {
	var b strings.Builder
	runes := []rune(app.Exec)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '%' || i+1 == len(runes) {
			b.WriteRune(r)
			continue
		}
		i++
		switch runes[i] {
		case '%':
			b.WriteRune('%')
		case 'c':
			b.WriteString(app.Name)
		case 'f', 'F', 'u', 'U', 'i', 'k', 'd', 'D', 'n', 'N', 'v', 'm':
		default:
			b.WriteRune('%')
			b.WriteRune(runes[i])
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Command builds the process for a selected candidate without starting it.
func Command(c model.Candidate, opts Options) (*exec.Cmd, error) {
	opts = opts.withDefaults()

	var cmd *exec.Cmd
	switch c := c.(type) {
	case model.Application:
		var err error
		cmd, err = applicationCommand(c, opts)
		if err != nil {
			return nil, err
		}
	case model.PathCompletion:
		cmd = exec.Command(c.Path)
	default:
		return nil, fmt.Errorf("cannot launch %T", c)
	}

	// stdio stays nil, which exec connects to /dev/null
	cmd.Env = Environment(opts.Environ(), opts.Home)
	detach(cmd)
	return cmd, nil
}

func applicationCommand(app model.Application, opts Options) (*exec.Cmd, error) {
	// history entries hold a literal path, not an Exec line
	if app.IsPath() {
		if app.Exec == "" {
			return nil, ErrEmptyCommand
		}
		return exec.Command(app.Exec), nil
	}

	line := BuildCommand(app)
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse exec line %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}

	args[0] = resolve(args[0], opts)

	if app.Terminal {
		for _, term := range opts.Terminals {
			termPath, err := opts.LookPath(term)
			if err != nil {
				continue
			}
			return exec.Command(termPath, "-e", line), nil
		}
		log.Warn().Str("app", app.Name).Msg("no terminal emulator found, launching directly")
	}
	return exec.Command(args[0], args[1:]...), nil
}

// resolve turns the executable token into a path when possible.
func resolve(exe string, opts Options) string {
	if strings.Contains(exe, "/") {
		if exe == "~" || strings.HasPrefix(exe, "~/") {
			return filepath.Join(opts.Home, strings.TrimPrefix(exe, "~"))
		}
		return exe
	}
	if p, err := opts.LookPath(exe); err == nil {
		return p
	}
	return exe
}

// Environment fills in what graphical programs need when the launcher runs
// from a bare environment.
func Environment(environ []string, home string) []string {
	env := make(map[string]string, len(environ))
	var order []string
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, seen := env[k]; !seen {
			order = append(order, k)
		}
		env[k] = v
	}
	set := func(k, v string) {
		if _, seen := env[k]; !seen {
			order = append(order, k)
		}
		env[k] = v
	}

	var parts []string
	if p := env["PATH"]; p != "" {
		parts = strings.Split(p, ":")
	}
	for _, d := range defaultPath {
		if !slices.Contains(parts, d) {
			parts = append(parts, d)
		}
	}
	set("PATH", strings.Join(parts, ":"))

	if env["DISPLAY"] == "" {
		set("DISPLAY", ":0")
	}
	if env["XDG_RUNTIME_DIR"] == "" {
		set("XDG_RUNTIME_DIR", fmt.Sprintf("/run/user/%d", os.Getuid()))
	}
	if env["HOME"] == "" && home != "" {
		set("HOME", home)
	}

	out := make([]string, 0, len(order))
	for _, k := range order {
		out = append(out, k+"="+env[k])
	}
	return out
}

// Launch starts the candidate detached from this process.
func Launch(c model.Candidate, opts Options) error {
	cmd, err := Command(c, opts)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.Title(), err)
	}
	log.Info().
		Str("key", c.Key()).
		Str("cmd", Describe(cmd)).
		Int("child_pid", cmd.Process.Pid).
		Msg("launched")
	return cmd.Process.Release()
}

// Describe renders the argv of cmd as a shell-quoted line.
func Describe(cmd *exec.Cmd) string {
	quoted := make([]string, len(cmd.Args))
	for i, a := range cmd.Args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`&|;<>()*?[]{}~#!") {
		return s
	}
	// wrap in single quotes, escape existing single quotes
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
