package launcher

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/nullmedium/exek/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(found map[string]string) func(string) (string, error) {
	return func(file string) (string, error) {
		if p, ok := found[file]; ok {
			return p, nil
		}
		return "", exec.ErrNotFound
	}
}

func testOptions(found map[string]string) Options {
	return Options{
		Terminals: []string{"foot", "xterm"},
		LookPath:  fakeLookPath(found),
		Environ:   func() []string { return []string{"PATH=/usr/bin:/home/me/bin", "LANG=C"} },
		Home:      "/home/me",
	}
}

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		exec string
		want string
	}{
		{"firefox %u", "firefox"},
		{"/usr/bin/code --unity-launch %F", "/usr/bin/code --unity-launch"},
		{"app --class=%c %i %k", "app --class=My App"},
		{"printf 100%%", "printf 100%"},
		{"tool %z", "tool %z"},
		{"trailing %", "trailing %"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tt := range tests {
		app := model.Application{Name: "My App", Exec: tt.exec}
		assert.Equal(t, tt.want, BuildCommand(app), tt.exec)
	}
}

func TestCommandApplication(t *testing.T) {
	app := model.Application{Name: "Code", Exec: `code --user-data-dir "/tmp/my data" %F`}
	cmd, err := Command(app, testOptions(map[string]string{"code": "/usr/bin/code"}))
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/code", cmd.Path)
	assert.Equal(t, []string{"/usr/bin/code", "--user-data-dir", "/tmp/my data"}, cmd.Args)
	assert.Contains(t, cmd.Env, "LANG=C")
}

func TestCommandTerminalApplication(t *testing.T) {
	app := model.Application{Name: "htop", Exec: "htop", Terminal: true}

	cmd, err := Command(app, testOptions(map[string]string{"htop": "/usr/bin/htop", "xterm": "/usr/bin/xterm"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/xterm", "-e", "htop"}, cmd.Args)

	cmd, err = Command(app, testOptions(map[string]string{"htop": "/usr/bin/htop"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/htop"}, cmd.Args)
}

func TestCommandTildeExecutable(t *testing.T) {
	app := model.Application{Name: "run", Exec: "~/bin/run --fast"}
	cmd, err := Command(app, testOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/me/bin/run", "--fast"}, cmd.Args)
}

func TestCommandPath(t *testing.T) {
	cmd, err := Command(model.PathCompletion{Path: "/opt/tools/deploy", Display: "/opt/tools/deploy"}, testOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/tools/deploy"}, cmd.Args)
}

func TestCommandPathBasedApplication(t *testing.T) {
	exe := "/home/me/My Tools/run 100%u"
	app := model.Application{Name: "run 100%u", Exec: exe, Identity: model.PathBased(exe)}

	cmd, err := Command(app, testOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, exe, cmd.Path)
	assert.Equal(t, []string{exe}, cmd.Args)
}

func TestCommandEmpty(t *testing.T) {
	_, err := Command(model.Application{Name: "x", Exec: "%U"}, testOptions(nil))
	assert.True(t, errors.Is(err, ErrEmptyCommand))

	_, err = Command(model.Application{Name: "x", Exec: `broken "quote`}, testOptions(nil))
	assert.Error(t, err)
}

func TestEnvironment(t *testing.T) {
	env := Environment([]string{"PATH=/usr/bin:/opt/bin", "DISPLAY=:1"}, "/home/me")

	lookup := func(k string) string {
		for _, kv := range env {
			if strings.HasPrefix(kv, k+"=") {
				return strings.TrimPrefix(kv, k+"=")
			}
		}
		return ""
	}
	path := strings.Split(lookup("PATH"), ":")
	assert.Equal(t, []string{"/usr/bin", "/opt/bin"}, path[:2])
	assert.Contains(t, path, "/snap/bin")
	assert.Equal(t, 1, strings.Count(lookup("PATH"), "/usr/bin:"))
	assert.Equal(t, ":1", lookup("DISPLAY"))
	assert.Equal(t, "/home/me", lookup("HOME"))
	assert.NotEmpty(t, lookup("XDG_RUNTIME_DIR"))

	env = Environment(nil, "")
	assert.Equal(t, ":0", lookup("DISPLAY"))
}

func TestDescribe(t *testing.T) {
	cmd := exec.Command("/usr/bin/code", "--dir", "/tmp/my data", "it's")
	assert.Equal(t, `/usr/bin/code --dir '/tmp/my data' 'it'\''s'`, Describe(cmd))
}
