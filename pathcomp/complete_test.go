package pathcomp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nullmedium/exek/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPathQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"/etc", true},
		{"./x", true},
		{"../y", true},
		{"~/z", true},
		{"~", true},
		{"firefox", false},
		{"", false},
		{"code ", false},
		{".x", false},
		{"..", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPathQuery(tt.query), "query %q", tt.query)
	}
}

// fixture builds:
//
//	root/
//	  bin/        dir
//	  build.sh    0755
//	  backup.tar  0644
//	  beta        0700
//	  notes.txt   0644
//	  Bravo/      dir
func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "bin"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "Bravo"), 0o755))
	write := func(name string, mode os.FileMode) {
		p := filepath.Join(root, name)
		require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"), 0o600))
		require.NoError(t, os.Chmod(p, mode))
	}
	write("build.sh", 0o755)
	write("backup.tar", 0o644)
	write("beta", 0o700)
	write("notes.txt", 0o644)
	return root
}

func displays(cs []model.PathCompletion) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Display
	}
	return out
}

func TestCompleteListsDirsThenExecutables(t *testing.T) {
	root := fixture(t)
	c := New()

	got := c.Complete(root + "/")
	assert.Equal(t, []string{
		filepath.Join(root, "Bravo"),
		filepath.Join(root, "bin"),
		filepath.Join(root, "beta"),
		filepath.Join(root, "build.sh"),
	}, displays(got))
	assert.True(t, got[0].IsDir)
	assert.True(t, got[1].IsDir)
	assert.False(t, got[2].IsDir)
}

func TestCompletePrefixIsCaseSensitive(t *testing.T) {
	root := fixture(t)
	got := New().Complete(root + "/b")
	assert.Equal(t, []string{
		filepath.Join(root, "bin"),
		filepath.Join(root, "beta"),
		filepath.Join(root, "build.sh"),
	}, displays(got))
}

func TestCompleteMissingDirectory(t *testing.T) {
	root := t.TempDir()
	assert.Empty(t, New().Complete(filepath.Join(root, "nope", "deeper")+"/"))
	assert.Empty(t, New().Complete(filepath.Join(root, "nope", "x")))
}

func TestCompleteNonPathQuery(t *testing.T) {
	assert.Empty(t, New().Complete("firefox"))
}

func TestCompleteTildeCollapses(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "Documents"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(home, "Downloads"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "Doc.txt"), nil, 0o644))

	c := WithHome(home)
	got := c.Complete("~/Doc")
	require.Len(t, got, 1)
	assert.Equal(t, "~/Documents", got[0].Display)
	assert.Equal(t, filepath.Join(home, "Documents"), got[0].Path)
	assert.True(t, got[0].IsDir)

	next := Apply(got[0])
	assert.Equal(t, "~/Documents/", next)
	assert.Empty(t, c.Complete(next))
}

func TestCompleteBareTildeKeepsTildeForm(t *testing.T) {
	home := filepath.Join(t.TempDir(), "me")
	require.NoError(t, os.Mkdir(home, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(home, "Music"), 0o755))

	c := WithHome(home)
	got := c.Complete("~")
	require.Len(t, got, 1)
	assert.Equal(t, "~/", got[0].Display)
	assert.Equal(t, home, got[0].Path)
	assert.True(t, got[0].IsDir)

	next := Apply(got[0])
	assert.Equal(t, "~/", next)
	assert.Equal(t, []string{"~/Music"}, displays(c.Complete(next)))
}

func TestCompleteRelative(t *testing.T) {
	root := fixture(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got := New().Complete("./bu")
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(root, "build.sh"), got[0].Path)
	assert.Equal(t, got[0].Path, got[0].Display)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		in   model.PathCompletion
		want string
	}{
		{"dir gains slash", model.PathCompletion{Display: "/usr/lib", IsDir: true}, "/usr/lib/"},
		{"dir keeps single slash", model.PathCompletion{Display: "/usr/lib/", IsDir: true}, "/usr/lib/"},
		{"file unchanged", model.PathCompletion{Display: "/usr/bin/env"}, "/usr/bin/env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.in))
		})
	}
}

func TestSplitQuery(t *testing.T) {
	tests := []struct {
		in, dir, prefix string
	}{
		{"/etc/", "/etc/", ""},
		{"/etc", "/", "etc"},
		{"/usr/lo", "/usr", "lo"},
		{"./x", ".", "x"},
		{"../y", "..", "y"},
		{"plain", ".", "plain"},
	}
	for _, tt := range tests {
		dir, prefix := splitQuery(tt.in)
		assert.Equal(t, tt.dir, dir, tt.in)
		assert.Equal(t, tt.prefix, prefix, tt.in)
	}
}
