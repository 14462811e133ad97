package filesystem

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalizePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix path expectations")
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "/etc/passwd", "/etc/passwd"},
		{"Whitespace", "  /etc/passwd \n", "/etc/passwd"},
		{"Trailing slash", "/tmp/", "/tmp"},
		{"Double slash", "/usr//bin", "/usr/bin"},
		{"Dot segments", "/usr/./lib/../bin", "/usr/bin"},
		{"Relative", "./a/b", "a/b"},
		{"Empty", "", "."},
		{"Only spaces", "   ", "."},
		{"Backslash kept on unix", `dir\name`, `dir\name`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.input); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "docs"), ExpandHome("~/docs"))
	assert.Equal(t, "/tmp", ExpandHome("/tmp"))
	assert.Equal(t, "~user", ExpandHome("~user"))
}

func TestOwnerIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owned.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	info, err := os.Stat(path)
	require.NoError(t, err)

	uid, _, ok := OwnerIDs(info)
	if runtime.GOOS == "windows" {
		assert.False(t, ok)
		return
	}
	require.True(t, ok)
	assert.Equal(t, uint32(os.Getuid()), uid)
}

func TestOwnerIDs_InMemory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/mem.txt", []byte("x"), 0644))

	info, err := fs.Stat("/mem.txt")
	require.NoError(t, err)

	_, _, ok := OwnerIDs(info)
	assert.False(t, ok, "in-memory files carry no ownership")
}

func TestSystemResolver(t *testing.T) {
	r := NewSystemResolver()
	if !r.Supported() {
		_, err := r.UserName(0)
		assert.Error(t, err)
		return
	}

	// The current process uid normally resolves; skip in minimal containers
	name, err := r.UserName(uint32(os.Getuid()))
	if err != nil {
		t.Skipf("current uid not in user database: %v", err)
	}
	assert.NotEmpty(t, name)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\bob\evil.exe`, "evil.exe"},
		{"star*name", "star_name"},
		{"", "file"},
		{"/", "file"},
		{"tab\tname", "tabname"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}

	long := strings.Repeat("a", 100) + ".txt"
	assert.Len(t, sanitizeName(long), maxNameLen)
	assert.True(t, strings.HasSuffix(sanitizeName(long), ".txt"))
}

func TestSanitizeName_MultiByte(t *testing.T) {
	// 85 bytes; the byte-offset cut lands inside a two-byte rune
	name := strings.Repeat("я", 40) + "x.txt"

	got := sanitizeName(name)
	assert.True(t, utf8.ValidString(got), "invalid UTF-8: %q", got)
	assert.LessOrEqual(t, len(got), maxNameLen)
	assert.Equal(t, strings.Repeat("я", 29)+"x.txt", got)
}

func TestStager_WithStagedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	stager := NewStager(fs, "/staging", 0, zap.NewNop())

	var stagedPath string
	err := stager.WithStagedFile("hello.txt", strings.NewReader("hello world"), func(path string) error {
		stagedPath = path

		data, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(data))
		assert.True(t, strings.HasSuffix(path, "-hello.txt"))
		return nil
	})
	require.NoError(t, err)

	exists, err := afero.Exists(fs, stagedPath)
	require.NoError(t, err)
	assert.False(t, exists, "staged file should be removed")
}

func TestStager_CleanupOnCallbackError(t *testing.T) {
	fs := afero.NewMemMapFs()
	stager := NewStager(fs, "/staging", 0, zap.NewNop())
	wantErr := errors.New("analysis failed")

	var stagedPath string
	err := stager.WithStagedFile("a.bin", bytes.NewReader([]byte{1, 2, 3}), func(path string) error {
		stagedPath = path
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	exists, _ := afero.Exists(fs, stagedPath)
	assert.False(t, exists)
}

func TestStager_CleanupOnPanic(t *testing.T) {
	fs := afero.NewMemMapFs()
	stager := NewStager(fs, "/staging", 0, zap.NewNop())

	var stagedPath string
	assert.Panics(t, func() {
		_ = stager.WithStagedFile("boom", strings.NewReader("x"), func(path string) error {
			stagedPath = path
			panic("boom")
		})
	})

	exists, _ := afero.Exists(fs, stagedPath)
	assert.False(t, exists)
}

func TestStager_TooLarge(t *testing.T) {
	fs := afero.NewMemMapFs()
	stager := NewStager(fs, "/staging", 4, zap.NewNop())

	called := false
	err := stager.WithStagedFile("big", strings.NewReader("123456789"), func(path string) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrUploadTooLarge)
	assert.False(t, called)

	entries, err := afero.ReadDir(fs, "/staging")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStager_ExactLimit(t *testing.T) {
	fs := afero.NewMemMapFs()
	stager := NewStager(fs, "/staging", 4, zap.NewNop())

	err := stager.WithStagedFile("fits", strings.NewReader("1234"), func(path string) error {
		return nil
	})
	assert.NoError(t, err)
}

func TestStager_OsFs(t *testing.T) {
	dir := t.TempDir()
	stager := NewStager(afero.NewOsFs(), dir, 1024, zap.NewNop())

	err := stager.WithStagedFile("disk.txt", strings.NewReader("on disk"), func(path string) error {
		assert.Equal(t, dir, filepath.Dir(path))
		_, err := os.Stat(path)
		return err
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
