package store

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimdowning-cyclops/versioning-go/internal/version"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNew_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, New("").Path())
	assert.Equal(t, "custom/VERSION", New("custom/VERSION").Path())
}

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		content *string
		want    version.Version
		wantErr bool
	}{
		"missing file": {
			want: version.Zero(),
		},
		"canonical": {
			content: ptr("v1.2.3"),
			want:    version.Version{Major: 1, Minor: 2, Release: 3},
		},
		"trailing newline": {
			content: ptr("v1.2.3\n"),
			want:    version.Version{Major: 1, Minor: 2, Release: 3},
		},
		"surrounding whitespace": {
			content: ptr("\t v4.0.12 \r\n\n"),
			want:    version.Version{Major: 4, Minor: 0, Release: 12},
		},
		"empty file": {
			content: ptr(""),
			wantErr: true,
		},
		"garbage": {
			content: ptr("not a version"),
			wantErr: true,
		},
		"extra content": {
			content: ptr("v1.2.3 released"),
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "VERSION")
			if tc.content != nil {
				writeFile(t, path, *tc.content)
			}

			got, err := New(path).Load()
			if tc.wantErr {
				require.Error(t, err)

				var pe *version.ParseError
				assert.True(t, errors.As(err, &pe), "expected *version.ParseError, got %T", err)
				assert.Contains(t, err.Error(), path)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad_ReadError(t *testing.T) {
	// A directory in place of the file cannot be read.
	path := t.TempDir()

	_, err := New(path).Load()
	require.Error(t, err)

	var pe *version.ParseError
	assert.False(t, errors.As(err, &pe))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "VERSION")
	s := New(path)

	require.NoError(t, s.Save(version.Version{Major: 1, Minor: 0, Release: 0}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}
}

func TestSave_ReplacesContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VERSION")
	writeFile(t, path, "v10.20.30 with a long tail that must disappear\n")

	require.NoError(t, New(path).Save(version.Version{Major: 1, Minor: 2, Release: 4}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.4\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestSave_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "VERSION")

	err := New(path).Save(version.Zero())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "VERSION")
	s := New(path)

	current, err := s.Load()
	require.NoError(t, err)

	for _, kind := range []version.Kind{version.Major, version.Minor, version.Minor, version.Release} {
		next, err := current.Bump(kind)
		require.NoError(t, err)
		require.NoError(t, s.Save(next))

		current, err = s.Load()
		require.NoError(t, err)
		assert.Equal(t, next, current)
	}

	assert.Equal(t, "v1.2.1", current.String())
}

func ptr(s string) *string {
	return &s
}
