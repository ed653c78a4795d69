package archive

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndExtract(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "db.sqlite"), []byte("db"), 0o644))
	uploads := filepath.Join(src, "uploads")
	require.NoError(t, os.MkdirAll(filepath.Join(uploads, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "a.pdf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "nested", "b.pdf"), []byte("b"), 0o644))

	entries, err := DirEntries(uploads, "uploads")
	require.NoError(t, err)
	entries = append(entries, Entry{Name: "database.sqlite", Source: filepath.Join(src, "db.sqlite")})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	sort.Strings(names)
	assert.Equal(t, []string{"database.sqlite", "uploads/a.pdf", "uploads/nested/b.pdf"}, names)

	bundle := filepath.Join(t.TempDir(), "backup.zip")
	require.NoError(t, Create(bundle, entries))

	dst := t.TempDir()
	n, err := Extract(bundle, func(name string) (string, string, bool) {
		if name == "database.sqlite" {
			return dst, "restored.sqlite", true
		}
		if rel := strings.TrimPrefix(name, "uploads/"); rel != name {
			return filepath.Join(dst, "files"), rel, true
		}
		return "", "", false
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	body, err := os.ReadFile(filepath.Join(dst, "files", "nested", "b.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(body))
	_, err = os.Stat(filepath.Join(dst, "restored.sqlite"))
	assert.NoError(t, err)
}

func TestDirEntries_MissingRoot(t *testing.T) {
	entries, err := DirEntries(filepath.Join(t.TempDir(), "missing"), "uploads")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtract_RejectsZipSlip(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "evil.zip")
	f, err := os.Create(bundle)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"uploads/ok.txt", "uploads/../../escape.txt"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	dst := t.TempDir()
	n, err := Extract(bundle, func(name string) (string, string, bool) {
		return filepath.Join(dst, "uploads"), strings.TrimPrefix(name, "uploads/"), true
	})
	assert.True(t, errors.Is(err, ErrUnsafePath))
	assert.Equal(t, 0, n)
	_, statErr := os.Stat(filepath.Join(dst, "uploads", "ok.txt"))
	assert.True(t, os.IsNotExist(statErr), "nothing is written when any entry is unsafe")
}

func TestSafeJoin(t *testing.T) {
	root := t.TempDir()
	_, err := SafeJoin(root, "a/b.txt")
	assert.NoError(t, err)
	for _, bad := range []string{"", ".", "../x", "/etc/passwd", "a/../../x"} {
		_, err := SafeJoin(root, bad)
		assert.ErrorIs(t, err, ErrUnsafePath, bad)
	}
}
