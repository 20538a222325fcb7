package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/assetbuild/internal/foundation/errors"
)

func TestManager_EnsureCreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "dist")
	mgr := NewManager(dir)

	require.NoError(t, mgr.Ensure())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestManager_EnsureIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644))
	require.NoError(t, mgr.Ensure())
	require.NoError(t, mgr.Ensure())

	_, err := os.Stat(filepath.Join(dir, "keep.txt"))
	require.NoError(t, err, "existing content must survive Ensure")
}

func TestManager_EnsureFailsOnFileCollision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.WriteFile(path, []byte("not a dir"), 0o644))

	err := NewManager(path).Ensure()

	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryDirectory))
}

func TestManager_WriteReplacesArtifact(t *testing.T) {
	mgr := NewManager(t.TempDir())
	require.NoError(t, mgr.Ensure())

	path, err := mgr.Write("styles.min.css", []byte("a{color:red;}"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(mgr.Path(), "styles.min.css"), path)

	_, err = mgr.Write("styles.min.css", []byte("b{}"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "b{}", string(data))
}

func TestManager_WriteIntoMissingDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing"))

	_, err := mgr.Write("index.html", []byte("<html></html>"))

	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryWrite))
}

func TestManager_ListSkipsDirectoriesAndTempFiles(t *testing.T) {
	mgr := NewManager(t.TempDir())
	require.NoError(t, mgr.Ensure())

	for _, name := range []string{"index.html", "app.min.js", "styles.min.css"} {
		_, err := mgr.Write(name, []byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, os.Mkdir(filepath.Join(mgr.Path(), "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mgr.Path(), ".index.html.123.tmp"), nil, 0o644))

	files, err := mgr.List()
	require.NoError(t, err)
	require.Equal(t, []string{"app.min.js", "index.html", "styles.min.css"}, files)
}
