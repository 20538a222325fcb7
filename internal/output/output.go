package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"

	"git.home.luguber.info/inful/assetbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/assetbuild/internal/logfields"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Manager handles the output directory of one build.
type Manager struct {
	dir string
}

// NewManager creates a manager for dir. Nothing is touched on disk until Ensure.
func NewManager(dir string) *Manager {
	return &Manager{dir: filepath.Clean(dir)}
}

// Path returns the output directory path.
func (m *Manager) Path() string {
	return m.dir
}

// ArtifactPath returns the path an artifact named name is written to.
func (m *Manager) ArtifactPath(name string) string {
	return filepath.Join(m.dir, name)
}

// Ensure creates the output directory and missing ancestors. It succeeds
// without changes when the directory already exists.
func (m *Manager) Ensure() error {
	info, err := os.Stat(m.dir)
	switch {
	case err == nil && info.IsDir():
		slog.Debug("Output directory present", logfields.Path(m.dir))
		return nil
	case err == nil:
		return errors.DirectoryError(m.dir, fmt.Errorf("%s exists and is not a directory", m.dir)).Build()
	case !os.IsNotExist(err):
		return errors.DirectoryError(m.dir, err).Build()
	}

	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return errors.DirectoryError(m.dir, err).Build()
	}
	slog.Info("Created output directory", logfields.Path(m.dir))
	return nil
}

// Write stores data as the artifact name, replacing any previous artifact.
func (m *Manager) Write(name string, data []byte) (string, error) {
	target := m.ArtifactPath(name)

	tmp, err := os.CreateTemp(m.dir, "."+name+".*.tmp")
	if err != nil {
		return "", errors.WriteError(target, err).Build()
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", errors.WriteError(target, err).Build()
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", errors.WriteError(target, err).Build()
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		cleanup()
		return "", errors.WriteError(target, err).Build()
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return "", errors.WriteError(target, err).Build()
	}

	slog.Debug("Wrote artifact", logfields.Artifact(name), logfields.Bytes(len(data)))
	return target, nil
}

// List returns the sorted names of regular files in the output directory.
// Temporary files left by an interrupted Write are not listed.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, errors.DirectoryError(m.dir, err).Build()
	}

	files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), e.Type().IsRegular() && !isTemp(e.Name())
	})
	sort.Strings(files)
	return files, nil
}

func isTemp(name string) bool {
	return len(name) > 0 && name[0] == '.' && filepath.Ext(name) == ".tmp"
}
