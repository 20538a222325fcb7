package revision

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestDetect_FromNestedDirectory(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	src := filepath.Join(root, "src", "web")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "app.js"), []byte("console.log(1)\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("src/web/app.js")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	got, err := Detect(src)
	require.NoError(t, err)
	require.Equal(t, hash.String(), got)
}

func TestDetect_NotARepository(t *testing.T) {
	_, err := Detect(t.TempDir())
	require.ErrorIs(t, err, ErrNotRepository)
}
