// Package revision reports which source revision a build was made from.
package revision

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when dir is not inside a git work tree.
var ErrNotRepository = errors.New("revision: not a git repository")

// Detect returns the commit hash checked out in the repository containing dir.
// Parent directories are searched for the .git directory.
func Detect(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", ErrNotRepository
		}
		return "", fmt.Errorf("open repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}
