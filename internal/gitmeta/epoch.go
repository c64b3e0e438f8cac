// Package gitmeta reads commit metadata for documents kept in git, so builds
// of an unchanged commit embed the same timestamps.
package gitmeta

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-git/go-git/v5"
)

// EnvSourceDateEpoch is the variable TeX engines read for reproducible dates.
const EnvSourceDateEpoch = "SOURCE_DATE_EPOCH"

// ErrNotRepository is returned when dir is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// HeadCommitTime returns the committer time of HEAD for the repository
// containing dir, searching parent directories for .git.
func HeadCommitTime(dir string) (time.Time, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return time.Time{}, ErrNotRepository
		}
		return time.Time{}, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return time.Time{}, fmt.Errorf("get commit object: %w", err)
	}
	return commit.Committer.When, nil
}

// SourceDateEpoch formats HEAD's commit time as a SOURCE_DATE_EPOCH value.
func SourceDateEpoch(dir string) (string, error) {
	when, err := HeadCommitTime(dir)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(when.Unix(), 10), nil
}
