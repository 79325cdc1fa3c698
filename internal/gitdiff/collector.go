// Package gitdiff collects the line changes of the working tree against
// the last commit, grouped by the top-level entries of a directory.
//
// The data comes from this command, run in the scanned directory:
//
//	git diff --numstat --relative -z HEAD .
//
// The command runs in a background goroutine, so the caller can give up
// when the collector deadline expires.
package gitdiff

import (
	"errors"
	"io"
	"os/exec"

	"github.com/go-git/go-git/v5"

	"summer/internal/logger"
	"summer/internal/pending"
)

// diffCommand is the command to get the changes in the current directory.
var diffCommand = []string{"git", "diff", "--numstat", "--relative", "-z", "HEAD", "."}

// inRepository reports whether path may be inside a Git repository. Only
// a definite "no repository" answer returns false.
var inRepository = func(path string) bool {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	return !errors.Is(err, git.ErrRepositoryNotExists)
}

// Start runs git in the background to get the changes for the entries in
// path. The result is nil if they are not available: path is not in a
// repository, git failed or its output could not be parsed, or the
// deadline expired before it finished.
//
// The git process is not killed when the deadline expires; its result is
// discarded.
func Start(path string, deadline pending.Deadline) *pending.Value[Changes] {
	if !inRepository(path) {
		logger.Debug("git diff skipped: not a repository", "path", path)
		return pending.Resolved[Changes](nil)
	}

	cmd := exec.Command(diffCommand[0], diffCommand[1:]...)
	cmd.Dir = path

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		logger.Debug("git diff: stdout pipe", "error", err)
		return pending.Resolved[Changes](nil)
	}

	if err := cmd.Start(); err != nil {
		logger.Debug("git diff: cannot start", "error", err)
		return pending.Resolved[Changes](nil)
	}

	ch := make(chan Changes, 1)
	go func() {
		ch <- readChanges(cmd, stdout)
	}()

	return pending.NewValue(ch, deadline)
}

// Collect is like Start, but waits for the result.
func Collect(path string, deadline pending.Deadline) Changes {
	changes, ok := Start(path, deadline).Get()
	if !ok {
		logger.Debug("git diff: deadline expired", "path", path)
		return nil
	}
	return changes
}

func readChanges(cmd *exec.Cmd, stdout io.Reader) Changes {
	output, readErr := io.ReadAll(stdout)

	if err := cmd.Wait(); err != nil {
		logger.Debug("git diff failed", "error", err)
		return nil
	}

	if readErr != nil {
		logger.Debug("git diff: read output", "error", readErr)
		return nil
	}

	changes, err := Parse(output)
	if err != nil {
		logger.Debug("git diff: invalid output", "error", err)
		return nil
	}

	return changes
}
