package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jimdowning-cyclops/versioning-go/internal/version"
)

var (
	// ErrNotRepository is returned when dir is not inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")

	// ErrTagExists is returned when the tag to create is already present.
	ErrTagExists = errors.New("tag already exists")
)

// TagName returns the tag used for v, e.g. "v1.2.3".
func TagName(v version.Version) string {
	return v.String()
}

// IsRepository checks if dir is inside a git repository.
func IsRepository(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

// TagExists reports whether tag is present in the repository at dir.
func TagExists(ctx context.Context, dir, tag string) (bool, error) {
	out, err := run(ctx, dir, "tag", "-l", tag)
	if err != nil {
		return false, fmt.Errorf("failed to list tags: %w", err)
	}

	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == tag {
			return true, nil
		}
	}
	return false, nil
}

// CheckTag verifies that tag can be created in the repository at dir.
func CheckTag(ctx context.Context, dir, tag string) error {
	if !IsRepository(ctx, dir) {
		return fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}

	exists, err := TagExists(ctx, dir, tag)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrTagExists, tag)
	}
	return nil
}

// CommitFile stages and commits only the file name inside dir, leaving any
// other staged changes out of the commit.
func CommitFile(ctx context.Context, dir, name, message string) error {
	if _, err := run(ctx, dir, "add", "--", name); err != nil {
		return fmt.Errorf("failed to stage %s: %w", name, err)
	}
	if _, err := run(ctx, dir, "commit", "-m", message, "--", name); err != nil {
		return fmt.Errorf("failed to commit %s: %w", name, err)
	}
	return nil
}

// CreateTag creates an annotated tag at HEAD of the repository at dir.
func CreateTag(ctx context.Context, dir, tag, message string) error {
	if err := CheckTag(ctx, dir, tag); err != nil {
		return err
	}

	if _, err := run(ctx, dir, "tag", "-a", tag, "-m", message); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

// run runs a git command in dir and returns its stdout.
// Stderr from git is folded into the returned error.
func run(ctx context.Context, dir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}
