// internal/branch/branch.go
package branch

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/magefile/mage/sh"
)

// Fallback is reported when the current branch cannot be determined.
const Fallback = "Unknown"

// execFunc matches sh.Exec.
type execFunc func(env map[string]string, stdout, stderr io.Writer, cmd string, args ...string) (bool, error)

// Reader asks git for the checked-out branch.
type Reader struct {
	// Dir is the repository to query. Empty means the working directory.
	Dir string
	// Fallback replaces the branch name on any failure.
	Fallback string

	exec execFunc
}

// NewReader returns a Reader for dir. An empty fallback selects Fallback.
func NewReader(dir, fallback string) *Reader {
	if fallback == "" {
		fallback = Fallback
	}
	return &Reader{Dir: dir, Fallback: fallback, exec: sh.Exec}
}

// Current returns the short name of the checked-out branch, or the fallback
// when git is missing, the directory is not a repository, HEAD is detached,
// or git prints nothing. It never fails.
func (r *Reader) Current() string {
	args := make([]string, 0, 6)
	if r.Dir != "" {
		args = append(args, "-C", r.Dir)
	}
	args = append(args, "symbolic-ref", "--short", "-q", "HEAD")

	run := r.exec
	if run == nil {
		run = sh.Exec
	}
	var stdout, stderr bytes.Buffer
	ran, err := run(nil, &stdout, &stderr, "git", args...)
	if err != nil {
		slog.Debug("Branch lookup failed, using fallback.",
			"dir", r.Dir, "ran", ran, "error", err,
			"stderr", strings.TrimSpace(stderr.String()), "fallback", r.fallback())
		return r.fallback()
	}

	name := strings.TrimSpace(stdout.String())
	if name == "" {
		slog.Debug("Branch lookup returned no name, using fallback.", "dir", r.Dir, "fallback", r.fallback())
		return r.fallback()
	}
	slog.Debug("Resolved current branch.", "dir", r.Dir, "branch", name)
	return name
}

func (r *Reader) fallback() string {
	if r.Fallback == "" {
		return Fallback
	}
	return r.Fallback
}
