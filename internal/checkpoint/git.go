package checkpoint

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/keshon/treegen/internal/fs"
)

const (
	commitUser  = "treegen"
	commitEmail = "treegen@localhost"
)

// Git checkpoints by shelling out to the git command line: it stages all
// pending changes in the working tree and commits them with the given
// message. Output is suppressed and never parsed.
//
// An internal mutex keeps at most one checkpoint in flight, so concurrent
// folder workers cannot corrupt the shared repository state.
type Git struct {
	mu  sync.Mutex
	dir string
}

// NewGit returns a Git checkpointer operating on the repository rooted
// at dir. The repository is assumed to already be initialized
// (see EnsureRepo).
func NewGit(dir string) *Git {
	return &Git{dir: dir}
}

func (g *Git) Checkpoint(message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := runGit(g.dir, "add", "-A"); err != nil {
		return err
	}
	return runGit(g.dir, "commit", "-q", "-m", message)
}

// EnsureRepo initializes a git repository in dir if one is not already
// present, and sets the identity commits will be recorded under.
func EnsureRepo(fsys fs.FS, dir string) error {
	if fsys.IsDir(filepath.Join(dir, ".git")) {
		return nil
	}
	if err := runGit(dir, "init", "-q"); err != nil {
		return err
	}
	if err := runGit(dir, "config", "user.name", commitUser); err != nil {
		return err
	}
	return runGit(dir, "config", "user.email", commitEmail)
}

// hook used for testing (overridable)
var runGit = func(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	return nil
}

func GetRunGit() func(string, ...string) error  { return runGit }
func SetRunGit(f func(string, ...string) error) { runGit = f }
