// Package history linearizes a repository's commit ancestry once and
// slices it into per-release segments scoped to a workspace module.
package history

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/relscope/relscope/internal/gitrepo"
)

// walkCacheBytes is the object-data cache bound used while the ancestry
// walk loads every root tree.
const walkCacheBytes = 64 * 1024

// CommitRecord is an owned snapshot of one commit: its identity, decoded
// message, and a byte-for-byte copy of its root tree object. Records are
// immutable once the containing History is built.
type CommitRecord struct {
	ID       plumbing.Hash
	Message  string
	TreeData []byte
}

// Title returns the first line of the commit message.
func (c *CommitRecord) Title() string {
	for i := 0; i < len(c.Message); i++ {
		if c.Message[i] == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}

// History is the linearized ancestry of the repository head: commits in
// traversal order, each preceding its own ancestors. It is built once per
// invocation and read-only afterward; segments borrow into it.
type History struct {
	// Head is the snapshot of the resolved head reference.
	Head gitrepo.Head
	// Commits holds every retained ancestor, newest first.
	Commits []CommitRecord
	// Dropped counts commits discarded because their message was not
	// valid UTF-8. Those commits appear in no segment for any module.
	Dropped int
}

// Build walks the ancestry of the current head exactly once and returns an
// owned History. A nil History with a nil error means the repository has no
// commits yet (unborn head) — a legitimate terminal state, not a failure.
// A detached head is a fatal error: ancestry is ambiguous for release
// purposes.
func Build(repo *gitrepo.Repository) (*History, error) {
	start := time.Now()
	head, err := repo.Head()
	if err != nil {
		return nil, err
	}
	switch head.Kind {
	case gitrepo.HeadDetached:
		return nil, fmt.Errorf("refusing to operate on a detached HEAD")
	case gitrepo.HeadUnborn:
		return nil, nil
	}

	defer repo.WithObjectCacheSize(walkCacheBytes)()

	iter, err := repo.Ancestors(head.Hash)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	h := &History{Head: head}
	err = iter.ForEach(func(c *object.Commit) error {
		if !utf8.ValidString(c.Message) {
			slog.Warn("commit message could not be decoded as UTF-8, commit ignored",
				"commit", c.Hash.String())
			h.Dropped++
			return nil
		}
		treeData, err := repo.TreeData(c.TreeHash)
		if err != nil {
			return err
		}
		h.Commits = append(h.Commits, CommitRecord{
			ID:       c.Hash,
			Message:  c.Message,
			TreeData: treeData,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read commit history: %w", err)
	}

	elapsed := time.Since(start)
	slog.Debug("cached commit history",
		"commits", len(h.Commits),
		"dropped", h.Dropped,
		"elapsed", elapsed,
		"per_second", rate(len(h.Commits), elapsed))
	return h, nil
}

func rate(n int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(n) / elapsed.Seconds()
}
