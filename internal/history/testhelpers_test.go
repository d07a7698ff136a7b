package history

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/relscope/relscope/internal/gitrepo"
)

// --- Synthetic fixtures ---

// hashOf derives a deterministic, distinct hash from a label.
func hashOf(label string) plumbing.Hash {
	return plumbing.Hash(sha1.Sum([]byte(label)))
}

// treeBytes encodes entries into the raw tree object format.
func treeBytes(entries ...gitrepo.TreeEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(strconv.FormatUint(uint64(e.Mode), 8))
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(e.Hash[:])
	}
	return buf.Bytes()
}

func blobEntry(name, content string) gitrepo.TreeEntry {
	return gitrepo.TreeEntry{Name: name, Mode: filemode.Regular, Hash: hashOf("blob:" + content)}
}

func dirEntry(name string, hash plumbing.Hash) gitrepo.TreeEntry {
	return gitrepo.TreeEntry{Name: name, Mode: filemode.Dir, Hash: hash}
}

// syntheticHistory assembles a History from records, newest first, anchored
// at a fake branch head.
func syntheticHistory(records ...CommitRecord) *History {
	return &History{
		Head: gitrepo.Head{
			Kind: gitrepo.HeadSymbolic,
			Ref:  plumbing.NewBranchReferenceName("main"),
			Hash: records[0].ID,
		},
		Commits: records,
	}
}

func commitIDs(segment Segment) []string {
	ids := make([]string, 0, len(segment.Commits))
	for _, c := range segment.Commits {
		ids = append(ids, c.Message)
	}
	return ids
}

func assertSegmentCommits(t *testing.T, segment Segment, want ...string) {
	t.Helper()
	got := commitIDs(segment)
	if len(got) != len(want) {
		t.Fatalf("segment %s: commits = %v, want %v", segment.Boundary.Ref, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %s: commits = %v, want %v", segment.Boundary.Ref, got, want)
		}
	}
}

// --- Real repository fixtures ---

// createTestRepo initializes a git repository in a temporary directory.
func createTestRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	tmpDir := t.TempDir()
	repo, err := git.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}
	return tmpDir, repo
}

// addCommit writes the given files and commits them, returning the commit hash.
func addCommit(t *testing.T, repo *git.Repository, message string, files map[string]string) plumbing.Hash {
	t.Helper()
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	for name, content := range files {
		path := filepath.Join(w.Filesystem.Root(), filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := w.Add(name); err != nil {
			t.Fatalf("Failed to add file: %v", err)
		}
	}
	hash, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	return hash
}

// tagCommit creates a lightweight tag pointing at the given commit.
func tagCommit(t *testing.T, repo *git.Repository, name string, hash plumbing.Hash) {
	t.Helper()
	if _, err := repo.CreateTag(name, hash, nil); err != nil {
		t.Fatalf("Failed to tag %s: %v", name, err)
	}
}

func uniqueContent(name string) map[string]string {
	return map[string]string{name: fmt.Sprintf("content of %s at %d\n", name, time.Now().UnixNano())}
}
