package gitrepo

import (
	"fmt"
	"io"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// DefaultObjectCacheBytes is the object-data cache bound a freshly opened
// repository starts with. Callers enlarge it for specific passes via
// ObjectCacheSize and restore the previous value afterward.
const DefaultObjectCacheBytes = 16 * 1024

// Repository wraps a go-git repository with the raw-object access the
// segmentation engine needs: head classification, ancestry enumeration,
// tree bytes served through a size-tunable cache, and tag scanning.
type Repository struct {
	repo  *git.Repository
	cache *objectCache
}

// Open opens the repository at path, detecting the .git directory from any
// location inside the work tree.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return Wrap(repo), nil
}

// Wrap adapts an already-open go-git repository.
func Wrap(repo *git.Repository) *Repository {
	return &Repository{
		repo:  repo,
		cache: newObjectCache(DefaultObjectCacheBytes),
	}
}

// HeadKind classifies the state of HEAD.
type HeadKind int

const (
	// HeadSymbolic is a HEAD pointing at an existing branch.
	HeadSymbolic HeadKind = iota
	// HeadDetached is a HEAD pointing directly at a commit.
	HeadDetached
	// HeadUnborn is a HEAD pointing at a branch with no commits yet.
	HeadUnborn
)

// Head is a snapshot of the resolved HEAD reference.
type Head struct {
	Kind HeadKind
	Ref  plumbing.ReferenceName // target branch; unset when detached
	Hash plumbing.Hash          // zero when unborn
}

// Head classifies HEAD without following it blindly: a detached HEAD and an
// unborn branch are distinct outcomes, not errors.
func (r *Repository) Head() (Head, error) {
	ref, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return Head{}, fmt.Errorf("failed to read HEAD: %w", err)
	}
	if ref.Type() == plumbing.HashReference {
		return Head{Kind: HeadDetached, Hash: ref.Hash()}, nil
	}
	target := ref.Target()
	resolved, err := r.repo.Reference(target, true)
	if err == plumbing.ErrReferenceNotFound {
		return Head{Kind: HeadUnborn, Ref: target}, nil
	}
	if err != nil {
		return Head{}, fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	return Head{Kind: HeadSymbolic, Ref: target, Hash: resolved.Hash()}, nil
}

// Ancestors returns an iterator over every ancestor of from, from itself
// included, in parent-following traversal order. Each commit is visited
// exactly once.
func (r *Repository) Ancestors(from plumbing.Hash) (object.CommitIter, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("failed to walk ancestry from %s: %w", from, err)
	}
	return iter, nil
}

// TreeData returns the raw bytes of the tree object identified by hash,
// served through the object-data cache.
func (r *Repository) TreeData(hash plumbing.Hash) ([]byte, error) {
	if data, ok := r.cache.get(hash); ok {
		return data, nil
	}
	obj, err := r.repo.Storer.EncodedObject(plumbing.TreeObject, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to find tree %s: %w", hash, err)
	}
	rd, err := obj.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree %s: %w", hash, err)
	}
	defer rd.Close()
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree %s: %w", hash, err)
	}
	r.cache.put(hash, data)
	return data, nil
}

// ObjectCacheSize sets the object-data cache bound in bytes and returns the
// previous bound. The knob is handle-wide and not reentrant: nested or
// concurrent adjustments on the same Repository will race. Enlargements are
// meant to be scoped:
//
//	prev := repo.ObjectCacheSize(64 * 1024)
//	defer repo.ObjectCacheSize(prev)
func (r *Repository) ObjectCacheSize(bytes int) int {
	return r.cache.resize(bytes)
}

// WithObjectCacheSize enlarges the cache and returns the restore function,
// for use with defer so the prior bound comes back on every exit path.
func (r *Repository) WithObjectCacheSize(bytes int) (restore func()) {
	prev := r.cache.resize(bytes)
	return func() { r.cache.resize(prev) }
}

// TagRef is a tag reference name together with the commit it ultimately
// resolves to, after following any chain of annotated tags.
type TagRef struct {
	Name   string // short name, e.g. "v1.2.0" or "store-v1.2.0"
	Target plumbing.Hash
}

// Tags scans refs/tags and returns each tag with its peeled target commit.
// A non-empty prefix restricts the scan to short names starting with it.
func (r *Repository) Tags(prefix string) ([]TagRef, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	var tags []TagRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			return nil
		}
		tags = append(tags, TagRef{Name: name, Target: r.peel(ref.Hash())})
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}
	return tags, nil
}

// peel follows annotated-tag indirection (including tags of tags) down to
// the referenced commit.
func (r *Repository) peel(hash plumbing.Hash) plumbing.Hash {
	for {
		tag, err := r.repo.TagObject(hash)
		if err != nil {
			return hash
		}
		hash = tag.Target
	}
}
