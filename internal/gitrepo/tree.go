package gitrepo

import (
	"bytes"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// TreeEntry is one record of a raw tree object: "<mode> <name>\0" followed
// by the 20-byte identity of the child blob or tree.
type TreeEntry struct {
	Name string
	Mode filemode.FileMode
	Hash plumbing.Hash
}

// IsTree reports whether the entry points at a nested tree.
func (e TreeEntry) IsTree() bool {
	return e.Mode == filemode.Dir
}

// ForEachTreeEntry decodes entries from raw tree bytes in order, stopping
// early when fn returns false.
func ForEachTreeEntry(data []byte, fn func(TreeEntry) bool) error {
	for len(data) > 0 {
		sep := bytes.IndexByte(data, 0)
		if sep < 0 {
			return fmt.Errorf("corrupt tree object: missing NUL separator")
		}
		header := data[:sep]
		sp := bytes.IndexByte(header, ' ')
		if sp < 0 {
			return fmt.Errorf("corrupt tree object: malformed entry header %q", header)
		}
		if len(data) < sep+1+20 {
			return fmt.Errorf("corrupt tree object: truncated entry identity")
		}
		mode, err := filemode.New(string(header[:sp]))
		if err != nil {
			return fmt.Errorf("corrupt tree object: %w", err)
		}
		var hash plumbing.Hash
		copy(hash[:], data[sep+1:sep+1+20])
		entry := TreeEntry{Name: string(header[sp+1:]), Mode: mode, Hash: hash}
		data = data[sep+1+20:]
		if !fn(entry) {
			return nil
		}
	}
	return nil
}

// FindTreeEntry locates a direct entry by name in raw tree bytes. The bool
// result distinguishes "absent" from a zero entry.
func FindTreeEntry(data []byte, name string) (TreeEntry, bool, error) {
	var found TreeEntry
	var ok bool
	err := ForEachTreeEntry(data, func(e TreeEntry) bool {
		if e.Name == name {
			found, ok = e, true
			return false
		}
		return true
	})
	return found, ok, err
}

// TreeSource supplies raw tree bytes by identity. *Repository implements it
// against the object store; tests supply synthetic trees.
type TreeSource interface {
	TreeData(plumbing.Hash) ([]byte, error)
}

// LookupTreePath resolves an ordered component chain starting from raw root
// tree bytes, fetching nested trees through src. It returns the entry the
// final component resolves to, or ok=false when any component is absent or
// an intermediate component is not a tree.
func LookupTreePath(src TreeSource, root []byte, components []string) (TreeEntry, bool, error) {
	data := root
	var entry TreeEntry
	for i, comp := range components {
		e, ok, err := FindTreeEntry(data, comp)
		if err != nil || !ok {
			return TreeEntry{}, false, err
		}
		entry = e
		if i == len(components)-1 {
			break
		}
		if !e.IsTree() {
			return TreeEntry{}, false, nil
		}
		data, err = src.TreeData(e.Hash)
		if err != nil {
			return TreeEntry{}, false, err
		}
	}
	return entry, true, nil
}
