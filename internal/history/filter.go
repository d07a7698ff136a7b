package history

import (
	"strings"

	"github.com/relscope/relscope/internal/gitrepo"
)

type filterKind int

const (
	filterNone filterKind = iota
	filterSingle
	filterMulti
)

// PathFilter decides whether a commit touched a module's subtree. It is a
// closed set of three variants chosen once per module: no filter for a root
// module, a direct tree-entry lookup for a module one directory below root,
// and a recursive path lookup for nested modules.
type PathFilter struct {
	kind       filterKind
	components []string
}

// SelectPathFilter classifies a root-relative module directory into a
// filter variant. The path is expected to use forward slashes; an empty
// path means the module occupies the repository root.
func SelectPathFilter(dir string) PathFilter {
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return PathFilter{kind: filterNone}
	}
	components := strings.Split(dir, "/")
	if len(components) == 1 {
		return PathFilter{kind: filterSingle, components: components}
	}
	return PathFilter{kind: filterMulti, components: components}
}

// String describes the variant for logs and tests.
func (f PathFilter) String() string {
	switch f.kind {
	case filterNone:
		return "none"
	case filterSingle:
		return "single(" + f.components[0] + ")"
	default:
		return "multi(" + strings.Join(f.components, "/") + ")"
	}
}

// relevant reports whether commit cur, compared against the next-older
// commit in traversal order, changed the filtered subtree. With no baseline
// (cur is the oldest commit) the subtree counts as changed iff its entry
// exists at all.
func (f PathFilter) relevant(src gitrepo.TreeSource, cur, next *CommitRecord) (bool, error) {
	switch f.kind {
	case filterNone:
		return true, nil
	case filterSingle:
		entry, ok, err := gitrepo.FindTreeEntry(cur.TreeData, f.components[0])
		if err != nil || !ok {
			return false, err
		}
		if next == nil {
			return true, nil
		}
		base, baseOK, err := gitrepo.FindTreeEntry(next.TreeData, f.components[0])
		if err != nil {
			return false, err
		}
		return !baseOK || base.Hash != entry.Hash, nil
	default:
		entry, ok, err := gitrepo.LookupTreePath(src, cur.TreeData, f.components)
		if err != nil || !ok {
			return false, err
		}
		if next == nil {
			return true, nil
		}
		base, baseOK, err := gitrepo.LookupTreePath(src, next.TreeData, f.components)
		if err != nil {
			return false, err
		}
		return !baseOK || base.Hash != entry.Hash, nil
	}
}
