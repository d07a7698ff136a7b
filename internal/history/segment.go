package history

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/relscope/relscope/internal/gitrepo"
	"github.com/relscope/relscope/internal/workspace"
)

// lookupCacheBytes is the object-data cache bound used while nested-path
// lookups walk tree chains.
const lookupCacheBytes = 1024 * 1024

// Boundary marks what opened a segment: the repository head for the first,
// newest segment, or a release tag for every older one.
type Boundary struct {
	Tag *gitrepo.TagRef // nil for the head segment
	Ref string          // reference name, e.g. "refs/heads/main" or the tag's short name
}

// IsHead reports whether the boundary is the repository head.
func (b Boundary) IsHead() bool {
	return b.Tag == nil
}

// Segment is one release window: its opening boundary and the commits in
// the window that touched the module's subtree. Commits are borrowed
// pointers into the owning History, valid only while it lives.
type Segment struct {
	Boundary Boundary
	Commits  []*CommitRecord
}

// Source is the repository access a segmentation run needs beyond the
// already-built History: tag scanning plus tree retrieval for nested-path
// lookups, with the tunable object-data cache behind it.
type Source interface {
	TagSource
	gitrepo.TreeSource
	ObjectCacheSize(bytes int) int
}

// Segments splits the history into release segments for one module, in a
// single linear pass with a lookahead of one. Each commit lands in at most
// one segment; a commit a tag points at always opens its segment and is
// retained regardless of path relevance. Segments come back newest-bounded
// first, the head segment leading. Tags pointing at commits outside the
// traversed ancestry are reported in one aggregated warning and dropped.
func Segments(src Source, h *History, mod workspace.Module) ([]Segment, error) {
	tagsByCommit, err := BuildTagIndex(src, mod)
	if err != nil {
		return nil, err
	}
	filter := SelectPathFilter(mod.Dir)

	start := time.Now()
	var segments []Segment
	segment := Segment{Boundary: Boundary{Ref: h.Head.Ref.String()}}

	for i := range h.Commits {
		cur := &h.Commits[i]
		var next *CommitRecord
		if i+1 < len(h.Commits) {
			next = &h.Commits[i+1]
		}

		if tag, ok := tagsByCommit[cur.ID]; ok {
			delete(tagsByCommit, cur.ID)
			segments = append(segments, segment)
			segment = Segment{
				Boundary: Boundary{Tag: &tag, Ref: tag.Name},
				Commits:  []*CommitRecord{cur},
			}
			continue
		}

		ok, err := relevantScoped(src, filter, cur, next)
		if err != nil {
			return nil, err
		}
		if ok {
			segment.Commits = append(segment.Commits, cur)
		}
	}
	segments = append(segments, segment)

	if len(tagsByCommit) > 0 {
		names := make([]string, 0, len(tagsByCommit))
		for _, tag := range tagsByCommit {
			names = append(names, tag.Name)
		}
		sort.Strings(names)
		slog.Warn("tags on branches ignored during traversal",
			"module", mod.Name,
			"tags", strings.Join(names, ", "))
	}

	elapsed := time.Since(start)
	relevant := 0
	for _, s := range segments {
		relevant += len(s.Commits)
	}
	slog.Debug("segmented history",
		"module", mod.Name,
		"relevant", relevant,
		"total", len(h.Commits),
		"segments", len(segments),
		"elapsed", elapsed,
		"per_second", rate(relevant, elapsed))
	return segments, nil
}

// relevantScoped evaluates the filter, enlarging the object-data cache for
// the duration of nested-path lookups and restoring it afterward.
func relevantScoped(src Source, filter PathFilter, cur, next *CommitRecord) (bool, error) {
	if filter.kind != filterMulti {
		return filter.relevant(src, cur, next)
	}
	prev := src.ObjectCacheSize(lookupCacheBytes)
	defer src.ObjectCacheSize(prev)
	return filter.relevant(src, cur, next)
}
