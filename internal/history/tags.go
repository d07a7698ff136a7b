package history

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	goversion "github.com/hashicorp/go-version"

	"github.com/relscope/relscope/internal/gitrepo"
	"github.com/relscope/relscope/internal/workspace"
)

// TagSource scans the tag reference namespace, optionally restricted to a
// name prefix, with annotated tags resolved to their target commits.
type TagSource interface {
	Tags(prefix string) ([]gitrepo.TagRef, error)
}

// BuildTagIndex maps target commit identities to the tags relevant to one
// module. A module with a tag prefix owns tags named "<prefix>-<version>";
// without a prefix every tag that looks like a version counts. When two
// matching tags resolve to the same commit the later-scanned one wins —
// callers that need multi-tag commits lose data here.
func BuildTagIndex(src TagSource, mod workspace.Module) (map[plumbing.Hash]gitrepo.TagRef, error) {
	start := time.Now()
	var (
		tags []gitrepo.TagRef
		err  error
	)
	if mod.TagPrefix != "" {
		tags, err = src.Tags(mod.TagPrefix + "-")
	} else {
		tags, err = src.Tags("")
	}
	if err != nil {
		return nil, err
	}

	index := make(map[plumbing.Hash]gitrepo.TagRef)
	for _, tag := range tags {
		if !matchesTagConvention(mod.TagPrefix, tag.Name) {
			continue
		}
		index[tag.Target] = tag
	}

	elapsed := time.Since(start)
	slog.Debug("mapped tags",
		"module", mod.Name,
		"tags", len(index),
		"elapsed", elapsed,
		"per_second", rate(len(index), elapsed))
	return index, nil
}

// matchesTagConvention reports whether a short tag name belongs to the
// module's naming convention.
func matchesTagConvention(prefix, name string) bool {
	if prefix == "" {
		return isVersionTag(name)
	}
	rest, ok := strings.CutPrefix(name, prefix+"-")
	return ok && isVersionTag(rest)
}

// isVersionTag reports whether a name parses as a version, with an optional
// leading "v".
func isVersionTag(name string) bool {
	if name == "" {
		return false
	}
	_, err := goversion.NewSemver(name)
	return err == nil
}
