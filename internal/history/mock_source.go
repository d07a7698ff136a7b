package history

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/relscope/relscope/internal/gitrepo"
)

// MockSource is a test double for the repository access a segmentation run
// needs. It serves predefined tags and tree objects without a real
// repository and records cache-size adjustments.
type MockSource struct {
	TagRefs []gitrepo.TagRef
	Trees   map[plumbing.Hash][]byte
	Err     error

	CacheSize  int
	CacheCalls []int
}

// Tags returns the predefined tags matching the prefix.
func (m *MockSource) Tags(prefix string) ([]gitrepo.TagRef, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var tags []gitrepo.TagRef
	for _, tag := range m.TagRefs {
		if prefix == "" || strings.HasPrefix(tag.Name, prefix) {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// TreeData returns a predefined tree object.
func (m *MockSource) TreeData(hash plumbing.Hash) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	data, ok := m.Trees[hash]
	if !ok {
		return nil, fmt.Errorf("tree %s not found", hash)
	}
	return data, nil
}

// ObjectCacheSize records the adjustment and returns the previous size.
func (m *MockSource) ObjectCacheSize(bytes int) int {
	prev := m.CacheSize
	m.CacheSize = bytes
	m.CacheCalls = append(m.CacheCalls, bytes)
	return prev
}

// Compile-time interface conformance check.
var _ Source = (*MockSource)(nil)
