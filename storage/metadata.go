package storage

import (
	"sync"

	"github.com/joshuapare/jbkv"
)

// metadata is the per-path bookkeeping record shared by every StorageNode
// instance materialized at the same logical path: a lazily-populated
// Name->child-metadata map and the list of mount tokens currently live at
// this path. Two StorageNode instances at the same path always share the
// same metadata instance, grounded on the original implementation's
// StorageNodeMetadata.
type metadata struct {
	name string

	mu       sync.RWMutex
	children map[string]*metadata
	mounts   []*mountToken
}

func newMetadata(name string) *metadata {
	return &metadata{name: name, children: make(map[string]*metadata)}
}

func (m *metadata) Name() string { return m.name }

// getOrAddChild returns the child metadata record for name, creating it on
// first access. Optimistic read first, grounded on the original's
// shared_lock-then-upgrade pattern (also mirrored by the teacher's
// namecache lookup-then-insert idiom).
func (m *metadata) getOrAddChild(name string) *metadata {
	m.mu.RLock()
	if child, ok := m.children[name]; ok {
		m.mu.RUnlock()
		return child
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if child, ok := m.children[name]; ok {
		return child
	}
	child := newMetadata(name)
	m.children[name] = child
	return child
}

func (m *metadata) removeChild(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.children, name)
}

func (m *metadata) addMountPoint(token *mountToken) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mounts = append(m.mounts, token)
}

// removeMount drops token from this record's mount list. Called exactly
// once per token, the first time the token is closed.
func (m *metadata) removeMount(token *mountToken) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.mounts {
		if t == token {
			m.mounts = append(m.mounts[:i:i], m.mounts[i+1:]...)
			return
		}
	}
}

// listMountPoints returns the volumes behind every mount currently live at
// this path, in the order they were mounted.
func (m *metadata) listMountPoints() []jbkv.VolumeNode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]jbkv.VolumeNode, 0, len(m.mounts))
	for _, t := range m.mounts {
		result = append(result, t.volume)
	}
	return result
}
