package jbkv

import (
	"sync"

	"github.com/joshuapare/jbkv/internal/log"
)

// volumeNode is the authoritative VolumeNode realization. Its child map is
// guarded by a reader/writer lock (writers: Create, Unlink; readers: Find,
// Enumerate), grounded on the teacher's namecache shard-mutex pattern and
// go-fuse's inodeChildren map. The NodeData reference is fixed at
// construction and needs no lock of its own; its internal lock serializes
// data operations independently.
type volumeNode struct {
	name string
	data NodeData

	mu       sync.RWMutex
	children map[string]VolumeNode
}

// CreateVolume creates a new, empty volume and returns its root node.
func CreateVolume() VolumeNode {
	return newVolumeNode(RootName)
}

func newVolumeNode(name string) *volumeNode {
	return &volumeNode{
		name:     name,
		data:     newVolumeData(),
		children: make(map[string]VolumeNode),
	}
}

func (n *volumeNode) GetName() string { return n.name }

func (n *volumeNode) Open() NodeData { return n.data }

func (n *volumeNode) Create(name string) VolumeNode {
	n.mu.Lock()
	defer n.mu.Unlock()
	if child, ok := n.children[name]; ok {
		return child
	}

	child := newVolumeNode(name)
	n.children[name] = child
	log.Debug("volume: created child", "parent", n.name, "child", name)
	return child
}

func (n *volumeNode) Find(name string) VolumeNode {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if child, ok := n.children[name]; ok {
		return child
	}
	return Invalid
}

func (n *volumeNode) Unlink(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.children[name]; !ok {
		return false
	}
	delete(n.children, name)
	log.Debug("volume: unlinked child", "parent", n.name, "child", name)
	return true
}

func (n *volumeNode) Enumerate() []VolumeNode {
	n.mu.RLock()
	defer n.mu.RUnlock()
	result := make([]VolumeNode, 0, len(n.children))
	for _, child := range n.children {
		result = append(result, child)
	}
	return result
}

func (n *volumeNode) IsValid() bool { return true }
