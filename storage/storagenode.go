package storage

import (
	"fmt"
	"sync"

	"github.com/joshuapare/jbkv"
)

// StorageNode is a virtual node over one or more layered VolumeNode
// subtrees. Unlike jbkv.VolumeNode it carries no authoritative data of its
// own: Open returns a merged view over its layers, and Create/Find/Unlink/
// Enumerate combine the layers' own children with any volumes mounted at
// the corresponding path.
type StorageNode interface {
	// Mount stacks v as a new top layer over this node, returning a new
	// StorageNode; it does not modify the receiver. Panics with
	// ErrInvalidArgument if v is nil or invalid.
	Mount(v jbkv.VolumeNode) StorageNode

	// MountAll mounts each volume in order, topmost last. Panics with
	// ErrInvalidArgument if vs is empty or contains an invalid volume.
	MountAll(vs []jbkv.VolumeNode) StorageNode

	Create(name string) StorageNode
	Find(name string) StorageNode
	Unlink(name string) bool
	Enumerate() []StorageNode
	GetName() string
	Open() jbkv.NodeData
	IsValid() bool

	// Close releases this node's claim on any mount it introduced (see
	// mountToken). Safe to call more than once; safe to call on a node
	// that introduced no mount.
	Close() error
}

type storageNodeImpl struct {
	meta   *metadata
	layers []jbkv.VolumeNode // bottom first, top last; never empty
	mount  *mountToken       // non-nil only for nodes returned by Mount/MountAll

	closeOnce sync.Once
}

// MountStorage builds the root StorageNode with v as its sole layer.
func MountStorage(v jbkv.VolumeNode) StorageNode {
	return MountStorageAll([]jbkv.VolumeNode{v})
}

// MountStorageAll builds the root StorageNode by mounting each volume in
// order, vs[0] first (bottommost).
func MountStorageAll(vs []jbkv.VolumeNode) StorageNode {
	if len(vs) == 0 {
		panic(fmt.Errorf("%w: MountStorageAll requires at least one volume", ErrInvalidArgument))
	}
	root := &storageNodeImpl{meta: newMetadata(jbkv.RootName)}
	var node StorageNode = root
	for _, v := range vs {
		node = node.Mount(v)
	}
	return node
}

func (s *storageNodeImpl) Mount(v jbkv.VolumeNode) StorageNode {
	if v == nil || !v.IsValid() {
		panic(fmt.Errorf("%w: cannot mount a nil or invalid volume", ErrInvalidArgument))
	}
	layers := make([]jbkv.VolumeNode, len(s.layers)+1)
	copy(layers, s.layers)
	layers[len(layers)-1] = v

	token := newMountToken(v, s.mount, s.meta)
	return &storageNodeImpl{meta: s.meta, layers: layers, mount: token}
}

func (s *storageNodeImpl) MountAll(vs []jbkv.VolumeNode) StorageNode {
	if len(vs) == 0 {
		panic(fmt.Errorf("%w: MountAll requires at least one volume", ErrInvalidArgument))
	}
	var node StorageNode = s
	for _, v := range vs {
		node = node.Mount(v)
	}
	return node
}

func (s *storageNodeImpl) topLayer() jbkv.VolumeNode {
	return s.layers[len(s.layers)-1]
}

// Create returns the existing combined child if one resolves, otherwise
// creates it on the topmost layer only.
func (s *storageNodeImpl) Create(name string) StorageNode {
	if existing := s.Find(name); existing.IsValid() {
		return existing
	}
	top := s.topLayer().Create(name)
	childMeta := s.meta.getOrAddChild(name)
	return &storageNodeImpl{meta: childMeta, layers: []jbkv.VolumeNode{top}}
}

// Find combines each layer's own child at name with any volumes currently
// mounted at that path. Returns the invalid sentinel, and prunes the child
// metadata record, when nothing resolves.
func (s *storageNodeImpl) Find(name string) StorageNode {
	combined := make([]jbkv.VolumeNode, 0, len(s.layers))
	for _, layer := range s.layers {
		if child := layer.Find(name); child.IsValid() {
			combined = append(combined, child)
		}
	}

	childMeta := s.meta.getOrAddChild(name)
	combined = append(combined, childMeta.listMountPoints()...)

	if len(combined) == 0 {
		s.meta.removeChild(name)
		return Invalid
	}
	return &storageNodeImpl{meta: childMeta, layers: combined}
}

// Unlink removes name from every layer and drops its metadata record. It
// does not close any mount registered at that path; a caller still holding
// the StorageNode that introduced such a mount must Close it separately.
func (s *storageNodeImpl) Unlink(name string) bool {
	result := false
	for _, layer := range s.layers {
		if layer.Unlink(name) {
			result = true
		}
	}
	s.meta.removeChild(name)
	return result
}

// Enumerate groups each layer's children by name, unions in mounted
// volumes per path, and returns one combined StorageNode per distinct
// child name, in first-sighted order (bottom layer first).
func (s *storageNodeImpl) Enumerate() []StorageNode {
	order := make([]string, 0)
	grouped := make(map[string][]jbkv.VolumeNode)
	for _, layer := range s.layers {
		for _, child := range layer.Enumerate() {
			name := child.GetName()
			if _, seen := grouped[name]; !seen {
				order = append(order, name)
			}
			grouped[name] = append(grouped[name], child)
		}
	}

	result := make([]StorageNode, 0, len(order))
	for _, name := range order {
		childMeta := s.meta.getOrAddChild(name)
		layers := append(grouped[name], childMeta.listMountPoints()...)
		result = append(result, &storageNodeImpl{meta: childMeta, layers: layers})
	}
	return result
}

func (s *storageNodeImpl) GetName() string { return s.meta.Name() }

// Open returns a merged view over every layer, top layer highest priority.
func (s *storageNodeImpl) Open() jbkv.NodeData {
	layerData := make([]jbkv.NodeData, len(s.layers))
	for i, layer := range s.layers {
		layerData[i] = layer.Open()
	}
	return newStorageData(layerData)
}

func (s *storageNodeImpl) IsValid() bool { return true }

func (s *storageNodeImpl) Close() error {
	s.closeOnce.Do(func() {
		s.mount.close()
	})
	return nil
}
