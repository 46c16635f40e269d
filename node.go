package jbkv

// RootName is the name given to the root node of every volume, mirroring
// the original implementation's kRootName constant.
const RootName = "/"

// VolumeNode is a node in a volume: it owns its data and its children.
//
// Find of a missing name returns the shared invalid-node sentinel rather
// than nil; every method but IsValid fails on it with ErrInvalidNode.
// Create never fails except via the sentinel: concurrent Create calls for
// the same name resolve to the same child.
type VolumeNode interface {
	// Create returns the existing child named name, or creates, inserts,
	// and returns a new one. Concurrent calls for the same name resolve to
	// the same child.
	Create(name string) VolumeNode

	// Find returns the existing child named name, or the invalid-node
	// sentinel if none exists. Find never inserts.
	Find(name string) VolumeNode

	// Unlink removes the parent's reference to the child named name,
	// returning true iff one existed. The child subtree remains alive and
	// functional through any other strong reference to it.
	Unlink(name string) bool

	// Enumerate returns a snapshot of the node's children.
	Enumerate() []VolumeNode

	// GetName returns the name given to this node at construction.
	GetName() string

	// Open returns this node's NodeData.
	Open() NodeData

	// IsValid reports whether this node refers to a real, present node.
	IsValid() bool
}
