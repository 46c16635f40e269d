// Package storage provides a layered overlay view ("storage") that
// composes several jbkv volumes into a single logical tree.
//
// A StorageNode presents several VolumeNode subtrees as one virtual node:
// its children are the union of co-named children across layers, and its
// data is the merged key-space of the underlying volumes' NodeData, read
// top layer first. MountStorage/MountStorageAll build the root StorageNode;
// Mount adds another volume as a new top layer, returning a new StorageNode
// without mutating the one it was called on.
//
// Mount lifetime is tied to the returned StorageNode: nothing unmounts
// implicitly. Calling Close on a StorageNode produced by Mount unmounts the
// volume it introduced and every mount further down the chain it was built
// on, so those mounts are no longer visible to future Find/Create/Enumerate
// calls at their paths. Mounts are not reference-counted: the first such
// Close unmounts, even while other StorageNodes built on the same mount are
// still open, and StorageNodes obtained through Find/Create/Enumerate hold
// no mount of their own (see the REDESIGN FLAGS section of SPEC_FULL.md for
// why this spec prefers an explicit Close over destructor-driven
// unmounting).
package storage
