// Package jbkv provides an in-memory, thread-safe hierarchical key-value
// store called a volume.
//
// # Overview
//
// A volume is a tree of named nodes. Each node owns a set of named children
// and an independent map from string keys to heterogeneously-typed values
// (a NodeData). Volumes are built bottom-up with CreateVolume and the
// Create/Find/Unlink/Enumerate operations on VolumeNode, and read or
// written to through the NodeData returned by Open.
//
// # Key Types
//
//   - Value: an immutable tagged union over a fixed set of scalar, string,
//     and blob primitives.
//   - NodeData: the per-node key-to-Value map.
//   - VolumeNode: a node in a volume; owns its data and its children.
//
// # Layered views
//
// The github.com/joshuapare/jbkv/storage package composes several volume
// subtrees into a single virtual StorageNode overlay, with a well-defined
// per-layer priority. The github.com/joshuapare/jbkv/codec package saves and
// loads a volume tree as a self-describing binary stream with integrity
// checking.
//
// # Thread Safety
//
// Every exported operation on a Value, NodeData, or VolumeNode is safe for
// concurrent use by any number of goroutines. Locks are never held across a
// caller-supplied Visit callback.
package jbkv
