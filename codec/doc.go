// Package codec saves and loads a jbkv volume tree as a self-describing
// binary stream: a 5-byte header (magic "jbkv" + version), then one frame
// per node in breadth-first order, each closed by a per-node XOR-8
// checksum over its own child names, keys, and value payload bytes.
//
// The format is documented in full in SPEC_FULL.md §4.5. This package only
// implements the codec itself; opening the underlying file or stream is
// the caller's concern (SaveFile/LoadFile are thin convenience wrappers
// around os.Create/os.Open).
package codec
