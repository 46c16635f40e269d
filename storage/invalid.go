package storage

import "github.com/joshuapare/jbkv"

// invalidStorageNode is the sentinel returned when Find/Create cannot
// resolve a path. Every method except IsValid and Close panics with
// ErrInvalidNode, mirroring jbkv.Invalid and, further back, the original
// InvalidNode<Parent> template. Close is left harmless so that deferred
// cleanup on a possibly-invalid lookup result never needs a guard.
type invalidStorageNode struct{}

// Invalid is the StorageNode sentinel for "no such path".
var Invalid StorageNode = invalidStorageNode{}

func (invalidStorageNode) Mount(jbkv.VolumeNode) StorageNode   { panic(ErrInvalidNode) }
func (invalidStorageNode) MountAll([]jbkv.VolumeNode) StorageNode { panic(ErrInvalidNode) }
func (invalidStorageNode) Create(string) StorageNode           { panic(ErrInvalidNode) }
func (invalidStorageNode) Find(string) StorageNode             { panic(ErrInvalidNode) }
func (invalidStorageNode) Unlink(string) bool                  { panic(ErrInvalidNode) }
func (invalidStorageNode) Enumerate() []StorageNode            { panic(ErrInvalidNode) }
func (invalidStorageNode) GetName() string                     { panic(ErrInvalidNode) }
func (invalidStorageNode) Open() jbkv.NodeData                 { panic(ErrInvalidNode) }
func (invalidStorageNode) IsValid() bool                       { return false }
func (invalidStorageNode) Close() error                        { return nil }
