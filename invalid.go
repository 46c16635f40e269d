package jbkv

// invalidVolumeNode is the shared invalid-node sentinel returned by Find for
// a missing name. It implements VolumeNode but fails every method besides
// IsValid with ErrInvalidNode, sparing callers from nil checks while still
// letting them test validity explicitly — the design notes in the original
// implementation call out either choice (sentinel or a Node-or-Missing sum
// type) as contract-preserving; this spec keeps the sentinel.
type invalidVolumeNode struct{}

// Invalid is the single shared invalid VolumeNode instance.
var Invalid VolumeNode = invalidVolumeNode{}

func (invalidVolumeNode) Create(string) VolumeNode { panic(ErrInvalidNode) }
func (invalidVolumeNode) Find(string) VolumeNode   { panic(ErrInvalidNode) }
func (invalidVolumeNode) Unlink(string) bool       { panic(ErrInvalidNode) }
func (invalidVolumeNode) Enumerate() []VolumeNode  { panic(ErrInvalidNode) }
func (invalidVolumeNode) GetName() string          { panic(ErrInvalidNode) }
func (invalidVolumeNode) Open() NodeData           { panic(ErrInvalidNode) }
func (invalidVolumeNode) IsValid() bool            { return false }
