package storage

import (
	"testing"

	"github.com/joshuapare/jbkv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageNode_MountsVolumeNodes(t *testing.T) {
	v1 := jbkv.CreateVolume()
	v1.Create("c1")

	s1 := MountStorage(v1)
	first := s1.Find("c1")
	require.True(t, first.IsValid())

	v2 := jbkv.CreateVolume()
	v2.Create("c1")
	s2 := s1.Mount(v2)

	// Stacking a second volume doesn't disturb the first reference.
	assert.True(t, s1.Find("c1").IsValid())
	assert.True(t, s2.Find("c1").IsValid())
}

func TestStorageNode_CreateUsesExistingBeforeCreatingNew(t *testing.T) {
	v := jbkv.CreateVolume()
	v.Create("c1")

	s := MountStorage(v)
	created := s.Create("c1")
	found := s.Find("c1")
	assert.Equal(t, found.GetName(), created.GetName())
}

func TestStorageNode_LiveAfterUnlink(t *testing.T) {
	v := jbkv.CreateVolume()
	v.Create("c1")

	s := MountStorage(v)
	child := s.Find("c1")
	child.Open().Write("k", jbkv.NewInt32(1))

	assert.True(t, s.Unlink("c1"))
	assert.False(t, s.Find("c1").IsValid())

	// The caller's existing reference still reads through to the volume.
	val, ok := child.Open().Read("k")
	require.True(t, ok)
	n, _ := val.TryInt32()
	assert.Equal(t, int32(1), n)
}

func TestStorageNode_MountSubtreeIsVisibleThenUnmounts(t *testing.T) {
	v1 := jbkv.CreateVolume()
	v1.Create("i").Create("c1")

	s := MountStorage(v1)

	v2 := jbkv.CreateVolume()
	v2.Create("c1")

	m := s.Find("i").Mount(v2)
	require.True(t, m.Find("c1").IsValid())

	// Re-deriving "i" from s picks the mount up globally.
	assert.True(t, s.Find("i").Find("c1").IsValid())

	require.NoError(t, m.Close())

	// After closing the only reference to the mount token, the stack
	// drops back to the pre-mount view.
	again := s.Find("i")
	assert.True(t, again.IsValid())
}

func TestStorageNode_LayerReadGlobalEffectAndNoSideEffectsOnOpenData(t *testing.T) {
	v1 := jbkv.CreateVolume()
	v1.Create("i").Create("c1").Open().Write("val", jbkv.NewInt32(1))

	s := MountStorage(v1)
	d1 := s.Find("i").Find("c1").Open()
	got1, _ := d1.Read("val")
	n1, _ := got1.TryInt32()
	assert.Equal(t, int32(1), n1)

	v2 := jbkv.CreateVolume()
	v2.Create("c1").Open().Write("val", jbkv.NewInt32(2))

	m := s.Find("i").Mount(v2)
	d2 := m.Find("c1").Open()
	got2, _ := d2.Read("val")
	n2, _ := got2.TryInt32()
	assert.Equal(t, int32(2), n2, "mounted layer shadows the original")

	d3 := s.Find("i").Find("c1").Open()
	got3, _ := d3.Read("val")
	n3, _ := got3.TryInt32()
	assert.Equal(t, int32(2), n3, "mount is visible globally through s")

	require.NoError(t, m.Close())

	d4 := s.Find("i").Find("c1").Open()
	got4, _ := d4.Read("val")
	n4, _ := got4.TryInt32()
	assert.Equal(t, int32(1), n4, "unmounted, back to the original volume")

	// d2 captured its layers before the unmount; it keeps reading "2".
	got2again, _ := d2.Read("val")
	n2again, _ := got2again.TryInt32()
	assert.Equal(t, int32(2), n2again, "already-open data has no side effects from later unmounts")
}

func TestStorageNode_UnlinkAllRemovesFromEveryLayer(t *testing.T) {
	v1 := jbkv.CreateVolume()
	v1.Create("c1")
	v2 := jbkv.CreateVolume()
	v2.Create("c1")

	s := MountStorage(v1).Mount(v2)
	require.True(t, s.Find("c1").IsValid())
	assert.True(t, s.Unlink("c1"))
	assert.False(t, s.Find("c1").IsValid())
	assert.False(t, v1.Find("c1").IsValid())
	assert.False(t, v2.Find("c1").IsValid())
}

func TestStorageNode_EnumerateAggregatesAcrossLayers(t *testing.T) {
	v1 := jbkv.CreateVolume()
	v1.Create("a")
	v1.Create("shared")
	v2 := jbkv.CreateVolume()
	v2.Create("b")
	v2.Create("shared")

	s := MountStorage(v1).Mount(v2)
	children := s.Enumerate()

	names := map[string]bool{}
	for _, c := range children {
		names[c.GetName()] = true
	}
	assert.Len(t, children, 3)
	assert.True(t, names["a"])
	assert.True(t, names["b"])
	assert.True(t, names["shared"])
}

func TestStorageNode_MountChainCascadesOnFinalClose(t *testing.T) {
	base := jbkv.CreateVolume()
	base.Create("i").Create("c1").Open().Write("val", jbkv.NewInt32(1))
	v2 := jbkv.CreateVolume()
	v2.Create("c1").Open().Write("val", jbkv.NewInt32(2))
	v3 := jbkv.CreateVolume()
	v3.Create("c1").Open().Write("val", jbkv.NewInt32(3))

	s := MountStorage(base)

	// Stack two mounts on top of "i" without ever binding the intermediate
	// node; only the final returned StorageNode is kept.
	m := s.Find("i").Mount(v2).Mount(v3)
	v, _ := m.Find("c1").Open().Read("val")
	n, _ := v.TryInt32()
	assert.Equal(t, int32(3), n)

	// The mount is visible globally through s, re-derived from "i".
	got, _ := s.Find("i").Find("c1").Open().Read("val")
	gotN, _ := got.TryInt32()
	assert.Equal(t, int32(3), gotN)

	require.NoError(t, m.Close())

	// Closing the chain's final node unmounts v3 and v2 in one call,
	// leaving the pre-mount view of "i" (from base, never itself closed).
	after, _ := s.Find("i").Find("c1").Open().Read("val")
	afterN, _ := after.TryInt32()
	assert.Equal(t, int32(1), afterN)
}

func TestStorageNode_MountRejectsInvalidVolume(t *testing.T) {
	s := MountStorage(jbkv.CreateVolume())
	assert.Panics(t, func() { s.Mount(jbkv.Invalid) })
	assert.Panics(t, func() { s.Mount(nil) })
}

func TestStorageNode_MountStorageAllRejectsEmpty(t *testing.T) {
	assert.Panics(t, func() { MountStorageAll(nil) })
}

func TestStorageNode_InvalidSentinelPanicsExceptIsValidAndClose(t *testing.T) {
	assert.False(t, Invalid.IsValid())
	assert.NoError(t, Invalid.Close())
	assert.Panics(t, func() { Invalid.GetName() })
	assert.Panics(t, func() { Invalid.Find("x") })
	assert.Panics(t, func() { Invalid.Create("x") })
	assert.Panics(t, func() { Invalid.Unlink("x") })
	assert.Panics(t, func() { Invalid.Enumerate() })
	assert.Panics(t, func() { Invalid.Open() })
	assert.Panics(t, func() { Invalid.Mount(jbkv.CreateVolume()) })
}

func TestStorageNode_CloseIsIdempotent(t *testing.T) {
	v := jbkv.CreateVolume()
	s := MountStorage(v).Mount(jbkv.CreateVolume())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
