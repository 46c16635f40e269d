package jbkv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeNode_CreateFindIdempotent(t *testing.T) {
	root := CreateVolume()
	c1 := root.Create("child")
	c2 := root.Create("child")
	assert.Same(t, c1, c2, "Create twice returns the same node")

	found := root.Find("child")
	require.True(t, found.IsValid())
	assert.Equal(t, "child", found.GetName())
	assert.Same(t, c1, found)
}

func TestVolumeNode_FindMissingReturnsInvalidSentinel(t *testing.T) {
	root := CreateVolume()
	found := root.Find("nope")
	assert.False(t, found.IsValid())
	assert.Panics(t, func() { found.GetName() })
}

func TestVolumeNode_UnlinkDetachesButSurvivorReferenceWorks(t *testing.T) {
	root := CreateVolume()
	child := root.Create("child")
	child.Open().Write("num", NewInt32(33))

	assert.True(t, root.Unlink("child"))
	assert.False(t, root.Find("child").IsValid())
	assert.False(t, root.Unlink("child"), "second unlink returns false")

	// The caller's reference to child remains fully functional.
	v, ok := child.Open().Read("num")
	require.True(t, ok)
	n, _ := v.TryInt32()
	assert.Equal(t, int32(33), n)
}

func TestVolumeNode_EnumerateSnapshot(t *testing.T) {
	root := CreateVolume()
	root.Create("a")
	root.Create("b")

	children := root.Enumerate()
	assert.Len(t, children, 2)
}

func TestVolumeNode_ConcurrentCreateSameNameResolvesToOneChild(t *testing.T) {
	root := CreateVolume()
	const n = 64
	results := make([]VolumeNode, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = root.Create("same")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestVolumeNode_EndToEndScenario(t *testing.T) {
	v := CreateVolume()
	v.Open().Write("num", NewInt32(42))
	s, err := NewString("Ю")
	require.NoError(t, err)
	v.Open().Write("s", s)

	num, ok := v.Open().Read("num")
	require.True(t, ok)
	n, _ := num.TryInt32()
	assert.Equal(t, int32(42), n)

	str, ok := v.Open().Read("s")
	require.True(t, ok)
	got, _ := str.TryString()
	assert.Equal(t, "Ю", got)

	assert.Len(t, v.Open().Enumerate(), 2)
}
