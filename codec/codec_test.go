package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/joshuapare/jbkv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleVolume(t *testing.T) jbkv.VolumeNode {
	t.Helper()
	root := jbkv.CreateVolume()
	root.Open().Write("bool", jbkv.NewBool(true))
	root.Open().Write("char", jbkv.NewChar(-7))
	root.Open().Write("uchar", jbkv.NewUChar(200))
	root.Open().Write("u16", jbkv.NewUInt16(40000))
	root.Open().Write("i16", jbkv.NewInt16(-1000))
	root.Open().Write("u32", jbkv.NewUInt32(4000000000))
	root.Open().Write("i32", jbkv.NewInt32(-70000))
	root.Open().Write("u64", jbkv.NewUInt64(1<<62))
	root.Open().Write("i64", jbkv.NewInt64(-(1 << 40)))
	root.Open().Write("f32", jbkv.NewFloat32(3.5))
	root.Open().Write("f64", jbkv.NewFloat64(2.71828))
	s, err := jbkv.NewString("héllo Ю")
	require.NoError(t, err)
	root.Open().Write("str", s)
	b, err := jbkv.NewBlob([]byte{0x00, 0xff, 0x10, 0xab})
	require.NoError(t, err)
	root.Open().Write("blob", b)

	c1 := root.Create("c1")
	c1.Open().Write("num", jbkv.NewInt32(1))
	c11 := c1.Create("c11")
	c11.Open().Write("num", jbkv.NewInt32(11))
	c2 := root.Create("c2")
	c22 := c2.Create("c22")
	c22.Open().Write("num", jbkv.NewInt32(22))
	return root
}

func TestSave_HeaderBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, jbkv.CreateVolume()))
	header := buf.Bytes()[:5]
	assert.Equal(t, []byte(Magic), header[:4])
	assert.Equal(t, byte(0x01), header[4])
}

func TestSaveLoad_RoundTripPreservesTopologyAndData(t *testing.T) {
	original := buildSampleVolume(t)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, original))

	loaded := jbkv.CreateVolume()
	require.NoError(t, Load(&buf, loaded))

	for _, key := range []string{"bool", "char", "uchar", "u16", "i16", "u32", "i32", "u64", "i64", "f32", "f64", "str", "blob"} {
		want, ok := original.Open().Read(key)
		require.True(t, ok)
		got, ok := loaded.Open().Read(key)
		require.True(t, ok, "missing key %q after round trip", key)
		assert.True(t, want.Equal(got), "key %q: want %v got %v", key, want, got)
	}

	assert.True(t, loaded.Find("c1").IsValid())
	assert.True(t, loaded.Find("c1").Find("c11").IsValid())
	assert.True(t, loaded.Find("c2").IsValid())
	assert.True(t, loaded.Find("c2").Find("c22").IsValid())

	n, ok := loaded.Find("c1").Find("c11").Open().Read("num")
	require.True(t, ok)
	v, _ := n.TryInt32()
	assert.Equal(t, int32(11), v)
}

func TestSaveLoad_EmptyTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, jbkv.CreateVolume()))

	loaded := jbkv.CreateVolume()
	require.NoError(t, Load(&buf, loaded))
	assert.Empty(t, loaded.Enumerate())
	assert.Empty(t, loaded.Open().Enumerate())
}

func TestLoad_BadMagic(t *testing.T) {
	buf := bytes.NewBufferString("nope!")
	err := Load(buf, jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, jbkv.CreateVolume()))
	raw := buf.Bytes()
	raw[4] = Version + 1

	err := Load(bytes.NewReader(raw), jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoad_TruncatedStreamFails(t *testing.T) {
	original := buildSampleVolume(t)
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, original))

	raw := buf.Bytes()
	truncated := raw[:len(raw)-3]

	err := Load(bytes.NewReader(truncated), jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestLoad_ChecksumMismatchDetected(t *testing.T) {
	original := jbkv.CreateVolume()
	original.Open().Write("k", jbkv.NewInt32(42))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, original))
	raw := buf.Bytes()

	// Flip the last byte, which is this single-node stream's checksum.
	raw[len(raw)-1] ^= 0xFF

	err := Load(bytes.NewReader(raw), jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestLoad_ChecksumMismatchDetectsKeyByteCorruption(t *testing.T) {
	original := jbkv.CreateVolume()
	original.Open().Write("k", jbkv.NewInt32(42))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, original))
	raw := buf.Bytes()

	// The key byte "k" sits after header(5) + childCount(8) + kvCount(8)
	// + the key's own 8-byte length prefix.
	keyByteOffset := 5 + 8 + 8 + 8
	raw[keyByteOffset] ^= 0xFF

	err := Load(bytes.NewReader(raw), jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestLoad_ChecksumMismatchDetectsChildNameByteCorruption(t *testing.T) {
	original := jbkv.CreateVolume()
	original.Create("c1")

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, original))
	raw := buf.Bytes()

	// The child name "c1" sits after header(5) + childCount(8) + the
	// child's own 8-byte name-length prefix.
	nameByteOffset := 5 + 8 + 8
	raw[nameByteOffset] ^= 0xFF

	err := Load(bytes.NewReader(raw), jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestLoad_ChecksumMismatchDetectsValuePayloadByteCorruption(t *testing.T) {
	original := jbkv.CreateVolume()
	original.Open().Write("k", jbkv.NewInt32(42))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, original))
	raw := buf.Bytes()

	// The Int32 payload sits after header(5) + childCount(8) + kvCount(8)
	// + the key's 8-byte length prefix + the key byte + the value's
	// 1-byte type tag.
	payloadByteOffset := 5 + 8 + 8 + 8 + 1 + 1
	raw[payloadByteOffset] ^= 0xFF

	err := Load(bytes.NewReader(raw), jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestLoad_UnknownTypeMarker(t *testing.T) {
	original := jbkv.CreateVolume()
	original.Open().Write("k", jbkv.NewInt32(42))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, original))
	raw := buf.Bytes()

	// The tag byte follows header(5) + childCount(8) + kvCount(8) +
	// key-len(8) + key bytes("k" = 1 byte).
	tagOffset := 5 + 8 + 8 + 8 + 1
	raw[tagOffset] = 200 // no FormatMarker is 200

	err := Load(bytes.NewReader(raw), jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestLoad_RejectsOversizedLengthPrefixBeforeAllocating(t *testing.T) {
	original := jbkv.CreateVolume()
	s, err := jbkv.NewString("hello")
	require.NoError(t, err)
	original.Open().Write("s", s)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, original))

	loaded := jbkv.CreateVolume()
	err = Load(bytes.NewReader(buf.Bytes()), loaded, WithMaxValueSize(2))
	assert.ErrorIs(t, err, ErrValueTooLarge)
}

func TestSaveFileLoadFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/volume.jbkv"

	original := buildSampleVolume(t)
	require.NoError(t, SaveFile(path, original))

	loaded := jbkv.CreateVolume()
	require.NoError(t, LoadFile(path, loaded))

	assert.True(t, loaded.Find("c1").Find("c11").IsValid())
}

type failingWriter struct{ failAfter int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.failAfter <= 0 {
		return 0, errors.New("disk full")
	}
	f.failAfter -= len(p)
	return len(p), nil
}

func TestSave_WriterFailureWrapsErrIO(t *testing.T) {
	err := Save(&failingWriter{failAfter: 0}, jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrIO)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk offline")
}

func TestLoad_ReaderFailureWrapsErrIO(t *testing.T) {
	err := Load(failingReader{}, jbkv.CreateVolume())
	assert.ErrorIs(t, err, ErrIO)
}
