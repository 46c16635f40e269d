package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/joshuapare/jbkv"
	"github.com/joshuapare/jbkv/internal/log"
)

// Magic is the 4-byte ASCII marker every saved stream begins with.
const Magic = "jbkv"

// Version is the current on-disk format version written by Save. Load
// accepts any version up to and including this one.
const Version byte = 1

// Options controls the defensive limits Load applies to untrusted input.
type Options struct {
	// MaxValueSize bounds every length-prefixed read (child names, keys,
	// String/Blob payloads, and child/entry counts) Load performs, before
	// the buffer for that read is allocated. It defaults to
	// jbkv.MaxValueSize, which never rejects anything a Save produced
	// from valid in-memory Values. Tightening it is the main way to bound
	// how much memory a Load call can be coerced into allocating for a
	// single corrupted length prefix.
	MaxValueSize uint32
}

// Option configures Options, in the style of a functional-options
// constructor.
type Option func(*Options)

// WithMaxValueSize overrides the maximum length Load will allocate for in
// response to a single length prefix.
func WithMaxValueSize(n uint32) Option {
	return func(o *Options) { o.MaxValueSize = n }
}

func newOptions(fns []Option) Options {
	opts := Options{MaxValueSize: jbkv.MaxValueSize}
	for _, fn := range fns {
		fn(&opts)
	}
	return opts
}

// Save walks root breadth-first and writes the format described in
// SPEC_FULL.md §4.5 to w. Stream errors surface as I/O failures via the
// wrapped error from w.Write.
func Save(w io.Writer, root jbkv.VolumeNode) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return fmt.Errorf("codec: write magic: %w: %w", ErrIO, err)
	}
	if _, err := w.Write([]byte{Version}); err != nil {
		return fmt.Errorf("codec: write version: %w: %w", ErrIO, err)
	}

	queue := []jbkv.VolumeNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		children := node.Enumerate()
		fw := newFrameWriter(w)
		if err := fw.writeCount(uint64(len(children))); err != nil {
			return err
		}
		for _, child := range children {
			if err := fw.writeLenPrefixedChecksummed(child.GetName()); err != nil {
				return err
			}
			queue = append(queue, child)
		}

		entries := node.Open().Enumerate()
		if err := fw.writeCount(uint64(len(entries))); err != nil {
			return err
		}
		for _, kv := range entries {
			if err := fw.writeLenPrefixedChecksummed(kv.Key); err != nil {
				return err
			}
			if err := encodeValue(fw, kv.Value); err != nil {
				return err
			}
		}
		if err := fw.writeChecksum(); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a stream produced by Save into root, which must be empty.
// Nodes are created via Create in the order names were read, so queue
// order stays aligned with the order Save wrote them in. A magic mismatch
// returns ErrBadMagic, a version this reader can't handle returns
// ErrUnsupportedVersion, a short read returns ErrUnexpectedEOF, and a
// per-node checksum mismatch returns ErrCorrupted.
func Load(r io.Reader, root jbkv.VolumeNode, optFns ...Option) error {
	opts := newOptions(optFns)

	var header [5]byte
	if err := readFull(r, header[:]); err != nil {
		return err
	}
	if string(header[:4]) != Magic {
		return ErrBadMagic
	}
	if header[4] > Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, header[4])
	}

	queue := []jbkv.VolumeNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		fr := newFrameReader(r, opts)
		childCount, err := fr.readBoundedCount()
		if err != nil {
			return err
		}
		children := make([]jbkv.VolumeNode, 0, childCount)
		for i := uint64(0); i < childCount; i++ {
			name, err := fr.readLenPrefixedChecksummed()
			if err != nil {
				return err
			}
			children = append(children, node.Create(name))
		}
		queue = append(queue, children...)

		data := node.Open()
		kvCount, err := fr.readBoundedCount()
		if err != nil {
			return err
		}
		for i := uint64(0); i < kvCount; i++ {
			key, err := fr.readLenPrefixedChecksummed()
			if err != nil {
				return err
			}
			value, err := decodeValue(fr)
			if err != nil {
				return err
			}
			data.Write(key, value)
		}
		if err := fr.finishAndVerify(); err != nil {
			return err
		}
	}
	return nil
}

// SaveFile creates (or truncates) path and Saves root into it.
func SaveFile(path string, root jbkv.VolumeNode) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("codec: create %s: %w", path, err)
	}
	defer f.Close()
	if err := Save(f, root); err != nil {
		return err
	}
	return f.Close()
}

// LoadFile opens path and Loads it into root.
func LoadFile(path string, root jbkv.VolumeNode, optFns ...Option) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("codec: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, root, optFns...)
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrUnexpectedEOF
		}
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// frameWriter writes one node's frame, accumulating the running XOR-8
// checksum over exactly the bytes the format specifies: child-name bytes,
// key bytes, and value payload bytes. Counts, length prefixes, and type
// tags are written raw and excluded from the checksum.
type frameWriter struct {
	w   io.Writer
	sum byte
}

func newFrameWriter(w io.Writer) *frameWriter { return &frameWriter{w: w} }

func (fw *frameWriter) writeCount(n uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	if _, err := fw.w.Write(buf[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (fw *frameWriter) writeTag(marker FormatMarker) error {
	if _, err := fw.w.Write([]byte{byte(marker)}); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (fw *frameWriter) writeRawChecksummed(b []byte) error {
	for _, c := range b {
		fw.sum ^= c
	}
	if _, err := fw.w.Write(b); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (fw *frameWriter) writeLenPrefixedChecksummed(s string) error {
	if err := fw.writeCount(uint64(len(s))); err != nil {
		return err
	}
	return fw.writeRawChecksummed([]byte(s))
}

func (fw *frameWriter) writeChecksum() error {
	_, err := fw.w.Write([]byte{fw.sum})
	fw.sum = 0
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (fw *frameWriter) writeScalar(marker FormatMarker, width int, bits uint64) error {
	if err := fw.writeTag(marker); err != nil {
		return err
	}
	buf := make([]byte, width)
	switch width {
	case 1:
		buf[0] = byte(bits)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(bits))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(bits))
	case 8:
		binary.LittleEndian.PutUint64(buf, bits)
	}
	return fw.writeRawChecksummed(buf)
}

// valueEncoder implements jbkv.ValueVisitor so encodeValue can dispatch a
// Value to its on-disk form through the same single-callback contract
// ReadAs and String use.
type valueEncoder struct {
	fw  *frameWriter
	err error
}

func encodeValue(fw *frameWriter, v jbkv.Value) error {
	enc := &valueEncoder{fw: fw}
	v.Visit(enc)
	return enc.err
}

func (e *valueEncoder) Bool(b bool) {
	var bit uint64
	if b {
		bit = 1
	}
	e.err = e.fw.writeScalar(MarkerBool, 1, bit)
}
func (e *valueEncoder) Char(c int8)     { e.err = e.fw.writeScalar(MarkerChar, 1, uint64(uint8(c))) }
func (e *valueEncoder) UChar(c uint8)   { e.err = e.fw.writeScalar(MarkerUChar, 1, uint64(c)) }
func (e *valueEncoder) UInt16(n uint16) { e.err = e.fw.writeScalar(MarkerUInt16, 2, uint64(n)) }
func (e *valueEncoder) Int16(n int16)   { e.err = e.fw.writeScalar(MarkerInt16, 2, uint64(uint16(n))) }
func (e *valueEncoder) UInt32(n uint32) { e.err = e.fw.writeScalar(MarkerUInt32, 4, uint64(n)) }
func (e *valueEncoder) Int32(n int32)   { e.err = e.fw.writeScalar(MarkerInt32, 4, uint64(uint32(n))) }
func (e *valueEncoder) UInt64(n uint64) { e.err = e.fw.writeScalar(MarkerUInt64, 8, n) }
func (e *valueEncoder) Int64(n int64)   { e.err = e.fw.writeScalar(MarkerInt64, 8, uint64(n)) }
func (e *valueEncoder) Float32(f float32) {
	e.err = e.fw.writeScalar(MarkerFloat, 4, uint64(math.Float32bits(f)))
}
func (e *valueEncoder) Float64(f float64) {
	e.err = e.fw.writeScalar(MarkerDouble, 8, math.Float64bits(f))
}
func (e *valueEncoder) String(s string) {
	if err := e.fw.writeTag(MarkerString); err != nil {
		e.err = err
		return
	}
	e.err = e.fw.writeLenPrefixedChecksummed(s)
}
func (e *valueEncoder) Blob(b []byte) {
	if err := e.fw.writeTag(MarkerBlob); err != nil {
		e.err = err
		return
	}
	if err := e.fw.writeCount(uint64(len(b))); err != nil {
		e.err = err
		return
	}
	e.err = e.fw.writeRawChecksummed(b)
}

// frameReader is frameWriter's mirror image: it reconstructs the running
// checksum while reading, and rejects any length prefix larger than
// opts.MaxValueSize before allocating a buffer for it.
type frameReader struct {
	r    io.Reader
	opts Options
	sum  byte
}

func newFrameReader(r io.Reader, opts Options) *frameReader {
	return &frameReader{r: r, opts: opts}
}

func (fr *frameReader) readCount() (uint64, error) {
	var buf [8]byte
	if err := readFull(fr.r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// readBoundedCount reads a child/entry count and rejects one implying more
// elements than MaxValueSize permits bytes, the same defensive check
// applied to every other length prefix: never trust a count enough to
// size an allocation from it unchecked.
func (fr *frameReader) readBoundedCount() (uint64, error) {
	n, err := fr.readCount()
	if err != nil {
		return 0, err
	}
	if n > uint64(fr.opts.MaxValueSize) {
		return 0, fmt.Errorf("%w: count %d", ErrValueTooLarge, n)
	}
	return n, nil
}

func (fr *frameReader) readTag() (FormatMarker, error) {
	var buf [1]byte
	if err := readFull(fr.r, buf[:]); err != nil {
		return 0, err
	}
	return FormatMarker(buf[0]), nil
}

func (fr *frameReader) readRawChecksummed(n uint64) ([]byte, error) {
	if n > uint64(fr.opts.MaxValueSize) {
		return nil, fmt.Errorf("%w: length %d", ErrValueTooLarge, n)
	}
	buf := make([]byte, n)
	if err := readFull(fr.r, buf); err != nil {
		return nil, err
	}
	for _, c := range buf {
		fr.sum ^= c
	}
	return buf, nil
}

func (fr *frameReader) readScalar(width int) (uint64, error) {
	buf, err := fr.readRawChecksummed(uint64(width))
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf)), nil
	default:
		return binary.LittleEndian.Uint64(buf), nil
	}
}

func (fr *frameReader) readLenPrefixedChecksummed() (string, error) {
	n, err := fr.readCount()
	if err != nil {
		return "", err
	}
	b, err := fr.readRawChecksummed(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// finishAndVerify reads the stored checksum byte and compares it against
// the bytes accumulated since this frameReader was created, resetting the
// running sum afterward.
func (fr *frameReader) finishAndVerify() error {
	var buf [1]byte
	if err := readFull(fr.r, buf[:]); err != nil {
		return err
	}
	computed := fr.sum
	fr.sum = 0
	if computed != buf[0] {
		log.Debug("codec: checksum mismatch", "computed", computed, "stored", buf[0])
		return ErrCorrupted
	}
	return nil
}

func decodeValue(fr *frameReader) (jbkv.Value, error) {
	tag, err := fr.readTag()
	if err != nil {
		return jbkv.Value{}, err
	}

	switch tag {
	case MarkerBool:
		n, err := fr.readScalar(1)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewBool(n != 0), nil
	case MarkerChar:
		n, err := fr.readScalar(1)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewChar(int8(uint8(n))), nil
	case MarkerUChar:
		n, err := fr.readScalar(1)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewUChar(uint8(n)), nil
	case MarkerUInt16:
		n, err := fr.readScalar(2)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewUInt16(uint16(n)), nil
	case MarkerInt16:
		n, err := fr.readScalar(2)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewInt16(int16(uint16(n))), nil
	case MarkerUInt32:
		n, err := fr.readScalar(4)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewUInt32(uint32(n)), nil
	case MarkerInt32:
		n, err := fr.readScalar(4)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewInt32(int32(uint32(n))), nil
	case MarkerUInt64:
		n, err := fr.readScalar(8)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewUInt64(n), nil
	case MarkerInt64:
		n, err := fr.readScalar(8)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewInt64(int64(n)), nil
	case MarkerFloat:
		n, err := fr.readScalar(4)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewFloat32(math.Float32frombits(uint32(n))), nil
	case MarkerDouble:
		n, err := fr.readScalar(8)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewFloat64(math.Float64frombits(n)), nil
	case MarkerString:
		s, err := fr.readLenPrefixedChecksummed()
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewString(s)
	case MarkerBlob:
		n, err := fr.readBoundedCount()
		if err != nil {
			return jbkv.Value{}, err
		}
		b, err := fr.readRawChecksummed(n)
		if err != nil {
			return jbkv.Value{}, err
		}
		return jbkv.NewBlob(b)
	default:
		return jbkv.Value{}, fmt.Errorf("%w: tag %d", ErrUnknownType, byte(tag))
	}
}
