package codec

import "errors"

var (
	// ErrIO wraps a read/write failure reported by the caller-supplied
	// stream itself (as opposed to a format problem this package detects).
	ErrIO = errors.New("codec: i/o failure")

	// ErrBadMagic indicates the stream does not begin with "jbkv".
	ErrBadMagic = errors.New("codec: bad magic")

	// ErrUnsupportedVersion indicates a version byte this reader cannot
	// parse.
	ErrUnsupportedVersion = errors.New("codec: unsupported version")

	// ErrUnknownType indicates a FormatMarker byte with no known meaning.
	ErrUnknownType = errors.New("codec: unknown value type marker")

	// ErrCorrupted indicates a per-node checksum mismatch.
	ErrCorrupted = errors.New("codec: data corrupted")

	// ErrUnexpectedEOF indicates the stream ended mid-frame.
	ErrUnexpectedEOF = errors.New("codec: unexpected end of stream")

	// ErrValueTooLarge indicates a length prefix read during Load exceeds
	// the configured MaxValueSize, rejected before the payload is
	// allocated.
	ErrValueTooLarge = errors.New("codec: value exceeds configured maximum size")
)
