package jbkv

import "errors"

var (
	// ErrInvalidArgument indicates bytes passed to NewString that are not
	// well-formed UTF-8. Oversized payloads report ErrValueTooLarge, and
	// mount errors report storage.ErrInvalidArgument.
	ErrInvalidArgument = errors.New("jbkv: invalid argument")

	// ErrInvalidNode indicates an operation other than IsValid was called
	// on the invalid-node sentinel.
	ErrInvalidNode = errors.New("jbkv: invalid node")

	// ErrValueTooLarge indicates a String or Blob payload exceeds the
	// configured size limit.
	ErrValueTooLarge = errors.New("jbkv: value too large")
)
