package storage

import "errors"

var (
	// ErrInvalidArgument indicates a nil volume passed to Mount, or an
	// empty list passed to MountStorageAll/MountAll.
	ErrInvalidArgument = errors.New("storage: invalid argument")

	// ErrInvalidNode indicates an operation other than IsValid was called
	// on the invalid-node sentinel.
	ErrInvalidNode = errors.New("storage: invalid node")
)
