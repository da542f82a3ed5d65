package searchtree

import "errors"

var (
	// ErrEmptyTree is returned by operations that need a root when the tree has none.
	ErrEmptyTree = errors.New("empty tree")
	// ErrMalformedDump is returned when a serialized tree can not be trusted.
	ErrMalformedDump = errors.New("malformed tree dump")
)
