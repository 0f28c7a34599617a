package linkgraph

import "golang.org/x/xerrors"

var (
	// ErrNotFound is returned when the link data cannot be located.
	ErrNotFound = xerrors.New("link data not found")

	// ErrMalformedRecord is returned when a link record contains a token
	// that is not a valid page ID.
	ErrMalformedRecord = xerrors.New("malformed link record")
)
