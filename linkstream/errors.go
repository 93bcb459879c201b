// Package linkstream implements the Link Stream façade (C6): the stream
// dictionary of node/edge/reverse-edge presence (C5), the interval
// container backing each dictionary entry (C4), and the Link/DiLink node
// pair types with the hashability guard the spec calls for (C11).
package linkstream

import "errors"

// Sentinel errors for stream operations.
var (
	// ErrUnknownNode indicates a query referenced a node that is not in
	// the stream.
	ErrUnknownNode = errors.New("linkstream: unknown node")

	// ErrWrongVariant indicates a directed link was added to an
	// undirected stream, or vice versa.
	ErrWrongVariant = errors.New("linkstream: link variant does not match stream")

	// ErrNonHashableNode indicates a node identifier is not comparable
	// and therefore cannot be used as a map key or compared with ==.
	ErrNonHashableNode = errors.New("linkstream: node identifier is not comparable")

	// ErrNilNode indicates a link endpoint was nil.
	ErrNilNode = errors.New("linkstream: link endpoint must not be nil")

	// ErrBadArgument indicates a malformed argument to a lookup, e.g. a
	// tuple of the wrong arity.
	ErrBadArgument = errors.New("linkstream: bad argument")
)
