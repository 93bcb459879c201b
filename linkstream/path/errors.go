package path

import "errors"

// ErrUnknownNode indicates a source or target node is not present in
// the stream.
var ErrUnknownNode = errors.New("path: node not present in stream")
