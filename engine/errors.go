package engine

import "errors"

// ErrMissingCode indicates an execution request without code. It is a
// protocol-level failure: raised to the transport layer, never shaped as
// an error envelope.
var ErrMissingCode = errors.New("missing code parameter")
