package cli

import "errors"

// ErrRejected is returned when a verification command ran to completion but
// at least one input was not authorized.
var ErrRejected = errors.New("authorization rejected")

var errMissingDigest = errors.New("--digest is required")
