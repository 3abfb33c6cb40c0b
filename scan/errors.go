package scan

import "errors"

// ErrUnrecognizedMetadata reports a declaration whose signature is unknown or does not match
// its payload. Such records are skipped.
var ErrUnrecognizedMetadata = errors.New("scan: unrecognized metadata")
