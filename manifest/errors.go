package manifest

import "errors"

// ErrInvalidManifest reports a manifest that cannot be parsed or decoded.
var ErrInvalidManifest = errors.New("manifest: invalid manifest")
