package depot

import (
	_ "embed"
)

// Version is the release of the library and the depot binary.
//
//go:embed VERSION
var Version string
