// Package embedded carries data files compiled into the binary.
package embedded

import (
	_ "embed"
)

// Grantees is the curated grantee code table in YAML. The first brand listed
// for a code is that code's canonical brand name.
//
//go:embed grantees.yaml
var Grantees []byte
