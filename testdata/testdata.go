// Package testdata embeds the casebooks and grammars shared by tests.
package testdata

import "embed"

//go:embed *.cases.md *.peggle.yaml
var Casebooks embed.FS

// GetFS returns the embedded filesystem
func GetFS() embed.FS {
	return Casebooks
}
