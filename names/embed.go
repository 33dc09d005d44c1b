// Package names embeds the name catalogue for compile-time inclusion.
// The catalogue is a set of YAML files holding the four partitions
// (boy, girl, dog, cat), the tag vocabulary and the popularity lists.
//
// Usage:
//
//	catalog.Load(names.FS, "v1")
package names

import "embed"

//go:embed v1/*.yaml
var FS embed.FS
