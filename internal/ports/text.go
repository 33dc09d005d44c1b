package ports

import "golang.org/x/text/cases"

// Fold returns the Unicode case-folded form of s. Every case-insensitive
// comparison in the module (prefix, substring, equality, favorites keys)
// goes through Fold so that all of them agree.
func Fold(s string) string {
	// Casers keep internal state and must not be shared between goroutines.
	return cases.Fold().String(s)
}
