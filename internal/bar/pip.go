// FILE: internal/bar/pip.go
// Package bar – Pip-value lookup table (spec.md §6 item 3).
//
// JPY-quoted pairs use a pip of 0.01; every other supported major uses
// 0.0001. The table is intentionally small: the core never fetches or
// infers this from price magnitude, it is a fixed lookup the way the
// specification requires.
package bar

import "strings"

const (
	majorPip = 0.0001
	jpyPip   = 0.01
)

// PipValue returns the conventional pip unit for symbol. Unknown
// symbols fall back to the major-pair convention unless they quote
// JPY, in which case the JPY convention applies.
func PipValue(symbol string) float64 {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(s, "JPY") {
		return jpyPip
	}
	return majorPip
}
