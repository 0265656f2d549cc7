// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import "strings"

// escaper escapes characters that LaTeX would otherwise interpret.
// Braces and backslashes are left alone; database text does not carry them.
var escaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
)

// Escape makes plain database text safe to place in a document.
func Escape(s string) string {
	return escaper.Replace(s)
}
