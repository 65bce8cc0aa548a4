// Procedural system and sector names built from a fixed syllable table.
package galaxy

import "strings"

var nameSyllables = []string{
	"tar", "vex", "ori", "kel", "dra", "sol", "nym", "arc",
	"bel", "cru", "zan", "pho", "rix", "una", "myr", "eth",
	"gal", "ion", "ska", "von", "lyr", "dos", "hel", "qua",
}

// makeName draws 1–2 syllables from the table and capitalizes the result.
// Draws come from the deterministic stream, so names are part of the seed's
// identity.
func makeName(r *Rand) string {
	n := r.IntRange(1, 2)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(nameSyllables[r.IntRange(0, len(nameSyllables)-1)])
	}
	s := b.String()
	return strings.ToUpper(s[:1]) + s[1:]
}
