package coherence

import "strings"

// atsReplacer substitutes typographic characters that confuse applicant
// tracking systems with plain ASCII. A pure lookup-table transform: only the
// listed code points are touched, and every replacement is ASCII outside the
// table, so applying it twice equals applying it once.
var atsReplacer = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"—", "-", // em dash
	"–", "-", // en dash
	"…", "...", // ellipsis
	" ", " ", // non-breaking space
	"•", "", // bullet glyph
	"™", "", // trademark
	"®", "", // registered
	"©", "", // copyright
)

// MakeATSSafe replaces typographic characters with ATS-safe equivalents.
func MakeATSSafe(text string) string {
	return atsReplacer.Replace(text)
}
