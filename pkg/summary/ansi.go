package summary

import (
	"regexp"
	"strings"
)

const escape = "\u001b"

var ansiSGRRegex = regexp.MustCompile(`\x1b\[\d+m`)

// StripANSICodes replaces every terminal SGR sequence (ESC [ <digits> m) with replacement,
// which is usually empty. Removal is repeated until no sequence remains, so sequences that
// only appear once an inner one is removed are stripped too.
func StripANSICodes(text string, replacement ...string) string {
	repl := ""
	if len(replacement) > 0 {
		repl = replacement[0]
	}

	out := ansiSGRRegex.ReplaceAllLiteralString(text, repl)
	// each pass removes at least one ESC, so this terminates when repl has none
	if strings.Contains(repl, escape) {
		return out
	}
	for ansiSGRRegex.MatchString(out) {
		out = ansiSGRRegex.ReplaceAllLiteralString(out, repl)
	}
	return out
}
