package latex

import (
	"encoding/json"
	"strings"
)

// Clean reverses the transport escaping a LaTeX payload picks up when it
// round-trips through a JSON string value: doubled backslashes and literal
// two-character "\n" sequences instead of real newlines.
//
// A document that already contains real newlines is treated as clean and
// returned untouched. Every LaTeX document ends up with real newlines after
// one cleaning pass, so a second pass is a no-op and intentional "\\" line
// breaks in clean source are never collapsed.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.ContainsRune(raw, '\n') {
		return raw
	}

	// Prefer a proper JSON string decode; it handles \n, \t, \\ and
	// unicode escapes in one shot.
	var decoded string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &decoded); err == nil {
		return decoded
	}

	// The payload contains escapes JSON does not accept (\%, \# and
	// friends). Fall back to the bounded replacements: collapse
	// over-escaped backslash runs, then materialize newlines and tabs.
	s := strings.ReplaceAll(raw, `\\\`, `\\`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	return s
}

const inputencDirective = `\usepackage[utf8]{inputenc}`

// EnsureInputenc injects the utf8 inputenc package right after the
// \documentclass line when the preamble lacks one. Documents without a
// \documentclass are returned unchanged; pdflatex will reject them with
// its own diagnostic.
func EnsureInputenc(doc string) string {
	if strings.Contains(doc, "{inputenc}") {
		return doc
	}
	idx := strings.Index(doc, `\documentclass`)
	if idx < 0 {
		return doc
	}
	lineEnd := strings.IndexRune(doc[idx:], '\n')
	if lineEnd < 0 {
		return doc + "\n" + inputencDirective + "\n"
	}
	insertAt := idx + lineEnd + 1
	return doc[:insertAt] + inputencDirective + "\n" + doc[insertAt:]
}
