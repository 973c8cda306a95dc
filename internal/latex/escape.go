package latex

import (
	"encoding/json"
	"strings"
)

// escaper maps LaTeX special characters to their escaped forms. A
// strings.Replacer scans the input once and never rescans replacement
// text, so the backslashes it emits are not themselves re-escaped.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\^{}`,
)

// Escape makes user-authored text safe for interpolation into a LaTeX
// document or a prompt that embeds one. Empty input yields "".
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return escaper.Replace(text)
}

// FormatListField parses a free-form list field into escaped items. The
// value is first tried as a JSON array of strings; when that fails it is
// split on commas. Empty input yields an empty slice, never [""].
func FormatListField(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}
	}

	var items []string
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		items = items[:0]
		for _, part := range strings.Split(trimmed, ",") {
			if p := strings.TrimSpace(part); p != "" {
				items = append(items, p)
			}
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, Escape(item))
	}
	return out
}
