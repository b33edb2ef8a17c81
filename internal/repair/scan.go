package repair

import (
	"encoding/json"
	"regexp"
	"strings"
)

// stringLiteral matches one complete JSON string literal. Every structural
// pattern starts with it as its first alternative so quoted text is consumed
// whole and copied through untouched.
const stringLiteral = `"(?:[^"\\]|\\.)*"`

// replaceStructural rewrites the matches of re that fall outside string
// literals. re must have the string literal as capture group 1; fn receives the
// submatches of every other match and returns its replacement.
func replaceStructural(re *regexp.Regexp, s string, fn func(m []string) string) string {
	idx := re.FindAllStringSubmatchIndex(s, -1)
	if len(idx) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	prev := 0
	for _, loc := range idx {
		b.WriteString(s[prev:loc[0]])
		if loc[2] >= 0 {
			b.WriteString(s[loc[0]:loc[1]])
		} else {
			b.WriteString(fn(submatches(s, loc)))
		}
		prev = loc[1]
	}
	b.WriteString(s[prev:])
	return b.String()
}

func submatches(s string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return m
}

var jsonStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\t", `\t`, "\r", `\r`, "\n", `\n`)

// quote renders s as a JSON string literal.
func quote(s string) string {
	return `"` + jsonStringEscaper.Replace(s) + `"`
}

// unquote returns the content of a JSON string literal. Literals with invalid
// escapes fall back to their raw inner text.
func unquote(lit string) string {
	var s string
	if err := json.Unmarshal([]byte(lit), &s); err == nil {
		return s
	}
	return strings.TrimSuffix(strings.TrimPrefix(lit, `"`), `"`)
}
