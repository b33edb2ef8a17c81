package repair

import (
	"fmt"
	"regexp"
	"strings"
)

// Stage is one named text-to-text repair. Every stage is total: it never fails
// and returns its input unchanged when nothing matches.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Chain runs stages in order, each consuming the previous stage's output.
type Chain []Stage

// Apply runs every stage of the chain over s.
func (c Chain) Apply(s string) string {
	for _, st := range c {
		s = st.Apply(s)
	}
	return s
}

// StageTrace is the text after one stage ran.
type StageTrace struct {
	Stage   string
	Output  string
	Changed bool
}

// Trace runs the chain and records the output of every stage.
func (c Chain) Trace(s string) []StageTrace {
	out := make([]StageTrace, 0, len(c))
	for _, st := range c {
		next := st.Apply(s)
		out = append(out, StageTrace{Stage: st.Name, Output: next, Changed: next != s})
		s = next
	}
	return out
}

// Names lists the stage names in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, st := range c {
		names[i] = st.Name
	}
	return names
}

// Stage names of the default chain.
const (
	StageNullTime          = "null-time"
	StageNullTrailing      = "null-trailing"
	StageDecimalApostrophe = "decimal-apostrophe"
	StageNonASCII          = "non-ascii"
	StageTrailingComma     = "trailing-comma"
	StageMissingSeparator  = "missing-separator"
	StageBareValues        = "bare-values"
	StageBareKeys          = "bare-keys"
)

// DefaultChain returns the repair stages in the order they must run. Each call
// returns a fresh slice.
func DefaultChain() Chain {
	return Chain{
		{Name: StageNullTime, Apply: repairNullTime},
		{Name: StageNullTrailing, Apply: repairNullTrailing},
		{Name: StageDecimalApostrophe, Apply: repairDecimalApostrophe},
		{Name: StageNonASCII, Apply: stripNonASCII},
		{Name: StageTrailingComma, Apply: removeTrailingCommas},
		{Name: StageMissingSeparator, Apply: insertObjectSeparators},
		{Name: StageBareValues, Apply: quoteBareValues},
		{Name: StageBareKeys, Apply: quoteBareKeys},
	}
}

// A null immediately followed by digits is a time the model failed to quote,
// e.g. `: null10:30 PM`.
var nullTimePattern = regexp.MustCompile(`(?i)(` + stringLiteral + `)|:\s*null(\d{1,2}):?(\d{2})?"?\s*(AM|PM)?`)

func repairNullTime(s string) string {
	return replaceStructural(nullTimePattern, s, func(m []string) string {
		hour, minute, suffix := m[2], m[3], m[4]
		if minute == "" || suffix == "" {
			return ": null"
		}
		return fmt.Sprintf(`: "%s:%s %s"`, hour, minute, strings.ToUpper(suffix))
	})
}

var nullTrailingPattern = regexp.MustCompile(`(` + stringLiteral + `)|:(\s*)null([^,}\]\n"]*)`)

func repairNullTrailing(s string) string {
	return replaceStructural(nullTrailingPattern, s, func(m []string) string {
		if strings.TrimSpace(m[3]) == "" {
			return m[0]
		}
		return ":" + m[2] + "null"
	})
}

// repairDecimalApostrophe turns every apostrophe sitting between two digits
// into a decimal point. Neighbours are read from the input so runs like 1'2'3
// are fully converted in one pass.
func repairDecimalApostrophe(s string) string {
	if !strings.Contains(s, "'") {
		return s
	}
	b := []byte(s)
	for i := 1; i < len(s)-1; i++ {
		if s[i] == '\'' && isDigit(s[i-1]) && isDigit(s[i+1]) {
			b[i] = '.'
		}
	}
	return string(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// stripNonASCII drops every byte outside printable 7-bit ASCII. Tab, newline
// and carriage return survive as JSON whitespace.
func stripNonASCII(s string) string {
	keep := func(c byte) bool {
		return c == '\t' || c == '\n' || c == '\r' || (c >= 0x20 && c < 0x7f)
	}
	clean := true
	for i := 0; i < len(s); i++ {
		if !keep(s[i]) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if keep(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

var trailingCommaPattern = regexp.MustCompile(`(` + stringLiteral + `)|,\s*(?:,\s*)*([}\]])`)

func removeTrailingCommas(s string) string {
	return replaceStructural(trailingCommaPattern, s, func(m []string) string {
		return m[2]
	})
}

var missingSeparatorPattern = regexp.MustCompile(`(` + stringLiteral + `)|\}(\s*)\{`)

func insertObjectSeparators(s string) string {
	return replaceStructural(missingSeparatorPattern, s, func(m []string) string {
		return "}," + m[2] + "{"
	})
}

// A bare value starts with a letter right after a colon and runs to the next
// delimiter or end of line.
var bareValuePattern = regexp.MustCompile(`(` + stringLiteral + `)|:(\s*)([A-Za-z][^",{}\[\]\n]*)`)

func quoteBareValues(s string) string {
	return replaceStructural(bareValuePattern, s, func(m []string) string {
		value := strings.TrimRight(m[3], " \t\r")
		switch value {
		case "true", "false", "null":
			return m[0]
		}
		return ":" + m[2] + quote(value) + m[3][len(value):]
	})
}

var bareKeyPattern = regexp.MustCompile(`(` + stringLiteral + `)|([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)

func quoteBareKeys(s string) string {
	return replaceStructural(bareKeyPattern, s, func(m []string) string {
		return m[2] + `"` + m[3] + `"` + m[4]
	})
}
