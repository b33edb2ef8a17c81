package repair

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/shopspring/decimal"
)

// Names of the opt-in second-pass stages.
const (
	FallbackDecimalTruncate  = "decimal-truncate"
	FallbackStructuralRepair = "structural-repair"
)

var fallbackStages = map[string]Stage{
	FallbackDecimalTruncate:  {Name: FallbackDecimalTruncate, Apply: truncateDecimals},
	FallbackStructuralRepair: {Name: FallbackStructuralRepair, Apply: repairStructure},
}

// FallbackStage looks up a second-pass stage by name.
func FallbackStage(name string) (Stage, error) {
	st, ok := fallbackStages[name]
	if !ok {
		return Stage{}, fmt.Errorf("unknown fallback stage %q (known: %s)", name, strings.Join(FallbackNames(), ", "))
	}
	return st, nil
}

// FallbackChain resolves names into a chain, keeping their order.
func FallbackChain(names []string) (Chain, error) {
	chain := make(Chain, 0, len(names))
	for _, name := range names {
		st, err := FallbackStage(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		chain = append(chain, st)
	}
	return chain, nil
}

// FallbackNames lists the registered second-pass stages.
func FallbackNames() []string {
	names := make([]string, 0, len(fallbackStages))
	for name := range fallbackStages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var bareDecimalPattern = regexp.MustCompile(`(` + stringLiteral + `)|(-?\d+)\.(\d+)((?:\.\d+)*)([eE][+-]?\d+)?`)

// truncateDecimals cuts bare numbers down to two fractional digits and drops
// repeated decimal groups such as 12.50.00, which no decoder accepts.
func truncateDecimals(s string) string {
	return replaceStructural(bareDecimalPattern, s, func(m []string) string {
		whole, frac, extra, exp := m[2], m[3], m[4], m[5]
		if exp != "" || (extra == "" && len(frac) <= 2) {
			return m[0]
		}
		d, err := decimal.NewFromString(whole + "." + frac)
		if err != nil {
			return m[0]
		}
		return d.Truncate(2).StringFixed(2)
	})
}

// repairStructure hands the text to a general JSON repairer. Input it cannot
// repair is returned unchanged.
func repairStructure(s string) string {
	out, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return s
	}
	return out
}
