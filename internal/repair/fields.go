package repair

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldKind selects the contract a field's value must satisfy.
type FieldKind string

const (
	KindMoney    FieldKind = "money"
	KindInteger  FieldKind = "integer"
	KindDate     FieldKind = "date"
	KindTime     FieldKind = "time"
	KindFreeform FieldKind = "freeform"
)

// Coercer maps one scalar value onto its field contract. raw is the decoded
// string content when quoted is true, otherwise the bare token. It returns the
// JSON text to emit, or ok=false when the value must become null. A string
// field returning raw unchanged keeps the original literal.
type Coercer func(raw string, quoted bool) (out string, ok bool)

// FieldSpec binds a field name to its contract.
type FieldSpec struct {
	Name   string
	Kind   FieldKind
	Coerce Coercer
}

// FieldNulled records a value replaced by null because it broke its contract.
type FieldNulled struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ReceiptFieldSpecs returns the contracts for every receipt field, top-level
// and per product.
func ReceiptFieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Name: "imageQuality", Kind: KindFreeform, Coerce: coerceFreeform},
		{Name: "storeName", Kind: KindFreeform, Coerce: coerceFreeform},
		{Name: "storePhone", Kind: KindFreeform, Coerce: coerceFreeform},
		{Name: "storeAddress", Kind: KindFreeform, Coerce: coerceFreeform},
		{Name: "purchaseDate", Kind: KindDate, Coerce: coerceDate},
		{Name: "purchaseTime", Kind: KindTime, Coerce: coerceTime},
		{Name: "totalPaid", Kind: KindMoney, Coerce: coerceMoney},
		{Name: "description", Kind: KindFreeform, Coerce: coerceFreeform},
		{Name: "code", Kind: KindFreeform, Coerce: coerceFreeform},
		{Name: "quantity", Kind: KindInteger, Coerce: coerceInteger},
		{Name: "price", Kind: KindMoney, Coerce: coerceMoney},
	}
}

// Normalizer rewrites the scalar value of every recognised field so it either
// meets its contract or is null. Keys match case-insensitively, as the decoder
// binds them.
type Normalizer struct {
	specs map[string]FieldSpec
}

// NewNormalizer builds a Normalizer over the given field contracts.
func NewNormalizer(specs []FieldSpec) *Normalizer {
	m := make(map[string]FieldSpec, len(specs))
	for _, sp := range specs {
		m[strings.ToLower(sp.Name)] = sp
	}
	return &Normalizer{specs: m}
}

// Every string literal is consumed whole. When one is followed by a colon and a
// scalar it is a key and the scalar is its value.
var fieldPattern = regexp.MustCompile(`(` + stringLiteral + `)(?:(\s*:\s*)(` + stringLiteral + `|[^\s,{}\[\]"]+))?`)

// Normalize applies the field contracts to s and reports the values it nulled,
// in order of appearance.
func (n *Normalizer) Normalize(s string) (string, []FieldNulled) {
	idx := fieldPattern.FindAllStringSubmatchIndex(s, -1)
	if len(idx) == 0 {
		return s, nil
	}
	var (
		b      strings.Builder
		nulled []FieldNulled
		prev   int
	)
	b.Grow(len(s))
	for _, loc := range idx {
		b.WriteString(s[prev:loc[0]])
		prev = loc[1]
		m := submatches(s, loc)
		if loc[4] < 0 {
			b.WriteString(m[0])
			continue
		}
		key := unquote(m[1])
		spec, known := n.specs[strings.ToLower(key)]
		if !known {
			b.WriteString(m[0])
			continue
		}
		value := m[3]
		quoted := strings.HasPrefix(value, `"`)
		if !quoted && value == "null" {
			b.WriteString(m[0])
			continue
		}
		raw := value
		if quoted {
			raw = unquote(value)
		}
		out, ok := spec.Coerce(raw, quoted)
		if !ok {
			out = "null"
			nulled = append(nulled, FieldNulled{Field: key, Value: raw})
		} else if quoted && out == raw && spec.Kind != KindInteger {
			out = value
		}
		b.WriteString(m[1] + m[2] + out)
	}
	b.WriteString(s[prev:])
	return b.String(), nulled
}

var (
	moneyPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	moneyStrip   = regexp.MustCompile(`[^\d.\-]`)
	digitRun     = regexp.MustCompile(`\d+`)
	datePattern  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	timePattern  = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):[0-5][0-9]\s?(AM|PM)$`)
)

// NormalizeMoney reduces a money string to a plain decimal with '.' as the
// separator. When both ',' and '.' appear, whichever comes first is taken as the
// thousands separator.
func NormalizeMoney(v string) (string, bool) {
	s := strings.Join(strings.Fields(v), "")
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = moneyStrip.ReplaceAllString(s, "")
	if !moneyPattern.MatchString(s) {
		return "", false
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return "", false
	}
	return s, true
}

func coerceMoney(raw string, _ bool) (string, bool) {
	v, ok := NormalizeMoney(raw)
	if !ok {
		return "", false
	}
	return quote(v), true
}

func coerceInteger(raw string, _ bool) (string, bool) {
	run := digitRun.FindString(raw)
	if run == "" {
		return "", false
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return "", false
	}
	return strconv.Itoa(n), true
}

func coerceDate(raw string, quoted bool) (string, bool) {
	if !quoted || !datePattern.MatchString(raw) {
		return "", false
	}
	return raw, true
}

func coerceTime(raw string, quoted bool) (string, bool) {
	if !quoted || !timePattern.MatchString(raw) {
		return "", false
	}
	return raw, true
}

// Freeform text keeps any string; a stray bare token is kept as its text.
func coerceFreeform(raw string, quoted bool) (string, bool) {
	if quoted {
		return raw, true
	}
	return quote(raw), true
}
