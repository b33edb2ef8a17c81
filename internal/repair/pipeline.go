package repair

import (
	"encoding/json"

	"go.uber.org/zap"

	"ticketscan/internal/domain"
)

// State is how far a reply got through the pipeline.
type State string

const (
	StateReceived   State = "received"
	StateExtracted  State = "extracted"
	StateRepaired   State = "repaired"
	StateNormalized State = "normalized"
	StateParsed     State = "parsed"
	StateFailed     State = "failed"
)

// Result is the outcome of one pipeline run. Exactly one of Record and Err is
// set.
type Result struct {
	State        State
	CleanedText  string
	Record       *domain.ReceiptRecord
	Nulled       []FieldNulled
	FallbackUsed bool
	Err          error
}

// Diagnostic returns the caller-facing failure body, or nil on success.
func (r *Result) Diagnostic() *Diagnostic {
	if r.Err == nil {
		return nil
	}
	return NewDiagnostic(r.Err)
}

// Pipeline turns a raw model reply into a ReceiptRecord. It holds no mutable
// state and is safe for concurrent use.
type Pipeline struct {
	chain       Chain
	normalizer  *Normalizer
	fallbacks   Chain
	schemaCheck bool
	log         *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFallbacks enables a second pass over the cleaned text, run once and only
// when the first decode fails.
func WithFallbacks(stages Chain) Option {
	return func(p *Pipeline) {
		p.fallbacks = stages
	}
}

// WithSchemaCheck validates every decoded reply against the receipt schema.
func WithSchemaCheck(enabled bool) Option {
	return func(p *Pipeline) {
		p.schemaCheck = enabled
	}
}

// WithLogger sets the logger used for nulled fields and fallback passes.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// NewPipeline creates a pipeline running the default repair chain and the
// receipt field contracts.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		chain:      DefaultChain(),
		normalizer: NewNormalizer(ReceiptFieldSpecs()),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Chain returns the repair stages the pipeline runs.
func (p *Pipeline) Chain() Chain {
	return append(Chain(nil), p.chain...)
}

// Clean runs extraction, repair and normalization without decoding.
func (p *Pipeline) Clean(raw string) (string, []FieldNulled, error) {
	candidate, err := ExtractCandidate(raw)
	if err != nil {
		return "", nil, err
	}
	cleaned, nulled := p.normalizer.Normalize(p.chain.Apply(candidate))
	return cleaned, nulled, nil
}

// Run processes one raw reply. It never panics on malformed input; every
// failure is reported through Result.Err.
func (p *Pipeline) Run(raw string) *Result {
	res := &Result{State: StateReceived}

	candidate, err := ExtractCandidate(raw)
	if err != nil {
		res.State = StateFailed
		res.Err = err
		return res
	}
	res.State = StateExtracted

	repaired := p.chain.Apply(candidate)
	res.State = StateRepaired

	cleaned, nulled := p.normalizer.Normalize(repaired)
	res.State = StateNormalized

	rec, err := p.decode(cleaned)
	if err != nil && len(p.fallbacks) > 0 {
		p.log.Debug("repair: first decode failed, running fallback stages",
			zap.Strings("stages", p.fallbacks.Names()),
			zap.Error(err),
		)
		var more []FieldNulled
		cleaned, more = p.normalizer.Normalize(p.fallbacks.Apply(cleaned))
		nulled = append(nulled, more...)
		res.FallbackUsed = true
		rec, err = p.decode(cleaned)
	}

	res.CleanedText = cleaned
	res.Nulled = nulled
	for _, n := range nulled {
		p.log.Debug("repair: field nulled", zap.String("field", n.Field), zap.String("value", n.Value))
	}

	if err != nil {
		res.State = StateFailed
		res.Err = &DecodeError{Raw: raw, Cleaned: cleaned, Err: err}
		return res
	}
	res.State = StateParsed
	res.Record = rec
	return res
}

func (p *Pipeline) decode(cleaned string) (*domain.ReceiptRecord, error) {
	var rec domain.ReceiptRecord
	if err := json.Unmarshal([]byte(cleaned), &rec); err != nil {
		return nil, err
	}
	if p.schemaCheck {
		if err := checkShape(cleaned); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}
