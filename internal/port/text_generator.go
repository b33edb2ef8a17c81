package port

import "context"

// Completion is the text a language model returned for one prompt.
type Completion struct {
	Text     string
	Model    string
	Provider string
}

// TextGenerator abstracts a text-completion language model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*Completion, error)
}
