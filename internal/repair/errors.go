package repair

import (
	"errors"
	"fmt"
)

// ExtractionError means the model reply contained no brace-delimited region.
type ExtractionError struct {
	Raw string
}

func (e *ExtractionError) Error() string {
	return "no JSON object detected in model reply"
}

// DecodeError means the cleaned text still failed to decode into a record.
type DecodeError struct {
	Raw     string
	Cleaned string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding cleaned model reply: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Diagnostic is the caller-facing failure body. It carries both texts so the
// repair chain can be tuned offline against real replies.
type Diagnostic struct {
	Error             string `json:"error"`
	Message           string `json:"message,omitempty"`
	RawText           string `json:"rawText"`
	CleanedJSONString string `json:"cleanedJsonString,omitempty"`
}

// NewDiagnostic converts a pipeline error into a Diagnostic. It returns nil for
// errors the pipeline does not produce.
func NewDiagnostic(err error) *Diagnostic {
	var extErr *ExtractionError
	if errors.As(err, &extErr) {
		return &Diagnostic{
			Error:   "no JSON detected in model reply",
			RawText: extErr.Raw,
		}
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return &Diagnostic{
			Error:             "model JSON could not be parsed after cleanup",
			Message:           decErr.Err.Error(),
			RawText:           decErr.Raw,
			CleanedJSONString: decErr.Cleaned,
		}
	}
	return nil
}
