package repair

import "strings"

// ExtractCandidate returns the text between the first '{' and the last '}'
// inclusive, dropping any commentary the model put around its answer.
func ExtractCandidate(raw string) (string, error) {
	first := strings.IndexByte(raw, '{')
	last := strings.LastIndexByte(raw, '}')
	if first == -1 || last == -1 || last < first {
		return "", &ExtractionError{Raw: raw}
	}
	return raw[first : last+1], nil
}
