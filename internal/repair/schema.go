package repair

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed receipt.schema.json
var receiptSchemaJSON string

var receiptSchema = jsonschema.MustCompileString("receipt.schema.json", receiptSchemaJSON)

// checkShape validates cleaned text against the receipt schema.
func checkShape(cleaned string) error {
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if err := receiptSchema.Validate(v); err != nil {
		return fmt.Errorf("receipt shape: %w", err)
	}
	return nil
}
