package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed output.schema.json
var outputSchemaJSON string

// OutputSchema - скомпилированная схема ответа разума.
var OutputSchema = jsonschema.MustCompileString("output.schema.json", outputSchemaJSON)

// DecodeOutput проверяет сырой ответ разума схемой и разбирает его.
// Ошибка означает ответ неправильной формы (вина агента, а не транспорта).
func DecodeOutput(raw []byte) (Output, error) {
	var out Output

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return out, fmt.Errorf("output is not json: %w", err)
	}
	if err := OutputSchema.Validate(doc); err != nil {
		return out, fmt.Errorf("output schema: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("output decode: %w", err)
	}
	return out, nil
}
