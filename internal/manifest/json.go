package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// jsonDocument mirrors the top level of a JSON manifest. Examples stays raw
// so its keys can be walked in declaration order.
type jsonDocument struct {
	Global   *Global         `json:"global"`
	Examples json.RawMessage `json:"examples"`
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

// parseJSON decodes a JSON manifest with JSON semantics: every JSON escape
// is accepted and a repeated key keeps its last value.
func parseJSON(data []byte) (*Manifest, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid manifest syntax: %w", err)
	}

	if err := checkGlobal(doc.Global); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(doc.Examples)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errMissingExamples
	}

	examples, err := parseJSONExamples(raw)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Global:   *doc.Global,
		Examples: examples,
	}, nil
}

func parseJSONExamples(raw []byte) ([]Example, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid manifest syntax: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("examples must be a mapping of name to example")
	}

	var examples []Example
	position := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid manifest syntax: %w", err)
		}
		key := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("example %q: %w", key, err)
		}

		var r rawExample
		if err := json.Unmarshal(value, &r); err != nil {
			return nil, fmt.Errorf("example %q: %w", key, err)
		}
		example, err := r.toExample(key)
		if err != nil {
			return nil, err
		}

		// A repeated key replaces the earlier value in place
		if i, ok := position[key]; ok {
			examples[i] = example
			continue
		}
		position[key] = len(examples)
		examples = append(examples, example)
	}

	if examples == nil {
		examples = []Example{}
	}
	return examples, nil
}
