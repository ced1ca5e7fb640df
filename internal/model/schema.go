package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ShowDocument is the subset of `terraform show -json` output this tool
// consumes. Everything else in the document (planned values, resource
// changes, provider configs) is ignored.
type ShowDocument struct {
	Configuration Configuration `json:"configuration"`
}

// Configuration holds the static module configuration of the plan.
type Configuration struct {
	RootModule Module `json:"root_module"`
}

// Module is one module body. Calls preserves the document order of the
// "module_calls" object, which the default map decoding would lose.
// A module with no calls is a leaf (Calls is nil).
type Module struct {
	Calls []ModuleCall
}

// ModuleCall is a single named `module` block within its parent.
//
// Count and ForEach are only set when the upstream plan resolved the
// corresponding expression to a constant. A nil ForEach means no
// for_each at all; an empty non-nil slice means for_each resolved to an
// empty key set. The two are rendered differently.
type ModuleCall struct {
	Name    string
	Source  string
	Module  Module
	Count   *int
	ForEach []string
}

// SchemaError reports a malformed or structurally incomplete plan
// document. It is fatal: the input is a one-shot snapshot, retrying
// cannot change it.
type SchemaError struct {
	Call string // offending module call, empty at document level
	Err  error
}

func (e *SchemaError) Error() string {
	if e.Call != "" {
		return fmt.Sprintf("invalid plan document: module call %q: %v", e.Call, e.Err)
	}
	return fmt.Sprintf("invalid plan document: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// DecodeShow parses a `terraform show -json` payload into a ShowDocument.
func DecodeShow(data []byte) (*ShowDocument, error) {
	var doc ShowDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			return nil, schemaErr
		}
		return nil, &SchemaError{Err: err}
	}
	return &doc, nil
}

// moduleCallJSON is the wire shape of a module call. Only "source" is
// required; the expression wrappers appear only when terraform could
// fold the expression to a constant.
type moduleCallJSON struct {
	Source            *string            `json:"source"`
	Module            Module             `json:"module"`
	CountExpression   *countExpression   `json:"count_expression"`
	ForEachExpression *forEachExpression `json:"for_each_expression"`
}

type countExpression struct {
	ConstantValue *int `json:"constant_value"`
}

type forEachExpression struct {
	ConstantValue json.RawMessage `json:"constant_value"`
}

// UnmarshalJSON decodes a module body, walking the "module_calls" object
// token by token so that call order matches the document.
func (m *Module) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return &SchemaError{Err: err}
	}
	if tok == nil {
		// "module": null — treat as a leaf.
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return &SchemaError{Err: fmt.Errorf("module must be a JSON object, got %v", tok)}
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return &SchemaError{Err: err}
		}
		key := keyTok.(string)

		if key != "module_calls" {
			// Resource blocks, variables, outputs etc. — skip wholesale.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return &SchemaError{Err: err}
			}
			continue
		}

		if err := m.decodeCalls(dec); err != nil {
			return err
		}
	}
	return nil
}

// decodeCalls consumes the value of "module_calls": an object of
// name → call, null, or absent entirely (never reaching here).
func (m *Module) decodeCalls(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return &SchemaError{Err: err}
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return &SchemaError{Err: fmt.Errorf("module_calls must be a JSON object, got %v", tok)}
	}

	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return &SchemaError{Err: err}
		}
		name := nameTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return &SchemaError{Call: name, Err: err}
		}

		call, err := decodeModuleCall(name, raw)
		if err != nil {
			return err
		}
		m.Calls = append(m.Calls, call)
	}

	// Closing '}' of the module_calls object.
	if _, err := dec.Token(); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}

func decodeModuleCall(name string, raw json.RawMessage) (ModuleCall, error) {
	var wire moduleCallJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			return ModuleCall{}, schemaErr
		}
		return ModuleCall{}, &SchemaError{Call: name, Err: err}
	}
	if wire.Source == nil {
		return ModuleCall{}, &SchemaError{Call: name, Err: errors.New(`missing required field "source"`)}
	}

	call := ModuleCall{
		Name:   name,
		Source: *wire.Source,
		Module: wire.Module,
	}

	if wire.CountExpression != nil && wire.CountExpression.ConstantValue != nil {
		n := *wire.CountExpression.ConstantValue
		if n < 0 {
			return ModuleCall{}, &SchemaError{Call: name, Err: fmt.Errorf("count must be non-negative, got %d", n)}
		}
		call.Count = &n
	}

	if wire.ForEachExpression != nil && wire.ForEachExpression.ConstantValue != nil {
		keys, err := decodeForEachKeys(wire.ForEachExpression.ConstantValue)
		if err != nil {
			return ModuleCall{}, &SchemaError{Call: name, Err: err}
		}
		call.ForEach = keys
	}

	return call, nil
}

// decodeForEachKeys extracts the key set of a constant for_each value in
// document order. Terraform emits a map (keys matter, values do not) or,
// for sets built with toset(), an array of strings.
func decodeForEachKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("for_each constant must be an object or array, got %v", tok)
	}

	keys := []string{}
	switch delim {
	case '{':
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			keys = append(keys, keyTok.(string))

			// The associated value is not a constant-foldable
			// identifier of interest; drop it.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
	case '[':
		for dec.More() {
			var key string
			if err := dec.Decode(&key); err != nil {
				return nil, fmt.Errorf("for_each set elements must be strings: %w", err)
			}
			keys = append(keys, key)
		}
	default:
		return nil, fmt.Errorf("for_each constant must be an object or array, got %v", delim)
	}
	return keys, nil
}
