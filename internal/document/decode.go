package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeJSON parses JSON text into a document tree. Object member order is
// preserved (a plain map would lose it), and numbers keep their literal
// text via json.Number.
func DecodeJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (*Value, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeJSONArray(dec *json.Decoder) (*Value, error) {
	arr := NewArray()
	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Append(val)
	}
	// consume the closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// DecodeYAML parses YAML text into a document tree. yaml.Node keeps mapping
// entries in document order, so insertion order survives the same way it
// does for JSON input.
func DecodeYAML(data []byte) (*Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		// empty input
		return Null(), nil
	}
	return decodeYAMLNode(&root)
}

func decodeYAMLNode(node *yaml.Node) (*Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return decodeYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return decodeYAMLNode(node.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			val, err := decodeYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, item := range node.Content {
			val, err := decodeYAMLNode(item)
			if err != nil {
				return nil, err
			}
			arr.Append(val)
		}
		return arr, nil
	case yaml.ScalarNode:
		return decodeYAMLScalar(node)
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d", node.Kind)
	}
}

func decodeYAMLScalar(node *yaml.Node) (*Value, error) {
	switch node.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		return Number(json.Number(node.Value)), nil
	case "!!str", "!!timestamp":
		return String(node.Value), nil
	default:
		// unknown scalar tags fall back to their string form
		return String(node.Value), nil
	}
}
