package schema

import (
	"bytes"
	"encoding/json"
)

// propertyKeyOrder scans raw JSON with a token decoder and returns the keys of
// the top-level "properties" object in document order. encoding/json maps lose
// ordering, so this is the only way to recover the author's field sequence.
func propertyKeyOrder(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))

	token, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil
	}

	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil
		}
		if key != "properties" {
			if err := skipValue(dec); err != nil {
				return nil
			}
			continue
		}
		return objectKeys(dec)
	}
	return nil
}

// objectKeys reads the next value, which must be an object, and returns its
// keys in order. Values are skipped.
func objectKeys(dec *json.Decoder) []string {
	token, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var keys []string
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil
		}
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil
	}
	return keys
}

// skipValue consumes one complete JSON value, tracking nesting depth.
func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		token, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := token.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}
