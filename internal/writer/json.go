package writer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const scriptsKey = "scripts"

// member is one key of a JSON object with its value kept as raw JSON, so
// nested objects keep their key order.
type member struct {
	key   string
	value json.RawMessage
}

// object is a JSON object decoded with its key order intact.
type object []member

func (o object) index(key string) int {
	for i, m := range o {
		if m.key == key {
			return i
		}
	}
	return -1
}

func (o *object) set(key string, value json.RawMessage) {
	if i := o.index(key); i >= 0 {
		(*o)[i].value = value
		return
	}
	*o = append(*o, member{key: key, value: value})
}

func decodeObject(data []byte) (object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected a JSON object")
	}

	var obj object
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		obj.set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON object")
	}
	return obj, nil
}

// compact encodes o without whitespace.
func (o object) compact() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeValue(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, m.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// pretty encodes o with two-space indentation and a trailing newline.
func (o object) pretty() ([]byte, error) {
	raw, err := o.compact()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// encodeValue marshals v compactly without HTML escaping so shell operators
// such as && survive in scripts.
func encodeValue(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// mergeFields applies fields to obj and reports whether any value differed.
func mergeFields(obj *object, fields []Field) (bool, error) {
	changed := false
	for _, f := range fields {
		value, err := encodeValue(f.Value)
		if err != nil {
			return false, fmt.Errorf("encode %q: %w", f.Key, err)
		}
		if i := obj.index(f.Key); i >= 0 && sameJSON((*obj)[i].value, value) {
			continue
		}
		obj.set(f.Key, value)
		changed = true
	}
	return changed, nil
}

func sameJSON(a, b json.RawMessage) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return false
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}

// MergeJSON shallow-merges fields into the JSON object in existing (new keys
// win) and returns the result pretty-printed. Existing keys keep their order;
// new keys are appended. When every field already matches, existing is
// returned untouched. A nil existing merges into an empty object.
func MergeJSON(existing []byte, fields []Field) ([]byte, error) {
	var obj object
	if existing != nil {
		var err error
		if obj, err = decodeObject(existing); err != nil {
			return nil, err
		}
	}
	changed, err := mergeFields(&obj, fields)
	if err != nil {
		return nil, err
	}
	if existing != nil && !changed {
		return existing, nil
	}
	return obj.pretty()
}

// MergeScripts merges fields into the "scripts" object of a package.json
// document, creating it when missing. All other keys are preserved in order.
func MergeScripts(manifest []byte, fields []Field) ([]byte, error) {
	obj, err := decodeObject(manifest)
	if err != nil {
		return nil, err
	}

	var scripts object
	if i := obj.index(scriptsKey); i >= 0 && string(bytes.TrimSpace(obj[i].value)) != "null" {
		if scripts, err = decodeObject(obj[i].value); err != nil {
			return nil, fmt.Errorf("scripts: %w", err)
		}
	}

	changed, err := mergeFields(&scripts, fields)
	if err != nil {
		return nil, err
	}
	if !changed && obj.index(scriptsKey) >= 0 {
		return manifest, nil
	}

	raw, err := scripts.compact()
	if err != nil {
		return nil, err
	}
	obj.set(scriptsKey, raw)
	return obj.pretty()
}
