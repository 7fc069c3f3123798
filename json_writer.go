package inky

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedObject builds a JSON object whose members keep the order they were
// set in, so that JSONL files diff line by line. The zero value is an empty
// object.
type orderedObject struct {
	keys   []string
	values []json.RawMessage
	err    error
}

// Set marshals value under key. The first marshal error is kept and returned
// by MarshalJSON.
func (o *orderedObject) Set(key string, value any) *orderedObject {
	if o.err != nil {
		return o
	}
	raw, err := json.Marshal(value)
	if err != nil {
		o.err = fmt.Errorf("failed to marshal %q: %w", key, err)
		return o
	}
	o.keys = append(o.keys, key)
	o.values = append(o.values, raw)
	return o
}

// SetString sets key only when s is not empty.
func (o *orderedObject) SetString(key, s string) *orderedObject {
	if s == "" {
		return o
	}
	return o.Set(key, s)
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, _ := json.Marshal(k)
		b.Write(key)
		b.WriteByte(':')
		b.Write(o.values[i])
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
