package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one key/value pair of an OrderedMap
type Entry[V any] struct {
	Key   string
	Value V
}

// OrderedMap is a string keyed map that remembers insertion order.
// It encodes to a JSON object with keys in that order.
type OrderedMap[V any] struct {
	entries []Entry[V]
}

func (m *OrderedMap[V]) find(key string) int {
	for i := range m.entries {
		if m.entries[i].Key == key {
			return i
		}
	}
	return -1
}

func (m *OrderedMap[V]) Len() int {
	return len(m.entries)
}

func (m *OrderedMap[V]) Has(key string) bool {
	return m.find(key) >= 0
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if i := m.find(key); i >= 0 {
		return m.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// Set overwrites the value of an existing key in place, or appends a new key.
func (m *OrderedMap[V]) Set(key string, value V) {
	if i := m.find(key); i >= 0 {
		m.entries[i].Value = value
		return
	}
	m.entries = append(m.entries, Entry[V]{Key: key, Value: value})
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	i := m.find(key)
	if i < 0 {
		return false
	}
	m.entries = append(m.entries[:i:i], m.entries[i+1:]...)
	return true
}

// At returns the entry at position i. It panics if i is out of range.
func (m *OrderedMap[V]) At(i int) Entry[V] {
	return m.entries[i]
}

func (m *OrderedMap[V]) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func (m *OrderedMap[V]) Entries() []Entry[V] {
	return append([]Entry[V](nil), m.entries...)
}

// Clone returns a copy whose entry list can be mutated independently.
// Values are copied shallowly.
func (m *OrderedMap[V]) Clone() OrderedMap[V] {
	return OrderedMap[V]{entries: m.Entries()}
}

func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		m.entries = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ordered map: expected object, got %v", tok)
	}

	m.entries = m.entries[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ordered map: expected string key, got %v", tok)
		}
		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("ordered map: value for %q: %w", key, err)
		}
		m.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
