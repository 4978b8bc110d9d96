package document

import "slices"

// Map is a JSON/YAML object that remembers the order its keys were inserted.
// Key order from the source document survives every pipeline stage so that
// output diffs against the input stay small.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in order. The returned slice must not be modified.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. New keys are appended; existing keys keep
// their position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetFirst stores value under key, moving the key to the front.
func (m *Map) SetFirst(key string, value any) {
	m.Delete(key)
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.keys = slices.Insert(m.keys, 0, key)
	m.values[key] = value
}

// Delete removes key, preserving the order of the remaining keys.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	if i := slices.Index(m.keys, key); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}

// Range calls fn for each entry in order until fn returns false.
// Keys added or removed by fn during iteration are not visited.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range slices.Clone(m.keys) {
		v, ok := m.values[k]
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

// Map returns the value under key when it is itself a Map.
func (m *Map) Map(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	mm, ok := v.(*Map)
	return mm, ok
}

// String returns the value under key when it is a string.
func (m *Map) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Slice returns the value under key when it is a sequence.
func (m *Map) Slice(key string) ([]any, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// Bool returns the value under key when it is a boolean.
func (m *Map) Bool(key string) (bool, bool) {
	v, ok := m.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Ensure returns the Map stored under key, creating and storing an empty
// one when the key is absent or holds something else.
func (m *Map) Ensure(key string) *Map {
	if mm, ok := m.Map(key); ok {
		return mm
	}
	mm := NewMap()
	m.Set(key, mm)
	return mm
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{
		keys:   slices.Clone(m.keys),
		values: make(map[string]any, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = DeepCopy(v)
	}
	return out
}

// DeepCopy returns a copy of v that shares no Maps or slices with it.
// Scalars are returned as is.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case *Map:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = DeepCopy(item)
		}
		return out
	default:
		return v
	}
}

// FromPairs builds a Map from alternating key/value arguments, for small
// literals. A non-string key panics.
func FromPairs(kv ...any) *Map {
	m := NewMap()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}
	return m
}
