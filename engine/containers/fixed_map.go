package containers

import "github.com/cespare/xxhash/v2"

// Hasher maps a key to its home slot before probing.
type Hasher func(key string) uint64

type mapSlot[V any] struct {
	key   string
	value V
	used  bool
}

// FixedMap is a bounded string-keyed table using open addressing with linear
// probing. Its memory is fixed at construction. Keys whose hashes collide
// are all stored; the table only refuses inserts once every slot is taken.
// Entries are never removed.
type FixedMap[V any] struct {
	slots []mapSlot[V]
	count int
	hash  Hasher
}

func NewFixedMap[V any](capacity int) *FixedMap[V] {
	return NewFixedMapWithHasher[V](capacity, xxhash.Sum64String)
}

func NewFixedMapWithHasher[V any](capacity int, hash Hasher) *FixedMap[V] {
	if capacity < 0 {
		capacity = 0
	}
	if hash == nil {
		hash = xxhash.Sum64String
	}
	return &FixedMap[V]{
		slots: make([]mapSlot[V], capacity),
		hash:  hash,
	}
}

// Put inserts a new key. An existing key is left untouched and ErrKeyExists
// is returned.
func (m *FixedMap[V]) Put(key string, value V) error {
	if key == "" {
		return ErrInvalidKey
	}
	n := len(m.slots)
	if n == 0 {
		return ErrMapFull
	}
	home := int(m.hash(key) % uint64(n))
	for i := 0; i < n; i++ {
		s := &m.slots[(home+i)%n]
		if !s.used {
			s.key = key
			s.value = value
			s.used = true
			m.count++
			return nil
		}
		if s.key == key {
			return ErrKeyExists
		}
	}
	return ErrMapFull
}

// Get returns the value stored under key.
func (m *FixedMap[V]) Get(key string) (V, bool) {
	if s := m.find(key); s != nil {
		return s.value, true
	}
	var zero V
	return zero, false
}

// Update replaces the value of an existing key.
func (m *FixedMap[V]) Update(key string, value V) error {
	s := m.find(key)
	if s == nil {
		return ErrKeyNotFound
	}
	s.value = value
	return nil
}

func (m *FixedMap[V]) Contains(key string) bool {
	return m.find(key) != nil
}

func (m *FixedMap[V]) find(key string) *mapSlot[V] {
	n := len(m.slots)
	if key == "" || n == 0 {
		return nil
	}
	home := int(m.hash(key) % uint64(n))
	for i := 0; i < n; i++ {
		s := &m.slots[(home+i)%n]
		if !s.used {
			// no removals, so an empty slot ends the probe chain
			return nil
		}
		if s.key == key {
			return s
		}
	}
	return nil
}

// Range calls fn for every entry in slot order until fn returns false.
func (m *FixedMap[V]) Range(fn func(key string, value V) bool) {
	for i := range m.slots {
		s := &m.slots[i]
		if s.used && !fn(s.key, s.value) {
			return
		}
	}
}

func (m *FixedMap[V]) Len() int {
	return m.count
}

func (m *FixedMap[V]) Cap() int {
	return len(m.slots)
}

func (m *FixedMap[V]) IsFull() bool {
	return m.count == len(m.slots)
}
