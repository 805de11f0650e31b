// Package syncmap is a typed wrapper around sync.Map for registries written rarely and
// read from any goroutine.
package syncmap

import "sync"

type SyncMap[K comparable, V any] struct {
	m *sync.Map
}

func New[K comparable, V any]() SyncMap[K, V] {
	return SyncMap[K, V]{
		m: &sync.Map{},
	}
}

func (sm SyncMap[K, V]) Set(key K, value V) {
	sm.m.Store(key, value)
}

func (sm SyncMap[K, V]) Lookup(key K) (value V, ok bool) {
	v, has := sm.m.Load(key)
	if !has {
		return value, false
	}
	return v.(V), true
}
