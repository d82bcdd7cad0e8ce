package store

import "sync"

type Memory struct {
	mux sync.RWMutex
	m   map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(bucket, key string) ([]byte, error) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[bucket][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(bucket, key string, val []byte) error {
	m.mux.Lock()
	b, ok := m.m[bucket]
	if !ok {
		b = make(map[string][]byte)
		m.m[bucket] = b
	}
	b[key] = append([]byte(nil), val...)
	m.mux.Unlock()
	return nil
}

func (m *Memory) Delete(bucket, key string) error {
	m.mux.Lock()
	delete(m.m[bucket], key)
	m.mux.Unlock()
	return nil
}
