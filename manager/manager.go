// Package manager caches entities loaded from a store table. The cache is the
// authoritative copy for the life of the process; the table is a write-through
// mirror read only at Init.
package manager

import (
	"context"
	"fmt"
	"sync"

	"dungeonbot/store"

	log "github.com/sirupsen/logrus"
)

// Store is the persistence a manager writes through to. *store.Table satisfies it.
type Store[T any] interface {
	EnsureTable(ctx context.Context) error
	FindMany(ctx context.Context, conds ...store.Condition) ([]T, error)
	Update(ctx context.Context, v T) error
	UpdateAll(ctx context.Context, vs ...T) error
	DeleteOne(ctx context.Context, key ...any) error
}

// Descriptor tells a manager how to key and default its entities
type Descriptor[K comparable, T any] struct {
	// Name is used in log fields
	Name string
	// Key extracts the cache key from an entity
	Key func(v T) K
	// KeyArgs expands a key into primary key values in schema order
	KeyArgs func(k K) []any
	// Default synthesizes the entity returned for an unknown key
	Default func(k K) T
	// Clone copies an entity so Update can mutate it away from readers
	Clone func(v T) T
	// OnCreate, if set, runs after a default entity was cached and persisted
	OnCreate func(ctx context.Context, v T)
}

// Manager is a get-or-create cache over a store table
type Manager[K comparable, T any] struct {
	store Store[T]
	desc  Descriptor[K, T]

	mu    sync.RWMutex
	table map[K]T

	locksMu sync.Mutex
	locks   map[K]*sync.Mutex
}

// New creates an empty manager; call Init before use
func New[K comparable, T any](st Store[T], desc Descriptor[K, T]) *Manager[K, T] {
	return &Manager[K, T]{
		store: st,
		desc:  desc,
		table: make(map[K]T),
		locks: make(map[K]*sync.Mutex),
	}
}

// Init ensures the table exists and loads every row into the cache
func (m *Manager[K, T]) Init(ctx context.Context) error {
	if err := m.store.EnsureTable(ctx); err != nil {
		return fmt.Errorf("failed to init %s manager: %w", m.desc.Name, err)
	}

	rows, err := m.store.FindMany(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", m.desc.Name, err)
	}

	m.mu.Lock()
	for _, v := range rows {
		m.table[m.desc.Key(v)] = v
	}
	m.mu.Unlock()

	log.WithFields(log.Fields{
		"manager": m.desc.Name,
		"count":   len(rows),
	}).Info("Loaded entities")
	return nil
}

// Get returns the cached entity, creating and persisting a default when absent.
// A failed persist is logged; the default stays cached either way.
func (m *Manager[K, T]) Get(ctx context.Context, key K) T {
	if v, ok := m.Peek(key); ok {
		return v
	}

	m.mu.Lock()
	if v, ok := m.table[key]; ok {
		m.mu.Unlock()
		return v
	}
	v := m.desc.Default(key)
	m.table[key] = v
	m.mu.Unlock()

	if err := m.store.Update(ctx, v); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"manager": m.desc.Name,
			"key":     key,
		}).Error("Failed to persist default entity")
	}

	if m.desc.OnCreate != nil {
		m.desc.OnCreate(ctx, v)
	}
	return v
}

// Peek looks the key up without creating anything
func (m *Manager[K, T]) Peek(key K) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.table[key]
	return v, ok
}

// Add caches the entity without touching the store
func (m *Manager[K, T]) Add(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table[m.desc.Key(v)] = v
}

// Save caches the entity and upserts it
func (m *Manager[K, T]) Save(ctx context.Context, v T) error {
	m.Add(v)
	if err := m.store.Update(ctx, v); err != nil {
		return fmt.Errorf("failed to save %s: %w", m.desc.Name, err)
	}
	return nil
}

// SaveAll caches the entities and upserts them in one transaction
func (m *Manager[K, T]) SaveAll(ctx context.Context, vs ...T) error {
	for _, v := range vs {
		m.Add(v)
	}
	if err := m.store.UpdateAll(ctx, vs...); err != nil {
		return fmt.Errorf("failed to save %s batch: %w", m.desc.Name, err)
	}
	return nil
}

// Delete drops the entity from the cache and the store
func (m *Manager[K, T]) Delete(ctx context.Context, key K) error {
	m.mu.Lock()
	delete(m.table, key)
	m.mu.Unlock()

	if err := m.store.DeleteOne(ctx, m.desc.KeyArgs(key)...); err != nil {
		return fmt.Errorf("failed to delete %s: %w", m.desc.Name, err)
	}
	return nil
}

// Forget drops the key from the cache only; the stored row is left alone
func (m *Manager[K, T]) Forget(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.table, key)
}

// GetAll returns every cached entity in no particular order
func (m *Manager[K, T]) GetAll() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.table))
	for _, v := range m.table {
		out = append(out, v)
	}
	return out
}

// Find returns every cached entity matching pred
func (m *Manager[K, T]) Find(pred func(T) bool) []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []T
	for _, v := range m.table {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// FindFirst returns any one cached entity matching pred
func (m *Manager[K, T]) FindFirst(pred func(T) bool) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, v := range m.table {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Len is the number of cached entities
func (m *Manager[K, T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.table)
}

// Lock acquires the per-key mutation lock and returns its release
func (m *Manager[K, T]) Lock(key K) func() {
	m.locksMu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// Update runs fn on a copy of the entity under its key lock. When fn succeeds
// the copy is saved and replaces the cached entity; readers holding the old
// value never see a partial mutation. An error leaves the cache untouched and
// returns the current entity.
func (m *Manager[K, T]) Update(ctx context.Context, key K, fn func(v T) error) (T, error) {
	unlock := m.Lock(key)
	defer unlock()

	cur := m.Get(ctx, key)
	v := m.desc.Clone(cur)
	if err := fn(v); err != nil {
		return cur, err
	}
	return v, m.Save(ctx, v)
}
