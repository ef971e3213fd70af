package replica

import (
	"context"
	"sort"
	"sync"

	"github.com/iudanet/savesync/internal/models"
)

// MemoryBackend - потокобезопасная in-memory реализация Backend.
// Используется в тестах и для эфемерных реплик (например, сессии capi).
type MemoryBackend struct {
	namespaces map[string]map[string]*models.ReplicaEntry
	seq        map[string]uint64
	mu         sync.RWMutex
}

// NewMemoryBackend создает пустое хранилище.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		namespaces: make(map[string]map[string]*models.ReplicaEntry),
		seq:        make(map[string]uint64),
	}
}

// Load returns a copy of the stored entry.
func (m *MemoryBackend) Load(ctx context.Context, namespace, key string) (*models.ReplicaEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.namespaces[namespace][key]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return entry.Clone(), nil
}

// Save stores a copy of entry under the next sequence number.
func (m *MemoryBackend) Save(ctx context.Context, namespace string, entry *models.ReplicaEntry) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.namespaces[namespace]
	if !ok {
		entries = make(map[string]*models.ReplicaEntry)
		m.namespaces[namespace] = entries
	}

	m.seq[namespace]++
	stored := entry.Clone()
	stored.Seq = m.seq[namespace]
	entries[entry.Key] = stored

	return stored.Seq, nil
}

// Scan returns up to limit entries with key > after in key order.
func (m *MemoryBackend) Scan(ctx context.Context, namespace, after string, limit int) ([]*models.ReplicaEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.namespaces[namespace]
	keys := make([]string, 0, len(entries))
	for k := range entries {
		if k > after {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	result := make([]*models.ReplicaEntry, 0, len(keys))
	for _, k := range keys {
		result = append(result, entries[k].Clone())
	}
	return result, nil
}

// ChangedSince returns entries with Seq > seq in sequence order.
func (m *MemoryBackend) ChangedSince(ctx context.Context, namespace string, seq uint64) ([]*models.ReplicaEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*models.ReplicaEntry{}
	for _, entry := range m.namespaces[namespace] {
		if entry.Seq > seq {
			result = append(result, entry.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seq < result[j].Seq })
	return result, nil
}
