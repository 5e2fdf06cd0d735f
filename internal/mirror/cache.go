package mirror

import "sync"

// Store persists mirror path to original URL mappings.
type Store interface {
	Load(mirrorPath string) (string, bool)
	Save(mirrorPath string, originalURL string)
}

// MemoryStore keeps mappings in a process-wide map.
type MemoryStore struct {
	mutex   sync.RWMutex
	entries map[string]string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Load returns the stored original URL for mirrorPath.
func (store *MemoryStore) Load(mirrorPath string) (string, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	originalURL, exists := store.entries[mirrorPath]
	return originalURL, exists
}

// Save records originalURL for mirrorPath, replacing any previous value.
func (store *MemoryStore) Save(mirrorPath string, originalURL string) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.entries[mirrorPath] = originalURL
}

// Cache memoizes lookups keyed by mirror path. Entries never expire.
type Cache struct {
	store Store
}

// NewCache wraps store; a nil store falls back to a MemoryStore.
func NewCache(store Store) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Cache{store: store}
}

// Get returns the cached original URL for mirrorPath.
func (cache *Cache) Get(mirrorPath string) (string, bool) {
	if cache == nil {
		return "", false
	}
	originalURL, exists := cache.store.Load(mirrorPath)
	if !exists || len(originalURL) == 0 {
		return "", false
	}
	return originalURL, true
}

// Put stores originalURL for mirrorPath.
func (cache *Cache) Put(mirrorPath string, originalURL string) {
	if cache == nil {
		return
	}
	cache.store.Save(mirrorPath, originalURL)
}
