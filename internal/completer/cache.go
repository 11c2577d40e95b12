package completer

// CacheStore is the storage port for per-category catalogs. Catalogs are
// string sets keyed by the object category name.
type CacheStore interface {
	// GetCache returns the stored catalog for a key, or false when the key
	// has never been filled.
	GetCache(key string) (map[string]struct{}, bool)

	// SetCache stores a catalog for a key, replacing any previous value.
	SetCache(key string, objects map[string]struct{})
}

// MemoryCacheStore keeps catalogs in process memory for the lifetime of the
// interactive session. Directory contents are assumed not to change
// meaningfully within a session, so entries are never invalidated here.
//
// The shell drives completion from a single input loop; like the rest of the
// subsystem this store provides no internal locking.
type MemoryCacheStore struct {
	catalogs map[string]map[string]struct{}
}

// NewMemoryCacheStore creates an empty in-memory cache store.
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{
		catalogs: make(map[string]map[string]struct{}),
	}
}

func (s *MemoryCacheStore) GetCache(key string) (map[string]struct{}, bool) {
	catalog, ok := s.catalogs[key]
	return catalog, ok
}

func (s *MemoryCacheStore) SetCache(key string, objects map[string]struct{}) {
	s.catalogs[key] = objects
}
