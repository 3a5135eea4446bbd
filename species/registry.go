package species

import "sort"

// Registry maps species ids to their live configs.
// Iteration always follows sorted id order so runs are reproducible.
type Registry struct {
	configs map[string]*Config
	ids     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]*Config)}
}

// Insert adds or replaces the config for id.
func (r *Registry) Insert(id string, cfg Config) {
	if existing, ok := r.configs[id]; ok {
		*existing = cfg
		return
	}
	c := cfg
	r.configs[id] = &c

	i := sort.SearchStrings(r.ids, id)
	r.ids = append(r.ids, "")
	copy(r.ids[i+1:], r.ids[i:])
	r.ids[i] = id
}

// Set overwrites the config for an existing id. Returns false if id is not registered.
func (r *Registry) Set(id string, cfg Config) bool {
	existing, ok := r.configs[id]
	if !ok {
		return false
	}
	*existing = cfg
	return true
}

// Remove deletes id from the registry. Returns false if it was not registered.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.configs[id]; !ok {
		return false
	}
	delete(r.configs, id)
	i := sort.SearchStrings(r.ids, id)
	r.ids = append(r.ids[:i], r.ids[i+1:]...)
	return true
}

// Get returns a copy of the config for id.
func (r *Registry) Get(id string) (Config, bool) {
	c, ok := r.configs[id]
	if !ok {
		return Config{}, false
	}
	return *c, true
}

// Lookup returns the stored config for id without copying.
// Callers must not hold the pointer across a Remove.
func (r *Registry) Lookup(id string) (*Config, bool) {
	c, ok := r.configs[id]
	return c, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.configs[id]
	return ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len returns the number of registered species.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Each calls fn for every species in id order.
func (r *Registry) Each(fn func(id string, cfg *Config)) {
	for _, id := range r.ids {
		fn(id, r.configs[id])
	}
}
