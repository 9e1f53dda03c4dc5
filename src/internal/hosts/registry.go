package hosts

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Registry is the set of hostnames that already have an entry in the output.
// Entries are never removed.
type Registry struct {
	seen map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

func (r *Registry) Contains(hostname string) bool {
	_, ok := r.seen[hostname]
	return ok
}

func (r *Registry) Add(hostname string) {
	r.seen[hostname] = struct{}{}
}

func (r *Registry) Len() int {
	return len(r.seen)
}

// Hostnames returns the registered hostnames in sorted order.
func (r *Registry) Hostnames() []string {
	v := maps.Keys(r.seen)
	sort.Strings(v)
	return v
}
