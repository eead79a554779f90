package dashstate

import (
	"sync"
	"time"
)

type registryKey struct {
	viewer string
	temple string
}

// Registry keeps one Container per (viewer, temple). Containers that have not
// been used for a while are closed by Sweep, which is how a viewer leaving
// the page discards their snapshot.
type Registry struct {
	newContainer func() *Container
	now          func() time.Time

	mu    sync.Mutex
	items map[registryKey]*Container
}

// NewRegistry returns an empty registry that builds containers with factory.
func NewRegistry(factory func() *Container) *Registry {
	return &Registry{
		newContainer: factory,
		now:          time.Now,
		items:        map[registryKey]*Container{},
	}
}

// Get returns the container for viewer and temple, creating it if needed.
func (r *Registry) Get(viewerID, templeID string) *Container {
	k := registryKey{viewer: viewerID, temple: templeID}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.items[k]; ok && !c.Closed() {
		c.Touch()
		return c
	}
	c := r.newContainer()
	r.items[k] = c
	return c
}

// Peek returns the container for viewer and temple without creating one.
func (r *Registry) Peek(viewerID, templeID string) (*Container, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[registryKey{viewer: viewerID, temple: templeID}]
	return c, ok
}

// Len returns the number of live containers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep closes and forgets containers unused for longer than idle and
// returns how many were removed. Containers with a fetch in flight are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for k, c := range r.items {
		if c.LastUsed().After(cutoff) || c.State().Loading {
			continue
		}
		c.Close()
		delete(r.items, k)
		removed++
	}
	return removed
}

// CloseAll closes every container. Used at shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, c := range r.items {
		c.Close()
		delete(r.items, k)
	}
}
