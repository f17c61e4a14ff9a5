package attachments

import (
	"sort"
	"sync"

	"artifact-host/core/mre"
)

// Registry tracks, per user, the actors currently attached to them in attach order.
type Registry struct {
	mu      sync.RWMutex
	entries map[mre.UserID][]mre.Actor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[mre.UserID][]mre.Actor)}
}

// Add appends an actor to a user's list, creating the entry on first use.
func (r *Registry) Add(user mre.UserID, actor mre.Actor) {
	r.mu.Lock()
	r.entries[user] = append(r.entries[user], actor)
	r.mu.Unlock()
}

// Get returns a copy of a user's actor list.
func (r *Registry) Get(user mre.UserID) ([]mre.Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, ok := r.entries[user]
	if !ok {
		return nil, false
	}
	return append([]mre.Actor(nil), list...), true
}

// Take removes a user's entry and returns its actors.
func (r *Registry) Take(user mre.UserID) ([]mre.Actor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, ok := r.entries[user]
	if ok {
		delete(r.entries, user)
	}
	return list, ok
}

// Users returns the users with an entry, ordered by id.
func (r *Registry) Users() []mre.UserID {
	r.mu.RLock()
	users := make([]mre.UserID, 0, len(r.entries))
	for u := range r.entries {
		users = append(users, u)
	}
	r.mu.RUnlock()
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}

// Snapshot returns a copy of every entry.
func (r *Registry) Snapshot() map[mre.UserID][]mre.Actor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[mre.UserID][]mre.Actor, len(r.entries))
	for u, list := range r.entries {
		out[u] = append([]mre.Actor(nil), list...)
	}
	return out
}

// Len returns the number of users with an entry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
