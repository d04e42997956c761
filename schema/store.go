package schema

import (
	"sync"
	"sync/atomic"
)

// Snapshot is one immutable resolved schema. Safe for concurrent reads;
// every analysis pass holds exactly one snapshot so mid-pass
// reconfiguration cannot occur.
//
// Obtain snapshots from [Store.Resolve].
type Snapshot struct {
	scopes  map[Scope]*ScopeSchema
	version uint64
}

// Version returns the reload counter that produced this snapshot. The
// defaults-only snapshot served before any reload has version zero.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Scope returns the resolved property set for sc. Unknown scopes yield an
// empty set.
func (s *Snapshot) Scope(sc Scope) *ScopeSchema {
	if ss, ok := s.scopes[sc]; ok {
		return ss
	}

	return &ScopeSchema{defs: map[string]Definition{}}
}

// Equal reports whether two snapshots resolve to the same definitions in
// the same order. The version counter is deliberately excluded: reloading
// unchanged inputs bumps the version but yields an Equal snapshot.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if len(s.scopes) != len(other.scopes) {
		return false
	}

	for sc, ss := range s.scopes {
		os, ok := other.scopes[sc]
		if !ok || !ss.equal(os) {
			return false
		}
	}

	return true
}

// Store owns the configuration layers and publishes resolved snapshots.
//
// Reload is explicit: nothing watches the filesystem. Between reloads
// every caller sees the same published snapshot, so concurrent analyses of
// independent documents share nothing mutable.
//
// Create instances with [NewStore].
type Store struct {
	current     atomic.Pointer[Snapshot]
	mu          sync.Mutex
	projectPath string
	extra       []Layer
	reloads     uint64
}

// StoreOption configures a [Store].
type StoreOption func(*Store)

// WithProjectFile sets the project configuration file path, typically
// [DefaultProjectFile] under the workspace root.
func WithProjectFile(path string) StoreOption {
	return func(s *Store) {
		s.projectPath = path
	}
}

// WithLayer appends a configuration layer merged above the project file.
// Later layers take priority over earlier ones.
func WithLayer(l Layer) StoreOption {
	return func(s *Store) {
		if !l.IsZero() {
			s.extra = append(s.extra, l)
		}
	}
}

// NewStore creates a new [Store] with the given options.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Resolve returns the current snapshot. Before the first [Store.Reload] it
// serves the built-in defaults.
func (s *Store) Resolve() *Snapshot {
	if snap := s.current.Load(); snap != nil {
		return snap
	}

	return &Snapshot{scopes: defaultScopes()}
}

// Reload rebuilds the resolved schema from defaults, the project file, and
// the extra layers, then atomically publishes the new snapshot. Synchronous
// and idempotent: unchanged inputs produce a content-equal snapshot.
func (s *Store) Reload() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layers := make([]Layer, 0, len(s.extra)+1)

	if s.projectPath != "" {
		project, err := LoadProject(s.projectPath)
		if err != nil {
			return nil, err
		}

		layers = append(layers, project)
	}

	layers = append(layers, s.extra...)

	s.reloads++

	snap := &Snapshot{
		scopes:  buildScopes(layers),
		version: s.reloads,
	}

	s.current.Store(snap)

	return snap, nil
}

// buildScopes merges layers over the built-in defaults, lowest priority
// first. Membership lists append new names in order; definitions overlay
// field-level onto every scope carrying the name.
func buildScopes(layers []Layer) map[Scope]*ScopeSchema {
	scopes := defaultScopes()

	for _, layer := range layers {
		for _, sc := range Scopes() {
			ss := scopes[sc]

			for _, name := range layer.Scopes[sc] {
				ss.add(name)
			}

			for _, name := range ss.names {
				if p, ok := layer.Properties[name]; ok {
					ss.defs[name] = p.apply(ss.defs[name])
				}
			}
		}
	}

	return scopes
}
