package attachment

import (
	"context"
	"fmt"
	"sort"

	"invest-portal/internal/blobstore"
	"invest-portal/internal/recordstore"

	"go.uber.org/zap"
)

// Registry holds one Manager per attachment-bearing collection.
type Registry struct {
	managers map[string]*Manager
	order    []string
	blobs    blobstore.Store
	logger   *zap.Logger
}

func NewRegistry(open func(collection string) recordstore.Store, blobs blobstore.Store, logger *zap.Logger, schemas ...Schema) *Registry {
	r := &Registry{
		managers: make(map[string]*Manager, len(schemas)),
		blobs:    blobs,
		logger:   logger,
	}
	for _, s := range schemas {
		r.managers[s.Collection] = NewManager(open(s.Collection), blobs, s, logger)
		r.order = append(r.order, s.Collection)
	}
	return r
}

// Manager returns the manager for collection and panics on an unknown one,
// which is a wiring error.
func (r *Registry) Manager(collection string) *Manager {
	m, ok := r.managers[collection]
	if !ok {
		panic(fmt.Sprintf("attachment: no schema registered for %q", collection))
	}
	return m
}

// Managers returns every registered manager in registration order.
func (r *Registry) Managers() []*Manager {
	out := make([]*Manager, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, r.managers[c])
	}
	return out
}

func (r *Registry) Blobs() blobstore.Store {
	return r.blobs
}

// Categories returns the distinct Blob Store categories, sorted.
func (r *Registry) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range r.managers {
		if c := m.schema.Category; !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Prepare creates the storage location of every category once at startup.
func (r *Registry) Prepare(ctx context.Context) error {
	categories := r.Categories()
	if err := r.blobs.Prepare(ctx, categories); err != nil {
		return err
	}
	r.logger.Info("Upload categories ready", zap.Strings("categories", categories))
	return nil
}

// ReferencedPaths scans every registered collection and returns the owned paths still in use.
func (r *Registry) ReferencedPaths(ctx context.Context) (map[string]struct{}, error) {
	refs := map[string]struct{}{}
	for _, m := range r.Managers() {
		err := m.records.Each(ctx, func(rec recordstore.Record) error {
			for _, p := range m.OwnedRefs(rec) {
				refs[p] = struct{}{}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", m.schema.Collection, err)
		}
	}
	return refs, nil
}
