package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Loader resolves datasets through an ordered resolver chain and memoizes
// the outcome per reference. Found tables and "not found" are both cached;
// read errors are not, so a fixed file can be picked up by a later call.
type Loader struct {
	resolvers []Resolver

	mu   sync.Mutex
	memo map[string]*Table // nil value records "not found"
}

// NewLoader creates a loader that tries resolvers in order.
func NewLoader(resolvers ...Resolver) *Loader {
	return &Loader{
		resolvers: resolvers,
		memo:      make(map[string]*Table),
	}
}

// Resolvers returns the names of the configured resolvers, in order.
func (l *Loader) Resolvers() []string {
	names := make([]string, len(l.resolvers))
	for i, r := range l.resolvers {
		names[i] = r.Name()
	}
	return names
}

// Load returns the table for ref, or ErrNotFound when no resolver finds it.
// The first successful resolver wins.
func (l *Loader) Load(ctx context.Context, ref Ref) (*Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.memo[ref.key()]; ok {
		if t == nil {
			return nil, ErrNotFound
		}
		return t, nil
	}

	for _, r := range l.resolvers {
		t, err := r.Resolve(ctx, ref)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s via %s: %w", ref.Name, r.Name(), err)
		}
		slog.Debug("dataset resolved",
			"dataset", ref.Name,
			"resolver", r.Name(),
			"source", t.Source,
			"format", t.Format,
			"rows", t.Len(),
		)
		l.memo[ref.key()] = t
		return t, nil
	}

	slog.Debug("dataset not found", "dataset", ref.Name, "base_file", ref.BaseFile)
	l.memo[ref.key()] = nil
	return nil, ErrNotFound
}

// LoadAll loads every ref. Missing datasets are left out of tables and
// reported in missing; only read errors are returned as err.
func (l *Loader) LoadAll(ctx context.Context, refs []Ref) (tables map[string]*Table, missing []Ref, err error) {
	tables = make(map[string]*Table, len(refs))
	for _, ref := range refs {
		t, err := l.Load(ctx, ref)
		if errors.Is(err, ErrNotFound) {
			missing = append(missing, ref)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		tables[ref.Name] = t
	}
	return tables, missing, nil
}
