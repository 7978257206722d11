// Package registry is the in-process metastore mapping each encountered
// triple shape to its backing TableDef. Tables are provisioned lazily,
// at most once per name, and the provisioned set survives a restart
// through a persisted mirror a Backend maintains.
package registry

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"wdqsbe/internal/element"
	"wdqsbe/internal/tabledef"
)

// Backend is the persistence side a Registry needs: provisioning a new
// table's DDL plus its table_list row, and reloading that row set on
// startup. Concrete implementations live in package backend.
type Backend interface {
	ProvisionTable(ctx context.Context, def tabledef.TableDef) error
	LoadTableDefs(ctx context.Context) ([]tabledef.TableDef, error)
}

// Registry is safe for concurrent use. GetOrCreate guarantees at most one
// ProvisionTable call per table name even under concurrent callers
// racing on the same shape, while unrelated shapes provision
// independently: the group only serializes callers that share a name.
type Registry struct {
	backend Backend

	mu    sync.RWMutex
	byName map[string]tabledef.TableDef

	group singleflight.Group

	warn func(string)
}

// New builds an empty Registry. Call InitFromPersistence before serving
// traffic to rehydrate previously provisioned tables.
func New(backend Backend, warn func(string)) *Registry {
	if warn == nil {
		warn = func(string) {}
	}
	return &Registry{backend: backend, byName: make(map[string]tabledef.TableDef), warn: warn}
}

// InitFromPersistence loads every previously persisted TableDef and
// populates the in-memory map, so the schema is available immediately
// after restart without re-deriving anything from ingested data.
func (r *Registry) InitFromPersistence(ctx context.Context) error {
	defs, err := r.backend.LoadTableDefs(ctx)
	if err != nil {
		return fmt.Errorf("registry: loading persisted table defs: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range defs {
		r.byName[def.Name] = def
	}
	return nil
}

// GetOrCreate returns the TableDef for the shape (subject, predicate,
// object), provisioning its backing table on first encounter. Two
// distinct shapes whose derived names collide (after truncation) share
// the first definition created; later callers observe it unchanged and
// a warning is logged rather than the conflict being treated as fatal.
func (r *Registry) GetOrCreate(ctx context.Context, subject, predicate, object element.Element) (tabledef.TableDef, error) {
	candidate := tabledef.New(subject, predicate, object)

	r.mu.RLock()
	existing, ok := r.byName[candidate.Name]
	r.mu.RUnlock()
	if ok {
		r.warnOnShapeCollision(existing, candidate)
		return existing, nil
	}

	result, err, _ := r.group.Do(candidate.Name, func() (any, error) {
		r.mu.RLock()
		existing, ok := r.byName[candidate.Name]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}
		if full := fmt.Sprintf("data__%s__%s__%s", predicate.TableFragment(), subject.TableFragment(), object.TableFragment()); full != candidate.Name {
			r.warn(fmt.Sprintf("registry: table name %s exceeds the identifier length limit, truncated to %s", full, candidate.Name))
		}
		if err := r.backend.ProvisionTable(ctx, candidate); err != nil {
			return tabledef.TableDef{}, fmt.Errorf("registry: provisioning table %s: %w", candidate.Name, err)
		}
		r.mu.Lock()
		r.byName[candidate.Name] = candidate
		r.mu.Unlock()
		return candidate, nil
	})
	if err != nil {
		return tabledef.TableDef{}, err
	}
	def := result.(tabledef.TableDef)
	r.warnOnShapeCollision(def, candidate)
	return def, nil
}

func (r *Registry) warnOnShapeCollision(existing, candidate tabledef.TableDef) {
	if existing.SubjectKind != candidate.SubjectKind ||
		existing.PredicateKind != candidate.PredicateKind ||
		existing.ObjectKind != candidate.ObjectKind {
		r.warn(fmt.Sprintf("registry: table name %s reused by a different shape (%s/%s/%s), first definition (%s/%s/%s) kept",
			candidate.Name, candidate.SubjectKind, candidate.PredicateKind, candidate.ObjectKind,
			existing.SubjectKind, existing.PredicateKind, existing.ObjectKind))
	}
}

// All returns a snapshot of every currently registered TableDef, used by
// the query planner to shortlist candidate tables for a pattern.
func (r *Registry) All() []tabledef.TableDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]tabledef.TableDef, 0, len(r.byName))
	for _, def := range r.byName {
		defs = append(defs, def)
	}
	return defs
}
