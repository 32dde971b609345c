// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ChainSafe/chain-overrides/internal/log"
	"github.com/dgraph-io/ristretto"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "overrides"))

// SetLogLevel sets the log level of the overrides package.
func SetLogLevel(level log.Level) {
	logger.PatchLevel(level)
}

// Metrics records registry activity.
type Metrics interface {
	DefinitionLoaded(chain string)
	DefinitionRejected(chain, reason string)
	TypeResolved(chain string, cached bool)
}

type noopMetrics struct{}

func (noopMetrics) DefinitionLoaded(string)           {}
func (noopMetrics) DefinitionRejected(string, string) {}
func (noopMetrics) TypeResolved(string, bool)         {}

// Config configures a Registry.
type Config struct {
	// CacheSize is the maximum number of memoised resolutions.
	// Zero disables the cache.
	CacheSize int64
	// Metrics defaults to a no-op implementation.
	Metrics Metrics
}

type registration struct {
	definition *ChainDefinition
	generation uint64
}

type snapshot map[string]registration

// Registry holds the chain definitions of every chain a process talks to.
// Writers are serialised and publish a new snapshot; readers never lock,
// so lookups are safe from any number of goroutines.
type Registry struct {
	mutex      sync.Mutex
	generation uint64
	chains     atomic.Pointer[snapshot]

	cache   *ristretto.Cache
	metrics Metrics
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config) (*Registry, error) {
	r := &Registry{metrics: cfg.Metrics}
	if r.metrics == nil {
		r.metrics = noopMetrics{}
	}
	empty := make(snapshot)
	r.chains.Store(&empty)

	if cfg.CacheSize > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: cfg.CacheSize * 10,
			MaxCost:     cfg.CacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("creating resolution cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Load validates a chain definition document and registers it.
func (r *Registry) Load(chain string, data []byte) (*ChainDefinition, error) {
	definition, err := Load(data)
	if err != nil {
		r.metrics.DefinitionRejected(chain, Reason(err))
		logger.Warnf("rejected definition of chain %s: %s", chain, err)
		return nil, fmt.Errorf("loading definition of chain %s: %w", chain, err)
	}

	if err = r.Register(chain, definition); err != nil {
		return nil, err
	}
	return definition, nil
}

// Register adds a chain definition. It fails if the chain is already registered.
func (r *Registry) Register(chain string, definition *ChainDefinition) error {
	return r.publish(chain, definition, false)
}

// Replace registers a chain definition, replacing any previous one.
// Cached resolutions of the previous definition are never served again.
func (r *Registry) Replace(chain string, definition *ChainDefinition) error {
	return r.publish(chain, definition, true)
}

func (r *Registry) publish(chain string, definition *ChainDefinition, replace bool) error {
	if chain == "" {
		return ErrEmptyChainName
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	current := *r.chains.Load()
	if _, exists := current[chain]; exists && !replace {
		return fmt.Errorf("%w: %s", ErrChainRegistered, chain)
	}

	next := make(snapshot, len(current)+1)
	for name, entry := range current {
		next[name] = entry
	}
	r.generation++
	next[chain] = registration{definition: definition, generation: r.generation}
	r.chains.Store(&next)

	r.metrics.DefinitionLoaded(chain)
	logger.Debugf("registered definition of chain %s with %d namespaces and %d version scopes",
		chain, len(definition.namespaces), len(definition.scopes))
	return nil
}

// Remove unregisters a chain. It returns false if the chain was not registered.
func (r *Registry) Remove(chain string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	current := *r.chains.Load()
	if _, exists := current[chain]; !exists {
		return false
	}

	next := make(snapshot, len(current))
	for name, entry := range current {
		if name != chain {
			next[name] = entry
		}
	}
	r.chains.Store(&next)
	return true
}

func (r *Registry) lookup(chain string) (registration, error) {
	entry, ok := (*r.chains.Load())[chain]
	if !ok {
		return registration{}, fmt.Errorf("%w: %s", ErrChainNotFound, chain)
	}
	return entry, nil
}

// Definition returns the definition of a chain.
func (r *Registry) Definition(chain string) (*ChainDefinition, error) {
	entry, err := r.lookup(chain)
	if err != nil {
		return nil, err
	}
	return entry.definition, nil
}

// Chains returns the registered chain names in lexical order.
func (r *Registry) Chains() []string {
	chains := maps.Keys(*r.chains.Load())
	slices.Sort(chains)
	return chains
}

// ListMethods returns the methods of a chain namespace in declaration order.
func (r *Registry) ListMethods(chain, namespace string) ([]MethodDescriptor, error) {
	definition, err := r.Definition(chain)
	if err != nil {
		return nil, err
	}
	return definition.ListMethods(namespace), nil
}

// Method looks a chain method up by namespace and name.
func (r *Registry) Method(chain, namespace, name string) (method MethodDescriptor, ok bool, err error) {
	definition, err := r.Definition(chain)
	if err != nil {
		return method, false, err
	}
	method, ok = definition.Method(namespace, name)
	return method, ok, nil
}

// ResolveType resolves a type of a chain at a runtime version,
// serving repeated queries from the cache.
func (r *Registry) ResolveType(chain, typeName string, version uint32) (*ResolvedType, error) {
	entry, err := r.lookup(chain)
	if err != nil {
		return nil, err
	}
	definition := entry.definition

	expr, err := ParseTypeExpr(typeName)
	if err != nil {
		return nil, withPath(err, typeName)
	}

	v := viewAt(definition.scopes, version)
	key := cacheKey(chain, entry.generation, v, expr)
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			r.metrics.TypeResolved(chain, true)
			return cached.(*ResolvedType), nil
		}
	}

	t, err := definition.resolveInView(expr, v)
	if err != nil {
		return nil, err
	}

	r.metrics.TypeResolved(chain, false)
	if r.cache != nil {
		r.cache.Set(key, t, 1)
	}
	return t, nil
}

// Fingerprint returns the fingerprint of a chain definition at a version.
func (r *Registry) Fingerprint(chain string, version uint32) (string, error) {
	definition, err := r.Definition(chain)
	if err != nil {
		return "", err
	}
	hash, err := definition.Fingerprint(version)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// Close releases the resolution cache.
func (r *Registry) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

func cacheKey(chain string, generation uint64, v view, expr TypeExpr) string {
	return chain + "\x00" + strconv.FormatUint(generation, 10) + "\x00" + v.key() + "\x00" + expr.String()
}
