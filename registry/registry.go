package registry

import (
	"errors"
	"sync"

	"microtest/internal/domain"
)

// ErrSealed is the panic value raised when registering into a sealed registry.
var ErrSealed = errors.New("registry: register after run started")

// Token is returned by Register so registration can happen in a
// package-level variable declaration.
type Token struct {
	Index int // Position of the entry in the registry
}

// Registry is an append-only, ordered collection of test cases.
type Registry struct {
	mu     sync.Mutex
	tests  []domain.TestCase
	sealed bool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Default is the process-wide registry used by the package-level functions.
var Default = New()

// Register appends a test case. Duplicate names are kept and both run.
func (r *Registry) Register(name string, body func()) Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		panic(ErrSealed)
	}
	r.tests = append(r.tests, domain.TestCase{Name: name, Body: body})
	return Token{Index: len(r.tests) - 1}
}

// AllTests returns a copy of the registered tests in insertion order.
func (r *Registry) AllTests() []domain.TestCase {
	r.mu.Lock()
	defer r.mu.Unlock()

	tests := make([]domain.TestCase, len(r.tests))
	copy(tests, r.tests)
	return tests
}

// Len returns the number of registered tests.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tests)
}

// Seal ends the build phase. Sealing twice is a no-op.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether the registry is in its read-only phase.
func (r *Registry) Sealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sealed
}

// Duplicates returns the names registered more than once with their counts.
func (r *Registry) Duplicates() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int, len(r.tests))
	for _, tc := range r.tests {
		counts[tc.Name]++
	}
	dups := make(map[string]int)
	for name, n := range counts {
		if n > 1 {
			dups[name] = n
		}
	}
	return dups
}

// Register appends a test case to the Default registry.
func Register(name string, body func()) Token {
	return Default.Register(name, body)
}

// AllTests returns the tests of the Default registry in insertion order.
func AllTests() []domain.TestCase {
	return Default.AllTests()
}
