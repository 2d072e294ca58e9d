// Package registry holds the process-wide, ordered list of test cases.
//
// Tests register themselves as a side effect of package initialization,
// either from an init function or from a package-level variable:
//
//	var _ = registry.Register("adds numbers", func() {
//		assert.Equal(1+1, 2)
//	})
//
// Go initializes the variables of one package in declaration order (files in
// the order the go tool lists them, which is sorted by file name) and
// initializes packages in import-dependency order. Registration order is
// therefore deterministic for a given build: declaration order within a
// file, file name order within a package, dependency order across packages.
//
// The registry has two phases. During the build phase entries are only ever
// appended. Once a runner seals it the registry is read-only and further
// registrations panic.
package registry
