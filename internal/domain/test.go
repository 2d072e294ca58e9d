package domain

// TestCase is a named test body collected by the registry
type TestCase struct {
	Name string // Test name, unique by convention only
	Body func() // Zero-argument test body
}
